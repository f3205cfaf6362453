package consts

// Recommended permissions for the files and directories MediaPorter creates.
const (
	// Media output - world readable
	PermsDownloadDir = 0o755
	PermsMediaFile   = 0o644

	// Program files
	PermsDataDir = 0o755
	PermsLogFile = 0o644

	// Sensitive files - owner only
	PermsAuthDir    = 0o750
	PermsCookieFile = 0o600
)
