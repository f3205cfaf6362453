// Package keys holds various keys for software operations, such as command flag keys and Viper keys.
package keys

// Batch input.
const (
	BatchFile   string = "batch-file"
	RetryFailed string = "retry-failed"
)

// Download settings.
const (
	DownloadDir  string = "download-dir"
	DownloadMode string = "mode"
	VideoQuality string = "quality"
	MaxRetries   string = "max-retries"
)

// Cookies and login.
const (
	CookieSource string = "cookie-source"
	BrowserName  string = "browser"
	CookiePath   string = "cookie-file"
)

// List output.
const (
	Limit string = "limit"
	Since string = "since"
)

// Logging and program files.
const (
	DebugLevel string = "debug-level"
	TomlPath   string = "config-file"
)
