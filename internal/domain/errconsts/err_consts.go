// Package errconsts holds constant error messages
package errconsts

// Programs
const (
	YTDLPFailure = "yt-dlp command failed: %w"
)

// Database
const (
	DBOpenFail   = "failed to open database at %q: %w"
	DBSchemaFail = "failed to initialize database schema: %w"
)
