// Package command holds constants for extraction backend command flags.
package command

// General
const (
	AfterMove      = "after_move:%(filepath)s"
	FilenameSyntax = "%(title)s.%(ext)s"
	Format         = "-f"
	Newline        = "--newline"
	NoPlaylist     = "--no-playlist"
	NoSimulate     = "--no-simulate"
	NoWarnings     = "--no-warnings"
	Output         = "-o"
	Print          = "--print"
	Retries        = "--retries"
	YTDLP          = "yt-dlp"
)

// Cookies
const (
	CookiesFromBrowser = "--cookies-from-browser"
	CookiePath         = "--cookies"
)

// Audio post-processing
const (
	ExtractAudio = "-x"
	AudioFormat  = "--audio-format"
	AudioQuality = "--audio-quality"
)

// JSON only
const (
	OutputJSON = "-J"
	SkipVideo  = "--skip-download"
)
