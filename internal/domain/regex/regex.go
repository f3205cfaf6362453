// Package regex compiles and caches various regex expressions.
package regex

import (
	"regexp"
)

var (
	AnsiEscape      *regexp.Regexp
	URLPattern      *regexp.Regexp
	InvalidChars    *regexp.Regexp
	ProgressPercent *regexp.Regexp
)

// AnsiEscapeCompile compiles regex for ANSI escape codes
func AnsiEscapeCompile() *regexp.Regexp {
	if AnsiEscape == nil {
		AnsiEscape = regexp.MustCompile(`\x1b\[[0-9;]*m`)
	}
	return AnsiEscape
}

// URLPatternCompile compiles the permissive scheme://non-whitespace URL matcher
func URLPatternCompile() *regexp.Regexp {
	if URLPattern == nil {
		URLPattern = regexp.MustCompile(`(?i)https?://[^\s,]+`)
	}
	return URLPattern
}

// InvalidCharsCompile compiles regex for filename characters invalid on common filesystems
func InvalidCharsCompile() *regexp.Regexp {
	if InvalidChars == nil {
		InvalidChars = regexp.MustCompile(`[\\/:*?"<>|]+`)
	}
	return InvalidChars
}

// ProgressPercentCompile compiles regex for yt-dlp "[download]  12.3%" progress lines
func ProgressPercentCompile() *regexp.Regexp {
	if ProgressPercent == nil {
		ProgressPercent = regexp.MustCompile(`\[download\]\s+([0-9]+(?:\.[0-9]+)?)%`)
	}
	return ProgressPercent
}
