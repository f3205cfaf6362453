package models

import "github.com/Tangesion/MediaPorter/internal/domain/consts"

// ExtractOptions parameterizes one backend probe or extract call.
type ExtractOptions struct {
	// Selector is the format expression to request. Empty means let the
	// backend choose (probe mode never sets it).
	Selector string

	// OutputDir receives the finished file. OutputStem, when set, replaces
	// the title-based filename; it carries no extension.
	OutputDir  string
	OutputStem string

	// Transcode requests audio post-processing to the standard format. Only
	// honored when a merge tool is available.
	Transcode bool

	CookieSource consts.CookieSource
	BrowserName  string
	CookieFile   string
}

// ExtractResult is the backend's report for a finished transfer.
type ExtractResult struct {
	// OutputPath is the located media file, empty when the transfer
	// succeeded but the file could not be resolved.
	OutputPath string
	Title      string
}
