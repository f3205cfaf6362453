package models

import "github.com/Tangesion/MediaPorter/internal/domain/consts"

// Settings holds the persisted run options, loaded before a run and saved
// back after it.
type Settings struct {
	DownloadDir  string              `json:"download_dir"`
	Mode         consts.Mode         `json:"download_mode"`
	VideoQuality string              `json:"video_quality"`
	MaxRetries   int                 `json:"max_retries"`
	CookieSource consts.CookieSource `json:"cookie_source"`
	BrowserName  string              `json:"browser_name"`
	CookieFile   string              `json:"cookie_file"`
}

// DefaultSettings returns the stock options used before any are persisted.
func DefaultSettings() Settings {
	return Settings{
		Mode:         consts.ModeAudio,
		VideoQuality: consts.QualityAuto,
		MaxRetries:   consts.DefaultRetries,
		CookieSource: consts.CookieSourceNone,
		BrowserName:  consts.SupportedBrowsers[0],
	}
}

// QualityCap converts the quality option to a height cap, 0 for auto.
func (s Settings) QualityCap() int {
	switch s.VideoQuality {
	case "1080":
		return 1080
	case "720":
		return 720
	case "480":
		return 480
	}
	return 0
}
