// Package consts holds various global, unchanging values.
package consts

// Program
const (
	AppName    = "mediaporter"
	ServerPort = "8737"
)

// Link support. Hosts are matched case-insensitively with any "www." prefix
// stripped. Short-link hosts are always supported; platform hosts must also
// carry one of the supported path prefixes.
const (
	ShortLinkHost      = "b23.tv"
	PlatformRootDomain = "bilibili.com"
)

// SupportedPathPrefixes lists the platform paths that resolve to downloadable
// media pages.
var SupportedPathPrefixes = [...]string{
	"/video/",
	"/bangumi/play/",
	"/bangumi/media/",
	"/festival/",
	"/cheese/play/",
	"/medialist/play/",
	"/list/",
	"/s/video/",
	"/s/bangumi/",
	"/anime/",
	"/movie/",
	"/ep",
	"/ss",
}

// Mode selects the download product.
type Mode string

const (
	ModeAudio Mode = "audio"
	ModeVideo Mode = "video"
)

// CookieSource selects where login cookies come from.
type CookieSource string

const (
	CookieSourceNone    CookieSource = "none"
	CookieSourceBrowser CookieSource = "browser"
	CookieSourceFile    CookieSource = "file"
)

// Quality cap options for video mode. "auto" means no height cap.
const (
	QualityAuto = "auto"
)

var QualityOptions = [...]string{QualityAuto, "1080", "720", "480"}

// Audio post-processing defaults, applied when a merge tool is present.
const (
	AudioTranscodeFormat  = "mp3"
	AudioTranscodeQuality = "192"
)

// Retry bounds for the task queue.
const (
	MinRetries     = 0
	MaxRetries     = 5
	DefaultRetries = 1
)

// History retention.
const (
	HistoryKeepEntries = 300
)

// QR login challenge lifetime in seconds. After this the challenge is void and
// a fresh one must be generated.
const (
	QRChallengeLifetimeSecs = 180
	QRPollIntervalSecs      = 3
)

// Supported browsers for cookie reads.
var SupportedBrowsers = [...]string{"edge", "chrome", "firefox"}

// AllVidExtensions is a list of video file extensions.
var AllVidExtensions = [...]string{".3gp", ".avi", ".f4v", ".flv", ".m4v", ".mkv",
	".mov", ".mp4", ".mpeg", ".mpg", ".ogm", ".ogv",
	".ts", ".vob", ".webm", ".wmv"}

// AllAudioExtensions is a list of audio file extensions.
var AllAudioExtensions = [...]string{".aac", ".flac", ".m4a", ".mp3", ".ogg",
	".opus", ".wav", ".weba"}
