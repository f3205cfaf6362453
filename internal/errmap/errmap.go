// Package errmap maps raw backend error text onto stable categories and
// user-actionable messages.
package errmap

import (
	"strings"

	"github.com/Tangesion/MediaPorter/internal/domain/consts"
	"github.com/Tangesion/MediaPorter/internal/domain/regex"
)

// Category is a stable error class, independent of backend wording.
type Category string

const (
	CategoryDRM               Category = "drm_protected"
	CategoryMergeToolMissing  Category = "merge_tool_missing"
	CategoryLocalNetwork      Category = "local_network_permission"
	CategoryForbidden         Category = "access_forbidden"
	CategoryRiskControl       Category = "risk_control"
	CategoryExtractorOutdated Category = "extractor_outdated"
	CategoryPaidContent       Category = "paid_content"
	CategoryLoginRequired     Category = "login_required"
	CategoryCookieDecrypt     Category = "cookie_decryption_failed"
	CategoryCookieLocked      Category = "cookie_store_locked"
	CategoryRegionLocked      Category = "region_locked"
	CategoryFormatUnavailable Category = "format_unavailable"
	CategoryUnknown           Category = "unknown"
)

// rule matches lowercase substrings against cleaned error text. The first
// matching rule wins, so order is part of the contract.
type rule struct {
	category Category
	patterns []string
	message  string

	// videoNoMergeMessage replaces message in video mode without a merge
	// tool, for errors the tool's absence explains.
	videoNoMergeMessage string
}

var rules = []rule{
	{
		category: CategoryDRM,
		patterns: []string{"drm"},
		message:  "This content is DRM-protected and cannot be downloaded.",
	},
	{
		category: CategoryMergeToolMissing,
		patterns: []string{"ffmpeg is not installed", "ffmpeg not found", "merging of multiple formats"},
		message:  "Merging the downloaded tracks requires ffmpeg. Install ffmpeg and retry.",
	},
	{
		category: CategoryLocalNetwork,
		patterns: []string{"winerror 10013", "forbidden by its access permissions"},
		message:  "Local network access was blocked (WinError 10013). Allow the app through your firewall or security software, then retry.",
	},
	{
		category: CategoryForbidden,
		patterns: []string{"http error 403", "403 forbidden"},
		message:  "Access denied (HTTP 403). Login/VIP may be required; import cookies and retry.",
	},
	{
		category: CategoryRiskControl,
		patterns: []string{"http error 412", "412 precondition"},
		message:  "The platform risk control blocked this request (HTTP 412). Wait a while, log in, then retry.",
	},
	{
		category: CategoryExtractorOutdated,
		patterns: []string{"unable to extract"},
		message:  "Failed to parse the media page. The site may have changed; try updating yt-dlp.",
	},
	{
		category: CategoryPaidContent,
		patterns: []string{"大会员", "付费", "vip"},
		message:  "This content is paid and requires an account with active VIP.",
	},
	{
		category: CategoryLoginRequired,
		patterns: []string{"login", "登录"},
		message:  "Login required. Import cookies from your browser or log in via QR, then retry.",
	},
	{
		category: CategoryCookieDecrypt,
		patterns: []string{"could not copy", "failed to decrypt", "dpapi"},
		message:  "Could not decrypt browser cookies. Fully close the browser and run as the same user, then retry.",
	},
	{
		category: CategoryCookieLocked,
		patterns: []string{"database is locked"},
		message:  "The browser cookie store is locked. Close the browser and retry.",
	},
	{
		category: CategoryRegionLocked,
		patterns: []string{"geo restriction", "not available in your region", "地区"},
		message:  "This content is region-locked and not available from your location.",
	},
	{
		category:            CategoryFormatUnavailable,
		patterns:            []string{"requested format is not available"},
		message:             "Requested quality/format is unavailable. Try 'auto' quality, or log in if the quality requires VIP.",
		videoNoMergeMessage: "Install ffmpeg to enable merged video downloads, or switch to audio mode.",
	},
}

// Classify cleans raw backend error text and resolves it to a category and a
// user-facing message. Never returns an empty message.
func Classify(raw string, mode consts.Mode, mergeCapable bool) (Category, string) {
	cleaned := Clean(raw)
	lowered := strings.ToLower(cleaned)

	for _, r := range rules {
		for _, p := range r.patterns {
			if !strings.Contains(lowered, p) {
				continue
			}
			if r.videoNoMergeMessage != "" && mode == consts.ModeVideo && !mergeCapable {
				return r.category, r.videoNoMergeMessage
			}
			return r.category, r.message
		}
	}

	if cleaned == "" {
		return CategoryUnknown, "Download failed for an unknown reason."
	}
	return CategoryUnknown, cleaned
}

// Clean strips ANSI escape sequences and surrounding whitespace from raw
// backend output.
func Clean(raw string) string {
	return strings.TrimSpace(regex.AnsiEscapeCompile().ReplaceAllString(raw, ""))
}
