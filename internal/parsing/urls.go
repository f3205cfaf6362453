// Package parsing turns raw user link text into validated download tasks.
package parsing

import (
	"net/url"
	"strings"

	"github.com/Tangesion/MediaPorter/internal/domain/consts"
	"github.com/Tangesion/MediaPorter/internal/domain/regex"
)

// Trim sets applied to URL candidates. Links pasted from chat apps and CJK
// input methods arrive wrapped in brackets and full-width punctuation.
const (
	leadingTrimChars  = "\"'([{<【《「『"
	trailingTrimChars = "\"').,!?;:]>】》」』，。！？；："
)

// fullWidthReplacer maps full-width punctuation typed by non-ASCII input
// methods onto the ASCII characters the URL pattern expects.
var fullWidthReplacer = strings.NewReplacer(
	"：", ":",
	"／", "/",
	"．", ".",
	"？", "?",
	"＆", "&",
)

// ExtractURLs returns every URL candidate found in text, trimmed of wrapping
// punctuation. Candidates are not validated for support.
func ExtractURLs(text string) []string {
	if text == "" {
		return nil
	}

	normalized := fullWidthReplacer.Replace(text)
	matches := regex.URLPatternCompile().FindAllString(normalized, -1)
	if matches == nil {
		return nil
	}

	candidates := make([]string, 0, len(matches))
	for _, m := range matches {
		candidates = append(candidates, normalizeURLCandidate(m))
	}
	return candidates
}

// IsSupportedURL reports whether the URL points at a known downloadable page:
// the short-link host, or a platform host with an allowed path prefix.
func IsSupportedURL(rawURL string) bool {
	return unsupportedReason(normalizeURLCandidate(rawURL)) == ""
}

// FilterSupportedURLs deduplicates and keeps only supported URLs, preserving
// first-seen order.
func FilterSupportedURLs(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	valid := make([]string, 0, len(urls))

	for _, raw := range urls {
		u := normalizeURLCandidate(raw)
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		if IsSupportedURL(u) {
			valid = append(valid, u)
			seen[u] = struct{}{}
		}
	}
	return valid
}

// unsupportedReason returns "" for supported URLs, otherwise a short reason
// naming what disqualified the URL (host vs. path).
func unsupportedReason(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "missing host"
	}

	host := strings.ToLower(parsed.Host)
	host = strings.TrimPrefix(host, "www.")

	if host == consts.ShortLinkHost {
		return ""
	}
	if host == "" {
		return "missing host"
	}
	if !strings.HasSuffix(host, consts.PlatformRootDomain) {
		return "host is not bilibili/b23 (" + host + ")"
	}

	path := strings.ToLower(parsed.Path)
	for _, prefix := range consts.SupportedPathPrefixes {
		if strings.HasPrefix(path, prefix) {
			return ""
		}
	}
	if path == "" {
		path = "/"
	}
	return "path not supported (" + path + ")"
}

// normalizeURLCandidate strips whitespace plus the leading and trailing trim
// sets from a raw URL match.
func normalizeURLCandidate(rawURL string) string {
	u := strings.TrimSpace(rawURL)
	u = strings.TrimLeft(u, leadingTrimChars)
	return strings.TrimRight(u, trailingTrimChars)
}
