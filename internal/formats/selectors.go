// Package formats selects concrete stream formats under run constraints.
package formats

import (
	"fmt"

	"github.com/Tangesion/MediaPorter/internal/domain/consts"
	"github.com/Tangesion/MediaPorter/internal/models"
)

// Backend selector expressions used when no catalogue pick is available.
const (
	SelectorBestAudio       = "bestaudio/best"
	selectorMergeAuto       = "bestvideo+bestaudio/best"
	selectorProgressiveAuto = "best[vcodec!=none][acodec!=none]"
)

// PrimarySelector returns the backend format selector for the run
// constraints. Audio mode always requests best available audio; the backend
// ranks pure-audio formats itself.
func PrimarySelector(c models.Constraints) string {
	if c.Mode == consts.ModeAudio {
		return SelectorBestAudio
	}

	if c.MergeCapable {
		if c.QualityCap > 0 {
			return fmt.Sprintf("bestvideo[height<=%d]+bestaudio/best[height<=%d]", c.QualityCap, c.QualityCap)
		}
		return selectorMergeAuto
	}

	if c.QualityCap > 0 {
		return fmt.Sprintf("best[height<=%d][vcodec!=none][acodec!=none]", c.QualityCap)
	}
	return selectorProgressiveAuto
}

// FallbackSelector returns the relaxed selector used after a
// format-unavailable failure, dropping any height cap. Returns "" when no
// fallback applies.
func FallbackSelector(c models.Constraints) string {
	if c.Mode != consts.ModeVideo {
		return ""
	}
	if c.MergeCapable {
		return selectorMergeAuto
	}
	return selectorProgressiveAuto
}
