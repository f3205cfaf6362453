package formats

import (
	"fmt"
	"strings"

	"github.com/Tangesion/MediaPorter/internal/models"
)

// SummarizeFormats renders up to limit catalogue entries as one line each,
// for diagnostics output.
func SummarizeFormats(catalogue []models.Format, limit int) string {
	if len(catalogue) == 0 {
		return "No formats reported."
	}
	if limit <= 0 || limit > len(catalogue) {
		limit = len(catalogue)
	}

	var b strings.Builder
	for _, f := range catalogue[:limit] {
		fmt.Fprintf(&b, "id=%s ext=%s height=%d fps=%g tbr=%g vcodec=%s acodec=%s\n",
			f.ID, f.Ext, f.Height, f.FPS, f.Bitrate, f.VideoCodec, f.AudioCodec)
	}
	if rest := len(catalogue) - limit; rest > 0 {
		fmt.Fprintf(&b, "... and %d more formats\n", rest)
	}
	return strings.TrimRight(b.String(), "\n")
}
