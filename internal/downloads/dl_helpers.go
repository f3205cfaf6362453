package downloads

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Tangesion/MediaPorter/internal/domain/consts"
	"github.com/Tangesion/MediaPorter/internal/domain/regex"
	"github.com/Tangesion/MediaPorter/internal/models"
)

// SanitizeFilename collapses filesystem-invalid character runs into single
// underscores.
func SanitizeFilename(name string) string {
	return strings.TrimSpace(regex.InvalidCharsCompile().ReplaceAllString(name, "_"))
}

// clampPercent bounds a progress percentage to [0,100].
func clampPercent(pct float64) float64 {
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}

// trimProgressLine strips the "[download]" prefix for a cleaner status
// message.
func trimProgressLine(line string) string {
	msg := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "[download]"))
	if msg == "" {
		return "Downloading"
	}
	return msg
}

// mediaPathLine returns the line when it looks like a printed absolute media
// file path, otherwise "".
func mediaPathLine(line string) string {
	if !strings.HasPrefix(line, "/") {
		return ""
	}

	ext := strings.ToLower(filepath.Ext(line))
	for _, validExt := range consts.AllVidExtensions {
		if ext == validExt {
			return line
		}
	}
	for _, validExt := range consts.AllAudioExtensions {
		if ext == validExt {
			return line
		}
	}
	return ""
}

// resolveFromStem locates output for custom-named downloads: transcode
// sibling first, then any extension with the same stem.
func resolveFromStem(opts models.ExtractOptions) string {
	if opts.OutputStem == "" {
		return ""
	}

	base := filepath.Join(opts.OutputDir, SanitizeFilename(opts.OutputStem))

	if opts.Transcode {
		mp3 := base + "." + consts.AudioTranscodeFormat
		if _, err := os.Stat(mp3); err == nil {
			return mp3
		}
	}

	matches, err := filepath.Glob(base + ".*")
	if err == nil && len(matches) > 0 {
		return matches[0]
	}
	return ""
}

// waitForFile waits until the file is ready in the file system.
func waitForFile(fpath string, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if _, err := os.Stat(fpath); err == nil {
			return nil
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("unexpected error while checking file: %w", err)
		}
		time.Sleep(100 * time.Millisecond)
	}
	return fmt.Errorf("file not ready after %v: %s", timeout, fpath)
}

// tailBuffer keeps the last n lines of subprocess output for error text.
type tailBuffer struct {
	lines []string
	max   int
}

func newTailBuffer(max int) *tailBuffer {
	return &tailBuffer{max: max}
}

func (t *tailBuffer) add(line string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return
	}
	t.lines = append(t.lines, line)
	if len(t.lines) > t.max {
		t.lines = t.lines[1:]
	}
}

func (t *tailBuffer) String() string {
	return strings.Join(t.lines, "\n")
}
