// Package downloads drives the yt-dlp binary for probes and transfers.
package downloads

import (
	"os/exec"
)

// mergeTools are the binaries required for split-stream merging and audio
// transcoding.
var mergeTools = [...]string{"ffmpeg", "ffprobe"}

// Downloader runs yt-dlp as a subprocess. It performs one attempt per call;
// retry sequencing belongs to the queue.
type Downloader struct {
	// MergeCapable reports whether the merge tools were found on PATH at
	// construction time.
	MergeCapable bool
}

// New returns a Downloader, detecting merge tool availability.
func New() *Downloader {
	return &Downloader{MergeCapable: CheckMergeTool()}
}

// CheckMergeTool reports whether every merge tool binary is on PATH.
func CheckMergeTool() bool {
	for _, tool := range mergeTools {
		if _, err := exec.LookPath(tool); err != nil {
			return false
		}
	}
	return true
}
