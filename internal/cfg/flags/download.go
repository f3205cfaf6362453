package cfgflags

import (
	"github.com/Tangesion/MediaPorter/internal/domain/keys"

	"github.com/spf13/cobra"
)

// SetDownloadFlags sets flags related to download behavior.
func SetDownloadFlags(cmd *cobra.Command, mode, quality, downloadDir *string, retries *int) {

	if mode != nil {
		cmd.Flags().StringVar(mode, keys.DownloadMode, "", "Download mode ('audio' or 'video')")
	}

	if quality != nil {
		cmd.Flags().StringVar(quality, keys.VideoQuality, "", "Video quality cap ('auto', '1080', '720' or '480')")
	}

	if downloadDir != nil {
		cmd.Flags().StringVar(downloadDir, keys.DownloadDir, "", "Directory to place finished downloads in")
	}

	if retries != nil {
		cmd.Flags().IntVar(retries, keys.MaxRetries, 0, "Number of retries to attempt a download before failure")
	}
}
