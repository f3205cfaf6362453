package cfg

import (
	"context"

	"github.com/Tangesion/MediaPorter/internal/contracts"
	"github.com/Tangesion/MediaPorter/internal/downloads"
	"github.com/Tangesion/MediaPorter/internal/server"
	"github.com/Tangesion/MediaPorter/internal/utils/logging"

	"github.com/spf13/cobra"
)

// initServeCmd creates the command for the host API server.
func initServeCmd(ctx context.Context, s contracts.Store, backend contracts.Backend) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the host API",
		Long:  "Serve runs the HTTP API used by companion front ends, streaming run events over SSE.",
		RunE: func(cmd *cobra.Command, args []string) error {
			mergeCapable := downloads.CheckMergeTool()
			if !mergeCapable {
				logging.W("No merge tool found on PATH. Split-stream merging and audio transcoding are off.")
			}
			server.StartServer(ctx, s, backend, mergeCapable)
			return nil
		},
	}
}
