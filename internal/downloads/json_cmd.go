package downloads

import (
	"context"
	"os/exec"

	"github.com/Tangesion/MediaPorter/internal/domain/command"
	"github.com/Tangesion/MediaPorter/internal/models"
	"github.com/Tangesion/MediaPorter/internal/utils/logging"
)

// buildProbeCommand builds the command to fetch the format catalogue as JSON.
// Probes never carry a format constraint and never post-process.
func buildProbeCommand(ctx context.Context, url string, opts models.ExtractOptions) *exec.Cmd {
	args := make([]string, 0, 8)

	args = append(args,
		command.OutputJSON,
		command.NoPlaylist,
		command.NoWarnings)

	args = appendCookieArgs(args, opts)
	args = append(args, url)

	cmd := exec.CommandContext(ctx, command.YTDLP, args...)
	logging.D(1, "Built probe command for URL %q:\n%v", url, cmd.String())

	return cmd
}
