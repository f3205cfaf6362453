package cfg

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Tangesion/MediaPorter/internal/app"
	cfgflags "github.com/Tangesion/MediaPorter/internal/cfg/flags"
	"github.com/Tangesion/MediaPorter/internal/contracts"
	"github.com/Tangesion/MediaPorter/internal/domain/keys"
	"github.com/Tangesion/MediaPorter/internal/models"
	"github.com/Tangesion/MediaPorter/internal/parsing"
	"github.com/Tangesion/MediaPorter/internal/utils/logging"

	"github.com/spf13/cobra"
)

// initRunCmd creates the command for downloading one batch of links.
func initRunCmd(ctx context.Context, s contracts.Store, backend contracts.Backend) *cobra.Command {
	var (
		mode, quality, downloadDir            string
		cookieSource, browserName, cookieFile string
		batchFile                             string
		retries                               int
		retryFailed                           bool
	)

	runCmd := &cobra.Command{
		Use:   "run [links...]",
		Short: "Download a batch of links",
		Long: "Run downloads every supported link given as arguments, in a batch file, or piped " +
			"through stdin. Options used for the run become the new stored defaults.",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadRunSettings(s)
			if err != nil {
				return err
			}
			if err := applyDownloadFlags(cmd, &settings, mode, quality, downloadDir, retries); err != nil {
				return err
			}
			if err := applyAuthFlags(cmd, &settings, cookieSource, browserName, cookieFile); err != nil {
				return err
			}

			if retryFailed {
				if len(args) > 0 || batchFile != "" {
					return errors.New("cannot combine --retry-failed with link input")
				}
				_, err := app.RetryFailed(ctx, s, backend, settings)
				return err
			}

			tasks, diagnostics, err := gatherTasks(args, batchFile)
			if err != nil {
				return err
			}
			for _, d := range diagnostics {
				logging.W("%s", d)
			}
			if len(tasks) == 0 {
				return errors.New("no supported links found in input")
			}

			summary, err := app.RunBatch(ctx, s, backend, settings, tasks)
			if err != nil {
				return err
			}
			if summary.Failures > 0 {
				logging.I("Run 'mediaporter run --retry-failed' to retry the failed downloads.")
			}
			return nil
		},
	}

	cfgflags.SetDownloadFlags(runCmd, &mode, &quality, &downloadDir, &retries)
	cfgflags.SetAuthFlags(runCmd, &cookieSource, &browserName, &cookieFile)
	runCmd.Flags().StringVar(&batchFile, keys.BatchFile, "", "File of links to download, one per line ('#' lines skipped)")
	runCmd.Flags().BoolVar(&retryFailed, keys.RetryFailed, false, "Re-queue the failed URLs of the most recent run")

	return runCmd
}

// gatherTasks collects tasks from argv, a batch file, or piped stdin.
func gatherTasks(args []string, batchFile string) ([]models.Task, []string, error) {
	if batchFile != "" {
		tasks, diagnostics, err := parsing.ParseTaskFile(batchFile)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read batch file %q: %w", batchFile, err)
		}
		return tasks, diagnostics, nil
	}

	text := strings.Join(args, "\n")
	if text == "" {
		raw, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(raw)
	}

	tasks, diagnostics := parsing.ParseTasks(text)
	return tasks, diagnostics, nil
}
