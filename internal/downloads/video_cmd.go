package downloads

import (
	"context"
	"os/exec"
	"path/filepath"

	"github.com/Tangesion/MediaPorter/internal/domain/command"
	"github.com/Tangesion/MediaPorter/internal/domain/consts"
	"github.com/Tangesion/MediaPorter/internal/models"
	"github.com/Tangesion/MediaPorter/internal/utils/logging"
)

// buildExtractCommand builds the command to download media using yt-dlp.
func (d *Downloader) buildExtractCommand(ctx context.Context, url string, opts models.ExtractOptions) *exec.Cmd {
	args := make([]string, 0, 24)

	args = append(args,
		command.Newline,
		command.NoPlaylist,
		command.NoWarnings,
		command.Output, outputTemplate(opts))

	args = append(args, command.Print, command.AfterMove, command.NoSimulate)

	if opts.Selector != "" {
		args = append(args, command.Format, opts.Selector)
	}

	if opts.Transcode && d.MergeCapable {
		args = append(args,
			command.ExtractAudio,
			command.AudioFormat, consts.AudioTranscodeFormat,
			command.AudioQuality, consts.AudioTranscodeQuality)
	}

	args = appendCookieArgs(args, opts)
	args = append(args, url)

	cmd := exec.CommandContext(ctx, command.YTDLP, args...)
	logging.D(1, "Built extract command for URL %q:\n%v", url, cmd.String())

	return cmd
}

// outputTemplate renders the output path template, preferring a sanitized
// custom stem over the title-based default.
func outputTemplate(opts models.ExtractOptions) string {
	if opts.OutputStem != "" {
		return filepath.Join(opts.OutputDir, SanitizeFilename(opts.OutputStem)+".%(ext)s")
	}
	return filepath.Join(opts.OutputDir, command.FilenameSyntax)
}

// appendCookieArgs adds the login cookie flags for the configured source.
func appendCookieArgs(args []string, opts models.ExtractOptions) []string {
	switch opts.CookieSource {
	case consts.CookieSourceBrowser:
		if opts.BrowserName != "" {
			args = append(args, command.CookiesFromBrowser, opts.BrowserName)
		}
	case consts.CookieSourceFile:
		if opts.CookieFile != "" {
			args = append(args, command.CookiePath, opts.CookieFile)
		}
	}
	return args
}
