package downloads

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Tangesion/MediaPorter/internal/domain/errconsts"
	"github.com/Tangesion/MediaPorter/internal/domain/regex"
	"github.com/Tangesion/MediaPorter/internal/models"
	"github.com/Tangesion/MediaPorter/internal/utils/logging"
)

// Extract downloads the selected streams for one URL. Progress is reported
// through onProgress as yt-dlp emits it. A transfer that succeeds without a
// locatable output file returns an empty OutputPath and no error.
func (d *Downloader) Extract(ctx context.Context, url string, opts models.ExtractOptions, onProgress func(models.ProgressUpdate)) (models.ExtractResult, error) {
	cmd := d.buildExtractCommand(ctx, url, opts)

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return models.ExtractResult{}, fmt.Errorf("stdout pipe error: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return models.ExtractResult{}, fmt.Errorf("stderr pipe error: %w", err)
	}

	pathChan := make(chan string, 1)
	tail := newTailBuffer(40)

	go d.scanExtractOutput(io.MultiReader(stdout, stderr), pathChan, tail, onProgress)

	if err := cmd.Start(); err != nil {
		return models.ExtractResult{}, fmt.Errorf("command start error: %w", err)
	}

	// The scanner owns the pipes until EOF; reap the process afterwards.
	printed := <-pathChan
	waitErr := cmd.Wait()

	if waitErr != nil {
		msg := tail.String()
		if msg == "" {
			msg = waitErr.Error()
		}
		return models.ExtractResult{}, fmt.Errorf(errconsts.YTDLPFailure, errors.New(msg))
	}

	if onProgress != nil {
		onProgress(models.ProgressUpdate{Percent: 100.0, Message: "Download finished"})
	}

	out := d.resolveOutputPath(opts, printed)
	if out == "" {
		logging.W("Transfer for %q finished but no output file was located", url)
	} else {
		logging.S("Download successful: %s", out)
	}
	return models.ExtractResult{OutputPath: out}, nil
}

// scanExtractOutput scans combined yt-dlp output for progress lines and the
// printed final filepath, draining the pipes until EOF.
func (d *Downloader) scanExtractOutput(r io.Reader, pathChan chan<- string, tail *tailBuffer, onProgress func(models.ProgressUpdate)) {
	scanner := bufio.NewScanner(r)
	pctRe := regex.ProgressPercentCompile()

	var (
		printed string
		lastPct float64 = -1
	)

	for scanner.Scan() {
		line := scanner.Text()
		tail.add(line)

		if m := pctRe.FindStringSubmatch(line); m != nil {
			if pct, err := strconv.ParseFloat(m[1], 64); err == nil {
				pct = clampPercent(pct)
				if pct != lastPct && onProgress != nil {
					onProgress(models.ProgressUpdate{Percent: pct, Message: trimProgressLine(line)})
					lastPct = pct
				}
			}
			continue
		}

		if p := mediaPathLine(line); p != "" {
			printed = p
		}
	}

	if err := scanner.Err(); err != nil {
		logging.E("Scanner error: %v", err)
	}

	pathChan <- printed
	close(pathChan)
}

// resolveOutputPath locates the finished file: the printed path first, then
// the transcode sibling and stem glob for custom filenames. Empty when
// nothing can be located.
func (d *Downloader) resolveOutputPath(opts models.ExtractOptions, printed string) string {
	if printed != "" {
		if err := waitForFile(printed, 5*time.Second); err == nil {
			return printed
		}
		logging.D(1, "Printed path %q never appeared on disk", printed)
	}
	return resolveFromStem(opts)
}
