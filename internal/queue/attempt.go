package queue

import (
	"context"
	"fmt"

	"github.com/Tangesion/MediaPorter/internal/domain/consts"
	"github.com/Tangesion/MediaPorter/internal/errmap"
	"github.com/Tangesion/MediaPorter/internal/formats"
	"github.com/Tangesion/MediaPorter/internal/models"
	"github.com/Tangesion/MediaPorter/internal/utils/logging"
)

// runTask drives one task through its attempts. Returns nil only when a
// stop landed before any attempt completed; the caller synthesizes the
// cancellation result.
func (w *Worker) runTask(ctx context.Context, index, total int, task models.Task) (res *models.Result) {
	defer func() {
		if r := recover(); r != nil {
			logging.E("Task %q panicked: %v", task.URL, r)
			res = &models.Result{
				URL:     task.URL,
				Success: false,
				Message: fmt.Sprintf("unexpected error: %v", r),
				Mode:    string(w.cfg.Constraints.Mode),
			}
		}
	}()

	for attempt := 1; attempt <= w.maxRetries+1; attempt++ {
		if w.stopped.Load() {
			break
		}

		if attempt > 1 {
			retryNo := attempt - 1
			w.emit(models.Event{
				Type:       models.EventRetry,
				Index:      index,
				Total:      total,
				URL:        task.URL,
				Attempt:    retryNo,
				MaxRetries: w.maxRetries,
				Message:    fmt.Sprintf("Retrying (%d/%d)", retryNo, w.maxRetries),
			})
			logging.I("[%d/%d] Retrying (%d/%d): %s", index+1, total, retryNo, w.maxRetries, task.URL)
		}

		r := w.attempt(ctx, index, total, task)
		if r.Success {
			return &r
		}

		logging.I("[%d/%d] Attempt %d failed: %s", index+1, total, attempt, r.Message)
		res = &r
	}
	return res
}

// attempt runs the full request path once: optional format probe, the
// transfer itself, and a single relaxed-selector retry when the platform
// rejects the requested format.
func (w *Worker) attempt(ctx context.Context, index, total int, task models.Task) models.Result {
	cons := w.cfg.Constraints
	opts := w.extractOptions(task)

	if cons.Mode == consts.ModeVideo {
		if catalogue, err := w.backend.Probe(ctx, task.URL, opts); err != nil {
			logging.D(1, "Format probe failed for %s, using selector %q: %v", task.URL, opts.Selector, err)
		} else if sel := formats.Select(catalogue, cons); !sel.None() {
			opts.Selector = sel.String()
			logging.D(1, "Picked format %q for %s", opts.Selector, task.URL)
		}
	}

	onProgress := func(u models.ProgressUpdate) {
		w.emit(models.Event{
			Type:    models.EventProgress,
			Index:   index,
			Total:   total,
			URL:     task.URL,
			Percent: u.Percent,
			Message: u.Message,
		})
	}

	out, err := w.backend.Extract(ctx, task.URL, opts, onProgress)
	if err != nil && cons.Mode == consts.ModeVideo {
		if cat, _ := errmap.Classify(err.Error(), cons.Mode, cons.MergeCapable); cat == errmap.CategoryFormatUnavailable {
			if fb := formats.FallbackSelector(cons); fb != "" && fb != opts.Selector {
				logging.I("[%d/%d] Requested format rejected, retrying with %q: %s", index+1, total, fb, task.URL)
				opts.Selector = fb
				out, err = w.backend.Extract(ctx, task.URL, opts, onProgress)
			}
		}
	}

	if err != nil {
		_, msg := errmap.Classify(err.Error(), cons.Mode, cons.MergeCapable)
		return models.Result{URL: task.URL, Success: false, Message: msg, Mode: string(cons.Mode)}
	}

	msg := "Downloaded successfully"
	if out.OutputPath == "" {
		msg = "Download completed, but output path could not be resolved."
	}
	return models.Result{
		URL:        task.URL,
		Success:    true,
		Message:    msg,
		OutputPath: out.OutputPath,
		Mode:       string(cons.Mode),
	}
}

func (w *Worker) extractOptions(task models.Task) models.ExtractOptions {
	return models.ExtractOptions{
		Selector:     formats.PrimarySelector(w.cfg.Constraints),
		OutputDir:    w.cfg.OutputDir,
		OutputStem:   task.Filename,
		Transcode:    w.cfg.Constraints.Mode == consts.ModeAudio,
		CookieSource: w.cfg.CookieSource,
		BrowserName:  w.cfg.BrowserName,
		CookieFile:   w.cfg.CookieFile,
	}
}
