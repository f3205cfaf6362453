// Package app contains core application functionality.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Tangesion/MediaPorter/internal/cfg/validation"
	"github.com/Tangesion/MediaPorter/internal/contracts"
	"github.com/Tangesion/MediaPorter/internal/downloads"
	"github.com/Tangesion/MediaPorter/internal/models"
	"github.com/Tangesion/MediaPorter/internal/queue"
	"github.com/Tangesion/MediaPorter/internal/utils/logging"
)

// RunBatch executes one download batch on the console, rendering queue events
// as they arrive and recording the finished run.
func RunBatch(ctx context.Context, s contracts.Store, backend contracts.Backend, settings models.Settings, tasks []models.Task) (models.RunSummary, error) {
	if len(tasks) == 0 {
		return models.RunSummary{}, errors.New("no tasks to run")
	}

	if _, err := validation.ValidateDirectory(settings.DownloadDir, true); err != nil {
		return models.RunSummary{}, fmt.Errorf("download directory %q is invalid: %w", settings.DownloadDir, err)
	}

	mergeCapable := downloads.CheckMergeTool()
	if !mergeCapable {
		logging.W("No merge tool found on PATH. Split-stream merging and audio transcoding are off.")
	}

	w := queue.New(backend, queue.Config{
		Tasks:     tasks,
		OutputDir: settings.DownloadDir,
		Constraints: models.Constraints{
			Mode:         settings.Mode,
			QualityCap:   settings.QualityCap(),
			MergeCapable: mergeCapable,
		},
		MaxRetries:   settings.MaxRetries,
		CookieSource: settings.CookieSource,
		BrowserName:  settings.BrowserName,
		CookieFile:   settings.CookieFile,
	})

	// Interrupt stops the queue after the in-flight task
	go func() {
		<-ctx.Done()
		w.Stop()
	}()

	w.Start(ctx)
	renderEvents(w.Events())

	summary := w.Summary()
	if err := s.HistoryStore().SaveRun(summary); err != nil {
		logging.E("Failed to save run %s to history: %v", summary.RunID, err)
	}
	if err := s.SettingsStore().Save(settings); err != nil {
		logging.E("Failed to persist run settings: %v", err)
	}
	return summary, nil
}

// RetryFailed re-queues the failed URLs of the most recent run.
func RetryFailed(ctx context.Context, s contracts.Store, backend contracts.Backend, settings models.Settings) (models.RunSummary, error) {
	urls, err := s.HistoryStore().FailedURLsLastRun()
	if err != nil {
		return models.RunSummary{}, fmt.Errorf("failed to look up failed URLs: %w", err)
	}
	if len(urls) == 0 {
		logging.I("No failed downloads in the most recent run.")
		return models.RunSummary{}, nil
	}

	logging.I("Retrying %d failed URL(s) from the most recent run", len(urls))
	tasks := make([]models.Task, 0, len(urls))
	for _, u := range urls {
		tasks = append(tasks, models.Task{URL: u})
	}
	return RunBatch(ctx, s, backend, settings, tasks)
}

// renderEvents prints queue notifications until the run is over. Retry
// events are skipped; the queue logs those itself.
func renderEvents(events <-chan models.Event) {
	for e := range events {
		switch e.Type {
		case models.EventStarted:
			logging.I("[%d/%d] Starting: %s", e.Index+1, e.Total, e.URL)
		case models.EventProgress:
			logging.D(1, "[%d/%d] %s", e.Index+1, e.Total, e.Message)
		case models.EventFinished:
			if e.Success {
				logging.S("[%d/%d] %s", e.Index+1, e.Total, e.Message)
			} else {
				logging.E("[%d/%d] %s", e.Index+1, e.Total, e.Message)
			}
		case models.EventAllDone:
			logging.I("All tasks processed. %d succeeded, %d failed.", e.Successes, e.Failures)
		}
	}
}
