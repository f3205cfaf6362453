// Package queue runs download batches strictly in order, one task at a
// time, emitting lifecycle events on a buffered channel.
package queue

import (
	"context"
	"sync/atomic"

	"github.com/Tangesion/MediaPorter/internal/contracts"
	"github.com/Tangesion/MediaPorter/internal/domain/consts"
	"github.com/Tangesion/MediaPorter/internal/models"
	"github.com/Tangesion/MediaPorter/internal/utils/logging"

	"github.com/google/uuid"
)

// Config holds one run's inputs. MaxRetries is clamped on construction.
type Config struct {
	Tasks        []models.Task
	OutputDir    string
	Constraints  models.Constraints
	MaxRetries   int
	CookieSource consts.CookieSource
	BrowserName  string
	CookieFile   string
}

// Worker executes one batch. Create with New, launch with Start, observe
// through Events. The event channel closes when the run is over.
type Worker struct {
	backend    contracts.Backend
	cfg        Config
	runID      string
	maxRetries int
	events     chan models.Event
	stopped    atomic.Bool
	summary    models.RunSummary
}

// New returns a worker for the given batch.
func New(backend contracts.Backend, cfg Config) *Worker {
	return &Worker{
		backend:    backend,
		cfg:        cfg,
		runID:      uuid.New().String(),
		maxRetries: clampRetries(cfg.MaxRetries),
		events:     make(chan models.Event, 100),
	}
}

// RunID returns the unique identifier for this run.
func (w *Worker) RunID() string {
	return w.runID
}

// Events returns the notification stream. The consumer must drain it
// promptly; the channel closes once AllDone has been sent.
func (w *Worker) Events() <-chan models.Event {
	return w.events
}

// Start launches the run on its own goroutine.
func (w *Worker) Start(ctx context.Context) {
	go w.run(ctx)
}

// Stop requests a cooperative stop. The in-flight attempt runs to
// completion; no new task or retry begins afterwards.
func (w *Worker) Stop() {
	w.stopped.Store(true)
}

// Stopped reports whether a stop was requested.
func (w *Worker) Stopped() bool {
	return w.stopped.Load()
}

// Summary returns the aggregate outcome. Valid once the event channel
// has closed.
func (w *Worker) Summary() models.RunSummary {
	return w.summary
}

func (w *Worker) run(ctx context.Context) {
	defer close(w.events)

	total := len(w.cfg.Tasks)
	results := make([]models.Result, 0, total)
	var successes, failures int

	logging.I("Queue ready. %d task(s). mode=%s, retries=%d", total, w.cfg.Constraints.Mode, w.maxRetries)

	for i, task := range w.cfg.Tasks {
		if w.stopped.Load() {
			logging.I("Download canceled by user.")
			break
		}

		w.emit(models.Event{Type: models.EventStarted, Index: i, Total: total, URL: task.URL})

		res := w.runTask(ctx, i, total, task)
		if res == nil {
			res = &models.Result{
				URL:     task.URL,
				Success: false,
				Message: "Task canceled before completion.",
				Mode:    string(w.cfg.Constraints.Mode),
			}
		}

		if res.Success {
			successes++
		} else {
			failures++
		}
		results = append(results, *res)

		w.emit(models.Event{
			Type:       models.EventFinished,
			Index:      i,
			Total:      total,
			URL:        task.URL,
			Success:    res.Success,
			OutputPath: res.OutputPath,
			Message:    res.Message,
		})
	}

	w.summary = models.RunSummary{
		RunID:     w.runID,
		Successes: successes,
		Failures:  failures,
		Stopped:   w.stopped.Load(),
		Results:   results,
	}

	w.emit(models.Event{Type: models.EventAllDone, Total: total, Successes: successes, Failures: failures})
	logging.I("Run %s done: %d succeeded, %d failed", w.runID, successes, failures)
}

func (w *Worker) emit(e models.Event) {
	e.RunID = w.runID
	w.events <- e
}

func clampRetries(n int) int {
	if n < consts.MinRetries {
		return consts.MinRetries
	}
	if n > consts.MaxRetries {
		return consts.MaxRetries
	}
	return n
}
