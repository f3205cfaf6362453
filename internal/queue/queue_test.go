package queue_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/Tangesion/MediaPorter/internal/domain/consts"
	"github.com/Tangesion/MediaPorter/internal/models"
	"github.com/Tangesion/MediaPorter/internal/queue"
)

// fakeBackend scripts Probe/Extract outcomes per URL and records every
// Extract call it receives.
type fakeBackend struct {
	mu       sync.Mutex
	extracts []models.ExtractOptions
	urls     []string
	probed   []string

	catalogue []models.Format
	probeErr  error

	failWith map[string]string // url -> raw error text, every call
	failOnce map[string]string // url -> raw error text, first call only
	noPath   map[string]bool   // url -> succeed without an output path
	panics   map[string]bool   // url -> panic on call
	onCall   func(url string)

	onceSpent map[string]bool
}

func (f *fakeBackend) Probe(_ context.Context, url string, _ models.ExtractOptions) ([]models.Format, error) {
	f.mu.Lock()
	f.probed = append(f.probed, url)
	f.mu.Unlock()
	if f.probeErr != nil {
		return nil, f.probeErr
	}
	return f.catalogue, nil
}

func (f *fakeBackend) Extract(_ context.Context, url string, opts models.ExtractOptions, onProgress func(models.ProgressUpdate)) (models.ExtractResult, error) {
	f.mu.Lock()
	f.urls = append(f.urls, url)
	f.extracts = append(f.extracts, opts)
	if f.onceSpent == nil {
		f.onceSpent = make(map[string]bool)
	}
	firstCall := !f.onceSpent[url]
	f.onceSpent[url] = true
	f.mu.Unlock()

	if f.onCall != nil {
		f.onCall(url)
	}
	if f.panics[url] {
		panic("backend exploded")
	}
	if raw, ok := f.failWith[url]; ok {
		return models.ExtractResult{}, errors.New(raw)
	}
	if raw, ok := f.failOnce[url]; ok && firstCall {
		return models.ExtractResult{}, errors.New(raw)
	}

	if onProgress != nil {
		onProgress(models.ProgressUpdate{Percent: 50, Message: "Downloading"})
	}
	if f.noPath[url] {
		return models.ExtractResult{}, nil
	}
	return models.ExtractResult{OutputPath: opts.OutputDir + "/out.mp3"}, nil
}

func (f *fakeBackend) extractCalls() []models.ExtractOptions {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ExtractOptions(nil), f.extracts...)
}

func drain(w *queue.Worker) []models.Event {
	var events []models.Event
	for e := range w.Events() {
		events = append(events, e)
	}
	return events
}

func countType(events []models.Event, t models.EventType) int {
	n := 0
	for _, e := range events {
		if e.Type == t {
			n++
		}
	}
	return n
}

func findFinished(events []models.Event, index int) (models.Event, bool) {
	for _, e := range events {
		if e.Type == models.EventFinished && e.Index == index {
			return e, true
		}
	}
	return models.Event{}, false
}

func audioTasks(urls ...string) []models.Task {
	tasks := make([]models.Task, 0, len(urls))
	for _, u := range urls {
		tasks = append(tasks, models.Task{URL: u})
	}
	return tasks
}

// TestWorkerBatchWithRetries runs three tasks where the middle one always
// fails with one retry allowed.
func TestWorkerBatchWithRetries(t *testing.T) {
	const (
		u1 = "https://www.bilibili.com/video/BV1"
		u2 = "https://www.bilibili.com/video/BV2"
		u3 = "https://www.bilibili.com/video/BV3"
	)

	backend := &fakeBackend{
		failWith: map[string]string{u2: "ERROR: Unable to extract play info"},
	}
	w := queue.New(backend, queue.Config{
		Tasks:       audioTasks(u1, u2, u3),
		OutputDir:   "/tmp/media",
		Constraints: models.Constraints{Mode: consts.ModeAudio},
		MaxRetries:  1,
	})
	w.Start(context.Background())
	events := drain(w)

	if got := countType(events, models.EventStarted); got != 3 {
		t.Errorf("expected 3 started events, got %d", got)
	}
	if got := countType(events, models.EventRetry); got != 1 {
		t.Errorf("expected 1 retry event, got %d", got)
	}
	if got := countType(events, models.EventFinished); got != 3 {
		t.Errorf("expected 3 finished events, got %d", got)
	}
	if got := countType(events, models.EventAllDone); got != 1 {
		t.Errorf("expected 1 all_done event, got %d", got)
	}

	// One progress per successful extract, none from the failing URL
	if got := countType(events, models.EventProgress); got != 2 {
		t.Errorf("expected 2 progress events, got %d", got)
	}

	fin, ok := findFinished(events, 1)
	if !ok {
		t.Fatal("expected a finished event for task 2")
	}
	if fin.Success {
		t.Error("expected task 2 to fail")
	}
	if fin.Message != "Failed to parse the media page. The site may have changed; try updating yt-dlp." {
		t.Errorf("unexpected failure message %q", fin.Message)
	}

	for _, e := range events {
		if e.Type == models.EventRetry {
			if e.Attempt != 1 || e.MaxRetries != 1 || e.Message != "Retrying (1/1)" {
				t.Errorf("unexpected retry event %+v", e)
			}
		}
		if e.RunID != w.RunID() {
			t.Errorf("event missing run id: %+v", e)
		}
	}

	// Audio mode never probes, and the failing task was attempted twice
	if len(backend.probed) != 0 {
		t.Errorf("expected no probes in audio mode, got %v", backend.probed)
	}
	if len(backend.extractCalls()) != 4 {
		t.Errorf("expected 4 extract calls, got %d", len(backend.extractCalls()))
	}

	sum := w.Summary()
	if sum.Successes != 2 || sum.Failures != 1 || sum.Stopped {
		t.Errorf("unexpected summary %+v", sum)
	}
	if len(sum.Results) != 3 || sum.Results[1].Success {
		t.Errorf("unexpected results %+v", sum.Results)
	}
	if sum.RunID == "" {
		t.Error("expected a run id")
	}
}

// TestWorkerStopMidBatch stops during the first in-flight task.
func TestWorkerStopMidBatch(t *testing.T) {
	const (
		u1 = "https://www.bilibili.com/video/BV1"
		u2 = "https://www.bilibili.com/video/BV2"
	)

	backend := &fakeBackend{}
	w := queue.New(backend, queue.Config{
		Tasks:       audioTasks(u1, u2),
		OutputDir:   "/tmp/media",
		Constraints: models.Constraints{Mode: consts.ModeAudio},
	})
	backend.onCall = func(string) { w.Stop() }

	w.Start(context.Background())
	events := drain(w)

	// The in-flight task runs to completion and still reports Finished
	if got := countType(events, models.EventStarted); got != 1 {
		t.Errorf("expected 1 started event, got %d", got)
	}
	fin, ok := findFinished(events, 0)
	if !ok || !fin.Success {
		t.Fatalf("expected task 1 to finish successfully, got %+v", fin)
	}
	if got := countType(events, models.EventAllDone); got != 1 {
		t.Errorf("expected all_done after stop, got %d", got)
	}

	sum := w.Summary()
	if !sum.Stopped || sum.Successes != 1 || sum.Failures != 0 {
		t.Errorf("unexpected summary %+v", sum)
	}
	if len(backend.extractCalls()) != 1 {
		t.Errorf("expected no extract for the second task, got %d calls", len(backend.extractCalls()))
	}
}

// TestWorkerRetryClamp clamps out-of-range retry settings.
func TestWorkerRetryClamp(t *testing.T) {
	const u1 = "https://www.bilibili.com/video/BV1"

	backend := &fakeBackend{failWith: map[string]string{u1: "boom"}}
	w := queue.New(backend, queue.Config{
		Tasks:       audioTasks(u1),
		OutputDir:   "/tmp/media",
		Constraints: models.Constraints{Mode: consts.ModeAudio},
		MaxRetries:  99,
	})
	w.Start(context.Background())
	events := drain(w)

	if got := len(backend.extractCalls()); got != 6 {
		t.Errorf("expected 6 attempts with clamped retries, got %d", got)
	}
	if got := countType(events, models.EventRetry); got != 5 {
		t.Errorf("expected 5 retry events, got %d", got)
	}
	for _, e := range events {
		if e.Type == models.EventRetry && e.MaxRetries != 5 {
			t.Errorf("expected clamped max of 5 in retry event, got %d", e.MaxRetries)
		}
	}

	backend = &fakeBackend{failWith: map[string]string{u1: "boom"}}
	w = queue.New(backend, queue.Config{
		Tasks:       audioTasks(u1),
		OutputDir:   "/tmp/media",
		Constraints: models.Constraints{Mode: consts.ModeAudio},
		MaxRetries:  -3,
	})
	w.Start(context.Background())
	drain(w)

	if got := len(backend.extractCalls()); got != 1 {
		t.Errorf("expected a single attempt with negative retries, got %d", got)
	}
}

// TestWorkerUnresolvedOutput treats a pathless success as success with a
// degraded message.
func TestWorkerUnresolvedOutput(t *testing.T) {
	const u1 = "https://www.bilibili.com/video/BV1"

	backend := &fakeBackend{noPath: map[string]bool{u1: true}}
	w := queue.New(backend, queue.Config{
		Tasks:       audioTasks(u1),
		OutputDir:   "/tmp/media",
		Constraints: models.Constraints{Mode: consts.ModeAudio},
	})
	w.Start(context.Background())
	events := drain(w)

	fin, ok := findFinished(events, 0)
	if !ok {
		t.Fatal("expected a finished event")
	}
	if !fin.Success || fin.OutputPath != "" {
		t.Errorf("expected pathless success, got %+v", fin)
	}
	if fin.Message != "Download completed, but output path could not be resolved." {
		t.Errorf("unexpected message %q", fin.Message)
	}
}

// TestWorkerFormatFallback relaxes the selector once within the same
// attempt when the requested format is rejected.
func TestWorkerFormatFallback(t *testing.T) {
	const u1 = "https://www.bilibili.com/video/BV1"

	backend := &fakeBackend{
		probeErr: errors.New("probe down"),
		failOnce: map[string]string{u1: "ERROR: Requested format is not available. Use --list-formats for a list"},
	}
	w := queue.New(backend, queue.Config{
		Tasks:       audioTasks(u1),
		OutputDir:   "/tmp/media",
		Constraints: models.Constraints{Mode: consts.ModeVideo, QualityCap: 720, MergeCapable: true},
	})
	w.Start(context.Background())
	events := drain(w)

	calls := backend.extractCalls()
	if len(calls) != 2 {
		t.Fatalf("expected 2 extract calls, got %d", len(calls))
	}
	if calls[0].Selector != "bestvideo[height<=720]+bestaudio/best[height<=720]" {
		t.Errorf("unexpected primary selector %q", calls[0].Selector)
	}
	if calls[1].Selector != "bestvideo+bestaudio/best" {
		t.Errorf("unexpected fallback selector %q", calls[1].Selector)
	}

	// The relaxed retry happens inside the attempt, not via the retry loop
	if got := countType(events, models.EventRetry); got != 0 {
		t.Errorf("expected no retry events, got %d", got)
	}
	fin, ok := findFinished(events, 0)
	if !ok || !fin.Success {
		t.Fatalf("expected fallback success, got %+v", fin)
	}
}

// TestWorkerProbePick passes catalogue-picked format ids to the backend.
func TestWorkerProbePick(t *testing.T) {
	const u1 = "https://www.bilibili.com/video/BV1"

	backend := &fakeBackend{
		catalogue: []models.Format{
			{ID: "30077", Ext: "mp4", VideoCodec: "avc1", AudioCodec: "none", Height: 720, Bitrate: 1200},
			{ID: "30280", Ext: "m4a", VideoCodec: "none", AudioCodec: "mp4a", AudioRate: 128, SampleRate: 44100},
		},
	}
	w := queue.New(backend, queue.Config{
		Tasks:       audioTasks(u1),
		OutputDir:   "/tmp/media",
		Constraints: models.Constraints{Mode: consts.ModeVideo, MergeCapable: true},
	})
	w.Start(context.Background())
	drain(w)

	if len(backend.probed) != 1 {
		t.Fatalf("expected 1 probe, got %d", len(backend.probed))
	}
	calls := backend.extractCalls()
	if len(calls) != 1 || calls[0].Selector != "30077+30280" {
		t.Fatalf("expected picked id pair, got %+v", calls)
	}
}

// TestWorkerPanicBoundary converts a backend panic into a failed result
// and keeps the run alive.
func TestWorkerPanicBoundary(t *testing.T) {
	const (
		u1 = "https://www.bilibili.com/video/BV1"
		u2 = "https://www.bilibili.com/video/BV2"
	)

	backend := &fakeBackend{panics: map[string]bool{u1: true}}
	w := queue.New(backend, queue.Config{
		Tasks:       audioTasks(u1, u2),
		OutputDir:   "/tmp/media",
		Constraints: models.Constraints{Mode: consts.ModeAudio},
	})
	w.Start(context.Background())
	events := drain(w)

	fin, ok := findFinished(events, 0)
	if !ok || fin.Success {
		t.Fatalf("expected first task to fail, got %+v", fin)
	}
	if fin.Message != "unexpected error: backend exploded" {
		t.Errorf("unexpected message %q", fin.Message)
	}

	fin, ok = findFinished(events, 1)
	if !ok || !fin.Success {
		t.Fatalf("expected second task to succeed, got %+v", fin)
	}
	if got := countType(events, models.EventAllDone); got != 1 {
		t.Errorf("expected all_done after panic, got %d", got)
	}

	sum := w.Summary()
	if sum.Successes != 1 || sum.Failures != 1 {
		t.Errorf("unexpected summary %+v", sum)
	}
}
