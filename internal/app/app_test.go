package app_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/Tangesion/MediaPorter/internal/app"
	"github.com/Tangesion/MediaPorter/internal/database"
	"github.com/Tangesion/MediaPorter/internal/models"
	"github.com/Tangesion/MediaPorter/internal/repo"
)

// fakeBackend records extract calls and fails URLs listed in failWith.
type fakeBackend struct {
	mu        sync.Mutex
	extracted []string
	failWith  map[string]string
}

func (f *fakeBackend) Probe(_ context.Context, _ string, _ models.ExtractOptions) ([]models.Format, error) {
	return []models.Format{
		{ID: "30280", Ext: "m4a", AudioCodec: "mp4a.40.2", Bitrate: 192},
		{ID: "30080", Ext: "mp4", Height: 1080, FPS: 30, VideoCodec: "avc1", Bitrate: 2500},
	}, nil
}

func (f *fakeBackend) Extract(_ context.Context, url string, opts models.ExtractOptions, onProgress func(models.ProgressUpdate)) (models.ExtractResult, error) {
	f.mu.Lock()
	f.extracted = append(f.extracted, url)
	f.mu.Unlock()

	if msg, ok := f.failWith[url]; ok {
		return models.ExtractResult{}, backendError(msg)
	}
	if onProgress != nil {
		onProgress(models.ProgressUpdate{Percent: 100, Message: "100% of 4.00MiB"})
	}
	return models.ExtractResult{OutputPath: filepath.Join(opts.OutputDir, "out.mp3")}, nil
}

func (f *fakeBackend) extractCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.extracted)
}

type backendError string

func (e backendError) Error() string { return string(e) }

func openTestStore(t *testing.T) *repo.Store {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Errorf("failed to close test database: %v", err)
		}
	})
	return repo.InitStores(db.DB)
}

// TestRunBatchRecordsHistoryAndSettings checks the full console run flow:
// the download directory is created, every task runs, and the run lands in
// history with the settings persisted as new defaults.
func TestRunBatchRecordsHistoryAndSettings(t *testing.T) {
	store := openTestStore(t)
	backend := &fakeBackend{}

	settings := models.DefaultSettings()
	settings.DownloadDir = filepath.Join(t.TempDir(), "downloads")
	tasks := []models.Task{
		{URL: "https://www.bilibili.com/video/BV1xx411c7mD"},
		{URL: "https://www.bilibili.com/video/BV1yy411c7mE"},
	}

	summary, err := app.RunBatch(context.Background(), store, backend, settings, tasks)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if summary.RunID == "" {
		t.Error("expected a run ID")
	}
	if summary.Successes != 2 || summary.Failures != 0 {
		t.Errorf("expected 2 successes, got %d/%d", summary.Successes, summary.Failures)
	}
	if backend.extractCount() != 2 {
		t.Errorf("expected 2 extract calls, got %d", backend.extractCount())
	}

	if _, err := os.Stat(settings.DownloadDir); err != nil {
		t.Errorf("expected download directory to be created: %v", err)
	}

	entries, err := store.HistoryStore().List(0, time.Time{})
	if err != nil {
		t.Fatalf("failed to list history: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("expected 2 history entries, got %d", len(entries))
	}

	saved, found, err := store.SettingsStore().Load()
	if err != nil || !found {
		t.Fatalf("expected persisted settings, found=%v err=%v", found, err)
	}
	if saved.DownloadDir != settings.DownloadDir {
		t.Errorf("expected download dir %q persisted, got %q", settings.DownloadDir, saved.DownloadDir)
	}
}

// TestRunBatchNoTasks checks that an empty batch is rejected up front.
func TestRunBatchNoTasks(t *testing.T) {
	store := openTestStore(t)
	settings := models.DefaultSettings()
	settings.DownloadDir = t.TempDir()

	if _, err := app.RunBatch(context.Background(), store, &fakeBackend{}, settings, nil); err == nil {
		t.Error("expected an error for an empty batch")
	}
}

// TestRetryFailedRequeuesFailures checks that retry-failed re-runs exactly
// the URLs that failed in the previous run.
func TestRetryFailedRequeuesFailures(t *testing.T) {
	store := openTestStore(t)
	badURL := "https://www.bilibili.com/video/BV1xx411c7mD"
	goodURL := "https://www.bilibili.com/video/BV1yy411c7mE"
	backend := &fakeBackend{failWith: map[string]string{badURL: "ERROR: Unable to download webpage: HTTP Error 403: Forbidden"}}

	settings := models.DefaultSettings()
	settings.DownloadDir = t.TempDir()
	settings.MaxRetries = 0
	tasks := []models.Task{{URL: badURL}, {URL: goodURL}}

	summary, err := app.RunBatch(context.Background(), store, backend, settings, tasks)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if summary.Successes != 1 || summary.Failures != 1 {
		t.Fatalf("expected 1 success and 1 failure, got %d/%d", summary.Successes, summary.Failures)
	}

	// Let the second attempt succeed
	backend.failWith = nil

	retrySummary, err := app.RetryFailed(context.Background(), store, backend, settings)
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if retrySummary.Successes != 1 || retrySummary.Failures != 0 {
		t.Errorf("expected the failed URL to succeed on retry, got %d/%d", retrySummary.Successes, retrySummary.Failures)
	}
	if got := backend.extractCount(); got != 3 {
		t.Errorf("expected 3 extract calls in total, got %d", got)
	}
}

// TestRetryFailedNothingToRetry checks the empty-history path returns
// cleanly without starting a run.
func TestRetryFailedNothingToRetry(t *testing.T) {
	store := openTestStore(t)
	backend := &fakeBackend{}
	settings := models.DefaultSettings()
	settings.DownloadDir = t.TempDir()

	summary, err := app.RetryFailed(context.Background(), store, backend, settings)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if summary.RunID != "" || backend.extractCount() != 0 {
		t.Error("expected no run to start")
	}
}

// TestShowAndClearHistory checks rendering inputs and the clear path.
func TestShowAndClearHistory(t *testing.T) {
	store := openTestStore(t)
	err := store.HistoryStore().SaveRun(models.RunSummary{
		RunID: "run-a",
		Results: []models.Result{
			{URL: "https://www.bilibili.com/video/BV1", Success: true, OutputPath: "/tmp/a.mp3", Mode: "audio"},
		},
	})
	if err != nil {
		t.Fatalf("failed to seed history: %v", err)
	}

	if err := app.ShowHistory(store, 0, ""); err != nil {
		t.Errorf("expected history listing to succeed: %v", err)
	}
	if err := app.ShowHistory(store, 0, "not-a-date"); err == nil {
		t.Error("expected an error for an unparseable date")
	}

	if err := app.ClearHistory(store); err != nil {
		t.Fatalf("failed to clear history: %v", err)
	}
	entries, err := store.HistoryStore().List(0, time.Time{})
	if err != nil {
		t.Fatalf("failed to list history: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty history after clear, got %d entries", len(entries))
	}
}

// TestDiagnoseLinksInput checks input handling without touching the network.
func TestDiagnoseLinksInput(t *testing.T) {
	if err := app.DiagnoseLinks("   "); err == nil {
		t.Error("expected an error for blank input")
	}
	if err := app.DiagnoseLinks("no links in here"); err != nil {
		t.Errorf("expected linkless text to report, not fail: %v", err)
	}
}

// TestQRLoginUnavailable checks the graceful path when no protocol client
// is bundled.
func TestQRLoginUnavailable(t *testing.T) {
	store := openTestStore(t)
	if err := app.QRLogin(context.Background(), store); err == nil {
		t.Error("expected an error when no QR client is set")
	}
}
