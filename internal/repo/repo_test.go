package repo_test

import (
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/Tangesion/MediaPorter/internal/database"
	"github.com/Tangesion/MediaPorter/internal/domain/consts"
	"github.com/Tangesion/MediaPorter/internal/models"
	"github.com/Tangesion/MediaPorter/internal/repo"
)

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

// TestHistorySaveAndList checks round-tripping and ordering of run results.
func TestHistorySaveAndList(t *testing.T) {
	hs := openTestStore(t).HistoryStore()

	summary := models.RunSummary{
		RunID: "run-a",
		Results: []models.Result{
			{URL: "https://www.bilibili.com/video/BV1", Success: true, Message: "Downloaded successfully", OutputPath: "/tmp/a.mp3", Mode: "audio"},
			{URL: "https://www.bilibili.com/video/BV2", Success: false, Message: "Login required. Import cookies from your browser or log in via QR, then retry.", Mode: "audio"},
			{URL: "https://www.bilibili.com/video/BV3", Success: true, Message: "Downloaded successfully", OutputPath: "/tmp/c.mp3", Mode: "audio"},
		},
	}
	if err := hs.SaveRun(summary); err != nil {
		t.Fatalf("failed to save run: %v", err)
	}

	entries, err := hs.List(0, time.Time{})
	if err != nil {
		t.Fatalf("failed to list history: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}

	// Newest first
	if entries[0].URL != "https://www.bilibili.com/video/BV3" {
		t.Errorf("expected newest entry first, got %q", entries[0].URL)
	}
	if entries[0].RunID != "run-a" || !entries[0].Success || entries[0].OutputPath != "/tmp/c.mp3" {
		t.Errorf("unexpected entry %+v", entries[0])
	}
	if entries[2].Success || entries[2].Message == "" {
		t.Errorf("expected failed entry with message, got %+v", entries[2])
	}
	if entries[0].CreatedAt.IsZero() {
		t.Error("expected a created timestamp")
	}

	limited, err := hs.List(1, time.Time{})
	if err != nil {
		t.Fatalf("failed to list limited history: %v", err)
	}
	if len(limited) != 1 {
		t.Fatalf("expected 1 entry with limit, got %d", len(limited))
	}

	recent, err := hs.List(0, time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("failed to list recent history: %v", err)
	}
	if len(recent) != 3 {
		t.Fatalf("expected all entries within the last hour, got %d", len(recent))
	}

	future, err := hs.List(0, time.Now().Add(time.Hour))
	if err != nil {
		t.Fatalf("failed to list future history: %v", err)
	}
	if len(future) != 0 {
		t.Fatalf("expected no entries from the future, got %d", len(future))
	}
}

// TestHistoryPrune keeps only the newest entries.
func TestHistoryPrune(t *testing.T) {
	hs := openTestStore(t).HistoryStore()

	results := make([]models.Result, 0, consts.HistoryKeepEntries+10)
	for i := 0; i < consts.HistoryKeepEntries+10; i++ {
		results = append(results, models.Result{
			URL:     fmt.Sprintf("https://www.bilibili.com/video/BV%d", i),
			Success: true,
			Message: "Downloaded successfully",
			Mode:    "audio",
		})
	}
	if err := hs.SaveRun(models.RunSummary{RunID: "run-big", Results: results}); err != nil {
		t.Fatalf("failed to save run: %v", err)
	}

	entries, err := hs.List(0, time.Time{})
	if err != nil {
		t.Fatalf("failed to list history: %v", err)
	}
	if len(entries) != consts.HistoryKeepEntries {
		t.Fatalf("expected %d entries after prune, got %d", consts.HistoryKeepEntries, len(entries))
	}

	// The oldest rows go first
	if entries[0].URL != fmt.Sprintf("https://www.bilibili.com/video/BV%d", consts.HistoryKeepEntries+9) {
		t.Errorf("expected newest row kept, got %q", entries[0].URL)
	}
}

// TestFailedURLsLastRun returns only the latest run's failures, deduplicated.
func TestFailedURLsLastRun(t *testing.T) {
	hs := openTestStore(t).HistoryStore()

	urls, err := hs.FailedURLsLastRun()
	if err != nil {
		t.Fatalf("expected no error on empty history, got %v", err)
	}
	if len(urls) != 0 {
		t.Fatalf("expected no failed URLs on empty history, got %v", urls)
	}

	older := models.RunSummary{
		RunID: "run-a",
		Results: []models.Result{
			{URL: "https://www.bilibili.com/video/OLD", Success: false, Message: "boom", Mode: "audio"},
		},
	}
	if err := hs.SaveRun(older); err != nil {
		t.Fatalf("failed to save older run: %v", err)
	}

	newer := models.RunSummary{
		RunID: "run-b",
		Results: []models.Result{
			{URL: "https://www.bilibili.com/video/BV1", Success: false, Message: "boom", Mode: "audio"},
			{URL: "https://www.bilibili.com/video/BV2", Success: true, Message: "Downloaded successfully", Mode: "audio"},
			{URL: "https://www.bilibili.com/video/BV1", Success: false, Message: "boom", Mode: "audio"},
			{URL: "https://www.bilibili.com/video/BV3", Success: false, Message: "boom", Mode: "audio"},
		},
	}
	if err := hs.SaveRun(newer); err != nil {
		t.Fatalf("failed to save newer run: %v", err)
	}

	urls, err = hs.FailedURLsLastRun()
	if err != nil {
		t.Fatalf("failed to fetch failed URLs: %v", err)
	}
	want := []string{"https://www.bilibili.com/video/BV1", "https://www.bilibili.com/video/BV3"}
	if len(urls) != len(want) {
		t.Fatalf("expected %v, got %v", want, urls)
	}
	for i := range want {
		if urls[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, urls)
		}
	}
}

// TestHistoryClear wipes the table.
func TestHistoryClear(t *testing.T) {
	hs := openTestStore(t).HistoryStore()

	summary := models.RunSummary{
		RunID: "run-a",
		Results: []models.Result{
			{URL: "https://www.bilibili.com/video/BV1", Success: true, Message: "Downloaded successfully", Mode: "video"},
		},
	}
	if err := hs.SaveRun(summary); err != nil {
		t.Fatalf("failed to save run: %v", err)
	}
	if err := hs.Clear(); err != nil {
		t.Fatalf("failed to clear history: %v", err)
	}

	entries, err := hs.List(0, time.Time{})
	if err != nil {
		t.Fatalf("failed to list history: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty history after clear, got %d entries", len(entries))
	}
}

// TestSettingsRoundTrip checks load-before-save and upsert behavior.
func TestSettingsRoundTrip(t *testing.T) {
	ss := openTestStore(t).SettingsStore()

	_, found, err := ss.Load()
	if err != nil {
		t.Fatalf("unexpected error on fresh load: %v", err)
	}
	if found {
		t.Fatal("expected no settings before first save")
	}

	s := models.DefaultSettings()
	s.DownloadDir = "/tmp/media"
	s.Mode = consts.ModeVideo
	s.VideoQuality = "720"
	s.MaxRetries = 3
	if err := ss.Save(s); err != nil {
		t.Fatalf("failed to save settings: %v", err)
	}

	got, found, err := ss.Load()
	if err != nil {
		t.Fatalf("failed to load settings: %v", err)
	}
	if !found {
		t.Fatal("expected settings after save")
	}
	if got != s {
		t.Fatalf("expected %+v, got %+v", s, got)
	}

	s.VideoQuality = consts.QualityAuto
	if err := ss.Save(s); err != nil {
		t.Fatalf("failed to overwrite settings: %v", err)
	}
	got, _, err = ss.Load()
	if err != nil {
		t.Fatalf("failed to reload settings: %v", err)
	}
	if got.VideoQuality != consts.QualityAuto {
		t.Fatalf("expected upserted quality, got %q", got.VideoQuality)
	}
}

// TestProgramSingleInstance checks the program start/quit lock cycle.
func TestProgramSingleInstance(t *testing.T) {
	db := openTestStore(t).HistoryStore().GetDB()

	pc := repo.NewProgController(db)
	pid, err := pc.StartMediaPorter()
	if err != nil {
		t.Fatalf("failed to mark program started: %v", err)
	}
	if pid == 0 {
		t.Fatalf("expected a nonzero PID")
	}

	// Second start refused while the heartbeat is fresh
	second := repo.NewProgController(db)
	if _, err := second.StartMediaPorter(); err == nil {
		t.Fatalf("expected error for a second instance, got nil")
	}

	if err := pc.UpdateHeartbeat(); err != nil {
		t.Fatalf("failed to update heartbeat: %v", err)
	}

	if err := pc.QuitMediaPorter(time.Now().Add(-time.Second)); err != nil {
		t.Fatalf("failed to mark program quit: %v", err)
	}

	// Lock is free again after quit
	if _, err := second.StartMediaPorter(); err != nil {
		t.Fatalf("expected restart after quit to succeed, got: %v", err)
	}
}

// TestProgramStaleReset checks recovery from a dead instance's lock.
func TestProgramStaleReset(t *testing.T) {
	db := openTestStore(t).HistoryStore().GetDB()

	pc := repo.NewProgController(db)
	if _, err := pc.StartMediaPorter(); err != nil {
		t.Fatalf("failed to mark program started: %v", err)
	}

	// Age the heartbeat past the stale threshold
	stale := time.Now().Add(-3 * time.Minute)
	if _, err := db.Exec("UPDATE program SET last_heartbeat = ? WHERE id = 1", stale); err != nil {
		t.Fatalf("failed to age heartbeat: %v", err)
	}

	if _, err := repo.NewProgController(db).StartMediaPorter(); err != nil {
		t.Fatalf("expected stale lock takeover to succeed, got: %v", err)
	}
}
