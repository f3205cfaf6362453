package server

import (
	"fmt"
	"net/http"

	"github.com/Tangesion/MediaPorter/internal/cfg/validation"
	"github.com/Tangesion/MediaPorter/internal/domain/paths"
	"github.com/Tangesion/MediaPorter/internal/models"
	"github.com/Tangesion/MediaPorter/internal/queue"
	"github.com/Tangesion/MediaPorter/internal/utils/logging"
)

// batchRequest is the /api/batch body. Omitted option fields fall back to the
// persisted settings.
type batchRequest struct {
	Text         string `json:"text"`
	Mode         string `json:"mode,omitempty"`
	Quality      string `json:"quality,omitempty"`
	Retries      *int   `json:"retries,omitempty"`
	DownloadDir  string `json:"download_dir,omitempty"`
	CookieSource string `json:"cookie_source,omitempty"`
	BrowserName  string `json:"browser_name,omitempty"`
	CookieFile   string `json:"cookie_file,omitempty"`
}

// batchResponse reports an accepted batch.
type batchResponse struct {
	RunID    string   `json:"run_id"`
	Accepted int      `json:"accepted"`
	Skipped  []string `json:"skipped,omitempty"`
}

// mergeSettings overlays request fields onto the persisted settings.
func mergeSettings(w http.ResponseWriter, req *batchRequest) *models.Settings {
	stored, found, err := ps.Load()
	if err != nil {
		logging.E("Failed to load settings: %v", err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return nil
	}
	if !found {
		stored = models.DefaultSettings()
	}

	if req.Mode != "" {
		mode, err := validation.ValidateMode(req.Mode)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return nil
		}
		stored.Mode = mode
	}
	if req.Quality != "" {
		quality, err := validation.ValidateQuality(req.Quality)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return nil
		}
		stored.VideoQuality = quality
	}
	if req.Retries != nil {
		stored.MaxRetries = validation.ValidateRetries(*req.Retries)
	}
	if req.DownloadDir != "" {
		stored.DownloadDir = req.DownloadDir
	}
	if req.BrowserName != "" {
		browser, err := validation.ValidateBrowser(req.BrowserName)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return nil
		}
		stored.BrowserName = browser
	}
	if req.CookieFile != "" {
		stored.CookieFile = req.CookieFile
	}
	if req.CookieSource != "" {
		source, err := validation.ValidateCookieSource(req.CookieSource, stored.BrowserName, stored.CookieFile)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return nil
		}
		stored.CookieSource = source
	}

	if stored.DownloadDir == "" {
		stored.DownloadDir = paths.DefaultDownloadDir
	}
	if _, err := validation.ValidateDirectory(stored.DownloadDir, true); err != nil {
		http.Error(w, fmt.Sprintf("download directory %q is invalid: %v", stored.DownloadDir, err), http.StatusBadRequest)
		return nil
	}

	return &stored
}

// buildRunConfig converts settings and parsed tasks into a queue config.
func buildRunConfig(s *models.Settings, tasks []models.Task, mergeCapable bool) queue.Config {
	return queue.Config{
		Tasks:     tasks,
		OutputDir: s.DownloadDir,
		Constraints: models.Constraints{
			Mode:         s.Mode,
			QualityCap:   s.QualityCap(),
			MergeCapable: mergeCapable,
		},
		MaxRetries:   s.MaxRetries,
		CookieSource: s.CookieSource,
		BrowserName:  s.BrowserName,
		CookieFile:   s.CookieFile,
	}
}
