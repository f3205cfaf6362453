package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/Tangesion/MediaPorter/internal/models"
	"github.com/Tangesion/MediaPorter/internal/parsing"
	"github.com/Tangesion/MediaPorter/internal/utils/logging"
)

// handleStatus reports whether a run is active and the last run's outcome.
func handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(mgr.status()); err != nil {
		http.Error(w, "failed to encode JSON", http.StatusInternalServerError)
	}
}

// handleHistory lists stored download records, newest first.
func handleHistory(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid limit %q", raw), http.StatusBadRequest)
			return
		}
		limit = n
	}

	since := time.Time{}
	if raw := r.URL.Query().Get("since"); raw != "" {
		t, err := parsing.ParseSince(raw)
		if err != nil {
			http.Error(w, fmt.Sprintf("invalid since date %q: %v", raw, err), http.StatusBadRequest)
			return
		}
		since = t
	}

	entries, err := hs.List(limit, since)
	if err != nil {
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(entries); err != nil {
		http.Error(w, "failed to encode JSON", http.StatusInternalServerError)
	}
}

// handleStartBatch parses a link batch and launches a download run.
func handleStartBatch(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}

	settings := mergeSettings(w, &req)
	if settings == nil {
		return
	}

	tasks, skipped := parsing.ParseTasks(req.Text)
	if len(tasks) == 0 {
		http.Error(w, "no supported links found", http.StatusBadRequest)
		return
	}

	runID, err := mgr.startBatch(buildRunConfig(settings, tasks, mgr.mergeCapable))
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	// Options used for a run become the new stored defaults
	if err := ps.Save(*settings); err != nil {
		logging.E("Failed to persist run settings: %v", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	if err := json.NewEncoder(w).Encode(batchResponse{RunID: runID, Accepted: len(tasks), Skipped: skipped}); err != nil {
		http.Error(w, "failed to encode JSON", http.StatusInternalServerError)
	}
}

// handleStop requests a cooperative stop of the active run.
func handleStop(w http.ResponseWriter, r *http.Request) {
	if !mgr.stop() {
		http.Error(w, "no active run", http.StatusConflict)
		return
	}
	w.WriteHeader(http.StatusAccepted)
}

// handleEvents streams queue events as server-sent events until the client
// disconnects.
func handleEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	sub, cancel := mgr.subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case e, open := <-sub:
			if !open {
				return
			}
			data, err := json.Marshal(e)
			if err != nil {
				logging.E("Failed to encode event: %v", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", e.Type, data)
			flusher.Flush()
		}
	}
}
