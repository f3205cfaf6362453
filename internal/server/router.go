// Package server sets up the MediaPorter host API server.
package server

import (
	"context"
	"log"
	"net/http"

	"github.com/Tangesion/MediaPorter/internal/contracts"
	"github.com/Tangesion/MediaPorter/internal/domain/consts"
	"github.com/Tangesion/MediaPorter/internal/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

var (
	hs  contracts.HistoryStore
	ps  contracts.SettingsStore
	mgr *runManager
)

// NewRouter returns a http Handler. The context bounds the lifetime of any
// download runs the server launches; mergeCapable reports whether a stream
// merge tool was found on this host.
func NewRouter(ctx context.Context, s contracts.Store, backend contracts.Backend, mergeCapable bool) http.Handler {
	// Inject stores
	hs = s.HistoryStore()
	ps = s.SettingsStore()
	mgr = newRunManager(ctx, backend, mergeCapable)

	// Initialize router
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// --- API Routes ---
	r.Route("/api", func(r chi.Router) {
		r.Get("/status", handleStatus)
		r.Get("/history", handleHistory)
		r.Post("/batch", handleStartBatch)
		r.Post("/stop", handleStop)
		r.Get("/events", handleEvents)
	})

	return r
}

// StartServer starts the HTTP server on the specified port.
func StartServer(ctx context.Context, s contracts.Store, backend contracts.Backend, mergeCapable bool) {
	r := NewRouter(ctx, s, backend, mergeCapable)
	addr := ":" + consts.ServerPort
	logging.S("MediaPorter host API running on http://localhost%s\n", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
