package server

import (
	"context"
	"errors"
	"sync"

	"github.com/Tangesion/MediaPorter/internal/contracts"
	"github.com/Tangesion/MediaPorter/internal/models"
	"github.com/Tangesion/MediaPorter/internal/queue"
	"github.com/Tangesion/MediaPorter/internal/utils/logging"
)

// errRunActive is returned when a batch is requested while another run is
// still in flight.
var errRunActive = errors.New("a download run is already active")

// runManager owns at most one active queue worker and fans its events out to
// connected event stream subscribers.
type runManager struct {
	ctx          context.Context
	backend      contracts.Backend
	mergeCapable bool

	mu      sync.Mutex
	worker  *queue.Worker
	running bool
	lastRun *models.RunSummary

	subMu   sync.Mutex
	subs    map[int]chan models.Event
	nextSub int
}

func newRunManager(ctx context.Context, backend contracts.Backend, mergeCapable bool) *runManager {
	return &runManager{
		ctx:          ctx,
		backend:      backend,
		mergeCapable: mergeCapable,
		subs:         make(map[int]chan models.Event),
	}
}

// startBatch launches a worker for the given config. Only one run may be
// active at a time.
func (m *runManager) startBatch(cfg queue.Config) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.running {
		return "", errRunActive
	}

	w := queue.New(m.backend, cfg)
	m.worker = w
	m.running = true

	go m.drain(w)
	w.Start(m.ctx)

	return w.RunID(), nil
}

// stop requests a cooperative stop of the active run. Reports whether a run
// was there to stop.
func (m *runManager) stop() bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.running || m.worker == nil {
		return false
	}
	m.worker.Stop()
	return true
}

// statusReport is the /api/status response body.
type statusReport struct {
	Running bool               `json:"running"`
	RunID   string             `json:"run_id,omitempty"`
	LastRun *models.RunSummary `json:"last_run,omitempty"`
}

func (m *runManager) status() statusReport {
	m.mu.Lock()
	defer m.mu.Unlock()

	rep := statusReport{Running: m.running, LastRun: m.lastRun}
	if m.running && m.worker != nil {
		rep.RunID = m.worker.RunID()
	}
	return rep
}

// drain forwards worker events to subscribers, then records the finished run.
func (m *runManager) drain(w *queue.Worker) {
	for e := range w.Events() {
		m.broadcast(e)
	}

	summary := w.Summary()

	if err := hs.SaveRun(summary); err != nil {
		logging.E("Failed to save run %s to history: %v", summary.RunID, err)
	}

	m.mu.Lock()
	m.lastRun = &summary
	m.running = false
	m.mu.Unlock()
}

// subscribe registers an event stream consumer. The returned cancel func is
// safe to call more than once.
func (m *runManager) subscribe() (<-chan models.Event, func()) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	id := m.nextSub
	m.nextSub++
	ch := make(chan models.Event, 100)
	m.subs[id] = ch

	cancel := func() {
		m.subMu.Lock()
		defer m.subMu.Unlock()
		if _, ok := m.subs[id]; ok {
			delete(m.subs, id)
			close(ch)
		}
	}
	return ch, cancel
}

// broadcast sends an event to every subscriber. Lagging subscribers drop
// events rather than stalling the run.
func (m *runManager) broadcast(e models.Event) {
	m.subMu.Lock()
	defer m.subMu.Unlock()

	for id, ch := range m.subs {
		select {
		case ch <- e:
		default:
			logging.D(2, "Event subscriber %d is lagging, dropped event", id)
		}
	}
}
