package rest

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"
)

type HealthState string

const (
	HealthUnknown     HealthState = "unknown"
	HealthAvailable   HealthState = "available"
	HealthUnavailable HealthState = "unavailable"
)

// Monitor polls the database on a fixed interval and caches the result so
// readiness probes never touch the pool directly. The state starts as
// unknown until the first probe completes.
type Monitor struct {
	db       *sql.DB
	interval time.Duration
	logger   *slog.Logger

	mu        sync.RWMutex
	state     HealthState
	lastError string
	checkedAt time.Time
}

func NewMonitor(db *sql.DB, interval time.Duration, logger *slog.Logger) *Monitor {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	return &Monitor{
		db:       db,
		interval: interval,
		logger:   logger,
		state:    HealthUnknown,
	}
}

// Start probes once immediately, then on every tick until ctx is cancelled.
func (m *Monitor) Start(ctx context.Context) {
	go func() {
		m.probe(ctx)

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				m.probe(ctx)
			}
		}
	}()
}

func (m *Monitor) probe(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	err := m.db.PingContext(pingCtx)

	m.mu.Lock()
	prev := m.state
	m.checkedAt = time.Now()
	if err != nil {
		m.state = HealthUnavailable
		m.lastError = err.Error()
	} else {
		m.state = HealthAvailable
		m.lastError = ""
	}
	curr := m.state
	m.mu.Unlock()

	if prev != curr && m.logger != nil {
		m.logger.Info("database health changed", "from", prev, "to", curr, "error", err)
	}
}

// Status returns the cached state, the last probe error and when it ran.
func (m *Monitor) Status() (HealthState, string, time.Time) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.state, m.lastError, m.checkedAt
}

type HealthResponse struct {
	Status     HealthState           `json:"status"`
	CheckedAt  time.Time             `json:"checked_at"`
	Components map[string]CheckEntry `json:"components"`
}

type CheckEntry struct {
	Status    HealthState `json:"status"`
	Message   string      `json:"message,omitempty"`
	CheckedAt time.Time   `json:"checked_at"`
}

type HealthHandler struct {
	monitor *Monitor
}

func NewHealthHandler(monitor *Monitor) *HealthHandler {
	return &HealthHandler{monitor: monitor}
}

// pingHandler reports liveness only; it never consults the database.
func (h *HealthHandler) pingHandler(w http.ResponseWriter, r *http.Request) {
	resp := map[string]string{"status": "OK"}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

// healthCheckHandler reports readiness from the monitor's cached state.
// Anything other than available answers 503.
func (h *HealthHandler) healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	state, lastErr, checkedAt := h.monitor.Status()

	entry := CheckEntry{
		Status:    state,
		Message:   lastErr,
		CheckedAt: checkedAt,
	}

	resp := HealthResponse{
		Status:     state,
		CheckedAt:  time.Now(),
		Components: map[string]CheckEntry{"postgres": entry},
	}

	statusCode := http.StatusOK
	if state != HealthAvailable {
		statusCode = http.StatusServiceUnavailable
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(resp)
}
