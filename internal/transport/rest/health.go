package rest

import (
	"context"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"
)

const pingTimeout = 3 * time.Second

type pinger interface {
	Ping(ctx context.Context) error
}

type check struct {
	name string
	p    pinger
}

// HealthHandler serves /live, /ready and /health.
type HealthHandler struct {
	db      pinger
	checks  []check
	version string
}

func NewHealthHandler(db pinger, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		checks:  []check{{name: "database", p: db}},
		version: version,
	}
}

// WithComponent adds a dependency to the /health report. Readiness only
// looks at the database: a donor list can still be served while the
// document store is unreachable.
func (h *HealthHandler) WithComponent(name string, p pinger) *HealthHandler {
	h.checks = append(h.checks, check{name: name, p: p})
	return h
}

type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

func statusWord(ok bool) string {
	if ok {
		return "ok"
	}
	return "down"
}

func (h *HealthHandler) Live(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok", Timestamp: time.Now()})
}

func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	ok := h.db.Ping(ctx) == nil
	code := http.StatusOK
	if !ok {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{Status: statusWord(ok), Timestamp: time.Now()})
}

// Health pings every registered component in parallel and reports each
// one's latency. Any failure turns the whole report into a 503.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), pingTimeout)
	defer cancel()

	var (
		mu         sync.Mutex
		components = make(map[string]CompStatus, len(h.checks))
		healthy    = true
		g          errgroup.Group
	)
	for _, c := range h.checks {
		g.Go(func() error {
			start := time.Now()
			err := c.p.Ping(ctx)
			st := CompStatus{Status: statusWord(err == nil)}
			if err == nil {
				st.Latency = time.Since(start).String()
			}

			mu.Lock()
			defer mu.Unlock()
			components[c.name] = st
			healthy = healthy && err == nil
			return nil
		})
	}
	_ = g.Wait()

	code := http.StatusOK
	if !healthy {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, HealthResponse{
		Status:     statusWord(healthy),
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}
