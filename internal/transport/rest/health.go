package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/heartmarshall/concept-clarity/internal/domain"
)

const statsTimeout = 3 * time.Second

// glossaryProbe reports whether the glossary can be loaded.
type glossaryProbe interface {
	Stats(ctx context.Context) (domain.GlossaryStats, error)
}

// HealthHandler serves health check endpoints.
type HealthHandler struct {
	glossary glossaryProbe
	version  string
	timeout  time.Duration
	loads    singleflight.Group
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(glossary glossaryProbe, version string) *HealthHandler {
	return &HealthHandler{glossary: glossary, version: version, timeout: statsTimeout}
}

// HealthResponse is the JSON response for /health, /live and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Terms   *int   `json:"terms,omitempty"`
	Latency string `json:"latency,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe. 200 if the glossary loads, 503 if not.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	if _, err := h.loadStats(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "down",
			Timestamp: time.Now(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health reports the process as up regardless of glossary state. The
// glossary component carries the term count and load latency.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	stats, err := h.loadStats(r.Context())
	latency := time.Since(start)

	comp := CompStatus{Status: "down"}
	if err == nil {
		terms := stats.TotalTerms
		comp = CompStatus{Status: "ok", Terms: &terms, Latency: latency.String()}
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:     "ok",
		Version:    h.version,
		Components: map[string]CompStatus{"glossary": comp},
		Timestamp:  time.Now(),
	})
}

// loadStats loads glossary stats but gives up after h.timeout. File reads cannot
// be interrupted, so concurrent checks share one in-flight load and a hung
// read holds at most one goroutine.
func (h *HealthHandler) loadStats(ctx context.Context) (domain.GlossaryStats, error) {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	ch := h.loads.DoChan("glossary", func() (any, error) {
		return h.glossary.Stats(context.WithoutCancel(ctx))
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return domain.GlossaryStats{}, res.Err
		}
		return res.Val.(domain.GlossaryStats), nil
	case <-ctx.Done():
		return domain.GlossaryStats{}, ctx.Err()
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
