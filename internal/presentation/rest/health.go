// Package rest serves the offer engine's operational HTTP endpoints.
package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Check reports whether a dependency is usable.
type Check func(ctx context.Context) error

// HealthHandler serves liveness, readiness and metrics over HTTP.
type HealthHandler struct {
	service string
	checks  map[string]Check
	metrics http.Handler
	logger  *slog.Logger
	timeout time.Duration
}

// NewHealthHandler creates a health check HTTP handler. checks are run on
// every readiness check; metrics may be nil.
func NewHealthHandler(service string, checks map[string]Check, metrics http.Handler, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		service: service,
		checks:  checks,
		metrics: metrics,
		logger:  logger,
		timeout: 2 * time.Second,
	}
}

// RegisterRoutes attaches the operational routes to mux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.liveness)
	mux.HandleFunc("GET /readyz", h.readiness)
	if h.metrics != nil {
		mux.Handle("GET /metrics", h.metrics)
	}
}

func (h *HealthHandler) liveness(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": h.service,
	})
}

func (h *HealthHandler) readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	code := http.StatusOK
	results := make(map[string]string, len(h.checks))
	for name, check := range h.checks {
		if err := check(ctx); err != nil {
			h.logger.WarnContext(ctx, "readiness check failed", "check", name, "error", err)
			results[name] = err.Error()
			code = http.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	state := "ready"
	if code != http.StatusOK {
		state = "not_ready"
	}
	writeJSON(w, code, map[string]any{
		"status":  state,
		"service": h.service,
		"checks":  results,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v) //nolint:errcheck
}
