package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/carecamp/carecamp-api/internal/api/shared"
	"github.com/carecamp/carecamp-api/internal/store"
)

const healthCheckTimeout = 2 * time.Second

// HealthHandler reports liveness and store reachability.
type HealthHandler struct {
	pinger store.Pinger
	logger *slog.Logger
}

// NewHealthHandler creates a new HealthHandler. A nil pinger reports healthy
// without touching a store.
func NewHealthHandler(pinger store.Pinger, logger *slog.Logger) *HealthHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for HealthHandler")
	}

	return &HealthHandler{
		pinger: pinger,
		logger: logger.With(slog.String("component", "health_handler")),
	}
}

// Root handles GET /
func (h *HealthHandler) Root(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("Server is running"))
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		ctx, cancel := context.WithTimeout(r.Context(), healthCheckTimeout)
		defer cancel()

		if err := h.pinger.Ping(ctx); err != nil {
			shared.RespondWithErrorAndLog(w, r, http.StatusServiceUnavailable,
				"Service temporarily unavailable", err, shared.WithElevatedLogLevel())
			return
		}
	}

	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}
