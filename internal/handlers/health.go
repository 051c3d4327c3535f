package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
)

// HealthHandlers exposes liveness endpoints: the legacy /api/ping probe the
// storefront client polls, and /healthz for infrastructure checks.
type HealthHandlers struct {
	started time.Time
	now     func() time.Time
}

// NewHealthHandlers constructs a new HealthHandlers instance.
func NewHealthHandlers() *HealthHandlers {
	return &HealthHandlers{started: time.Now(), now: time.Now}
}

// Routes registers the /ping endpoint on an API router group.
func (h *HealthHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/ping", h.Ping)
}

// Ping always answers 200 with a fixed body.
func (h *HealthHandlers) Ping(w http.ResponseWriter, _ *http.Request) {
	writeJSONResponse(w, http.StatusOK, map[string]any{"ok": true})
}

// Healthz reports process liveness with uptime for monitoring.
func (h *HealthHandlers) Healthz(w http.ResponseWriter, _ *http.Request) {
	now := h.now()
	writeJSONResponse(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"uptime":    now.Sub(h.started).String(),
		"timestamp": now.UTC().Format(time.RFC3339),
	})
}
