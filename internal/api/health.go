package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yatralabs/yatra-server/internal/store"
)

// HealthHandler serves readiness checks.
type HealthHandler struct {
	repo store.Repository
}

// NewHealthHandler creates a health handler.
func NewHealthHandler(repo store.Repository) *HealthHandler {
	return &HealthHandler{repo: repo}
}

// RegisterHealth registers the readiness endpoint. Liveness is served by the
// router's heartbeat middleware.
func (h *HealthHandler) RegisterHealth(r chi.Router) {
	r.Get("/health/ready", h.handleReady)
}

func (h *HealthHandler) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := h.repo.Ping(r.Context()); err != nil {
		JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
		return
	}
	JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
