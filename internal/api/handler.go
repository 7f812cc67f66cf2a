// Package api provides the HTTP handlers for the travel orchestrator API.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/yatralabs/yatra-server/internal/provider"
	"github.com/yatralabs/yatra-server/internal/route"
)

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// errorKind writes a JSON error response carrying a machine-readable kind,
// so callers can tell the failure classes apart.
func errorKind(w http.ResponseWriter, status int, message, kind string) {
	JSON(w, status, map[string]string{"error": message, "kind": kind})
}

// writeDomainError maps the service error taxonomy onto HTTP statuses.
// Distinct kinds stay distinguishable in both status and body.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, route.ErrEmptyStops):
		errorKind(w, http.StatusBadRequest, err.Error(), "empty")
	case errors.Is(err, route.ErrDuplicateStop):
		errorKind(w, http.StatusBadRequest, err.Error(), "duplicate")
	case errors.Is(err, route.ErrProviderUnavailable):
		errorKind(w, http.StatusBadGateway, err.Error(), "provider_unavailable")
	case provider.IsTimeout(err):
		errorKind(w, http.StatusGatewayTimeout, err.Error(), "timeout")
	case provider.IsRejected(err):
		errorKind(w, http.StatusBadRequest, err.Error(), "rejected")
	case provider.IsTransient(err):
		errorKind(w, http.StatusBadGateway, err.Error(), "provider_unavailable")
	default:
		errorKind(w, http.StatusInternalServerError, err.Error(), "internal")
	}
}
