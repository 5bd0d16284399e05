// Package http exposes the gateway's REST surface: loan listing and
// statistics, loan edit sessions, reference data and the event stream.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"biblioteca-gateway/internal/client"
	"biblioteca-gateway/internal/domain"
	"biblioteca-gateway/internal/logger"
	"biblioteca-gateway/internal/session"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError maps an error to the right status: validation failures are the
// caller's to fix (422), form-state refusals are conflicts (409), upstream
// rejections are reported as bad gateway.
func writeError(w http.ResponseWriter, err error) {
	var vErr *domain.ValidationError
	if errors.As(err, &vErr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: vErr.Message, Field: vErr.Field})
		return
	}
	var sErr *session.StateError
	if errors.As(err, &sErr) {
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
		return
	}
	var uErr *client.UpstreamError
	if errors.As(err, &uErr) {
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
}
