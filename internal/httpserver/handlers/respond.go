package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/revisitly/revisitly/internal/api"
	"github.com/revisitly/revisitly/internal/domain"
	"github.com/revisitly/revisitly/internal/httpserver/deps"
	"github.com/revisitly/revisitly/internal/logger"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto the local surface:
// validation stays 422 and never left this process, an operation
// failure relays the service's message verbatim, and transport
// failures collapse into one generic retry-able message.
func writeError(d deps.Deps, w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{
			Kind:    "validation",
			Message: verr.Error(),
		})
		return
	}

	var operr *api.OperationError
	if errors.As(err, &operr) {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Kind:    "operation",
			Message: operr.Error(),
		})
		return
	}

	var nerr *api.NetworkError
	if errors.As(err, &nerr) {
		d.Logger.Warn("upstream transport failure", logger.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResponse{
			Kind:    "network",
			Message: "Network error. Please try again.",
		})
		return
	}

	d.Logger.Error("unexpected handler error", logger.Error(err))
	writeJSON(w, http.StatusInternalServerError, errorResponse{
		Kind:    "internal",
		Message: "internal error",
	})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Kind:    "request",
			Message: "invalid JSON body",
		})
		return false
	}
	return true
}
