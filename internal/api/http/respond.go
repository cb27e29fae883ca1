package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"pgnest-backend/internal/logger"
	"pgnest-backend/internal/service"
)

type errorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", "error", err)
		}
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeValidationError(w http.ResponseWriter, fields map[string]string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: "validation failed", Fields: fields})
}

// writeServiceError maps domain errors to HTTP status codes; anything
// unrecognized is logged and becomes a generic 500.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrForbidden):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrDuplicatePayment),
		errors.Is(err, service.ErrDuplicateRegistration),
		errors.Is(err, service.ErrAlreadyProcessed),
		errors.Is(err, service.ErrPendingLeavingRequest):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrInactiveMember),
		errors.Is(err, service.ErrRoomFull):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		logger.Error("Unhandled service error", "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
