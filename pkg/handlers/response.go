package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/jobpath-io/jobpath-engine/pkg/apperrors"
)

// ErrorResponse writes a JSON error response and returns any encoding error.
func ErrorResponse(w http.ResponseWriter, statusCode int, errorCode, message string) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	return json.NewEncoder(w).Encode(map[string]string{
		"error":   errorCode,
		"message": message,
	})
}

// WriteJSON writes a JSON response and returns any encoding error.
func WriteJSON(w http.ResponseWriter, statusCode int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	if statusCode != http.StatusOK {
		w.WriteHeader(statusCode)
	}
	return json.NewEncoder(w).Encode(data)
}

// WriteServiceError maps the application error taxonomy onto HTTP statuses.
// Concurrency failures get 503 so clients know the call is safe to retry;
// everything else is a caller-input problem or an internal failure.
func WriteServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var (
		status int
		code   string
	)
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		status, code = http.StatusBadRequest, "validation_error"
	case errors.Is(err, apperrors.ErrNotFound):
		status, code = http.StatusNotFound, "not_found"
	case errors.Is(err, apperrors.ErrReferential):
		status, code = http.StatusUnprocessableEntity, "referential_error"
	case errors.Is(err, apperrors.ErrInvalidTransition):
		status, code = http.StatusUnprocessableEntity, "invalid_transition"
	case errors.Is(err, apperrors.ErrDuplicate):
		status, code = http.StatusConflict, "duplicate"
	case errors.Is(err, apperrors.ErrConcurrency):
		status, code = http.StatusServiceUnavailable, "retry"
	default:
		status, code = http.StatusInternalServerError, "internal_error"
	}

	if status == http.StatusInternalServerError {
		logger.Error("Request failed", zap.Error(err))
	}

	if werr := ErrorResponse(w, status, code, err.Error()); werr != nil {
		logger.Error("Failed to write error response", zap.Error(werr))
	}
}
