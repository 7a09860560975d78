package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobpath-io/jobpath-engine/pkg/apperrors"
)

// PathUUID extracts and parses a UUID path parameter. On failure it writes a
// 400 response and returns false.
func PathUUID(w http.ResponseWriter, r *http.Request, name string, logger *zap.Logger) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		if werr := ErrorResponse(w, http.StatusBadRequest, "invalid_id", "Invalid "+name+" path parameter"); werr != nil {
			logger.Error("Failed to write error response", zap.Error(werr))
		}
		return uuid.Nil, false
	}
	return id, true
}

const dateLayout = "2006-01-02"

// parseDate parses a required YYYY-MM-DD field.
func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, apperrors.Validationf(field, "is required")
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, apperrors.Validationf(field, "must be a YYYY-MM-DD date")
	}
	return t, nil
}

// parseOptionalDate parses an optional YYYY-MM-DD field; empty yields nil.
func parseOptionalDate(field, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return nil, apperrors.Validationf(field, "must be a YYYY-MM-DD date")
	}
	return &t, nil
}
