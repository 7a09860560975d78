package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobpath-io/jobpath-engine/pkg/apperrors"
	"github.com/jobpath-io/jobpath-engine/pkg/models"
	"github.com/jobpath-io/jobpath-engine/pkg/services"
)

// InterviewRequest for POST and PUT /api/v1/interviews. ScheduledDate is
// RFC 3339.
type InterviewRequest struct {
	ApplicationID string `json:"application_id"`
	ScheduledDate string `json:"scheduled_date"`
	Type          string `json:"type"`
	Notes         string `json:"notes,omitempty"`
}

func (req *InterviewRequest) toModel() (*models.Interview, error) {
	applicationID, err := uuid.Parse(req.ApplicationID)
	if err != nil {
		return nil, apperrors.Validationf("application_id", "must be a UUID")
	}

	scheduled, err := time.Parse(time.RFC3339, req.ScheduledDate)
	if err != nil {
		return nil, apperrors.Validationf("scheduled_date", "must be an RFC 3339 timestamp")
	}

	return &models.Interview{
		ApplicationID: applicationID,
		ScheduledDate: scheduled,
		Type:          models.InterviewType(req.Type),
		Notes:         req.Notes,
	}, nil
}

// InterviewListResponse for GET /api/v1/applications/{id}/interviews.
type InterviewListResponse struct {
	Interviews []*models.Interview `json:"interviews"`
	Total      int                 `json:"total"`
}

// InterviewHandler handles interview HTTP requests.
type InterviewHandler struct {
	interviewService services.InterviewService
	logger           *zap.Logger
}

// NewInterviewHandler creates a new interview handler.
func NewInterviewHandler(interviewService services.InterviewService, logger *zap.Logger) *InterviewHandler {
	return &InterviewHandler{
		interviewService: interviewService,
		logger:           logger,
	}
}

// RegisterRoutes registers the interview handler's routes on the given mux.
func (h *InterviewHandler) RegisterRoutes(mux *http.ServeMux) {
	base := "/api/v1/interviews"

	mux.HandleFunc("POST "+base, h.Create)
	mux.HandleFunc("GET "+base+"/{id}", h.Get)
	mux.HandleFunc("PUT "+base+"/{id}", h.Update)
	mux.HandleFunc("DELETE "+base+"/{id}", h.Delete)
	mux.HandleFunc("GET /api/v1/applications/{id}/interviews", h.ListByApplication)
}

// Create handles POST /api/v1/interviews
func (h *InterviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req InterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	interview, err := req.toModel()
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := h.interviewService.Create(r.Context(), interview); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, interview); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/v1/interviews/{id}
func (h *InterviewHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := PathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	interview, err := h.interviewService.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, interview); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// ListByApplication handles GET /api/v1/applications/{id}/interviews
func (h *InterviewHandler) ListByApplication(w http.ResponseWriter, r *http.Request) {
	applicationID, ok := PathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	interviews, err := h.interviewService.ListByApplication(r.Context(), applicationID)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	response := InterviewListResponse{
		Interviews: interviews,
		Total:      len(interviews),
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/v1/interviews/{id}
func (h *InterviewHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := PathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req InterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	interview, err := req.toModel()
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	interview.ID = id

	if err := h.interviewService.Update(r.Context(), interview); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, interview); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/v1/interviews/{id}
func (h *InterviewHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := PathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.interviewService.Delete(r.Context(), id); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
