package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/jobpath-io/jobpath-engine/pkg/models"
	"github.com/jobpath-io/jobpath-engine/pkg/services"
)

// ============================================================================
// Request/Response Types
// ============================================================================

// ApplicationRequest for POST and PUT /api/v1/applications. Dates arrive as
// YYYY-MM-DD strings.
type ApplicationRequest struct {
	DateApplied      string `json:"date_applied"`
	Company          string `json:"company"`
	RecruitingAgency string `json:"recruiting_agency,omitempty"`
	Role             string `json:"role"`
	URL              string `json:"url,omitempty"`
	SalaryMin        *int64 `json:"salary_min,omitempty"`
	SalaryMax        *int64 `json:"salary_max,omitempty"`
	SalaryTarget     *int64 `json:"salary_target,omitempty"`
	JobLocation      string `json:"job_location"`
	PipelineStatus   string `json:"pipeline_status,omitempty"`
	NextFollowUpDate string `json:"next_follow_up_date,omitempty"`
	ResolutionStatus string `json:"resolution_status,omitempty"`
	ResolutionDate   string `json:"resolution_date,omitempty"`
	Notes            string `json:"notes,omitempty"`
}

func (req *ApplicationRequest) toModel() (*models.Application, error) {
	dateApplied, err := parseDate("date_applied", req.DateApplied)
	if err != nil {
		return nil, err
	}
	followUp, err := parseOptionalDate("next_follow_up_date", req.NextFollowUpDate)
	if err != nil {
		return nil, err
	}
	resolutionDate, err := parseOptionalDate("resolution_date", req.ResolutionDate)
	if err != nil {
		return nil, err
	}

	return &models.Application{
		DateApplied:      dateApplied,
		Company:          req.Company,
		RecruitingAgency: req.RecruitingAgency,
		Role:             req.Role,
		URL:              req.URL,
		SalaryMin:        req.SalaryMin,
		SalaryMax:        req.SalaryMax,
		SalaryTarget:     req.SalaryTarget,
		JobLocation:      models.JobLocation(req.JobLocation),
		PipelineStatus:   models.PipelineStatus(req.PipelineStatus),
		NextFollowUpDate: followUp,
		ResolutionStatus: models.ResolutionStatus(req.ResolutionStatus),
		ResolutionDate:   resolutionDate,
		Notes:            req.Notes,
	}, nil
}

// TransitionRequest for POST /api/v1/applications/{id}/transition.
type TransitionRequest struct {
	ToStatus string `json:"to_status"`
	Note     string `json:"note,omitempty"`
	Force    bool   `json:"force,omitempty"`
}

// ApplicationListResponse for GET /api/v1/applications.
type ApplicationListResponse struct {
	Applications []*models.Application `json:"applications"`
	Total        int                   `json:"total"`
}

// HistoryListResponse for GET /api/v1/applications/{id}/history.
type HistoryListResponse struct {
	History []*models.PipelineHistory `json:"history"`
	Total   int                       `json:"total"`
}

// ============================================================================
// Handler
// ============================================================================

// ApplicationHandler handles application HTTP requests, including pipeline
// transitions, the transition history, and contact links.
type ApplicationHandler struct {
	appService      services.ApplicationService
	pipelineService services.PipelineService
	relService      services.RelationshipService
	logger          *zap.Logger
}

// NewApplicationHandler creates a new application handler.
func NewApplicationHandler(
	appService services.ApplicationService,
	pipelineService services.PipelineService,
	relService services.RelationshipService,
	logger *zap.Logger,
) *ApplicationHandler {
	return &ApplicationHandler{
		appService:      appService,
		pipelineService: pipelineService,
		relService:      relService,
		logger:          logger,
	}
}

// RegisterRoutes registers the application handler's routes on the given mux.
func (h *ApplicationHandler) RegisterRoutes(mux *http.ServeMux) {
	base := "/api/v1/applications"

	mux.HandleFunc("GET "+base, h.List)
	mux.HandleFunc("POST "+base, h.Create)
	mux.HandleFunc("GET "+base+"/{id}", h.Get)
	mux.HandleFunc("PUT "+base+"/{id}", h.Update)
	mux.HandleFunc("DELETE "+base+"/{id}", h.Delete)
	mux.HandleFunc("POST "+base+"/{id}/transition", h.Transition)
	mux.HandleFunc("GET "+base+"/{id}/history", h.History)
	mux.HandleFunc("PUT "+base+"/{id}/contacts/{contactID}", h.LinkContact)
	mux.HandleFunc("DELETE "+base+"/{id}/contacts/{contactID}", h.UnlinkContact)
}

// List handles GET /api/v1/applications
func (h *ApplicationHandler) List(w http.ResponseWriter, r *http.Request) {
	apps, err := h.appService.List(r.Context())
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	response := ApplicationListResponse{
		Applications: apps,
		Total:        len(apps),
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/v1/applications
func (h *ApplicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	app, err := req.toModel()
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := h.appService.Create(r.Context(), app); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, app); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/v1/applications/{id}
func (h *ApplicationHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := PathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	app, err := h.appService.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, app); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/v1/applications/{id}
func (h *ApplicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := PathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req ApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	app, err := req.toModel()
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}
	app.ID = id

	if err := h.appService.Update(r.Context(), app); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, app); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/v1/applications/{id}
func (h *ApplicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := PathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.appService.Delete(r.Context(), id); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Transition handles POST /api/v1/applications/{id}/transition
func (h *ApplicationHandler) Transition(w http.ResponseWriter, r *http.Request) {
	id, ok := PathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	record, err := h.pipelineService.Transition(r.Context(), id, models.PipelineStatus(req.ToStatus), req.Note, req.Force)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, record); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// History handles GET /api/v1/applications/{id}/history
func (h *ApplicationHandler) History(w http.ResponseWriter, r *http.Request) {
	id, ok := PathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	records, err := h.pipelineService.ListHistory(r.Context(), id)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	response := HistoryListResponse{
		History: records,
		Total:   len(records),
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// LinkContact handles PUT /api/v1/applications/{id}/contacts/{contactID}
func (h *ApplicationHandler) LinkContact(w http.ResponseWriter, r *http.Request) {
	id, ok := PathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}
	contactID, ok := PathUUID(w, r, "contactID", h.logger)
	if !ok {
		return
	}

	if err := h.relService.LinkContact(r.Context(), id, contactID); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// UnlinkContact handles DELETE /api/v1/applications/{id}/contacts/{contactID}
func (h *ApplicationHandler) UnlinkContact(w http.ResponseWriter, r *http.Request) {
	id, ok := PathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}
	contactID, ok := PathUUID(w, r, "contactID", h.logger)
	if !ok {
		return
	}

	if err := h.relService.UnlinkContact(r.Context(), id, contactID); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
