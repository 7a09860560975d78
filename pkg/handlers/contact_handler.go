package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/jobpath-io/jobpath-engine/pkg/models"
	"github.com/jobpath-io/jobpath-engine/pkg/services"
)

// ContactRequest for POST and PUT /api/v1/contacts.
type ContactRequest struct {
	Name    string `json:"name"`
	Company string `json:"company"`
	Email   string `json:"email,omitempty"`
	Title   string `json:"title,omitempty"`
	URL     string `json:"url,omitempty"`
	Role    string `json:"role,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Notes   string `json:"notes,omitempty"`
}

func (req *ContactRequest) toModel() *models.Contact {
	return &models.Contact{
		Name:    req.Name,
		Company: req.Company,
		Email:   req.Email,
		Title:   req.Title,
		URL:     req.URL,
		Role:    req.Role,
		Phone:   req.Phone,
		Notes:   req.Notes,
	}
}

// ContactListResponse for GET /api/v1/contacts.
type ContactListResponse struct {
	Contacts []*models.Contact `json:"contacts"`
	Total    int               `json:"total"`
}

// ContactHandler handles contact HTTP requests.
type ContactHandler struct {
	contactService services.ContactService
	logger         *zap.Logger
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(contactService services.ContactService, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		logger:         logger,
	}
}

// RegisterRoutes registers the contact handler's routes on the given mux.
func (h *ContactHandler) RegisterRoutes(mux *http.ServeMux) {
	base := "/api/v1/contacts"

	mux.HandleFunc("GET "+base, h.List)
	mux.HandleFunc("POST "+base, h.Create)
	mux.HandleFunc("GET "+base+"/{id}", h.Get)
	mux.HandleFunc("PUT "+base+"/{id}", h.Update)
	mux.HandleFunc("DELETE "+base+"/{id}", h.Delete)
}

// List handles GET /api/v1/contacts
func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.contactService.List(r.Context())
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	response := ContactListResponse{
		Contacts: contacts,
		Total:    len(contacts),
	}

	if err := WriteJSON(w, http.StatusOK, response); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Create handles POST /api/v1/contacts
func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	contact := req.toModel()
	if err := h.contactService.Create(r.Context(), contact); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusCreated, contact); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Get handles GET /api/v1/contacts/{id}
func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := PathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	contact, err := h.contactService.Get(r.Context(), id)
	if err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, contact); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Update handles PUT /api/v1/contacts/{id}
func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := PathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	var req ContactRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	contact := req.toModel()
	contact.ID = id

	if err := h.contactService.Update(r.Context(), contact); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	if err := WriteJSON(w, http.StatusOK, contact); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// Delete handles DELETE /api/v1/contacts/{id}
func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := PathUUID(w, r, "id", h.logger)
	if !ok {
		return
	}

	if err := h.contactService.Delete(r.Context(), id); err != nil {
		WriteServiceError(w, h.logger, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
