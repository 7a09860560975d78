package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jobpath-io/jobpath-engine/pkg/apperrors"
	"github.com/jobpath-io/jobpath-engine/pkg/models"
)

// ============================================================================
// Mock Services
// ============================================================================

type mockApplicationService struct {
	apps      map[uuid.UUID]*models.Application
	createErr error
}

func newMockApplicationService() *mockApplicationService {
	return &mockApplicationService{apps: make(map[uuid.UUID]*models.Application)}
}

func (m *mockApplicationService) Create(_ context.Context, app *models.Application) error {
	if m.createErr != nil {
		return m.createErr
	}
	if app.PipelineStatus == "" {
		app.PipelineStatus = models.StatusWillApply
	}
	if app.ResolutionStatus == "" {
		app.ResolutionStatus = models.ResolutionOngoing
	}
	if err := app.Validate(); err != nil {
		return err
	}
	app.ID = uuid.New()
	m.apps[app.ID] = app
	return nil
}

func (m *mockApplicationService) Get(_ context.Context, id uuid.UUID) (*models.Application, error) {
	app, ok := m.apps[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return app, nil
}

func (m *mockApplicationService) List(_ context.Context) ([]*models.Application, error) {
	apps := make([]*models.Application, 0, len(m.apps))
	for _, app := range m.apps {
		apps = append(apps, app)
	}
	return apps, nil
}

func (m *mockApplicationService) Update(_ context.Context, app *models.Application) error {
	if _, ok := m.apps[app.ID]; !ok {
		return apperrors.ErrNotFound
	}
	m.apps[app.ID] = app
	return nil
}

func (m *mockApplicationService) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.apps[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.apps, id)
	return nil
}

type mockPipelineService struct {
	transitionErr error
	record        *models.PipelineHistory
	history       []*models.PipelineHistory
	historyErr    error
}

func (m *mockPipelineService) Transition(_ context.Context, id uuid.UUID, to models.PipelineStatus, note string, force bool) (*models.PipelineHistory, error) {
	if m.transitionErr != nil {
		return nil, m.transitionErr
	}
	return m.record, nil
}

func (m *mockPipelineService) ListHistory(_ context.Context, id uuid.UUID) ([]*models.PipelineHistory, error) {
	if m.historyErr != nil {
		return nil, m.historyErr
	}
	return m.history, nil
}

type mockRelationshipService struct {
	linkErr   error
	unlinkErr error
}

func (m *mockRelationshipService) LinkContact(_ context.Context, _, _ uuid.UUID) error {
	return m.linkErr
}

func (m *mockRelationshipService) UnlinkContact(_ context.Context, _, _ uuid.UUID) error {
	return m.unlinkErr
}

// ============================================================================
// Helpers
// ============================================================================

type handlerTestDeps struct {
	appSvc      *mockApplicationService
	pipelineSvc *mockPipelineService
	relSvc      *mockRelationshipService
	mux         *http.ServeMux
}

func newHandlerTestDeps() *handlerTestDeps {
	deps := &handlerTestDeps{
		appSvc:      newMockApplicationService(),
		pipelineSvc: &mockPipelineService{},
		relSvc:      &mockRelationshipService{},
	}
	handler := NewApplicationHandler(deps.appSvc, deps.pipelineSvc, deps.relSvc, zap.NewNop())
	deps.mux = http.NewServeMux()
	handler.RegisterRoutes(deps.mux)
	return deps
}

func (d *handlerTestDeps) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	d.mux.ServeHTTP(rec, req)
	return rec
}

func validApplicationRequest() ApplicationRequest {
	return ApplicationRequest{
		DateApplied: "2025-03-10",
		Company:     "Initech",
		Role:        "Staff Engineer",
		JobLocation: "remote",
	}
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

// ============================================================================
// Tests
// ============================================================================

func TestCreateApplicationHandler(t *testing.T) {
	deps := newHandlerTestDeps()

	rec := deps.do(t, http.MethodPost, "/api/v1/applications", validApplicationRequest())
	require.Equal(t, http.StatusCreated, rec.Code)

	var app models.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &app))
	assert.NotEqual(t, uuid.Nil, app.ID)
	assert.Equal(t, models.StatusWillApply, app.PipelineStatus)
}

func TestCreateApplicationHandlerInvalidBody(t *testing.T) {
	deps := newHandlerTestDeps()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/applications", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	deps.mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid_request", errorCode(t, rec))
}

func TestCreateApplicationHandlerBadDate(t *testing.T) {
	deps := newHandlerTestDeps()

	body := validApplicationRequest()
	body.DateApplied = "03/10/2025"
	rec := deps.do(t, http.MethodPost, "/api/v1/applications", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", errorCode(t, rec))
}

func TestCreateApplicationHandlerValidationError(t *testing.T) {
	deps := newHandlerTestDeps()

	body := validApplicationRequest()
	body.Company = ""
	rec := deps.do(t, http.MethodPost, "/api/v1/applications", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "validation_error", errorCode(t, rec))
}

func TestGetApplicationHandlerNotFound(t *testing.T) {
	deps := newHandlerTestDeps()

	rec := deps.do(t, http.MethodGet, "/api/v1/applications/"+uuid.NewString(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", errorCode(t, rec))
}

func TestGetApplicationHandlerBadID(t *testing.T) {
	deps := newHandlerTestDeps()

	rec := deps.do(t, http.MethodGet, "/api/v1/applications/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListApplicationsHandler(t *testing.T) {
	deps := newHandlerTestDeps()

	app := &models.Application{
		DateApplied: time.Now(),
		Company:     "Initech",
		Role:        "Staff Engineer",
		JobLocation: models.LocationRemote,
	}
	require.NoError(t, deps.appSvc.Create(context.Background(), app))

	rec := deps.do(t, http.MethodGet, "/api/v1/applications", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp ApplicationListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Total)
}

func TestDeleteApplicationHandler(t *testing.T) {
	deps := newHandlerTestDeps()

	app := &models.Application{
		DateApplied: time.Now(),
		Company:     "Initech",
		Role:        "Staff Engineer",
		JobLocation: models.LocationRemote,
	}
	require.NoError(t, deps.appSvc.Create(context.Background(), app))

	rec := deps.do(t, http.MethodDelete, "/api/v1/applications/"+app.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = deps.do(t, http.MethodDelete, "/api/v1/applications/"+app.ID.String(), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTransitionHandler(t *testing.T) {
	deps := newHandlerTestDeps()

	appID := uuid.New()
	from := models.StatusApplied
	deps.pipelineSvc.record = &models.PipelineHistory{
		ID:            uuid.New(),
		ApplicationID: appID,
		ChangedAt:     time.Now(),
		FromStatus:    &from,
		ToStatus:      models.StatusStage1,
	}

	rec := deps.do(t, http.MethodPost, "/api/v1/applications/"+appID.String()+"/transition",
		TransitionRequest{ToStatus: "stage_1"})
	require.Equal(t, http.StatusOK, rec.Code)

	var record models.PipelineHistory
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &record))
	assert.Equal(t, models.StatusStage1, record.ToStatus)
}

func TestTransitionHandlerErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "invalid transition",
			err:        &apperrors.TransitionError{From: string(models.StatusStage2), To: string(models.StatusApplied)},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "invalid_transition",
		},
		{
			name:       "unknown status",
			err:        apperrors.Validationf("to_status", "unknown pipeline status"),
			wantStatus: http.StatusBadRequest,
			wantCode:   "validation_error",
		},
		{
			name:       "unknown application",
			err:        fmt.Errorf("application: %w", apperrors.ErrNotFound),
			wantStatus: http.StatusNotFound,
			wantCode:   "not_found",
		},
		{
			name:       "lock contention",
			err:        fmt.Errorf("transition: %w", apperrors.ErrConcurrency),
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "retry",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deps := newHandlerTestDeps()
			deps.pipelineSvc.transitionErr = tt.err

			rec := deps.do(t, http.MethodPost, "/api/v1/applications/"+uuid.NewString()+"/transition",
				TransitionRequest{ToStatus: "stage_1"})

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, errorCode(t, rec))
		})
	}
}

func TestHistoryHandler(t *testing.T) {
	deps := newHandlerTestDeps()

	appID := uuid.New()
	deps.pipelineSvc.history = []*models.PipelineHistory{
		{ID: uuid.New(), ApplicationID: appID, ChangedAt: time.Now(), ToStatus: models.StatusWillApply},
	}

	rec := deps.do(t, http.MethodGet, "/api/v1/applications/"+appID.String()+"/history", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp HistoryListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, 1, resp.Total)
	assert.Nil(t, resp.History[0].FromStatus)
}

func TestLinkContactHandler(t *testing.T) {
	deps := newHandlerTestDeps()

	path := "/api/v1/applications/" + uuid.NewString() + "/contacts/" + uuid.NewString()

	rec := deps.do(t, http.MethodPut, path, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	deps.relSvc.linkErr = fmt.Errorf("link: %w", apperrors.ErrDuplicate)
	rec = deps.do(t, http.MethodPut, path, nil)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "duplicate", errorCode(t, rec))
}

func TestUnlinkContactHandler(t *testing.T) {
	deps := newHandlerTestDeps()

	path := "/api/v1/applications/" + uuid.NewString() + "/contacts/" + uuid.NewString()

	rec := deps.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	deps.relSvc.unlinkErr = fmt.Errorf("unlink: %w", apperrors.ErrNotFound)
	rec = deps.do(t, http.MethodDelete, path, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
