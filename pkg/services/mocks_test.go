package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jobpath-io/jobpath-engine/pkg/apperrors"
	"github.com/jobpath-io/jobpath-engine/pkg/models"
)

// ============================================================================
// Mock Implementations for Service Tests
// ============================================================================

// fakeTransactor runs the function directly; transactional semantics are
// covered by the integration tests against a real database.
type fakeTransactor struct {
	beginErr error
}

func (f *fakeTransactor) Transact(ctx context.Context, fn func(ctx context.Context) error) error {
	if f.beginErr != nil {
		return f.beginErr
	}
	return fn(ctx)
}

type mockApplicationRepo struct {
	apps      map[uuid.UUID]*models.Application
	createErr error
	updateErr error
	deleteErr error
}

func newMockApplicationRepo() *mockApplicationRepo {
	return &mockApplicationRepo{apps: make(map[uuid.UUID]*models.Application)}
}

func (m *mockApplicationRepo) Create(ctx context.Context, app *models.Application) error {
	if m.createErr != nil {
		return m.createErr
	}
	now := time.Now()
	app.ID = uuid.New()
	app.CreatedAt = now
	app.UpdatedAt = now
	m.apps[app.ID] = app
	return nil
}

func (m *mockApplicationRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	app, ok := m.apps[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *app
	return &copied, nil
}

func (m *mockApplicationRepo) List(ctx context.Context) ([]*models.Application, error) {
	var apps []*models.Application
	for _, app := range m.apps {
		apps = append(apps, app)
	}
	return apps, nil
}

func (m *mockApplicationRepo) Update(ctx context.Context, app *models.Application) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	existing, ok := m.apps[app.ID]
	if !ok {
		return apperrors.ErrNotFound
	}
	app.PipelineStatus = existing.PipelineStatus
	app.UpdatedAt = time.Now()
	m.apps[app.ID] = app
	return nil
}

func (m *mockApplicationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.apps[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.apps, id)
	return nil
}

func (m *mockApplicationRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.apps[id]
	return ok, nil
}

func (m *mockApplicationRepo) GetStatusForUpdate(ctx context.Context, id uuid.UUID) (models.PipelineStatus, error) {
	app, ok := m.apps[id]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	return app.PipelineStatus, nil
}

func (m *mockApplicationRepo) SetPipelineStatus(ctx context.Context, id uuid.UUID, status models.PipelineStatus, updatedAt time.Time) error {
	app, ok := m.apps[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	app.PipelineStatus = status
	app.UpdatedAt = updatedAt
	return nil
}

type mockHistoryRepo struct {
	records   []*models.PipelineHistory
	appendErr error
}

func (m *mockHistoryRepo) Append(ctx context.Context, record *models.PipelineHistory) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	record.ID = uuid.New()
	if record.ChangedAt.IsZero() {
		record.ChangedAt = time.Now()
	}
	m.records = append(m.records, record)
	return nil
}

func (m *mockHistoryRepo) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*models.PipelineHistory, error) {
	var records []*models.PipelineHistory
	for _, rec := range m.records {
		if rec.ApplicationID == applicationID {
			records = append(records, rec)
		}
	}
	return records, nil
}

type linkKey struct {
	applicationID uuid.UUID
	contactID     uuid.UUID
}

type mockLinkRepo struct {
	links map[linkKey]bool
}

func newMockLinkRepo() *mockLinkRepo {
	return &mockLinkRepo{links: make(map[linkKey]bool)}
}

func (m *mockLinkRepo) Link(ctx context.Context, applicationID, contactID uuid.UUID) error {
	key := linkKey{applicationID, contactID}
	if m.links[key] {
		return apperrors.ErrDuplicate
	}
	m.links[key] = true
	return nil
}

func (m *mockLinkRepo) Unlink(ctx context.Context, applicationID, contactID uuid.UUID) error {
	key := linkKey{applicationID, contactID}
	if !m.links[key] {
		return apperrors.ErrNotFound
	}
	delete(m.links, key)
	return nil
}

func (m *mockLinkRepo) ListContactIDs(ctx context.Context, applicationID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for key := range m.links {
		if key.applicationID == applicationID {
			ids = append(ids, key.contactID)
		}
	}
	return ids, nil
}

func (m *mockLinkRepo) ListApplicationIDs(ctx context.Context, contactID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for key := range m.links {
		if key.contactID == contactID {
			ids = append(ids, key.applicationID)
		}
	}
	return ids, nil
}

type mockContactRepo struct {
	contacts map[uuid.UUID]*models.Contact
}

func newMockContactRepo() *mockContactRepo {
	return &mockContactRepo{contacts: make(map[uuid.UUID]*models.Contact)}
}

func (m *mockContactRepo) Create(ctx context.Context, contact *models.Contact) error {
	contact.ID = uuid.New()
	m.contacts[contact.ID] = contact
	return nil
}

func (m *mockContactRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	contact, ok := m.contacts[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return contact, nil
}

func (m *mockContactRepo) List(ctx context.Context) ([]*models.Contact, error) {
	var contacts []*models.Contact
	for _, c := range m.contacts {
		contacts = append(contacts, c)
	}
	return contacts, nil
}

func (m *mockContactRepo) Update(ctx context.Context, contact *models.Contact) error {
	if _, ok := m.contacts[contact.ID]; !ok {
		return apperrors.ErrNotFound
	}
	m.contacts[contact.ID] = contact
	return nil
}

func (m *mockContactRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.contacts[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.contacts, id)
	return nil
}

func (m *mockContactRepo) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	_, ok := m.contacts[id]
	return ok, nil
}

type mockInterviewRepo struct {
	interviews map[uuid.UUID]*models.Interview
}

func newMockInterviewRepo() *mockInterviewRepo {
	return &mockInterviewRepo{interviews: make(map[uuid.UUID]*models.Interview)}
}

func (m *mockInterviewRepo) Create(ctx context.Context, interview *models.Interview) error {
	interview.ID = uuid.New()
	m.interviews[interview.ID] = interview
	return nil
}

func (m *mockInterviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Interview, error) {
	interview, ok := m.interviews[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return interview, nil
}

func (m *mockInterviewRepo) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*models.Interview, error) {
	var interviews []*models.Interview
	for _, i := range m.interviews {
		if i.ApplicationID == applicationID {
			interviews = append(interviews, i)
		}
	}
	return interviews, nil
}

func (m *mockInterviewRepo) ListIDsByApplication(ctx context.Context, applicationID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	for _, i := range m.interviews {
		if i.ApplicationID == applicationID {
			ids = append(ids, i.ID)
		}
	}
	return ids, nil
}

func (m *mockInterviewRepo) Update(ctx context.Context, interview *models.Interview) error {
	if _, ok := m.interviews[interview.ID]; !ok {
		return apperrors.ErrNotFound
	}
	m.interviews[interview.ID] = interview
	return nil
}

func (m *mockInterviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.interviews[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(m.interviews, id)
	return nil
}
