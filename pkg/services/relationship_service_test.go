package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jobpath-io/jobpath-engine/pkg/apperrors"
	"github.com/jobpath-io/jobpath-engine/pkg/models"
)

type relationshipTestDeps struct {
	appRepo     *mockApplicationRepo
	contactRepo *mockContactRepo
	linkRepo    *mockLinkRepo
	svc         RelationshipService
}

func newRelationshipTestService() *relationshipTestDeps {
	deps := &relationshipTestDeps{
		appRepo:     newMockApplicationRepo(),
		contactRepo: newMockContactRepo(),
		linkRepo:    newMockLinkRepo(),
	}
	deps.svc = NewRelationshipService(deps.appRepo, deps.contactRepo, deps.linkRepo, &fakeTransactor{}, zap.NewNop())
	return deps
}

func (d *relationshipTestDeps) seed(t *testing.T) (uuid.UUID, uuid.UUID) {
	t.Helper()
	app := &models.Application{
		DateApplied:      time.Now(),
		Company:          "Initech",
		Role:             "Staff Engineer",
		JobLocation:      models.LocationOnsite,
		PipelineStatus:   models.StatusApplied,
		ResolutionStatus: models.ResolutionOngoing,
	}
	require.NoError(t, d.appRepo.Create(context.Background(), app))

	contact := &models.Contact{Name: "Pat Recruiter", Company: "Initech"}
	require.NoError(t, d.contactRepo.Create(context.Background(), contact))

	return app.ID, contact.ID
}

func TestLinkContact(t *testing.T) {
	deps := newRelationshipTestService()
	appID, contactID := deps.seed(t)

	require.NoError(t, deps.svc.LinkContact(context.Background(), appID, contactID))

	ids, err := deps.linkRepo.ListContactIDs(context.Background(), appID)
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{contactID}, ids)
}

func TestLinkContactDuplicate(t *testing.T) {
	deps := newRelationshipTestService()
	appID, contactID := deps.seed(t)

	require.NoError(t, deps.svc.LinkContact(context.Background(), appID, contactID))

	// Repeated links fail the same way every time.
	err := deps.svc.LinkContact(context.Background(), appID, contactID)
	require.ErrorIs(t, err, apperrors.ErrDuplicate)
	err = deps.svc.LinkContact(context.Background(), appID, contactID)
	require.ErrorIs(t, err, apperrors.ErrDuplicate)
}

func TestLinkContactMissingSides(t *testing.T) {
	deps := newRelationshipTestService()
	appID, contactID := deps.seed(t)

	err := deps.svc.LinkContact(context.Background(), uuid.New(), contactID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)

	err = deps.svc.LinkContact(context.Background(), appID, uuid.New())
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestUnlinkContact(t *testing.T) {
	deps := newRelationshipTestService()
	appID, contactID := deps.seed(t)

	require.NoError(t, deps.svc.LinkContact(context.Background(), appID, contactID))
	require.NoError(t, deps.svc.UnlinkContact(context.Background(), appID, contactID))

	err := deps.svc.UnlinkContact(context.Background(), appID, contactID)
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}
