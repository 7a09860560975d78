package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobpath-io/jobpath-engine/pkg/apperrors"
	"github.com/jobpath-io/jobpath-engine/pkg/database"
	"github.com/jobpath-io/jobpath-engine/pkg/repositories"
)

// RelationshipService maintains the application-contact links.
//
// Linking an already-linked pair fails with apperrors.ErrDuplicate rather
// than no-opping; repeated calls behave identically. Unlinking a pair that
// is not linked fails with apperrors.ErrNotFound.
type RelationshipService interface {
	LinkContact(ctx context.Context, applicationID, contactID uuid.UUID) error
	UnlinkContact(ctx context.Context, applicationID, contactID uuid.UUID) error
}

type relationshipService struct {
	appRepo     repositories.ApplicationRepository
	contactRepo repositories.ContactRepository
	linkRepo    repositories.ApplicationContactRepository
	db          database.Transactor
	logger      *zap.Logger
}

// NewRelationshipService creates a new relationship service with dependencies.
func NewRelationshipService(
	appRepo repositories.ApplicationRepository,
	contactRepo repositories.ContactRepository,
	linkRepo repositories.ApplicationContactRepository,
	db database.Transactor,
	logger *zap.Logger,
) RelationshipService {
	return &relationshipService{
		appRepo:     appRepo,
		contactRepo: contactRepo,
		linkRepo:    linkRepo,
		db:          db,
		logger:      logger,
	}
}

func (s *relationshipService) LinkContact(ctx context.Context, applicationID, contactID uuid.UUID) error {
	err := s.db.Transact(ctx, func(ctx context.Context) error {
		exists, err := s.appRepo.Exists(ctx, applicationID)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.ErrNotFound
		}

		exists, err = s.contactRepo.Exists(ctx, contactID)
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.ErrNotFound
		}

		return s.linkRepo.Link(ctx, applicationID, contactID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Linked contact",
		zap.String("application_id", applicationID.String()),
		zap.String("contact_id", contactID.String()))
	return nil
}

func (s *relationshipService) UnlinkContact(ctx context.Context, applicationID, contactID uuid.UUID) error {
	if err := s.linkRepo.Unlink(ctx, applicationID, contactID); err != nil {
		return err
	}

	s.logger.Info("Unlinked contact",
		zap.String("application_id", applicationID.String()),
		zap.String("contact_id", contactID.String()))
	return nil
}
