package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobpath-io/jobpath-engine/pkg/models"
	"github.com/jobpath-io/jobpath-engine/pkg/repositories"
)

// ContactService defines the interface for contact operations.
type ContactService interface {
	Create(ctx context.Context, contact *models.Contact) error
	Get(ctx context.Context, id uuid.UUID) (*models.Contact, error)
	List(ctx context.Context) ([]*models.Contact, error)
	Update(ctx context.Context, contact *models.Contact) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type contactService struct {
	contactRepo repositories.ContactRepository
	linkRepo    repositories.ApplicationContactRepository
	logger      *zap.Logger
}

// NewContactService creates a new contact service with dependencies.
func NewContactService(
	contactRepo repositories.ContactRepository,
	linkRepo repositories.ApplicationContactRepository,
	logger *zap.Logger,
) ContactService {
	return &contactService{
		contactRepo: contactRepo,
		linkRepo:    linkRepo,
		logger:      logger,
	}
}

func (s *contactService) Create(ctx context.Context, contact *models.Contact) error {
	if err := contact.Validate(); err != nil {
		return err
	}

	if err := s.contactRepo.Create(ctx, contact); err != nil {
		return err
	}

	s.logger.Info("Created contact",
		zap.String("contact_id", contact.ID.String()),
		zap.String("name", contact.Name))
	return nil
}

// Get returns the contact with the identifiers of its linked applications.
func (s *contactService) Get(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	contact, err := s.contactRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if contact.ApplicationIDs, err = s.linkRepo.ListApplicationIDs(ctx, id); err != nil {
		return nil, err
	}

	return contact, nil
}

func (s *contactService) List(ctx context.Context) ([]*models.Contact, error) {
	return s.contactRepo.List(ctx)
}

func (s *contactService) Update(ctx context.Context, contact *models.Contact) error {
	if err := contact.Validate(); err != nil {
		return err
	}
	return s.contactRepo.Update(ctx, contact)
}

// Delete removes the contact. The schema cascades its association rows;
// applications the contact was linked to are untouched.
func (s *contactService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.contactRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("Deleted contact", zap.String("contact_id", id.String()))
	return nil
}
