package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobpath-io/jobpath-engine/pkg/apperrors"
	"github.com/jobpath-io/jobpath-engine/pkg/models"
	"github.com/jobpath-io/jobpath-engine/pkg/repositories"
)

// InterviewService defines the interface for interview operations.
type InterviewService interface {
	Create(ctx context.Context, interview *models.Interview) error
	Get(ctx context.Context, id uuid.UUID) (*models.Interview, error)
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*models.Interview, error)
	Update(ctx context.Context, interview *models.Interview) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type interviewService struct {
	interviewRepo repositories.InterviewRepository
	appRepo       repositories.ApplicationRepository
	logger        *zap.Logger
}

// NewInterviewService creates a new interview service with dependencies.
func NewInterviewService(
	interviewRepo repositories.InterviewRepository,
	appRepo repositories.ApplicationRepository,
	logger *zap.Logger,
) InterviewService {
	return &interviewService{
		interviewRepo: interviewRepo,
		appRepo:       appRepo,
		logger:        logger,
	}
}

// Create validates the interview and verifies the owning application exists.
// The foreign key is the backstop; checking first turns a racy insert into a
// clean referential error.
func (s *interviewService) Create(ctx context.Context, interview *models.Interview) error {
	if err := interview.Validate(); err != nil {
		return err
	}

	exists, err := s.appRepo.Exists(ctx, interview.ApplicationID)
	if err != nil {
		return err
	}
	if !exists {
		return apperrors.ErrReferential
	}

	if err := s.interviewRepo.Create(ctx, interview); err != nil {
		return err
	}

	s.logger.Info("Created interview",
		zap.String("interview_id", interview.ID.String()),
		zap.String("application_id", interview.ApplicationID.String()),
		zap.String("type", string(interview.Type)))
	return nil
}

func (s *interviewService) Get(ctx context.Context, id uuid.UUID) (*models.Interview, error) {
	return s.interviewRepo.GetByID(ctx, id)
}

func (s *interviewService) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*models.Interview, error) {
	exists, err := s.appRepo.Exists(ctx, applicationID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrNotFound
	}
	return s.interviewRepo.ListByApplication(ctx, applicationID)
}

func (s *interviewService) Update(ctx context.Context, interview *models.Interview) error {
	if err := interview.Validate(); err != nil {
		return err
	}
	return s.interviewRepo.Update(ctx, interview)
}

func (s *interviewService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.interviewRepo.Delete(ctx, id)
}
