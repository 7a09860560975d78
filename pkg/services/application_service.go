package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobpath-io/jobpath-engine/pkg/database"
	"github.com/jobpath-io/jobpath-engine/pkg/models"
	"github.com/jobpath-io/jobpath-engine/pkg/repositories"
)

// ApplicationService defines the interface for application CRUD operations.
// Pipeline status changes are not part of this interface: they go through
// PipelineService, which is the only legitimate write path for that field.
type ApplicationService interface {
	Create(ctx context.Context, app *models.Application) error
	Get(ctx context.Context, id uuid.UUID) (*models.Application, error)
	List(ctx context.Context) ([]*models.Application, error)
	Update(ctx context.Context, app *models.Application) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type applicationService struct {
	appRepo     repositories.ApplicationRepository
	historyRepo repositories.PipelineHistoryRepository
	linkRepo    repositories.ApplicationContactRepository
	interviews  repositories.InterviewRepository
	db          database.Transactor
	logger      *zap.Logger
}

// NewApplicationService creates a new application service with dependencies.
func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	historyRepo repositories.PipelineHistoryRepository,
	linkRepo repositories.ApplicationContactRepository,
	interviews repositories.InterviewRepository,
	db database.Transactor,
	logger *zap.Logger,
) ApplicationService {
	return &applicationService{
		appRepo:     appRepo,
		historyRepo: historyRepo,
		linkRepo:    linkRepo,
		interviews:  interviews,
		db:          db,
		logger:      logger,
	}
}

// Create validates the application, applies status defaults, and writes the
// application row together with its initial ledger record (from_status NULL)
// in one transaction. A reader must never see an application without its
// creation record.
func (s *applicationService) Create(ctx context.Context, app *models.Application) error {
	if app.PipelineStatus == "" {
		app.PipelineStatus = models.StatusWillApply
	}
	if app.ResolutionStatus == "" {
		app.ResolutionStatus = models.ResolutionOngoing
	}

	if err := app.Validate(); err != nil {
		return err
	}

	err := s.db.Transact(ctx, func(ctx context.Context) error {
		if err := s.appRepo.Create(ctx, app); err != nil {
			return err
		}
		return s.historyRepo.Append(ctx, &models.PipelineHistory{
			ApplicationID: app.ID,
			ChangedAt:     app.CreatedAt,
			FromStatus:    nil,
			ToStatus:      app.PipelineStatus,
		})
	})
	if err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}

	s.logger.Info("Created application",
		zap.String("application_id", app.ID.String()),
		zap.String("company", app.Company),
		zap.String("pipeline_status", string(app.PipelineStatus)))
	return nil
}

// Get returns the application with the identifiers of its interviews and
// linked contacts. Related entities are returned as IDs, not embedded.
func (s *applicationService) Get(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	app, err := s.appRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if app.InterviewIDs, err = s.interviews.ListIDsByApplication(ctx, id); err != nil {
		return nil, err
	}
	if app.ContactIDs, err = s.linkRepo.ListContactIDs(ctx, id); err != nil {
		return nil, err
	}

	return app, nil
}

func (s *applicationService) List(ctx context.Context) ([]*models.Application, error) {
	return s.appRepo.List(ctx)
}

// Update applies field-level edits. It never touches pipeline_status; the
// current status is carried over for validation and the repository's UPDATE
// excludes that column.
func (s *applicationService) Update(ctx context.Context, app *models.Application) error {
	current, err := s.appRepo.GetByID(ctx, app.ID)
	if err != nil {
		return err
	}
	app.PipelineStatus = current.PipelineStatus

	if app.ResolutionStatus == "" {
		app.ResolutionStatus = models.ResolutionOngoing
	}

	if err := app.Validate(); err != nil {
		return err
	}
	return s.appRepo.Update(ctx, app)
}

// Delete removes the application. The schema cascades to interviews,
// pipeline history, and association rows within the same statement, so
// linked contacts survive while every dependent record goes with the
// application.
func (s *applicationService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.Transact(ctx, func(ctx context.Context) error {
		return s.appRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Deleted application", zap.String("application_id", id.String()))
	return nil
}
