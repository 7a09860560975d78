package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jobpath-io/jobpath-engine/pkg/apperrors"
	"github.com/jobpath-io/jobpath-engine/pkg/database"
	"github.com/jobpath-io/jobpath-engine/pkg/models"
	"github.com/jobpath-io/jobpath-engine/pkg/repositories"
)

// PipelineService owns pipeline status changes and the transition ledger.
type PipelineService interface {
	// Transition moves the application to the target status and appends the
	// matching ledger record in one transaction. Without force, the target
	// must be a strictly later stage in the canonical order (resolved is
	// reachable from anywhere); force permits backward moves for manual
	// corrections, which are still ledgered.
	Transition(ctx context.Context, id uuid.UUID, to models.PipelineStatus, note string, force bool) (*models.PipelineHistory, error)

	// ListHistory returns the application's ledger oldest-to-newest.
	ListHistory(ctx context.Context, id uuid.UUID) ([]*models.PipelineHistory, error)
}

type pipelineService struct {
	appRepo     repositories.ApplicationRepository
	historyRepo repositories.PipelineHistoryRepository
	db          database.Transactor
	logger      *zap.Logger
}

// NewPipelineService creates a new pipeline service with dependencies.
func NewPipelineService(
	appRepo repositories.ApplicationRepository,
	historyRepo repositories.PipelineHistoryRepository,
	db database.Transactor,
	logger *zap.Logger,
) PipelineService {
	return &pipelineService{
		appRepo:     appRepo,
		historyRepo: historyRepo,
		db:          db,
		logger:      logger,
	}
}

func (s *pipelineService) Transition(ctx context.Context, id uuid.UUID, to models.PipelineStatus, note string, force bool) (*models.PipelineHistory, error) {
	if !to.Valid() {
		return nil, apperrors.Validationf("to_status", "unknown value %q", to)
	}

	var record *models.PipelineHistory
	err := s.db.Transact(ctx, func(ctx context.Context) error {
		// Row lock: a concurrent transition on the same application blocks
		// here until this transaction commits, then evaluates legality
		// against the committed status.
		from, err := s.appRepo.GetStatusForUpdate(ctx, id)
		if err != nil {
			return err
		}

		if !force && !from.CanAdvanceTo(to) {
			return &apperrors.TransitionError{From: string(from), To: string(to)}
		}

		now := time.Now()
		if err := s.appRepo.SetPipelineStatus(ctx, id, to, now); err != nil {
			return err
		}

		record = &models.PipelineHistory{
			ApplicationID: id,
			ChangedAt:     now,
			FromStatus:    &from,
			ToStatus:      to,
			Note:          note,
		}
		return s.historyRepo.Append(ctx, record)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Transitioned application",
		zap.String("application_id", id.String()),
		zap.String("from_status", string(*record.FromStatus)),
		zap.String("to_status", string(to)),
		zap.Bool("force", force))
	return record, nil
}

func (s *pipelineService) ListHistory(ctx context.Context, id uuid.UUID) ([]*models.PipelineHistory, error) {
	exists, err := s.appRepo.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperrors.ErrNotFound
	}
	return s.historyRepo.ListByApplication(ctx, id)
}
