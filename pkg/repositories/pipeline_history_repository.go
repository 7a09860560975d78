package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jobpath-io/jobpath-engine/pkg/database"
	"github.com/jobpath-io/jobpath-engine/pkg/models"
)

// PipelineHistoryRepository is the append-only ledger of pipeline
// transitions. There is deliberately no update or delete method: individual
// records are immutable, and the only destruction path is the database
// cascade when the owning application is deleted.
type PipelineHistoryRepository interface {
	Append(ctx context.Context, record *models.PipelineHistory) error
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*models.PipelineHistory, error)
}

type pipelineHistoryRepository struct {
	db *database.DB
}

// NewPipelineHistoryRepository creates a new PipelineHistoryRepository.
func NewPipelineHistoryRepository(db *database.DB) PipelineHistoryRepository {
	return &pipelineHistoryRepository{db: db}
}

var _ PipelineHistoryRepository = (*pipelineHistoryRepository)(nil)

func (r *pipelineHistoryRepository) Append(ctx context.Context, record *models.PipelineHistory) error {
	record.ID = uuid.New()
	if record.ChangedAt.IsZero() {
		record.ChangedAt = time.Now()
	}

	var fromStatus *string
	if record.FromStatus != nil {
		s := string(*record.FromStatus)
		fromStatus = &s
	}

	query := `
		INSERT INTO pipeline_history (
			id, application_id, changed_at, from_status, to_status, note
		) VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := r.db.Querier(ctx).Exec(ctx, query,
		record.ID,
		record.ApplicationID,
		record.ChangedAt,
		fromStatus,
		string(record.ToStatus),
		nullString(record.Note),
	)
	if err != nil {
		return fmt.Errorf("failed to append pipeline history: %w", database.MapError(err))
	}

	return nil
}

// ListByApplication returns the ledger for one application oldest-to-newest.
// Repeated reads return identical results absent new transitions.
func (r *pipelineHistoryRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*models.PipelineHistory, error) {
	query := `
		SELECT id, application_id, changed_at, from_status, to_status, note
		FROM pipeline_history
		WHERE application_id = $1
		ORDER BY changed_at, id`

	rows, err := r.db.Querier(ctx).Query(ctx, query, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pipeline history: %w", database.MapError(err))
	}
	defer rows.Close()

	var records []*models.PipelineHistory
	for rows.Next() {
		var rec models.PipelineHistory
		var fromStatus *string
		var toStatus string
		var note *string

		if err := rows.Scan(
			&rec.ID,
			&rec.ApplicationID,
			&rec.ChangedAt,
			&fromStatus,
			&toStatus,
			&note,
		); err != nil {
			return nil, fmt.Errorf("failed to scan pipeline history: %w", err)
		}

		if fromStatus != nil {
			s := models.PipelineStatus(*fromStatus)
			rec.FromStatus = &s
		}
		rec.ToStatus = models.PipelineStatus(toStatus)
		if note != nil {
			rec.Note = *note
		}

		records = append(records, &rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pipeline history: %w", database.MapError(err))
	}

	return records, nil
}
