package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jobpath-io/jobpath-engine/pkg/apperrors"
	"github.com/jobpath-io/jobpath-engine/pkg/database"
	"github.com/jobpath-io/jobpath-engine/pkg/models"
)

// InterviewRepository provides data access for interviews. Interviews are
// removed by the database cascade when their application is deleted.
type InterviewRepository interface {
	Create(ctx context.Context, interview *models.Interview) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Interview, error)
	ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*models.Interview, error)
	ListIDsByApplication(ctx context.Context, applicationID uuid.UUID) ([]uuid.UUID, error)
	Update(ctx context.Context, interview *models.Interview) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type interviewRepository struct {
	db *database.DB
}

// NewInterviewRepository creates a new InterviewRepository.
func NewInterviewRepository(db *database.DB) InterviewRepository {
	return &interviewRepository{db: db}
}

var _ InterviewRepository = (*interviewRepository)(nil)

func (r *interviewRepository) Create(ctx context.Context, interview *models.Interview) error {
	now := time.Now()
	interview.ID = uuid.New()
	interview.CreatedAt = now
	interview.UpdatedAt = now

	query := `
		INSERT INTO interviews (
			id, application_id, scheduled_date, type, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.db.Querier(ctx).Exec(ctx, query,
		interview.ID,
		interview.ApplicationID,
		interview.ScheduledDate,
		string(interview.Type),
		nullString(interview.Notes),
		interview.CreatedAt,
		interview.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create interview: %w", database.MapError(err))
	}

	return nil
}

func (r *interviewRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Interview, error) {
	query := `
		SELECT id, application_id, scheduled_date, type, notes, created_at, updated_at
		FROM interviews
		WHERE id = $1`

	row := r.db.Querier(ctx).QueryRow(ctx, query, id)
	interview, err := scanInterview(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	return interview, nil
}

func (r *interviewRepository) ListByApplication(ctx context.Context, applicationID uuid.UUID) ([]*models.Interview, error) {
	query := `
		SELECT id, application_id, scheduled_date, type, notes, created_at, updated_at
		FROM interviews
		WHERE application_id = $1
		ORDER BY scheduled_date`

	rows, err := r.db.Querier(ctx).Query(ctx, query, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query interviews: %w", database.MapError(err))
	}
	defer rows.Close()

	var interviews []*models.Interview
	for rows.Next() {
		interview, err := scanInterview(rows)
		if err != nil {
			return nil, err
		}
		interviews = append(interviews, interview)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating interviews: %w", database.MapError(err))
	}

	return interviews, nil
}

func (r *interviewRepository) ListIDsByApplication(ctx context.Context, applicationID uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Querier(ctx).Query(ctx,
		`SELECT id FROM interviews WHERE application_id = $1 ORDER BY scheduled_date`, applicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to query interview ids: %w", database.MapError(err))
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan interview id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating interview ids: %w", database.MapError(err))
	}

	return ids, nil
}

func (r *interviewRepository) Update(ctx context.Context, interview *models.Interview) error {
	query := `
		UPDATE interviews
		SET scheduled_date = $2, type = $3, notes = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.Querier(ctx).QueryRow(ctx, query,
		interview.ID,
		interview.ScheduledDate,
		string(interview.Type),
		nullString(interview.Notes),
	).Scan(&interview.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to update interview: %w", database.MapError(err))
	}

	return nil
}

func (r *interviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Querier(ctx).Exec(ctx, `DELETE FROM interviews WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete interview: %w", database.MapError(err))
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func scanInterview(row pgx.Row) (*models.Interview, error) {
	var i models.Interview
	var interviewType string
	var notes *string

	err := row.Scan(
		&i.ID,
		&i.ApplicationID,
		&i.ScheduledDate,
		&interviewType,
		&notes,
		&i.CreatedAt,
		&i.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan interview: %w", err)
	}

	i.Type = models.InterviewType(interviewType)
	if notes != nil {
		i.Notes = *notes
	}

	return &i, nil
}
