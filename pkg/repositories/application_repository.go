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

// ApplicationRepository provides data access for tracked applications.
//
// Update deliberately excludes pipeline_status: the only write path for that
// column is SetPipelineStatus, invoked by the pipeline service inside the
// transaction that also appends the history record.
type ApplicationRepository interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error)
	List(ctx context.Context) ([]*models.Application, error)
	Update(ctx context.Context, app *models.Application) error
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
	GetStatusForUpdate(ctx context.Context, id uuid.UUID) (models.PipelineStatus, error)
	SetPipelineStatus(ctx context.Context, id uuid.UUID, status models.PipelineStatus, updatedAt time.Time) error
}

type applicationRepository struct {
	db *database.DB
}

// NewApplicationRepository creates a new ApplicationRepository.
func NewApplicationRepository(db *database.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

var _ ApplicationRepository = (*applicationRepository)(nil)

const applicationColumns = `
	id, date_applied, company, recruiting_agency, role, url,
	salary_min, salary_max, salary_target, job_location, pipeline_status,
	next_follow_up_date, resolution_status, resolution_date, notes,
	created_at, updated_at`

func (r *applicationRepository) Create(ctx context.Context, app *models.Application) error {
	now := time.Now()
	app.ID = uuid.New()
	app.CreatedAt = now
	app.UpdatedAt = now

	query := `
		INSERT INTO applications (
			id, date_applied, company, recruiting_agency, role, url,
			salary_min, salary_max, salary_target, job_location, pipeline_status,
			next_follow_up_date, resolution_status, resolution_date, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)`

	_, err := r.db.Querier(ctx).Exec(ctx, query,
		app.ID,
		app.DateApplied,
		app.Company,
		nullString(app.RecruitingAgency),
		app.Role,
		nullString(app.URL),
		app.SalaryMin,
		app.SalaryMax,
		app.SalaryTarget,
		string(app.JobLocation),
		string(app.PipelineStatus),
		app.NextFollowUpDate,
		string(app.ResolutionStatus),
		app.ResolutionDate,
		nullString(app.Notes),
		app.CreatedAt,
		app.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create application: %w", database.MapError(err))
	}

	return nil
}

func (r *applicationRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Application, error) {
	query := `SELECT` + applicationColumns + ` FROM applications WHERE id = $1`

	row := r.db.Querier(ctx).QueryRow(ctx, query, id)
	app, err := scanApplication(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	return app, nil
}

func (r *applicationRepository) List(ctx context.Context) ([]*models.Application, error) {
	query := `SELECT` + applicationColumns + ` FROM applications ORDER BY created_at DESC`

	rows, err := r.db.Querier(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query applications: %w", database.MapError(err))
	}
	defer rows.Close()

	var apps []*models.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %w", database.MapError(err))
	}

	return apps, nil
}

func (r *applicationRepository) Update(ctx context.Context, app *models.Application) error {
	query := `
		UPDATE applications
		SET date_applied = $2, company = $3, recruiting_agency = $4, role = $5,
		    url = $6, salary_min = $7, salary_max = $8, salary_target = $9,
		    job_location = $10, next_follow_up_date = $11, resolution_status = $12,
		    resolution_date = $13, notes = $14, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.Querier(ctx).QueryRow(ctx, query,
		app.ID,
		app.DateApplied,
		app.Company,
		nullString(app.RecruitingAgency),
		app.Role,
		nullString(app.URL),
		app.SalaryMin,
		app.SalaryMax,
		app.SalaryTarget,
		string(app.JobLocation),
		app.NextFollowUpDate,
		string(app.ResolutionStatus),
		app.ResolutionDate,
		nullString(app.Notes),
	).Scan(&app.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to update application: %w", database.MapError(err))
	}

	return nil
}

func (r *applicationRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Querier(ctx).Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", database.MapError(err))
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *applicationRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.Querier(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM applications WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check application existence: %w", database.MapError(err))
	}
	return exists, nil
}

// GetStatusForUpdate reads the current pipeline status under a row lock.
// Concurrent transitions on the same application serialize here, so the
// second transaction evaluates legality against the first one's committed
// status.
func (r *applicationRepository) GetStatusForUpdate(ctx context.Context, id uuid.UUID) (models.PipelineStatus, error) {
	var status string
	err := r.db.Querier(ctx).QueryRow(ctx,
		`SELECT pipeline_status FROM applications WHERE id = $1 FOR UPDATE`, id).Scan(&status)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("failed to lock application row: %w", database.MapError(err))
	}
	return models.PipelineStatus(status), nil
}

func (r *applicationRepository) SetPipelineStatus(ctx context.Context, id uuid.UUID, status models.PipelineStatus, updatedAt time.Time) error {
	result, err := r.db.Querier(ctx).Exec(ctx,
		`UPDATE applications SET pipeline_status = $2, updated_at = $3 WHERE id = $1`,
		id, string(status), updatedAt)
	if err != nil {
		return fmt.Errorf("failed to set pipeline status: %w", database.MapError(err))
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func scanApplication(row pgx.Row) (*models.Application, error) {
	var a models.Application
	var recruitingAgency, url, notes *string
	var jobLocation, pipelineStatus, resolutionStatus string

	err := row.Scan(
		&a.ID,
		&a.DateApplied,
		&a.Company,
		&recruitingAgency,
		&a.Role,
		&url,
		&a.SalaryMin,
		&a.SalaryMax,
		&a.SalaryTarget,
		&jobLocation,
		&pipelineStatus,
		&a.NextFollowUpDate,
		&resolutionStatus,
		&a.ResolutionDate,
		&notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan application: %w", err)
	}

	if recruitingAgency != nil {
		a.RecruitingAgency = *recruitingAgency
	}
	if url != nil {
		a.URL = *url
	}
	if notes != nil {
		a.Notes = *notes
	}
	a.JobLocation = models.JobLocation(jobLocation)
	a.PipelineStatus = models.PipelineStatus(pipelineStatus)
	a.ResolutionStatus = models.ResolutionStatus(resolutionStatus)

	return &a, nil
}

// nullString returns nil if the string is empty, otherwise returns the string pointer.
func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
