package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jobpath-io/jobpath-engine/pkg/apperrors"
	"github.com/jobpath-io/jobpath-engine/pkg/database"
)

// ApplicationContactRepository maintains the many-to-many join between
// applications and contacts. Rows carry no identity beyond the two foreign
// references; the database cascades removal when either side is deleted.
type ApplicationContactRepository interface {
	Link(ctx context.Context, applicationID, contactID uuid.UUID) error
	Unlink(ctx context.Context, applicationID, contactID uuid.UUID) error
	ListContactIDs(ctx context.Context, applicationID uuid.UUID) ([]uuid.UUID, error)
	ListApplicationIDs(ctx context.Context, contactID uuid.UUID) ([]uuid.UUID, error)
}

type applicationContactRepository struct {
	db *database.DB
}

// NewApplicationContactRepository creates a new ApplicationContactRepository.
func NewApplicationContactRepository(db *database.DB) ApplicationContactRepository {
	return &applicationContactRepository{db: db}
}

var _ ApplicationContactRepository = (*applicationContactRepository)(nil)

// Link inserts the join row. A repeat link surfaces the primary key
// violation as apperrors.ErrDuplicate.
func (r *applicationContactRepository) Link(ctx context.Context, applicationID, contactID uuid.UUID) error {
	_, err := r.db.Querier(ctx).Exec(ctx,
		`INSERT INTO application_contacts (application_id, contact_id) VALUES ($1, $2)`,
		applicationID, contactID)
	if err != nil {
		return fmt.Errorf("failed to link contact: %w", database.MapError(err))
	}
	return nil
}

func (r *applicationContactRepository) Unlink(ctx context.Context, applicationID, contactID uuid.UUID) error {
	result, err := r.db.Querier(ctx).Exec(ctx,
		`DELETE FROM application_contacts WHERE application_id = $1 AND contact_id = $2`,
		applicationID, contactID)
	if err != nil {
		return fmt.Errorf("failed to unlink contact: %w", database.MapError(err))
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *applicationContactRepository) ListContactIDs(ctx context.Context, applicationID uuid.UUID) ([]uuid.UUID, error) {
	return r.listIDs(ctx,
		`SELECT contact_id FROM application_contacts WHERE application_id = $1 ORDER BY contact_id`,
		applicationID)
}

func (r *applicationContactRepository) ListApplicationIDs(ctx context.Context, contactID uuid.UUID) ([]uuid.UUID, error) {
	return r.listIDs(ctx,
		`SELECT application_id FROM application_contacts WHERE contact_id = $1 ORDER BY application_id`,
		contactID)
}

func (r *applicationContactRepository) listIDs(ctx context.Context, query string, arg any) ([]uuid.UUID, error) {
	rows, err := r.db.Querier(ctx).Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to query association rows: %w", database.MapError(err))
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan association row: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating association rows: %w", database.MapError(err))
	}

	return ids, nil
}
