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

// ContactRepository provides data access for contacts.
type ContactRepository interface {
	Create(ctx context.Context, contact *models.Contact) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Contact, error)
	List(ctx context.Context) ([]*models.Contact, error)
	Update(ctx context.Context, contact *models.Contact) error
	Delete(ctx context.Context, id uuid.UUID) error
	Exists(ctx context.Context, id uuid.UUID) (bool, error)
}

type contactRepository struct {
	db *database.DB
}

// NewContactRepository creates a new ContactRepository.
func NewContactRepository(db *database.DB) ContactRepository {
	return &contactRepository{db: db}
}

var _ ContactRepository = (*contactRepository)(nil)

const contactColumns = `
	id, name, company, email, title, url, role, phone, notes, created_at, updated_at`

func (r *contactRepository) Create(ctx context.Context, contact *models.Contact) error {
	now := time.Now()
	contact.ID = uuid.New()
	contact.CreatedAt = now
	contact.UpdatedAt = now

	query := `
		INSERT INTO contacts (
			id, name, company, email, title, url, role, phone, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.Querier(ctx).Exec(ctx, query,
		contact.ID,
		contact.Name,
		contact.Company,
		nullString(contact.Email),
		nullString(contact.Title),
		nullString(contact.URL),
		nullString(contact.Role),
		nullString(contact.Phone),
		nullString(contact.Notes),
		contact.CreatedAt,
		contact.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", database.MapError(err))
	}

	return nil
}

func (r *contactRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Contact, error) {
	query := `SELECT` + contactColumns + ` FROM contacts WHERE id = $1`

	row := r.db.Querier(ctx).QueryRow(ctx, query, id)
	contact, err := scanContact(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	return contact, nil
}

func (r *contactRepository) List(ctx context.Context) ([]*models.Contact, error) {
	query := `SELECT` + contactColumns + ` FROM contacts ORDER BY name`

	rows, err := r.db.Querier(ctx).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts: %w", database.MapError(err))
	}
	defer rows.Close()

	var contacts []*models.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts: %w", database.MapError(err))
	}

	return contacts, nil
}

func (r *contactRepository) Update(ctx context.Context, contact *models.Contact) error {
	query := `
		UPDATE contacts
		SET name = $2, company = $3, email = $4, title = $5, url = $6,
		    role = $7, phone = $8, notes = $9, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.Querier(ctx).QueryRow(ctx, query,
		contact.ID,
		contact.Name,
		contact.Company,
		nullString(contact.Email),
		nullString(contact.Title),
		nullString(contact.URL),
		nullString(contact.Role),
		nullString(contact.Phone),
		nullString(contact.Notes),
	).Scan(&contact.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to update contact: %w", database.MapError(err))
	}

	return nil
}

func (r *contactRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.Querier(ctx).Exec(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", database.MapError(err))
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *contactRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.Querier(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM contacts WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check contact existence: %w", database.MapError(err))
	}
	return exists, nil
}

func scanContact(row pgx.Row) (*models.Contact, error) {
	var c models.Contact
	var email, title, url, role, phone, notes *string

	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Company,
		&email,
		&title,
		&url,
		&role,
		&phone,
		&notes,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan contact: %w", err)
	}

	if email != nil {
		c.Email = *email
	}
	if title != nil {
		c.Title = *title
	}
	if url != nil {
		c.URL = *url
	}
	if role != nil {
		c.Role = *role
	}
	if phone != nil {
		c.Phone = *phone
	}
	if notes != nil {
		c.Notes = *notes
	}

	return &c, nil
}
