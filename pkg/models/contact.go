package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jobpath-io/jobpath-engine/pkg/apperrors"
)

// Contact is a person tied to one or more applications (recruiter, hiring
// manager, referrer). Contacts are created independently of applications and
// survive the deletion of any application they are linked to.
type Contact struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Company   string    `json:"company"`
	Email     string    `json:"email,omitempty"`
	Title     string    `json:"title,omitempty"`
	URL       string    `json:"url,omitempty"`
	Role      string    `json:"role,omitempty"` // e.g. "recruiter", "hiring_manager"
	Phone     string    `json:"phone,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Identifiers of linked applications, populated on reads.
	ApplicationIDs []uuid.UUID `json:"applications"`
}

// Validate checks field-level constraints.
func (c *Contact) Validate() error {
	if c.Name == "" {
		return apperrors.Validationf("name", "must not be empty")
	}
	if c.Company == "" {
		return apperrors.Validationf("company", "must not be empty")
	}
	return nil
}
