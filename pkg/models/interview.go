package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/jobpath-io/jobpath-engine/pkg/apperrors"
)

// Interview is a scheduled interview belonging to exactly one application.
// It cannot outlive its application: deleting the application cascades here.
type Interview struct {
	ID            uuid.UUID     `json:"id"`
	ApplicationID uuid.UUID     `json:"application_id"`
	ScheduledDate time.Time     `json:"scheduled_date"`
	Type          InterviewType `json:"type"`
	Notes         string        `json:"notes,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// Validate checks field-level constraints. Existence of the owning
// application is a referential check done by the service.
func (i *Interview) Validate() error {
	if i.ApplicationID == uuid.Nil {
		return apperrors.Validationf("application_id", "is required")
	}
	if i.ScheduledDate.IsZero() {
		return apperrors.Validationf("scheduled_date", "is required")
	}
	if !i.Type.Valid() {
		return apperrors.Validationf("type", "unknown value %q", i.Type)
	}
	return nil
}
