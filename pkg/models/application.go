package models

import (
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/jobpath-io/jobpath-engine/pkg/apperrors"
)

// Application represents a single tracked job application.
// Stored in the applications table.
type Application struct {
	ID               uuid.UUID        `json:"id"`
	DateApplied      time.Time        `json:"date_applied"`
	Company          string           `json:"company"`
	RecruitingAgency string           `json:"recruiting_agency,omitempty"`
	Role             string           `json:"role"`
	URL              string           `json:"url,omitempty"`
	SalaryMin        *int64           `json:"salary_min,omitempty"`
	SalaryMax        *int64           `json:"salary_max,omitempty"`
	SalaryTarget     *int64           `json:"salary_target,omitempty"`
	JobLocation      JobLocation      `json:"job_location"`
	PipelineStatus   PipelineStatus   `json:"pipeline_status"`
	NextFollowUpDate *time.Time       `json:"next_follow_up_date,omitempty"`
	ResolutionStatus ResolutionStatus `json:"resolution_status"`
	ResolutionDate   *time.Time       `json:"resolution_date,omitempty"`
	Notes            string           `json:"notes,omitempty"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`

	// Related entity identifiers, populated on reads. The store contract is
	// shallow: callers get IDs, not embedded objects.
	InterviewIDs []uuid.UUID `json:"interviews"`
	ContactIDs   []uuid.UUID `json:"contacts"`
}

// Validate checks field-level and cross-field constraints. Enum fields must
// already be set (the service applies defaults before validating).
func (a *Application) Validate() error {
	if a.Company == "" {
		return apperrors.Validationf("company", "must not be empty")
	}
	if a.Role == "" {
		return apperrors.Validationf("role", "must not be empty")
	}
	if a.DateApplied.IsZero() {
		return apperrors.Validationf("date_applied", "is required")
	}
	if !a.JobLocation.Valid() {
		return apperrors.Validationf("job_location", "unknown value %q", a.JobLocation)
	}
	if !a.PipelineStatus.Valid() {
		return apperrors.Validationf("pipeline_status", "unknown value %q", a.PipelineStatus)
	}
	if !a.ResolutionStatus.Valid() {
		return apperrors.Validationf("resolution_status", "unknown value %q", a.ResolutionStatus)
	}
	if a.URL != "" {
		u, err := url.Parse(a.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return apperrors.Validationf("url", "must be an absolute URL")
		}
	}
	if a.SalaryMin != nil && *a.SalaryMin < 0 {
		return apperrors.Validationf("salary_min", "must be non-negative")
	}
	if a.SalaryMax != nil && *a.SalaryMax < 0 {
		return apperrors.Validationf("salary_max", "must be non-negative")
	}
	if a.SalaryTarget != nil && *a.SalaryTarget < 0 {
		return apperrors.Validationf("salary_target", "must be non-negative")
	}
	if a.SalaryMin != nil && a.SalaryMax != nil && *a.SalaryMax < *a.SalaryMin {
		return apperrors.Validationf("salary_max", "must be >= salary_min")
	}
	return nil
}
