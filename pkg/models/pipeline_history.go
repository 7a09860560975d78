package models

import (
	"time"

	"github.com/google/uuid"
)

// PipelineHistory is one immutable record of a pipeline status transition.
// Records are only ever appended; the sole destruction path is the cascade
// when the owning application is deleted.
//
// FromStatus is nil only on the record written when the application is
// created. For every later record, FromStatus must equal the previous
// record's ToStatus.
type PipelineHistory struct {
	ID            uuid.UUID       `json:"id"`
	ApplicationID uuid.UUID       `json:"application_id"`
	ChangedAt     time.Time       `json:"changed_at"`
	FromStatus    *PipelineStatus `json:"from_status"`
	ToStatus      PipelineStatus  `json:"to_status"`
	Note          string          `json:"note,omitempty"`
}
