package models

import (
	"time"

	"github.com/google/uuid"
)

// Story is a work item belonging to exactly one project. The status
// reference, when set, must point at a status of the same project; the
// owner, when set, must be a project member with developer-or-higher role
// at the time of assignment.
type Story struct {
	ID          uuid.UUID  `json:"id"`
	ProjectID   uuid.UUID  `json:"project_id"`
	Title       string     `json:"title"`
	Description *string    `json:"description,omitempty"`
	StatusID    *uuid.UUID `json:"status_id,omitempty"`
	OwnedByID   *uuid.UUID `json:"owned_by_id,omitempty"`
	CreatedBy   uuid.UUID  `json:"created_by"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedBy   *uuid.UUID `json:"updated_by,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
