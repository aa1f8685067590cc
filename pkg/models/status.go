package models

import (
	"time"

	"github.com/google/uuid"
)

// MaxStatusesPerProject caps the size of a project's status taxonomy.
const MaxStatusesPerProject = 100

// Status is one entry in a project's status taxonomy. Names are unique
// within a project.
type Status struct {
	ID        uuid.UUID  `json:"id"`
	ProjectID uuid.UUID  `json:"project_id"`
	Name      string     `json:"name"`
	CreatedBy uuid.UUID  `json:"created_by"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedBy *uuid.UUID `json:"updated_by,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
