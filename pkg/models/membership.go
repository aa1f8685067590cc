package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectMembership relates exactly one user to exactly one project and
// carries the user's role within it.
//
// The three role flags are independent booleans, not a ranked enum; the
// effective hierarchy (admin ⊇ manager ⊇ developer ⊇ viewer) is imposed by
// the derived queries in pkg/authz, which every authorization rule consults.
// A membership with all three flags false is a viewer: read-only access to
// the project's stories.
//
// Memberships are hard-deleted on removal, unlike projects and users.
type ProjectMembership struct {
	ProjectID          uuid.UUID  `json:"project_id"`
	UserID             uuid.UUID  `json:"user_id"`
	IsProjectAdmin     bool       `json:"is_project_admin"`
	IsProjectManager   bool       `json:"is_project_manager"`
	IsProjectDeveloper bool       `json:"is_project_developer"`
	CreatedBy          uuid.UUID  `json:"created_by"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedBy          *uuid.UUID `json:"updated_by,omitempty"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}
