package authz

import (
	"github.com/tracklight-io/tracklight-engine/pkg/apperrors"
	"github.com/tracklight-io/tracklight-engine/pkg/models"
)

// CanUpdateProject permits managers and admins to update project details.
func CanUpdateProject(acting *models.ProjectMembership) error {
	if !IsManagerOrHigher(acting) {
		return apperrors.NewAuthorizationError("you do not have permission to update this project")
	}
	return nil
}

// CanRemoveProject permits only admins to remove (deactivate) a project.
func CanRemoveProject(acting *models.ProjectMembership) error {
	if !IsAdmin(acting) {
		return apperrors.NewAuthorizationError("you do not have permission to remove this project")
	}
	return nil
}
