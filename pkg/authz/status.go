package authz

import (
	"github.com/tracklight-io/tracklight-engine/pkg/apperrors"
	"github.com/tracklight-io/tracklight-engine/pkg/models"
)

// Status taxonomy management is a flat gate: managers and admins only,
// with no per-entity ownership nuance.

// CanCreateStatus permits managers and admins to add a status.
func CanCreateStatus(acting *models.ProjectMembership) error {
	if !IsManagerOrHigher(acting) {
		return apperrors.NewAuthorizationError("you do not have permission to create statuses for this project")
	}
	return nil
}

// CanUpdateStatus permits managers and admins to rename a status.
func CanUpdateStatus(acting *models.ProjectMembership) error {
	if !IsManagerOrHigher(acting) {
		return apperrors.NewAuthorizationError("you do not have permission to update statuses for this project")
	}
	return nil
}

// CanRemoveStatus permits managers and admins to remove a status.
func CanRemoveStatus(acting *models.ProjectMembership) error {
	if !IsManagerOrHigher(acting) {
		return apperrors.NewAuthorizationError("you do not have permission to remove statuses for this project")
	}
	return nil
}
