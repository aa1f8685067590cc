package authz

import (
	"github.com/tracklight-io/tracklight-engine/pkg/apperrors"
	"github.com/tracklight-io/tracklight-engine/pkg/models"
)

// CanCreateMembership decides whether the acting user may add a membership
// to the project. Creating an admin membership is admin-only and is checked
// first, so a manager attempting it gets the admin-specific denial rather
// than the generic one. Any other membership (manager included) needs
// manager-or-higher.
func CanCreateMembership(acting *models.ProjectMembership, requestedIsAdmin bool) error {
	if requestedIsAdmin && !IsAdmin(acting) {
		return apperrors.NewAuthorizationError("you do not have permission to create admin memberships for this project")
	}
	if !IsManagerOrHigher(acting) {
		return apperrors.NewAuthorizationError("you do not have permission to create memberships for this project")
	}
	return nil
}

// CanUpdateMembership decides whether the acting user may change a target
// membership's role flags.
//
// targetIsAdmin is the target's current admin flag; requestedIsAdmin is the
// admin flag from the request, nil when the field was not present. Crossing
// the admin boundary in either direction is admin-only and keys off the
// direction of the transition, not the final state: a nil requested flag
// never counts as adding or removing admin privileges. Updates that leave
// admin status untouched (toggling the manager or developer flag) need only
// manager-or-higher.
func CanUpdateMembership(acting *models.ProjectMembership, targetIsAdmin bool, requestedIsAdmin *bool) error {
	adding := requestedIsAdmin != nil && *requestedIsAdmin
	removing := requestedIsAdmin != nil && !*requestedIsAdmin

	if !targetIsAdmin && adding && !IsAdmin(acting) {
		return apperrors.NewAuthorizationError("you do not have permission to add admin privileges to memberships for this project")
	}
	if targetIsAdmin && removing && !IsAdmin(acting) {
		return apperrors.NewAuthorizationError("you do not have permission to remove admin privileges from memberships for this project")
	}
	if !IsManagerOrHigher(acting) {
		return apperrors.NewAuthorizationError("you do not have permission to update memberships for this project")
	}
	return nil
}

// CanRemoveMembership decides whether the acting user may remove a target
// membership. Removing an admin membership is admin-only; anything else
// needs manager-or-higher.
func CanRemoveMembership(acting *models.ProjectMembership, targetIsAdmin bool) error {
	if targetIsAdmin && !IsAdmin(acting) {
		return apperrors.NewAuthorizationError("you do not have permission to remove admin memberships for this project")
	}
	if !IsManagerOrHigher(acting) {
		return apperrors.NewAuthorizationError("you do not have permission to remove memberships for this project")
	}
	return nil
}
