package authz

import (
	"github.com/tracklight-io/tracklight-engine/pkg/apperrors"
	"github.com/tracklight-io/tracklight-engine/pkg/models"
)

// Stories are the one resource readable by viewers but writable only from
// developer up: reading needs any membership at all, writing needs
// developer-or-higher.

// CanReadStories permits any project member, viewers included, to read
// stories. Non-members are denied.
func CanReadStories(acting *models.ProjectMembership) error {
	if !IsMember(acting) {
		return apperrors.NewAuthorizationError("you do not have permission to read stories for this project")
	}
	return nil
}

// CanCreateStory permits developers, managers and admins to create stories.
func CanCreateStory(acting *models.ProjectMembership) error {
	if !IsDeveloperOrHigher(acting) {
		return apperrors.NewAuthorizationError("you do not have permission to create stories for this project")
	}
	return nil
}

// CanUpdateStory permits developers, managers and admins to update stories.
func CanUpdateStory(acting *models.ProjectMembership) error {
	if !IsDeveloperOrHigher(acting) {
		return apperrors.NewAuthorizationError("you do not have permission to update stories for this project")
	}
	return nil
}

// CanRemoveStory permits developers, managers and admins to remove stories.
func CanRemoveStory(acting *models.ProjectMembership) error {
	if !IsDeveloperOrHigher(acting) {
		return apperrors.NewAuthorizationError("you do not have permission to remove stories for this project")
	}
	return nil
}
