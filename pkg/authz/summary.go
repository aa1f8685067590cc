package authz

import "github.com/tracklight-io/tracklight-engine/pkg/models"

// Summary is the full matrix of capability flags for one membership
// context, as presented to clients deciding which controls to show.
type Summary struct {
	CanUpdateProject         bool `json:"can_update_project"`
	CanRemoveProject         bool `json:"can_remove_project"`
	CanCreateMembership      bool `json:"can_create_membership"`
	CanCreateAdminMembership bool `json:"can_create_admin_membership"`
	CanUpdateMembership      bool `json:"can_update_membership"`
	CanUpdateAdminMembership bool `json:"can_update_admin_membership"`
	CanRemoveMembership      bool `json:"can_remove_membership"`
	CanRemoveAdminMembership bool `json:"can_remove_admin_membership"`
	CanCreateStatus          bool `json:"can_create_status"`
	CanUpdateStatus          bool `json:"can_update_status"`
	CanRemoveStatus          bool `json:"can_remove_status"`
	CanCreateStory           bool `json:"can_create_story"`
	CanUpdateStory           bool `json:"can_update_story"`
	CanRemoveStory           bool `json:"can_remove_story"`
	CanReadStories           bool `json:"can_read_stories"`
}

// Summarize probes every rule with representative inputs and converts each
// outcome to a flag. This is the only place authorization failures are
// swallowed rather than propagated; each probe is isolated so one denial
// cannot mask another rule's outcome.
//
// The membership probes cover both tiers: the admin-tier update probe asks
// to strip an admin's privileges (current admin, requested false) so that
// the flag reflects the power to cross the admin boundary, while the plain
// update probe leaves the admin flag out of the request entirely.
func Summarize(acting *models.ProjectMembership) Summary {
	removeAdmin := false

	return Summary{
		CanUpdateProject:         CanUpdateProject(acting) == nil,
		CanRemoveProject:         CanRemoveProject(acting) == nil,
		CanCreateMembership:      CanCreateMembership(acting, false) == nil,
		CanCreateAdminMembership: CanCreateMembership(acting, true) == nil,
		CanUpdateMembership:      CanUpdateMembership(acting, false, nil) == nil,
		CanUpdateAdminMembership: CanUpdateMembership(acting, true, &removeAdmin) == nil,
		CanRemoveMembership:      CanRemoveMembership(acting, false) == nil,
		CanRemoveAdminMembership: CanRemoveMembership(acting, true) == nil,
		CanCreateStatus:          CanCreateStatus(acting) == nil,
		CanUpdateStatus:          CanUpdateStatus(acting) == nil,
		CanRemoveStatus:          CanRemoveStatus(acting) == nil,
		CanCreateStory:           CanCreateStory(acting) == nil,
		CanUpdateStory:           CanUpdateStory(acting) == nil,
		CanRemoveStory:           CanRemoveStory(acting) == nil,
		CanReadStories:           CanReadStories(acting) == nil,
	}
}
