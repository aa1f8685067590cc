// Package authz centralizes authorization decisions for tracklight-engine.
// Services call the rule functions here instead of performing ad-hoc
// permission checks.
//
// Every rule takes the acting user's membership for the target project,
// resolved by the caller beforehand (nil means non-member), and returns nil
// on success or an *apperrors.AuthorizationError whose message identifies
// the exact rule branch that denied the action. Rules are pure: no I/O, no
// shared state, safe to call concurrently.
package authz

import "github.com/tracklight-io/tracklight-engine/pkg/models"

// IsAdmin reports whether the membership carries the project admin flag.
func IsAdmin(m *models.ProjectMembership) bool {
	return m != nil && m.IsProjectAdmin
}

// IsManagerOrHigher reports whether the membership is manager or admin.
// Admin implies manager for every rule in this package, regardless of the
// stored manager flag.
func IsManagerOrHigher(m *models.ProjectMembership) bool {
	return m != nil && (m.IsProjectAdmin || m.IsProjectManager)
}

// IsDeveloperOrHigher reports whether the membership is developer, manager
// or admin.
func IsDeveloperOrHigher(m *models.ProjectMembership) bool {
	return IsManagerOrHigher(m) || (m != nil && m.IsProjectDeveloper)
}

// IsMember reports whether a membership exists at all. A membership with no
// elevated flags is a viewer and still counts.
func IsMember(m *models.ProjectMembership) bool {
	return m != nil
}
