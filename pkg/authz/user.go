package authz

import (
	"strings"

	"github.com/tracklight-io/tracklight-engine/pkg/apperrors"
)

// CanActOnUser decides whether the acting identity may perform action on a
// user account. Updates and deletes are self-only, matched by
// case-insensitive username equality. There is no rule for create (account
// registration is unauthenticated) or read (any authenticated caller may
// read an active user's public profile).
func CanActOnUser(actingUsername, targetUsername string, action Action) error {
	if action != ActionUpdate && action != ActionDelete {
		return nil
	}
	if !strings.EqualFold(actingUsername, targetUsername) {
		return apperrors.NewAuthorizationError("you do not have permission to perform this action")
	}
	return nil
}
