package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/tracklight-io/tracklight-engine/pkg/authz"
	"github.com/tracklight-io/tracklight-engine/pkg/repositories"
)

// PermissionService reports what the caller may do within a project.
type PermissionService interface {
	Summary(ctx context.Context, projectID, userID uuid.UUID) (*authz.Summary, error)
}

// permissionService implements PermissionService.
type permissionService struct {
	membershipRepo repositories.MembershipRepository
}

// NewPermissionService creates a new permission service with dependencies.
func NewPermissionService(membershipRepo repositories.MembershipRepository) PermissionService {
	return &permissionService{membershipRepo: membershipRepo}
}

// Summary resolves the caller's membership and evaluates every permission
// rule against it. Non-members get a summary with every flag false.
func (s *permissionService) Summary(ctx context.Context, projectID, userID uuid.UUID) (*authz.Summary, error) {
	membership, err := resolveMembership(ctx, s.membershipRepo, projectID, userID)
	if err != nil {
		return nil, err
	}

	summary := authz.Summarize(membership)
	return &summary, nil
}
