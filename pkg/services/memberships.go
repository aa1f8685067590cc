// Package services contains the application services for tracklight-engine.
// Services resolve the acting user's membership, consult pkg/authz, and
// orchestrate repositories. Authorization failures are always propagated;
// only the permission summary converts them to flags.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/tracklight-io/tracklight-engine/pkg/apperrors"
	"github.com/tracklight-io/tracklight-engine/pkg/authz"
	"github.com/tracklight-io/tracklight-engine/pkg/database"
	"github.com/tracklight-io/tracklight-engine/pkg/models"
	"github.com/tracklight-io/tracklight-engine/pkg/repositories"
)

// CreateMembershipInput carries the fields for a new membership.
type CreateMembershipInput struct {
	UserID             uuid.UUID
	IsProjectAdmin     bool
	IsProjectManager   bool
	IsProjectDeveloper bool
}

// UpdateMembershipInput carries the requested role changes. Nil fields were
// absent from the request and leave the stored flag untouched; in
// particular a nil IsProjectAdmin is neither adding nor removing admin
// privileges.
type UpdateMembershipInput struct {
	IsProjectAdmin     *bool
	IsProjectManager   *bool
	IsProjectDeveloper *bool
}

// MembershipService defines the interface for membership operations.
type MembershipService interface {
	List(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectMembership, error)
	Add(ctx context.Context, projectID, actingUserID uuid.UUID, input CreateMembershipInput) (*models.ProjectMembership, error)
	Update(ctx context.Context, projectID, actingUserID, targetUserID uuid.UUID, input UpdateMembershipInput) (*models.ProjectMembership, error)
	Remove(ctx context.Context, projectID, actingUserID, targetUserID uuid.UUID) error
}

// membershipService implements MembershipService.
type membershipService struct {
	membershipRepo repositories.MembershipRepository
	userRepo       repositories.UserRepository
	logger         *zap.Logger
}

// NewMembershipService creates a new membership service with dependencies.
func NewMembershipService(membershipRepo repositories.MembershipRepository, userRepo repositories.UserRepository, logger *zap.Logger) MembershipService {
	return &membershipService{
		membershipRepo: membershipRepo,
		userRepo:       userRepo,
		logger:         logger,
	}
}

// resolveMembership looks up the acting user's membership for the project.
// Absence of a membership is not an error here: rules receive nil and
// produce the correct denial themselves.
func resolveMembership(ctx context.Context, repo repositories.MembershipRepository, projectID, userID uuid.UUID) (*models.ProjectMembership, error) {
	m, err := repo.Get(ctx, projectID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve membership: %w", err)
	}
	return m, nil
}

// List returns all memberships of the project.
func (s *membershipService) List(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectMembership, error) {
	return s.membershipRepo.ListByProject(ctx, projectID)
}

// Add creates a membership for a user in the project.
func (s *membershipService) Add(ctx context.Context, projectID, actingUserID uuid.UUID, input CreateMembershipInput) (*models.ProjectMembership, error) {
	acting, err := resolveMembership(ctx, s.membershipRepo, projectID, actingUserID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanCreateMembership(acting, input.IsProjectAdmin); err != nil {
		return nil, err
	}

	// Target user must exist and be active.
	target, err := s.userRepo.GetByID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}
	if !target.IsActive {
		return nil, apperrors.ErrNotFound
	}

	m := &models.ProjectMembership{
		ProjectID:          projectID,
		UserID:             input.UserID,
		IsProjectAdmin:     input.IsProjectAdmin,
		IsProjectManager:   input.IsProjectManager,
		IsProjectDeveloper: input.IsProjectDeveloper,
		CreatedBy:          actingUserID,
	}
	if err := s.membershipRepo.Create(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

// Update changes a target membership's role flags.
// Returns ErrLastAdmin if the change would demote the project's only admin.
func (s *membershipService) Update(ctx context.Context, projectID, actingUserID, targetUserID uuid.UUID, input UpdateMembershipInput) (*models.ProjectMembership, error) {
	acting, err := resolveMembership(ctx, s.membershipRepo, projectID, actingUserID)
	if err != nil {
		return nil, err
	}

	target, err := s.membershipRepo.Get(ctx, projectID, targetUserID)
	if err != nil {
		return nil, err
	}

	if err := authz.CanUpdateMembership(acting, target.IsProjectAdmin, input.IsProjectAdmin); err != nil {
		return nil, err
	}

	// Requests carry a tenant-scoped connection; run the check-and-update
	// in a transaction on it so concurrent demotions cannot leave the
	// project without an admin.
	var tx pgx.Tx
	if scope, ok := database.GetTenantScope(ctx); ok {
		tx, err = scope.Conn.Begin(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer func() {
			if err != nil {
				_ = tx.Rollback(ctx)
			}
		}()
	}

	demoting := target.IsProjectAdmin && input.IsProjectAdmin != nil && !*input.IsProjectAdmin
	if demoting {
		adminCount, countErr := s.membershipRepo.CountAdmins(ctx, projectID)
		if countErr != nil {
			err = countErr
			return nil, err
		}
		if adminCount <= 1 {
			err = apperrors.ErrLastAdmin
			return nil, err
		}
	}

	if input.IsProjectAdmin != nil {
		target.IsProjectAdmin = *input.IsProjectAdmin
	}
	if input.IsProjectManager != nil {
		target.IsProjectManager = *input.IsProjectManager
	}
	if input.IsProjectDeveloper != nil {
		target.IsProjectDeveloper = *input.IsProjectDeveloper
	}
	target.UpdatedBy = &actingUserID

	if err = s.membershipRepo.Update(ctx, target); err != nil {
		return nil, err
	}

	if tx != nil {
		if err = tx.Commit(ctx); err != nil {
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
	}

	return target, nil
}

// Remove deletes a target membership.
// Returns ErrLastAdmin if the target is the project's only admin.
func (s *membershipService) Remove(ctx context.Context, projectID, actingUserID, targetUserID uuid.UUID) error {
	acting, err := resolveMembership(ctx, s.membershipRepo, projectID, actingUserID)
	if err != nil {
		return err
	}

	target, err := s.membershipRepo.Get(ctx, projectID, targetUserID)
	if err != nil {
		return err
	}

	if err := authz.CanRemoveMembership(acting, target.IsProjectAdmin); err != nil {
		return err
	}

	// Same transactional guard as Update.
	var tx pgx.Tx
	if scope, ok := database.GetTenantScope(ctx); ok {
		tx, err = scope.Conn.Begin(ctx)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}
		defer func() {
			if err != nil {
				_ = tx.Rollback(ctx)
			}
		}()
	}

	if target.IsProjectAdmin {
		adminCount, countErr := s.membershipRepo.CountAdmins(ctx, projectID)
		if countErr != nil {
			err = countErr
			return err
		}
		if adminCount <= 1 {
			err = apperrors.ErrLastAdmin
			return err
		}
	}

	if err = s.membershipRepo.Delete(ctx, projectID, targetUserID); err != nil {
		return err
	}

	if tx != nil {
		if err = tx.Commit(ctx); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
	}

	return nil
}
