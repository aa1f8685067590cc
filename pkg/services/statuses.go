package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tracklight-io/tracklight-engine/pkg/apperrors"
	"github.com/tracklight-io/tracklight-engine/pkg/authz"
	"github.com/tracklight-io/tracklight-engine/pkg/models"
	"github.com/tracklight-io/tracklight-engine/pkg/repositories"
)

// StatusService defines the interface for status taxonomy operations.
type StatusService interface {
	List(ctx context.Context, projectID uuid.UUID) ([]*models.Status, error)
	Create(ctx context.Context, projectID, actingUserID uuid.UUID, name string) (*models.Status, error)
	Update(ctx context.Context, projectID, actingUserID, statusID uuid.UUID, name string) (*models.Status, error)
	Remove(ctx context.Context, projectID, actingUserID, statusID uuid.UUID) error
}

// statusService implements StatusService.
type statusService struct {
	statusRepo     repositories.StatusRepository
	membershipRepo repositories.MembershipRepository
	logger         *zap.Logger
}

// NewStatusService creates a new status service with dependencies.
func NewStatusService(statusRepo repositories.StatusRepository, membershipRepo repositories.MembershipRepository, logger *zap.Logger) StatusService {
	return &statusService{
		statusRepo:     statusRepo,
		membershipRepo: membershipRepo,
		logger:         logger,
	}
}

// List returns a project's statuses in creation order.
func (s *statusService) List(ctx context.Context, projectID uuid.UUID) ([]*models.Status, error) {
	return s.statusRepo.ListByProject(ctx, projectID)
}

// Create adds a status to the project's taxonomy.
// Returns ErrStatusLimitReached when the project is at its cap and
// ErrStatusNameTaken when the name is already used.
func (s *statusService) Create(ctx context.Context, projectID, actingUserID uuid.UUID, name string) (*models.Status, error) {
	acting, err := resolveMembership(ctx, s.membershipRepo, projectID, actingUserID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanCreateStatus(acting); err != nil {
		return nil, err
	}

	count, err := s.statusRepo.CountByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if count >= models.MaxStatusesPerProject {
		return nil, apperrors.ErrStatusLimitReached
	}

	status := &models.Status{
		ProjectID: projectID,
		Name:      name,
		CreatedBy: actingUserID,
	}
	if err := s.statusRepo.Create(ctx, status); err != nil {
		return nil, err
	}

	return status, nil
}

// Update renames a status.
func (s *statusService) Update(ctx context.Context, projectID, actingUserID, statusID uuid.UUID, name string) (*models.Status, error) {
	acting, err := resolveMembership(ctx, s.membershipRepo, projectID, actingUserID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanUpdateStatus(acting); err != nil {
		return nil, err
	}

	status, err := s.statusRepo.Get(ctx, projectID, statusID)
	if err != nil {
		return nil, err
	}

	status.Name = name
	status.UpdatedBy = &actingUserID

	if err := s.statusRepo.Update(ctx, status); err != nil {
		return nil, err
	}

	return status, nil
}

// Remove deletes a status from the taxonomy.
func (s *statusService) Remove(ctx context.Context, projectID, actingUserID, statusID uuid.UUID) error {
	acting, err := resolveMembership(ctx, s.membershipRepo, projectID, actingUserID)
	if err != nil {
		return err
	}
	if err := authz.CanRemoveStatus(acting); err != nil {
		return err
	}

	return s.statusRepo.Delete(ctx, projectID, statusID)
}
