package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tracklight-io/tracklight-engine/pkg/apperrors"
	"github.com/tracklight-io/tracklight-engine/pkg/authz"
	"github.com/tracklight-io/tracklight-engine/pkg/models"
	"github.com/tracklight-io/tracklight-engine/pkg/repositories"
)

// CreateStoryInput carries the fields for a new story.
type CreateStoryInput struct {
	Title       string
	Description *string
	StatusID    *uuid.UUID
	OwnedByID   *uuid.UUID
}

// UpdateStoryInput carries the requested story changes. Nil fields were
// absent from the request and leave the stored value untouched.
type UpdateStoryInput struct {
	Title       *string
	Description *string
	StatusID    *uuid.UUID
	OwnedByID   *uuid.UUID
}

// StoryService defines the interface for story operations.
type StoryService interface {
	List(ctx context.Context, projectID, actingUserID uuid.UUID) ([]*models.Story, error)
	Get(ctx context.Context, projectID, actingUserID, storyID uuid.UUID) (*models.Story, error)
	Create(ctx context.Context, projectID, actingUserID uuid.UUID, input CreateStoryInput) (*models.Story, error)
	Update(ctx context.Context, projectID, actingUserID, storyID uuid.UUID, input UpdateStoryInput) (*models.Story, error)
	Remove(ctx context.Context, projectID, actingUserID, storyID uuid.UUID) error
}

// storyService implements StoryService.
type storyService struct {
	storyRepo      repositories.StoryRepository
	statusRepo     repositories.StatusRepository
	membershipRepo repositories.MembershipRepository
	logger         *zap.Logger
}

// NewStoryService creates a new story service with dependencies.
func NewStoryService(
	storyRepo repositories.StoryRepository,
	statusRepo repositories.StatusRepository,
	membershipRepo repositories.MembershipRepository,
	logger *zap.Logger,
) StoryService {
	return &storyService{
		storyRepo:      storyRepo,
		statusRepo:     statusRepo,
		membershipRepo: membershipRepo,
		logger:         logger,
	}
}

// List returns a project's stories. Any member may read, viewers included.
func (s *storyService) List(ctx context.Context, projectID, actingUserID uuid.UUID) ([]*models.Story, error) {
	acting, err := resolveMembership(ctx, s.membershipRepo, projectID, actingUserID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanReadStories(acting); err != nil {
		return nil, err
	}

	return s.storyRepo.ListByProject(ctx, projectID)
}

// Get returns a single story.
func (s *storyService) Get(ctx context.Context, projectID, actingUserID, storyID uuid.UUID) (*models.Story, error) {
	acting, err := resolveMembership(ctx, s.membershipRepo, projectID, actingUserID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanReadStories(acting); err != nil {
		return nil, err
	}

	return s.storyRepo.Get(ctx, projectID, storyID)
}

// Create adds a story to the project.
func (s *storyService) Create(ctx context.Context, projectID, actingUserID uuid.UUID, input CreateStoryInput) (*models.Story, error) {
	acting, err := resolveMembership(ctx, s.membershipRepo, projectID, actingUserID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanCreateStory(acting); err != nil {
		return nil, err
	}

	if err := s.validateStatus(ctx, projectID, input.StatusID); err != nil {
		return nil, err
	}
	if err := s.validateOwner(ctx, projectID, input.OwnedByID); err != nil {
		return nil, err
	}

	story := &models.Story{
		ProjectID:   projectID,
		Title:       input.Title,
		Description: input.Description,
		StatusID:    input.StatusID,
		OwnedByID:   input.OwnedByID,
		CreatedBy:   actingUserID,
	}
	if err := s.storyRepo.Create(ctx, story); err != nil {
		return nil, err
	}

	return story, nil
}

// Update changes a story's fields.
func (s *storyService) Update(ctx context.Context, projectID, actingUserID, storyID uuid.UUID, input UpdateStoryInput) (*models.Story, error) {
	acting, err := resolveMembership(ctx, s.membershipRepo, projectID, actingUserID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanUpdateStory(acting); err != nil {
		return nil, err
	}

	story, err := s.storyRepo.Get(ctx, projectID, storyID)
	if err != nil {
		return nil, err
	}

	if err := s.validateStatus(ctx, projectID, input.StatusID); err != nil {
		return nil, err
	}
	if err := s.validateOwner(ctx, projectID, input.OwnedByID); err != nil {
		return nil, err
	}

	if input.Title != nil {
		story.Title = *input.Title
	}
	if input.Description != nil {
		story.Description = input.Description
	}
	if input.StatusID != nil {
		story.StatusID = input.StatusID
	}
	if input.OwnedByID != nil {
		story.OwnedByID = input.OwnedByID
	}
	story.UpdatedBy = &actingUserID

	if err := s.storyRepo.Update(ctx, story); err != nil {
		return nil, err
	}

	return story, nil
}

// Remove deletes a story.
func (s *storyService) Remove(ctx context.Context, projectID, actingUserID, storyID uuid.UUID) error {
	acting, err := resolveMembership(ctx, s.membershipRepo, projectID, actingUserID)
	if err != nil {
		return err
	}
	if err := authz.CanRemoveStory(acting); err != nil {
		return err
	}

	return s.storyRepo.Delete(ctx, projectID, storyID)
}

// validateStatus checks that a referenced status belongs to this project.
func (s *storyService) validateStatus(ctx context.Context, projectID uuid.UUID, statusID *uuid.UUID) error {
	if statusID == nil {
		return nil
	}
	if _, err := s.statusRepo.Get(ctx, projectID, *statusID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrStatusProjectMismatch
		}
		return err
	}
	return nil
}

// validateOwner checks that a referenced owner is a project member with
// developer-or-higher role at assignment time.
func (s *storyService) validateOwner(ctx context.Context, projectID uuid.UUID, ownerID *uuid.UUID) error {
	if ownerID == nil {
		return nil
	}
	owner, err := resolveMembership(ctx, s.membershipRepo, projectID, *ownerID)
	if err != nil {
		return err
	}
	if !authz.IsDeveloperOrHigher(owner) {
		return apperrors.ErrInvalidOwner
	}
	return nil
}
