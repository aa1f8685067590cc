package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tracklight-io/tracklight-engine/pkg/authz"
	"github.com/tracklight-io/tracklight-engine/pkg/models"
	"github.com/tracklight-io/tracklight-engine/pkg/repositories"
)

// RegisterUserInput carries the fields for a new account.
type RegisterUserInput struct {
	Username     string
	Email        string
	PasswordHash string
}

// UpdateUserInput carries the requested profile changes. Nil fields were
// absent from the request.
type UpdateUserInput struct {
	Email        *string
	PasswordHash *string
}

// UserService defines the interface for account operations.
type UserService interface {
	Register(ctx context.Context, input RegisterUserInput) (*models.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error)
	Update(ctx context.Context, actingUsername string, userID uuid.UUID, input UpdateUserInput) (*models.User, error)
	Deactivate(ctx context.Context, actingUsername string, userID uuid.UUID) error
}

// userService implements UserService.
type userService struct {
	userRepo repositories.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service with dependencies.
func NewUserService(userRepo repositories.UserRepository, logger *zap.Logger) UserService {
	return &userService{userRepo: userRepo, logger: logger}
}

// Register creates a new account. Duplicate usernames or emails surface as
// apperrors.ErrConflict from the repository.
func (s *userService) Register(ctx context.Context, input RegisterUserInput) (*models.User, error) {
	user := &models.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: input.PasswordHash,
		IsActive:     true,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.String("user_id", user.ID.String()))
	return user, nil
}

// GetProfile returns an active user's profile.
func (s *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

// Update changes a user's profile. Only the account owner may update it.
func (s *userService) Update(ctx context.Context, actingUsername string, userID uuid.UUID, input UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanActOnUser(actingUsername, user.Username, authz.ActionUpdate); err != nil {
		return nil, err
	}

	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.PasswordHash != nil {
		user.PasswordHash = *input.PasswordHash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Deactivate disables an account. Only the account owner may do so.
// Project memberships are left in place so history stays attributable.
func (s *userService) Deactivate(ctx context.Context, actingUsername string, userID uuid.UUID) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := authz.CanActOnUser(actingUsername, user.Username, authz.ActionDelete); err != nil {
		return err
	}

	if err := s.userRepo.Deactivate(ctx, userID); err != nil {
		return err
	}

	s.logger.Info("user deactivated", zap.String("user_id", userID.String()))
	return nil
}
