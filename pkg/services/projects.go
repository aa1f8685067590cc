package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tracklight-io/tracklight-engine/pkg/apperrors"
	"github.com/tracklight-io/tracklight-engine/pkg/authz"
	"github.com/tracklight-io/tracklight-engine/pkg/database"
	"github.com/tracklight-io/tracklight-engine/pkg/models"
	"github.com/tracklight-io/tracklight-engine/pkg/repositories"
)

// UpdateProjectInput carries the requested project changes. Nil fields were
// absent from the request and leave the stored value untouched.
type UpdateProjectInput struct {
	Name        *string
	Description *string
}

// ProjectService defines the interface for project operations.
type ProjectService interface {
	Create(ctx context.Context, name string, description *string, creatorID uuid.UUID) (*models.Project, error)
	List(ctx context.Context, userID uuid.UUID) ([]*models.Project, error)
	Get(ctx context.Context, projectID uuid.UUID) (*models.Project, error)
	Update(ctx context.Context, projectID, actingUserID uuid.UUID, input UpdateProjectInput) (*models.Project, error)
	Remove(ctx context.Context, projectID, actingUserID uuid.UUID) error
}

// projectService implements ProjectService.
type projectService struct {
	db             *database.DB
	projectRepo    repositories.ProjectRepository
	membershipRepo repositories.MembershipRepository
	statusRepo     repositories.StatusRepository
	statusTaxonomy []string
	logger         *zap.Logger
}

// NewProjectService creates a new project service. statusTaxonomy is the
// ordered list of status names seeded into every new project; it comes from
// configuration, not a package-level default.
func NewProjectService(
	db *database.DB,
	projectRepo repositories.ProjectRepository,
	membershipRepo repositories.MembershipRepository,
	statusRepo repositories.StatusRepository,
	statusTaxonomy []string,
	logger *zap.Logger,
) ProjectService {
	return &projectService{
		db:             db,
		projectRepo:    projectRepo,
		membershipRepo: membershipRepo,
		statusRepo:     statusRepo,
		statusTaxonomy: statusTaxonomy,
		logger:         logger,
	}
}

// Create provisions a project: the project row, an implicit admin
// membership for the creator, and the default status taxonomy, all in one
// transaction.
func (s *projectService) Create(ctx context.Context, name string, description *string, creatorID uuid.UUID) (*models.Project, error) {
	project := &models.Project{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedBy:   creatorID,
	}

	// The new project's own tenant scope, so the seeded child rows pass RLS.
	scope, err := s.db.WithTenant(ctx, project.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire tenant connection: %w", err)
	}
	defer scope.Close()
	tctx := database.SetTenantScope(ctx, scope)

	tx, err := scope.Conn.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback(ctx)
		}
	}()

	if err = s.projectRepo.Create(tctx, project); err != nil {
		return nil, err
	}

	// The creator becomes the project's first admin.
	creatorMembership := &models.ProjectMembership{
		ProjectID:      project.ID,
		UserID:         creatorID,
		IsProjectAdmin: true,
		CreatedBy:      creatorID,
	}
	if err = s.membershipRepo.Create(tctx, creatorMembership); err != nil {
		return nil, err
	}

	for _, statusName := range s.statusTaxonomy {
		status := &models.Status{
			ProjectID: project.ID,
			Name:      statusName,
			CreatedBy: creatorID,
		}
		if err = s.statusRepo.Create(tctx, status); err != nil {
			return nil, err
		}
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Info("Project created",
		zap.String("project_id", project.ID.String()),
		zap.String("created_by", creatorID.String()))

	return project, nil
}

// List returns the active projects the user belongs to.
func (s *projectService) List(ctx context.Context, userID uuid.UUID) ([]*models.Project, error) {
	return s.projectRepo.ListForUser(ctx, userID)
}

// Get returns an active project. Deactivated projects read as not found.
func (s *projectService) Get(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	project, err := s.projectRepo.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.IsActive {
		return nil, apperrors.ErrNotFound
	}
	return project, nil
}

// Update changes a project's name and/or description.
func (s *projectService) Update(ctx context.Context, projectID, actingUserID uuid.UUID, input UpdateProjectInput) (*models.Project, error) {
	acting, err := resolveMembership(ctx, s.membershipRepo, projectID, actingUserID)
	if err != nil {
		return nil, err
	}
	if err := authz.CanUpdateProject(acting); err != nil {
		return nil, err
	}

	project, err := s.Get(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		project.Name = *input.Name
	}
	if input.Description != nil {
		project.Description = input.Description
	}
	project.UpdatedBy = &actingUserID

	if err := s.projectRepo.Update(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

// Remove soft-deletes a project.
func (s *projectService) Remove(ctx context.Context, projectID, actingUserID uuid.UUID) error {
	acting, err := resolveMembership(ctx, s.membershipRepo, projectID, actingUserID)
	if err != nil {
		return err
	}
	if err := authz.CanRemoveProject(acting); err != nil {
		return err
	}

	return s.projectRepo.Deactivate(ctx, projectID, actingUserID)
}
