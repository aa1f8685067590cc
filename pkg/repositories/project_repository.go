package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/tracklight-io/tracklight-engine/pkg/apperrors"
	"github.com/tracklight-io/tracklight-engine/pkg/database"
	"github.com/tracklight-io/tracklight-engine/pkg/models"
)

// ProjectRepository defines the interface for project data access.
type ProjectRepository interface {
	Create(ctx context.Context, project *models.Project) error
	Get(ctx context.Context, id uuid.UUID) (*models.Project, error)
	ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Project, error)
	Update(ctx context.Context, project *models.Project) error
	Deactivate(ctx context.Context, id, deletedBy uuid.UUID) error
}

// projectRepository implements ProjectRepository using PostgreSQL.
type projectRepository struct{}

// NewProjectRepository creates a new project repository.
func NewProjectRepository() ProjectRepository {
	return &projectRepository{}
}

const projectColumns = `id, name, description, is_active, created_by, created_at, updated_by, updated_at, deleted_by, deleted_at`

// Create inserts a new project.
func (r *projectRepository) Create(ctx context.Context, project *models.Project) error {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return fmt.Errorf("no tenant scope in context")
	}

	if project.ID == uuid.Nil {
		project.ID = uuid.New()
	}
	project.CreatedAt = time.Now()
	project.IsActive = true

	query := `
		INSERT INTO projects (id, name, description, is_active, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := scope.Conn.Exec(ctx, query,
		project.ID,
		project.Name,
		project.Description,
		project.IsActive,
		project.CreatedBy,
		project.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// Get retrieves a project by ID, active or not.
func (r *projectRepository) Get(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant scope in context")
	}

	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`

	return scanProject(scope.Conn.QueryRow(ctx, query, id))
}

// ListForUser returns the active projects the user is a member of, newest
// first.
func (r *projectRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]*models.Project, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant scope in context")
	}

	query := `
		SELECT p.id, p.name, p.description, p.is_active, p.created_by, p.created_at,
		       p.updated_by, p.updated_at, p.deleted_by, p.deleted_at
		FROM projects p
		JOIN project_memberships m ON m.project_id = p.id
		WHERE m.user_id = $1 AND p.is_active = TRUE
		ORDER BY p.created_at DESC`

	rows, err := scope.Conn.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		project, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read projects: %w", err)
	}

	return projects, nil
}

// Update updates a project's name and description and stamps the updater.
func (r *projectRepository) Update(ctx context.Context, project *models.Project) error {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return fmt.Errorf("no tenant scope in context")
	}

	now := time.Now()
	project.UpdatedAt = &now

	query := `
		UPDATE projects
		SET name = $2, description = $3, updated_by = $4, updated_at = $5
		WHERE id = $1 AND is_active = TRUE`

	tag, err := scope.Conn.Exec(ctx, query,
		project.ID,
		project.Name,
		project.Description,
		project.UpdatedBy,
		project.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// Deactivate soft-deletes a project and stamps the deletion metadata.
// Child entities are not touched; cascade behavior is a store concern.
func (r *projectRepository) Deactivate(ctx context.Context, id, deletedBy uuid.UUID) error {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return fmt.Errorf("no tenant scope in context")
	}

	query := `
		UPDATE projects
		SET is_active = FALSE, deleted_by = $2, deleted_at = $3
		WHERE id = $1 AND is_active = TRUE`

	tag, err := scope.Conn.Exec(ctx, query, id, deletedBy, time.Now())
	if err != nil {
		return fmt.Errorf("failed to deactivate project: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// scanProject scans a single project row.
func scanProject(row pgx.Row) (*models.Project, error) {
	var project models.Project
	err := row.Scan(
		&project.ID,
		&project.Name,
		&project.Description,
		&project.IsActive,
		&project.CreatedBy,
		&project.CreatedAt,
		&project.UpdatedBy,
		&project.UpdatedAt,
		&project.DeletedBy,
		&project.DeletedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return &project, nil
}
