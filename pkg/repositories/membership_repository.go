package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/tracklight-io/tracklight-engine/pkg/apperrors"
	"github.com/tracklight-io/tracklight-engine/pkg/database"
	"github.com/tracklight-io/tracklight-engine/pkg/models"
)

// MembershipRepository defines the interface for project membership data
// access. Memberships are hard-deleted; there is no soft-delete flag.
type MembershipRepository interface {
	Create(ctx context.Context, m *models.ProjectMembership) error
	Get(ctx context.Context, projectID, userID uuid.UUID) (*models.ProjectMembership, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectMembership, error)
	Update(ctx context.Context, m *models.ProjectMembership) error
	Delete(ctx context.Context, projectID, userID uuid.UUID) error
	CountAdmins(ctx context.Context, projectID uuid.UUID) (int, error)
}

// membershipRepository implements MembershipRepository using PostgreSQL.
type membershipRepository struct{}

// NewMembershipRepository creates a new membership repository.
func NewMembershipRepository() MembershipRepository {
	return &membershipRepository{}
}

// Create inserts a new membership. Returns ErrConflict if the user already
// has a membership in the project.
func (r *membershipRepository) Create(ctx context.Context, m *models.ProjectMembership) error {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return fmt.Errorf("no tenant scope in context")
	}

	m.CreatedAt = time.Now()

	query := `
		INSERT INTO project_memberships
			(project_id, user_id, is_project_admin, is_project_manager, is_project_developer, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := scope.Conn.Exec(ctx, query,
		m.ProjectID,
		m.UserID,
		m.IsProjectAdmin,
		m.IsProjectManager,
		m.IsProjectDeveloper,
		m.CreatedBy,
		m.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to create membership: %w", err)
	}

	return nil
}

// Get retrieves the membership for a (project, user) pair.
func (r *membershipRepository) Get(ctx context.Context, projectID, userID uuid.UUID) (*models.ProjectMembership, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant scope in context")
	}

	query := `
		SELECT project_id, user_id, is_project_admin, is_project_manager, is_project_developer,
		       created_by, created_at, updated_by, updated_at
		FROM project_memberships
		WHERE project_id = $1 AND user_id = $2`

	return scanMembership(scope.Conn.QueryRow(ctx, query, projectID, userID))
}

// ListByProject returns all memberships of a project, oldest first.
func (r *membershipRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectMembership, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant scope in context")
	}

	query := `
		SELECT project_id, user_id, is_project_admin, is_project_manager, is_project_developer,
		       created_by, created_at, updated_by, updated_at
		FROM project_memberships
		WHERE project_id = $1
		ORDER BY created_at ASC`

	rows, err := scope.Conn.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var memberships []*models.ProjectMembership
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read memberships: %w", err)
	}

	return memberships, nil
}

// Update writes the membership's role flags and stamps the updater.
func (r *membershipRepository) Update(ctx context.Context, m *models.ProjectMembership) error {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return fmt.Errorf("no tenant scope in context")
	}

	now := time.Now()
	m.UpdatedAt = &now

	query := `
		UPDATE project_memberships
		SET is_project_admin = $3, is_project_manager = $4, is_project_developer = $5,
		    updated_by = $6, updated_at = $7
		WHERE project_id = $1 AND user_id = $2`

	tag, err := scope.Conn.Exec(ctx, query,
		m.ProjectID,
		m.UserID,
		m.IsProjectAdmin,
		m.IsProjectManager,
		m.IsProjectDeveloper,
		m.UpdatedBy,
		m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update membership: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// Delete hard-deletes a membership.
func (r *membershipRepository) Delete(ctx context.Context, projectID, userID uuid.UUID) error {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return fmt.Errorf("no tenant scope in context")
	}

	query := `DELETE FROM project_memberships WHERE project_id = $1 AND user_id = $2`

	tag, err := scope.Conn.Exec(ctx, query, projectID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// CountAdmins returns the number of admin memberships in a project.
func (r *membershipRepository) CountAdmins(ctx context.Context, projectID uuid.UUID) (int, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return 0, fmt.Errorf("no tenant scope in context")
	}

	query := `
		SELECT COUNT(*)
		FROM project_memberships
		WHERE project_id = $1 AND is_project_admin = TRUE`

	var count int
	if err := scope.Conn.QueryRow(ctx, query, projectID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count admins: %w", err)
	}

	return count, nil
}

// scanMembership scans a single membership row.
func scanMembership(row pgx.Row) (*models.ProjectMembership, error) {
	var m models.ProjectMembership
	err := row.Scan(
		&m.ProjectID,
		&m.UserID,
		&m.IsProjectAdmin,
		&m.IsProjectManager,
		&m.IsProjectDeveloper,
		&m.CreatedBy,
		&m.CreatedAt,
		&m.UpdatedBy,
		&m.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}
	return &m, nil
}
