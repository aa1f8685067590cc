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

// StatusRepository defines the interface for status taxonomy data access.
type StatusRepository interface {
	Create(ctx context.Context, status *models.Status) error
	Get(ctx context.Context, projectID, id uuid.UUID) (*models.Status, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Status, error)
	Update(ctx context.Context, status *models.Status) error
	Delete(ctx context.Context, projectID, id uuid.UUID) error
	CountByProject(ctx context.Context, projectID uuid.UUID) (int, error)
}

// statusRepository implements StatusRepository using PostgreSQL.
type statusRepository struct{}

// NewStatusRepository creates a new status repository.
func NewStatusRepository() StatusRepository {
	return &statusRepository{}
}

// Create inserts a new status. Returns ErrStatusNameTaken if the name is
// already used within the project (unique index on project_id, lower(name)).
func (r *statusRepository) Create(ctx context.Context, status *models.Status) error {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return fmt.Errorf("no tenant scope in context")
	}

	if status.ID == uuid.Nil {
		status.ID = uuid.New()
	}
	status.CreatedAt = time.Now()

	query := `
		INSERT INTO statuses (id, project_id, name, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := scope.Conn.Exec(ctx, query,
		status.ID,
		status.ProjectID,
		status.Name,
		status.CreatedBy,
		status.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrStatusNameTaken
		}
		return fmt.Errorf("failed to create status: %w", err)
	}

	return nil
}

// Get retrieves a status by ID within a project.
func (r *statusRepository) Get(ctx context.Context, projectID, id uuid.UUID) (*models.Status, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant scope in context")
	}

	query := `
		SELECT id, project_id, name, created_by, created_at, updated_by, updated_at
		FROM statuses
		WHERE project_id = $1 AND id = $2`

	return scanStatus(scope.Conn.QueryRow(ctx, query, projectID, id))
}

// ListByProject returns a project's statuses in creation order.
func (r *statusRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Status, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant scope in context")
	}

	query := `
		SELECT id, project_id, name, created_by, created_at, updated_by, updated_at
		FROM statuses
		WHERE project_id = $1
		ORDER BY created_at ASC`

	rows, err := scope.Conn.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list statuses: %w", err)
	}
	defer rows.Close()

	var statuses []*models.Status
	for rows.Next() {
		status, err := scanStatus(rows)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, status)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read statuses: %w", err)
	}

	return statuses, nil
}

// Update renames a status and stamps the updater. Returns
// ErrStatusNameTaken on a name collision within the project.
func (r *statusRepository) Update(ctx context.Context, status *models.Status) error {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return fmt.Errorf("no tenant scope in context")
	}

	now := time.Now()
	status.UpdatedAt = &now

	query := `
		UPDATE statuses
		SET name = $3, updated_by = $4, updated_at = $5
		WHERE project_id = $1 AND id = $2`

	tag, err := scope.Conn.Exec(ctx, query,
		status.ProjectID,
		status.ID,
		status.Name,
		status.UpdatedBy,
		status.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.ErrStatusNameTaken
		}
		return fmt.Errorf("failed to update status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// Delete hard-deletes a status.
func (r *statusRepository) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return fmt.Errorf("no tenant scope in context")
	}

	query := `DELETE FROM statuses WHERE project_id = $1 AND id = $2`

	tag, err := scope.Conn.Exec(ctx, query, projectID, id)
	if err != nil {
		return fmt.Errorf("failed to delete status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// CountByProject returns the number of statuses in a project.
func (r *statusRepository) CountByProject(ctx context.Context, projectID uuid.UUID) (int, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return 0, fmt.Errorf("no tenant scope in context")
	}

	var count int
	err := scope.Conn.QueryRow(ctx, `SELECT COUNT(*) FROM statuses WHERE project_id = $1`, projectID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count statuses: %w", err)
	}

	return count, nil
}

// scanStatus scans a single status row.
func scanStatus(row pgx.Row) (*models.Status, error) {
	var status models.Status
	err := row.Scan(
		&status.ID,
		&status.ProjectID,
		&status.Name,
		&status.CreatedBy,
		&status.CreatedAt,
		&status.UpdatedBy,
		&status.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get status: %w", err)
	}
	return &status, nil
}
