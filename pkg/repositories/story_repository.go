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

// StoryRepository defines the interface for story data access.
type StoryRepository interface {
	Create(ctx context.Context, story *models.Story) error
	Get(ctx context.Context, projectID, id uuid.UUID) (*models.Story, error)
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Story, error)
	Update(ctx context.Context, story *models.Story) error
	Delete(ctx context.Context, projectID, id uuid.UUID) error
}

// storyRepository implements StoryRepository using PostgreSQL.
type storyRepository struct{}

// NewStoryRepository creates a new story repository.
func NewStoryRepository() StoryRepository {
	return &storyRepository{}
}

const storyColumns = `id, project_id, title, description, status_id, owned_by_id, created_by, created_at, updated_by, updated_at`

// Create inserts a new story.
func (r *storyRepository) Create(ctx context.Context, story *models.Story) error {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return fmt.Errorf("no tenant scope in context")
	}

	if story.ID == uuid.Nil {
		story.ID = uuid.New()
	}
	story.CreatedAt = time.Now()

	query := `
		INSERT INTO stories (id, project_id, title, description, status_id, owned_by_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	_, err := scope.Conn.Exec(ctx, query,
		story.ID,
		story.ProjectID,
		story.Title,
		story.Description,
		story.StatusID,
		story.OwnedByID,
		story.CreatedBy,
		story.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create story: %w", err)
	}

	return nil
}

// Get retrieves a story by ID within a project.
func (r *storyRepository) Get(ctx context.Context, projectID, id uuid.UUID) (*models.Story, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant scope in context")
	}

	query := `SELECT ` + storyColumns + ` FROM stories WHERE project_id = $1 AND id = $2`

	return scanStory(scope.Conn.QueryRow(ctx, query, projectID, id))
}

// ListByProject returns a project's stories, newest first.
func (r *storyRepository) ListByProject(ctx context.Context, projectID uuid.UUID) ([]*models.Story, error) {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no tenant scope in context")
	}

	query := `SELECT ` + storyColumns + ` FROM stories WHERE project_id = $1 ORDER BY created_at DESC`

	rows, err := scope.Conn.Query(ctx, query, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	defer rows.Close()

	var stories []*models.Story
	for rows.Next() {
		story, err := scanStory(rows)
		if err != nil {
			return nil, err
		}
		stories = append(stories, story)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read stories: %w", err)
	}

	return stories, nil
}

// Update writes a story's mutable fields and stamps the updater.
func (r *storyRepository) Update(ctx context.Context, story *models.Story) error {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return fmt.Errorf("no tenant scope in context")
	}

	now := time.Now()
	story.UpdatedAt = &now

	query := `
		UPDATE stories
		SET title = $3, description = $4, status_id = $5, owned_by_id = $6,
		    updated_by = $7, updated_at = $8
		WHERE project_id = $1 AND id = $2`

	tag, err := scope.Conn.Exec(ctx, query,
		story.ProjectID,
		story.ID,
		story.Title,
		story.Description,
		story.StatusID,
		story.OwnedByID,
		story.UpdatedBy,
		story.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update story: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// Delete hard-deletes a story.
func (r *storyRepository) Delete(ctx context.Context, projectID, id uuid.UUID) error {
	scope, ok := database.GetTenantScope(ctx)
	if !ok {
		return fmt.Errorf("no tenant scope in context")
	}

	tag, err := scope.Conn.Exec(ctx, `DELETE FROM stories WHERE project_id = $1 AND id = $2`, projectID, id)
	if err != nil {
		return fmt.Errorf("failed to delete story: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// scanStory scans a single story row.
func scanStory(row pgx.Row) (*models.Story, error) {
	var story models.Story
	err := row.Scan(
		&story.ID,
		&story.ProjectID,
		&story.Title,
		&story.Description,
		&story.StatusID,
		&story.OwnedByID,
		&story.CreatedBy,
		&story.CreatedAt,
		&story.UpdatedBy,
		&story.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get story: %w", err)
	}
	return &story, nil
}
