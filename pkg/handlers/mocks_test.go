package handlers

import (
	"context"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tracklight-io/tracklight-engine/pkg/auth"
	"github.com/tracklight-io/tracklight-engine/pkg/authz"
	"github.com/tracklight-io/tracklight-engine/pkg/models"
	"github.com/tracklight-io/tracklight-engine/pkg/services"
)

// noopTenantMiddleware is a passthrough scope middleware for unit tests.
func noopTenantMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return next
}

// mockAuthService is a mock AuthService for handler tests.
type mockAuthService struct {
	claims *auth.Claims
	token  string
}

func (m *mockAuthService) ValidateRequest(r *http.Request) (*auth.Claims, string, error) {
	return m.claims, m.token, nil
}

func (m *mockAuthService) RequireSubject(claims *auth.Claims) error {
	if claims.Subject == "" {
		return auth.ErrMissingSubject
	}
	return nil
}

// newTestAuthMiddleware builds auth middleware whose token always resolves
// to the given identity.
func newTestAuthMiddleware(userID uuid.UUID, username string) *auth.Middleware {
	claims := &auth.Claims{Username: username, Email: username + "@example.com"}
	claims.Subject = userID.String()
	authService := &mockAuthService{claims: claims, token: "test-token"}
	return auth.NewMiddleware(authService, zap.NewNop())
}

// mockUserService is a configurable mock for user handler tests.
type mockUserService struct {
	user *models.User
	err  error
}

func (m *mockUserService) Register(ctx context.Context, input services.RegisterUserInput) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.user != nil {
		return m.user, nil
	}
	return &models.User{
		ID:       uuid.New(),
		Username: input.Username,
		Email:    input.Email,
		IsActive: true,
	}, nil
}

func (m *mockUserService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.user != nil {
		return m.user, nil
	}
	return &models.User{ID: userID, Username: "test", IsActive: true}, nil
}

func (m *mockUserService) Update(ctx context.Context, actingUsername string, userID uuid.UUID, input services.UpdateUserInput) (*models.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.user != nil {
		return m.user, nil
	}
	return &models.User{ID: userID, Username: "test", IsActive: true}, nil
}

func (m *mockUserService) Deactivate(ctx context.Context, actingUsername string, userID uuid.UUID) error {
	return m.err
}

// mockProjectService is a configurable mock for project handler tests.
type mockProjectService struct {
	project  *models.Project
	projects []*models.Project
	err      error
}

func (m *mockProjectService) Create(ctx context.Context, name string, description *string, creatorID uuid.UUID) (*models.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.project != nil {
		return m.project, nil
	}
	return &models.Project{ID: uuid.New(), Name: name, Description: description, IsActive: true, CreatedBy: creatorID}, nil
}

func (m *mockProjectService) List(ctx context.Context, userID uuid.UUID) ([]*models.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.projects, nil
}

func (m *mockProjectService) Get(ctx context.Context, projectID uuid.UUID) (*models.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.project != nil {
		return m.project, nil
	}
	return &models.Project{ID: projectID, Name: "Test Project", IsActive: true}, nil
}

func (m *mockProjectService) Update(ctx context.Context, projectID, actingUserID uuid.UUID, input services.UpdateProjectInput) (*models.Project, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.project != nil {
		return m.project, nil
	}
	return &models.Project{ID: projectID, Name: "Test Project", IsActive: true}, nil
}

func (m *mockProjectService) Remove(ctx context.Context, projectID, actingUserID uuid.UUID) error {
	return m.err
}

// mockMembershipService is a configurable mock for membership handler tests.
type mockMembershipService struct {
	membership  *models.ProjectMembership
	memberships []*models.ProjectMembership
	err         error
}

func (m *mockMembershipService) List(ctx context.Context, projectID uuid.UUID) ([]*models.ProjectMembership, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.memberships, nil
}

func (m *mockMembershipService) Add(ctx context.Context, projectID, actingUserID uuid.UUID, input services.CreateMembershipInput) (*models.ProjectMembership, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.membership != nil {
		return m.membership, nil
	}
	return &models.ProjectMembership{
		ProjectID:          projectID,
		UserID:             input.UserID,
		IsProjectAdmin:     input.IsProjectAdmin,
		IsProjectManager:   input.IsProjectManager,
		IsProjectDeveloper: input.IsProjectDeveloper,
		CreatedBy:          actingUserID,
	}, nil
}

func (m *mockMembershipService) Update(ctx context.Context, projectID, actingUserID, targetUserID uuid.UUID, input services.UpdateMembershipInput) (*models.ProjectMembership, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.membership != nil {
		return m.membership, nil
	}
	return &models.ProjectMembership{ProjectID: projectID, UserID: targetUserID}, nil
}

func (m *mockMembershipService) Remove(ctx context.Context, projectID, actingUserID, targetUserID uuid.UUID) error {
	return m.err
}

// mockStatusService is a configurable mock for status handler tests.
type mockStatusService struct {
	status   *models.Status
	statuses []*models.Status
	err      error
}

func (m *mockStatusService) List(ctx context.Context, projectID uuid.UUID) ([]*models.Status, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.statuses, nil
}

func (m *mockStatusService) Create(ctx context.Context, projectID, actingUserID uuid.UUID, name string) (*models.Status, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.status != nil {
		return m.status, nil
	}
	return &models.Status{ID: uuid.New(), ProjectID: projectID, Name: name, CreatedBy: actingUserID}, nil
}

func (m *mockStatusService) Update(ctx context.Context, projectID, actingUserID, statusID uuid.UUID, name string) (*models.Status, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.status != nil {
		return m.status, nil
	}
	return &models.Status{ID: statusID, ProjectID: projectID, Name: name}, nil
}

func (m *mockStatusService) Remove(ctx context.Context, projectID, actingUserID, statusID uuid.UUID) error {
	return m.err
}

// mockStoryService is a configurable mock for story handler tests.
type mockStoryService struct {
	story   *models.Story
	stories []*models.Story
	err     error
}

func (m *mockStoryService) List(ctx context.Context, projectID, actingUserID uuid.UUID) ([]*models.Story, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.stories, nil
}

func (m *mockStoryService) Get(ctx context.Context, projectID, actingUserID, storyID uuid.UUID) (*models.Story, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.story != nil {
		return m.story, nil
	}
	return &models.Story{ID: storyID, ProjectID: projectID, Title: "Test Story"}, nil
}

func (m *mockStoryService) Create(ctx context.Context, projectID, actingUserID uuid.UUID, input services.CreateStoryInput) (*models.Story, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.story != nil {
		return m.story, nil
	}
	return &models.Story{
		ID:          uuid.New(),
		ProjectID:   projectID,
		Title:       input.Title,
		Description: input.Description,
		StatusID:    input.StatusID,
		OwnedByID:   input.OwnedByID,
		CreatedBy:   actingUserID,
	}, nil
}

func (m *mockStoryService) Update(ctx context.Context, projectID, actingUserID, storyID uuid.UUID, input services.UpdateStoryInput) (*models.Story, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.story != nil {
		return m.story, nil
	}
	return &models.Story{ID: storyID, ProjectID: projectID, Title: "Test Story"}, nil
}

func (m *mockStoryService) Remove(ctx context.Context, projectID, actingUserID, storyID uuid.UUID) error {
	return m.err
}

// mockPermissionService is a configurable mock for permission handler tests.
type mockPermissionService struct {
	summary *authz.Summary
	err     error
}

func (m *mockPermissionService) Summary(ctx context.Context, projectID, userID uuid.UUID) (*authz.Summary, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.summary != nil {
		return m.summary, nil
	}
	return &authz.Summary{}, nil
}
