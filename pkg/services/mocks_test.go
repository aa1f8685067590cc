package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/tracklight-io/tracklight-engine/pkg/apperrors"
	"github.com/tracklight-io/tracklight-engine/pkg/models"
)

// mockMembershipRepo is an in-memory MembershipRepository for service tests.
type mockMembershipRepo struct {
	memberships []*models.ProjectMembership
	createErr   error
	getErr      error
	listErr     error
	updateErr   error
	deleteErr   error
	countErr    error

	capturedCreate *models.ProjectMembership
	capturedUpdate *models.ProjectMembership
	deletedUserID  uuid.UUID
}

func (m *mockMembershipRepo) Create(_ context.Context, membership *models.ProjectMembership) error {
	if m.createErr != nil {
		return m.createErr
	}
	membership.CreatedAt = time.Now()
	m.capturedCreate = membership
	m.memberships = append(m.memberships, membership)
	return nil
}

func (m *mockMembershipRepo) Get(_ context.Context, projectID, userID uuid.UUID) (*models.ProjectMembership, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, mem := range m.memberships {
		if mem.ProjectID == projectID && mem.UserID == userID {
			return mem, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockMembershipRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]*models.ProjectMembership, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*models.ProjectMembership
	for _, mem := range m.memberships {
		if mem.ProjectID == projectID {
			result = append(result, mem)
		}
	}
	return result, nil
}

func (m *mockMembershipRepo) Update(_ context.Context, membership *models.ProjectMembership) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.capturedUpdate = membership
	return nil
}

func (m *mockMembershipRepo) Delete(_ context.Context, projectID, userID uuid.UUID) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedUserID = userID
	for i, mem := range m.memberships {
		if mem.ProjectID == projectID && mem.UserID == userID {
			m.memberships = append(m.memberships[:i], m.memberships[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (m *mockMembershipRepo) CountAdmins(_ context.Context, projectID uuid.UUID) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	count := 0
	for _, mem := range m.memberships {
		if mem.ProjectID == projectID && mem.IsProjectAdmin {
			count++
		}
	}
	return count, nil
}

// mockUserRepo is an in-memory UserRepository for service tests.
type mockUserRepo struct {
	users         []*models.User
	createErr     error
	getErr        error
	updateErr     error
	deactivateErr error

	capturedCreate *models.User
	capturedUpdate *models.User
}

func (m *mockUserRepo) Create(_ context.Context, user *models.User) error {
	if m.createErr != nil {
		return m.createErr
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	m.capturedCreate = user
	m.users = append(m.users, user)
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, u := range m.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *models.User) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.capturedUpdate = user
	return nil
}

func (m *mockUserRepo) Deactivate(_ context.Context, id uuid.UUID) error {
	if m.deactivateErr != nil {
		return m.deactivateErr
	}
	for _, u := range m.users {
		if u.ID == id {
			u.IsActive = false
			return nil
		}
	}
	return apperrors.ErrNotFound
}

// mockProjectRepo is an in-memory ProjectRepository for service tests.
type mockProjectRepo struct {
	projects      []*models.Project
	createErr     error
	getErr        error
	listErr       error
	updateErr     error
	deactivateErr error

	capturedUpdate *models.Project
	deactivatedID  uuid.UUID
}

func (m *mockProjectRepo) Create(_ context.Context, project *models.Project) error {
	if m.createErr != nil {
		return m.createErr
	}
	project.IsActive = true
	project.CreatedAt = time.Now()
	m.projects = append(m.projects, project)
	return nil
}

func (m *mockProjectRepo) Get(_ context.Context, id uuid.UUID) (*models.Project, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, p := range m.projects {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockProjectRepo) ListForUser(_ context.Context, _ uuid.UUID) ([]*models.Project, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.projects, nil
}

func (m *mockProjectRepo) Update(_ context.Context, project *models.Project) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.capturedUpdate = project
	return nil
}

func (m *mockProjectRepo) Deactivate(_ context.Context, id, _ uuid.UUID) error {
	if m.deactivateErr != nil {
		return m.deactivateErr
	}
	m.deactivatedID = id
	return nil
}

// mockStatusRepo is an in-memory StatusRepository for service tests.
type mockStatusRepo struct {
	statuses  []*models.Status
	createErr error
	getErr    error
	listErr   error
	updateErr error
	deleteErr error
	countErr  error

	capturedCreate *models.Status
	capturedUpdate *models.Status
	deletedID      uuid.UUID
}

func (m *mockStatusRepo) Create(_ context.Context, status *models.Status) error {
	if m.createErr != nil {
		return m.createErr
	}
	status.ID = uuid.New()
	status.CreatedAt = time.Now()
	m.capturedCreate = status
	m.statuses = append(m.statuses, status)
	return nil
}

func (m *mockStatusRepo) Get(_ context.Context, projectID, id uuid.UUID) (*models.Status, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, st := range m.statuses {
		if st.ProjectID == projectID && st.ID == id {
			return st, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockStatusRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]*models.Status, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*models.Status
	for _, st := range m.statuses {
		if st.ProjectID == projectID {
			result = append(result, st)
		}
	}
	return result, nil
}

func (m *mockStatusRepo) Update(_ context.Context, status *models.Status) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.capturedUpdate = status
	return nil
}

func (m *mockStatusRepo) Delete(_ context.Context, _ uuid.UUID, id uuid.UUID) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedID = id
	return nil
}

func (m *mockStatusRepo) CountByProject(_ context.Context, projectID uuid.UUID) (int, error) {
	if m.countErr != nil {
		return 0, m.countErr
	}
	count := 0
	for _, st := range m.statuses {
		if st.ProjectID == projectID {
			count++
		}
	}
	return count, nil
}

// mockStoryRepo is an in-memory StoryRepository for service tests.
type mockStoryRepo struct {
	stories   []*models.Story
	createErr error
	getErr    error
	listErr   error
	updateErr error
	deleteErr error

	capturedCreate *models.Story
	capturedUpdate *models.Story
	deletedID      uuid.UUID
}

func (m *mockStoryRepo) Create(_ context.Context, story *models.Story) error {
	if m.createErr != nil {
		return m.createErr
	}
	story.ID = uuid.New()
	story.CreatedAt = time.Now()
	m.capturedCreate = story
	m.stories = append(m.stories, story)
	return nil
}

func (m *mockStoryRepo) Get(_ context.Context, projectID, id uuid.UUID) (*models.Story, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	for _, st := range m.stories {
		if st.ProjectID == projectID && st.ID == id {
			return st, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockStoryRepo) ListByProject(_ context.Context, projectID uuid.UUID) ([]*models.Story, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var result []*models.Story
	for _, st := range m.stories {
		if st.ProjectID == projectID {
			result = append(result, st)
		}
	}
	return result, nil
}

func (m *mockStoryRepo) Update(_ context.Context, story *models.Story) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.capturedUpdate = story
	return nil
}

func (m *mockStoryRepo) Delete(_ context.Context, _ uuid.UUID, id uuid.UUID) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.deletedID = id
	return nil
}

// seedMembership builds a membership row for a project with the given flags.
func seedMembership(projectID, userID uuid.UUID, admin, manager, developer bool) *models.ProjectMembership {
	return &models.ProjectMembership{
		ProjectID:          projectID,
		UserID:             userID,
		IsProjectAdmin:     admin,
		IsProjectManager:   manager,
		IsProjectDeveloper: developer,
		CreatedBy:          userID,
		CreatedAt:          time.Now(),
	}
}
