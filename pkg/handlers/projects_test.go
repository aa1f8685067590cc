package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tracklight-io/tracklight-engine/pkg/apperrors"
	"github.com/tracklight-io/tracklight-engine/pkg/models"
)

func setupProjectsMux(svc *mockProjectService) *http.ServeMux {
	handler := NewProjectsHandler(svc, zap.NewNop())
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, newTestAuthMiddleware(uuid.New(), "tester"), noopTenantMiddleware, noopTenantMiddleware)
	return mux
}

func TestProjectsHandler_Create(t *testing.T) {
	mux := setupProjectsMux(&mockProjectService{})

	req := httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(`{"name":"Apollo"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var project models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &project))
	assert.Equal(t, "Apollo", project.Name)
}

func TestProjectsHandler_Create_MissingName(t *testing.T) {
	mux := setupProjectsMux(&mockProjectService{})

	req := httptest.NewRequest(http.MethodPost, "/api/projects", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProjectsHandler_List(t *testing.T) {
	mux := setupProjectsMux(&mockProjectService{
		projects: []*models.Project{
			{ID: uuid.New(), Name: "Apollo", IsActive: true},
			{ID: uuid.New(), Name: "Artemis", IsActive: true},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/projects", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var projects []*models.Project
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &projects))
	assert.Len(t, projects, 2)
}

func TestProjectsHandler_Get_NotFound(t *testing.T) {
	mux := setupProjectsMux(&mockProjectService{err: apperrors.ErrNotFound})

	req := httptest.NewRequest(http.MethodGet, "/api/projects/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestProjectsHandler_Get_InvalidID(t *testing.T) {
	mux := setupProjectsMux(&mockProjectService{})

	req := httptest.NewRequest(http.MethodGet, "/api/projects/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestProjectsHandler_Update_Forbidden(t *testing.T) {
	mux := setupProjectsMux(&mockProjectService{
		err: apperrors.NewAuthorizationError("you do not have permission to update this project"),
	})

	req := httptest.NewRequest(http.MethodPatch, "/api/projects/"+uuid.New().String(),
		strings.NewReader(`{"name":"Renamed"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	var errResp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "you do not have permission to update this project", errResp["message"])
}

func TestProjectsHandler_Remove_NoContent(t *testing.T) {
	mux := setupProjectsMux(&mockProjectService{})

	req := httptest.NewRequest(http.MethodDelete, "/api/projects/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestProjectsHandler_Remove_Forbidden(t *testing.T) {
	mux := setupProjectsMux(&mockProjectService{
		err: apperrors.NewAuthorizationError("you do not have permission to remove this project"),
	})

	req := httptest.NewRequest(http.MethodDelete, "/api/projects/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
