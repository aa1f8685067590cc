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

func setupStatusesMux(svc *mockStatusService) *http.ServeMux {
	handler := NewStatusesHandler(svc, zap.NewNop())
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, newTestAuthMiddleware(uuid.New(), "tester"), noopTenantMiddleware)
	return mux
}

func TestStatusesHandler_List(t *testing.T) {
	projectID := uuid.New()
	mux := setupStatusesMux(&mockStatusService{
		statuses: []*models.Status{
			{ID: uuid.New(), ProjectID: projectID, Name: "To Do"},
			{ID: uuid.New(), ProjectID: projectID, Name: "Done"},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/projects/"+projectID.String()+"/statuses", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var statuses []*models.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &statuses))
	assert.Len(t, statuses, 2)
}

func TestStatusesHandler_Create(t *testing.T) {
	projectID := uuid.New()
	mux := setupStatusesMux(&mockStatusService{})

	req := httptest.NewRequest(http.MethodPost, "/api/projects/"+projectID.String()+"/statuses",
		strings.NewReader(`{"name":"Blocked"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	var status models.Status
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "Blocked", status.Name)
}

func TestStatusesHandler_Create_MissingName(t *testing.T) {
	mux := setupStatusesMux(&mockStatusService{})

	req := httptest.NewRequest(http.MethodPost, "/api/projects/"+uuid.New().String()+"/statuses",
		strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestStatusesHandler_Create_LimitReached(t *testing.T) {
	mux := setupStatusesMux(&mockStatusService{err: apperrors.ErrStatusLimitReached})

	req := httptest.NewRequest(http.MethodPost, "/api/projects/"+uuid.New().String()+"/statuses",
		strings.NewReader(`{"name":"One Too Many"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	var errResp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "status_limit_reached", errResp["error"])
}

func TestStatusesHandler_Create_NameTaken(t *testing.T) {
	mux := setupStatusesMux(&mockStatusService{err: apperrors.ErrStatusNameTaken})

	req := httptest.NewRequest(http.MethodPost, "/api/projects/"+uuid.New().String()+"/statuses",
		strings.NewReader(`{"name":"To Do"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)
	var errResp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "status_name_taken", errResp["error"])
}

func TestStatusesHandler_Update_Forbidden(t *testing.T) {
	mux := setupStatusesMux(&mockStatusService{
		err: apperrors.NewAuthorizationError("you do not have permission to update statuses for this project"),
	})

	req := httptest.NewRequest(http.MethodPatch,
		"/api/projects/"+uuid.New().String()+"/statuses/"+uuid.New().String(),
		strings.NewReader(`{"name":"Backlog"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	var errResp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &errResp))
	assert.Equal(t, "you do not have permission to update statuses for this project", errResp["message"])
}

func TestStatusesHandler_Remove_NoContent(t *testing.T) {
	mux := setupStatusesMux(&mockStatusService{})

	req := httptest.NewRequest(http.MethodDelete,
		"/api/projects/"+uuid.New().String()+"/statuses/"+uuid.New().String(), nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestStatusesHandler_Remove_InvalidStatusID(t *testing.T) {
	mux := setupStatusesMux(&mockStatusService{})

	req := httptest.NewRequest(http.MethodDelete,
		"/api/projects/"+uuid.New().String()+"/statuses/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
