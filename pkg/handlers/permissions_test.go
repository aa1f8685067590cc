package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tracklight-io/tracklight-engine/pkg/authz"
)

func setupPermissionsMux(svc *mockPermissionService) *http.ServeMux {
	handler := NewPermissionsHandler(svc, zap.NewNop())
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux, newTestAuthMiddleware(uuid.New(), "tester"), noopTenantMiddleware)
	return mux
}

func TestPermissionsHandler_Summary(t *testing.T) {
	mux := setupPermissionsMux(&mockPermissionService{
		summary: &authz.Summary{CanReadStories: true, CanCreateStory: true},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/projects/"+uuid.New().String()+"/permissions", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var result map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result["can_read_stories"])
	assert.True(t, result["can_create_story"])
	assert.False(t, result["can_remove_project"])
}

func TestPermissionsHandler_Summary_NonMemberAllFalse(t *testing.T) {
	mux := setupPermissionsMux(&mockPermissionService{summary: &authz.Summary{}})

	req := httptest.NewRequest(http.MethodGet, "/api/projects/"+uuid.New().String()+"/permissions", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var result map[string]bool
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	for flag, allowed := range result {
		assert.False(t, allowed, "flag %s should be false for a non-member", flag)
	}
}

func TestPermissionsHandler_Summary_InvalidProjectID(t *testing.T) {
	mux := setupPermissionsMux(&mockPermissionService{})

	req := httptest.NewRequest(http.MethodGet, "/api/projects/not-a-uuid/permissions", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
