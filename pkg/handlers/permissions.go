package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/tracklight-io/tracklight-engine/pkg/auth"
	"github.com/tracklight-io/tracklight-engine/pkg/services"
)

// PermissionsHandler reports the caller's capability flags for a project.
type PermissionsHandler struct {
	permissionService services.PermissionService
	logger            *zap.Logger
}

// NewPermissionsHandler creates a new permissions handler.
func NewPermissionsHandler(permissionService services.PermissionService, logger *zap.Logger) *PermissionsHandler {
	return &PermissionsHandler{
		permissionService: permissionService,
		logger:            logger,
	}
}

// RegisterRoutes registers the permissions handler's routes on the given mux.
func (h *PermissionsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware, tenantMiddleware TenantMiddleware) {
	mux.HandleFunc("GET /api/projects/{pid}/permissions",
		authMiddleware.RequireAuth(tenantMiddleware(h.Summary)))
}

// Summary handles GET /api/projects/{pid}/permissions
// Non-members get a valid summary with every flag false, not an error.
func (h *PermissionsHandler) Summary(w http.ResponseWriter, r *http.Request) {
	projectID, ok := ParseProjectID(w, r, h.logger)
	if !ok {
		return
	}

	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	summary, err := h.permissionService.Summary(r.Context(), projectID, userID)
	if err != nil {
		writeServiceError(w, h.logger, err, "summary_failed", "Failed to load permissions")
		return
	}

	if err := WriteJSON(w, http.StatusOK, summary); err != nil {
		h.logger.Error("Failed to encode permissions response", zap.Error(err))
	}
}
