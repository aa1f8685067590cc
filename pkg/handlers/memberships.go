package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tracklight-io/tracklight-engine/pkg/auth"
	"github.com/tracklight-io/tracklight-engine/pkg/services"
)

// AddMembershipRequest is the request body for adding a project member.
// Omitted role flags default to false, which is the viewer role.
type AddMembershipRequest struct {
	UserID             string `json:"user_id"`
	IsProjectAdmin     bool   `json:"is_project_admin"`
	IsProjectManager   bool   `json:"is_project_manager"`
	IsProjectDeveloper bool   `json:"is_project_developer"`
}

// UpdateMembershipRequest is the request body for changing a member's roles.
// An absent flag leaves the stored value untouched; in particular an absent
// admin flag neither grants nor revokes admin.
type UpdateMembershipRequest struct {
	IsProjectAdmin     *bool `json:"is_project_admin"`
	IsProjectManager   *bool `json:"is_project_manager"`
	IsProjectDeveloper *bool `json:"is_project_developer"`
}

// MembershipsHandler handles project membership HTTP requests.
type MembershipsHandler struct {
	membershipService services.MembershipService
	logger            *zap.Logger
}

// NewMembershipsHandler creates a new memberships handler.
func NewMembershipsHandler(membershipService services.MembershipService, logger *zap.Logger) *MembershipsHandler {
	return &MembershipsHandler{
		membershipService: membershipService,
		logger:            logger,
	}
}

// RegisterRoutes registers the memberships handler's routes on the given mux.
func (h *MembershipsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware, tenantMiddleware TenantMiddleware) {
	mux.HandleFunc("GET /api/projects/{pid}/memberships",
		authMiddleware.RequireAuth(tenantMiddleware(h.List)))
	mux.HandleFunc("POST /api/projects/{pid}/memberships",
		authMiddleware.RequireAuth(tenantMiddleware(h.Add)))
	mux.HandleFunc("PATCH /api/projects/{pid}/memberships/{uid}",
		authMiddleware.RequireAuth(tenantMiddleware(h.Update)))
	mux.HandleFunc("DELETE /api/projects/{pid}/memberships/{uid}",
		authMiddleware.RequireAuth(tenantMiddleware(h.Remove)))
}

// List handles GET /api/projects/{pid}/memberships
func (h *MembershipsHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID, ok := ParseProjectID(w, r, h.logger)
	if !ok {
		return
	}

	memberships, err := h.membershipService.List(r.Context(), projectID)
	if err != nil {
		writeServiceError(w, h.logger, err, "list_failed", "Failed to list memberships")
		return
	}

	if err := WriteJSON(w, http.StatusOK, memberships); err != nil {
		h.logger.Error("Failed to encode memberships response", zap.Error(err))
	}
}

// Add handles POST /api/projects/{pid}/memberships
func (h *MembershipsHandler) Add(w http.ResponseWriter, r *http.Request) {
	projectID, ok := ParseProjectID(w, r, h.logger)
	if !ok {
		return
	}

	actingUserID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req AddMembershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if req.UserID == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "missing_user_id", "User ID is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_user_id", "Invalid user ID format"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	membership, err := h.membershipService.Add(r.Context(), projectID, actingUserID, services.CreateMembershipInput{
		UserID:             userID,
		IsProjectAdmin:     req.IsProjectAdmin,
		IsProjectManager:   req.IsProjectManager,
		IsProjectDeveloper: req.IsProjectDeveloper,
	})
	if err != nil {
		writeServiceError(w, h.logger, err, "add_failed", "Failed to add membership")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, membership); err != nil {
		h.logger.Error("Failed to encode membership response", zap.Error(err))
	}
}

// Update handles PATCH /api/projects/{pid}/memberships/{uid}
func (h *MembershipsHandler) Update(w http.ResponseWriter, r *http.Request) {
	projectID, ok := ParseProjectID(w, r, h.logger)
	if !ok {
		return
	}
	targetUserID, ok := ParseUserID(w, r, h.logger)
	if !ok {
		return
	}

	actingUserID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req UpdateMembershipRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	membership, err := h.membershipService.Update(r.Context(), projectID, actingUserID, targetUserID, services.UpdateMembershipInput{
		IsProjectAdmin:     req.IsProjectAdmin,
		IsProjectManager:   req.IsProjectManager,
		IsProjectDeveloper: req.IsProjectDeveloper,
	})
	if err != nil {
		writeServiceError(w, h.logger, err, "update_failed", "Failed to update membership")
		return
	}

	if err := WriteJSON(w, http.StatusOK, membership); err != nil {
		h.logger.Error("Failed to encode membership response", zap.Error(err))
	}
}

// Remove handles DELETE /api/projects/{pid}/memberships/{uid}
func (h *MembershipsHandler) Remove(w http.ResponseWriter, r *http.Request) {
	projectID, ok := ParseProjectID(w, r, h.logger)
	if !ok {
		return
	}
	targetUserID, ok := ParseUserID(w, r, h.logger)
	if !ok {
		return
	}

	actingUserID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if err := h.membershipService.Remove(r.Context(), projectID, actingUserID, targetUserID); err != nil {
		writeServiceError(w, h.logger, err, "remove_failed", "Failed to remove membership")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
