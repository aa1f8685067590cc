package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/tracklight-io/tracklight-engine/pkg/auth"
	"github.com/tracklight-io/tracklight-engine/pkg/services"
)

// StatusRequest is the request body for creating or renaming a status.
type StatusRequest struct {
	Name string `json:"name"`
}

// StatusesHandler handles status taxonomy HTTP requests.
type StatusesHandler struct {
	statusService services.StatusService
	logger        *zap.Logger
}

// NewStatusesHandler creates a new statuses handler.
func NewStatusesHandler(statusService services.StatusService, logger *zap.Logger) *StatusesHandler {
	return &StatusesHandler{
		statusService: statusService,
		logger:        logger,
	}
}

// RegisterRoutes registers the statuses handler's routes on the given mux.
func (h *StatusesHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware, tenantMiddleware TenantMiddleware) {
	mux.HandleFunc("GET /api/projects/{pid}/statuses",
		authMiddleware.RequireAuth(tenantMiddleware(h.List)))
	mux.HandleFunc("POST /api/projects/{pid}/statuses",
		authMiddleware.RequireAuth(tenantMiddleware(h.Create)))
	mux.HandleFunc("PATCH /api/projects/{pid}/statuses/{stid}",
		authMiddleware.RequireAuth(tenantMiddleware(h.Update)))
	mux.HandleFunc("DELETE /api/projects/{pid}/statuses/{stid}",
		authMiddleware.RequireAuth(tenantMiddleware(h.Remove)))
}

// List handles GET /api/projects/{pid}/statuses
func (h *StatusesHandler) List(w http.ResponseWriter, r *http.Request) {
	projectID, ok := ParseProjectID(w, r, h.logger)
	if !ok {
		return
	}

	statuses, err := h.statusService.List(r.Context(), projectID)
	if err != nil {
		writeServiceError(w, h.logger, err, "list_failed", "Failed to list statuses")
		return
	}

	if err := WriteJSON(w, http.StatusOK, statuses); err != nil {
		h.logger.Error("Failed to encode statuses response", zap.Error(err))
	}
}

// Create handles POST /api/projects/{pid}/statuses
func (h *StatusesHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if req.Name == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "missing_name", "Status name is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	status, err := h.statusService.Create(r.Context(), projectID, actingUserID, req.Name)
	if err != nil {
		writeServiceError(w, h.logger, err, "create_failed", "Failed to create status")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, status); err != nil {
		h.logger.Error("Failed to encode status response", zap.Error(err))
	}
}

// Update handles PATCH /api/projects/{pid}/statuses/{stid}
func (h *StatusesHandler) Update(w http.ResponseWriter, r *http.Request) {
	projectID, ok := ParseProjectID(w, r, h.logger)
	if !ok {
		return
	}
	statusID, ok := ParseStatusID(w, r, h.logger)
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

	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if req.Name == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "missing_name", "Status name is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	status, err := h.statusService.Update(r.Context(), projectID, actingUserID, statusID, req.Name)
	if err != nil {
		writeServiceError(w, h.logger, err, "update_failed", "Failed to update status")
		return
	}

	if err := WriteJSON(w, http.StatusOK, status); err != nil {
		h.logger.Error("Failed to encode status response", zap.Error(err))
	}
}

// Remove handles DELETE /api/projects/{pid}/statuses/{stid}
func (h *StatusesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	projectID, ok := ParseProjectID(w, r, h.logger)
	if !ok {
		return
	}
	statusID, ok := ParseStatusID(w, r, h.logger)
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

	if err := h.statusService.Remove(r.Context(), projectID, actingUserID, statusID); err != nil {
		writeServiceError(w, h.logger, err, "remove_failed", "Failed to remove status")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
