package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tracklight-io/tracklight-engine/pkg/auth"
	"github.com/tracklight-io/tracklight-engine/pkg/services"
)

// CreateStoryRequest is the request body for creating a story.
type CreateStoryRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	StatusID    *string `json:"status_id"`
	OwnedByID   *string `json:"owned_by_id"`
}

// UpdateStoryRequest is the request body for updating a story.
// Absent fields are left unchanged.
type UpdateStoryRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	StatusID    *string `json:"status_id"`
	OwnedByID   *string `json:"owned_by_id"`
}

// StoriesHandler handles story HTTP requests.
type StoriesHandler struct {
	storyService services.StoryService
	logger       *zap.Logger
}

// NewStoriesHandler creates a new stories handler.
func NewStoriesHandler(storyService services.StoryService, logger *zap.Logger) *StoriesHandler {
	return &StoriesHandler{
		storyService: storyService,
		logger:       logger,
	}
}

// RegisterRoutes registers the stories handler's routes on the given mux.
func (h *StoriesHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware, tenantMiddleware TenantMiddleware) {
	mux.HandleFunc("GET /api/projects/{pid}/stories",
		authMiddleware.RequireAuth(tenantMiddleware(h.List)))
	mux.HandleFunc("POST /api/projects/{pid}/stories",
		authMiddleware.RequireAuth(tenantMiddleware(h.Create)))
	mux.HandleFunc("GET /api/projects/{pid}/stories/{sid}",
		authMiddleware.RequireAuth(tenantMiddleware(h.Get)))
	mux.HandleFunc("PATCH /api/projects/{pid}/stories/{sid}",
		authMiddleware.RequireAuth(tenantMiddleware(h.Update)))
	mux.HandleFunc("DELETE /api/projects/{pid}/stories/{sid}",
		authMiddleware.RequireAuth(tenantMiddleware(h.Remove)))
}

// List handles GET /api/projects/{pid}/stories
func (h *StoriesHandler) List(w http.ResponseWriter, r *http.Request) {
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

	stories, err := h.storyService.List(r.Context(), projectID, actingUserID)
	if err != nil {
		writeServiceError(w, h.logger, err, "list_failed", "Failed to list stories")
		return
	}

	if err := WriteJSON(w, http.StatusOK, stories); err != nil {
		h.logger.Error("Failed to encode stories response", zap.Error(err))
	}
}

// Get handles GET /api/projects/{pid}/stories/{sid}
func (h *StoriesHandler) Get(w http.ResponseWriter, r *http.Request) {
	projectID, ok := ParseProjectID(w, r, h.logger)
	if !ok {
		return
	}
	storyID, ok := ParseStoryID(w, r, h.logger)
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

	story, err := h.storyService.Get(r.Context(), projectID, actingUserID, storyID)
	if err != nil {
		writeServiceError(w, h.logger, err, "get_failed", "Failed to load story")
		return
	}

	if err := WriteJSON(w, http.StatusOK, story); err != nil {
		h.logger.Error("Failed to encode story response", zap.Error(err))
	}
}

// Create handles POST /api/projects/{pid}/stories
func (h *StoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req CreateStoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if req.Title == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "missing_title", "Story title is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	statusID, ok := parseOptionalUUID(w, req.StatusID, "invalid_status_id", "Invalid status ID format", h.logger)
	if !ok {
		return
	}
	ownedByID, ok := parseOptionalUUID(w, req.OwnedByID, "invalid_owner_id", "Invalid owner ID format", h.logger)
	if !ok {
		return
	}

	story, err := h.storyService.Create(r.Context(), projectID, actingUserID, services.CreateStoryInput{
		Title:       req.Title,
		Description: req.Description,
		StatusID:    statusID,
		OwnedByID:   ownedByID,
	})
	if err != nil {
		writeServiceError(w, h.logger, err, "create_failed", "Failed to create story")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, story); err != nil {
		h.logger.Error("Failed to encode story response", zap.Error(err))
	}
}

// Update handles PATCH /api/projects/{pid}/stories/{sid}
func (h *StoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	projectID, ok := ParseProjectID(w, r, h.logger)
	if !ok {
		return
	}
	storyID, ok := ParseStoryID(w, r, h.logger)
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

	var req UpdateStoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	statusID, ok := parseOptionalUUID(w, req.StatusID, "invalid_status_id", "Invalid status ID format", h.logger)
	if !ok {
		return
	}
	ownedByID, ok := parseOptionalUUID(w, req.OwnedByID, "invalid_owner_id", "Invalid owner ID format", h.logger)
	if !ok {
		return
	}

	story, err := h.storyService.Update(r.Context(), projectID, actingUserID, storyID, services.UpdateStoryInput{
		Title:       req.Title,
		Description: req.Description,
		StatusID:    statusID,
		OwnedByID:   ownedByID,
	})
	if err != nil {
		writeServiceError(w, h.logger, err, "update_failed", "Failed to update story")
		return
	}

	if err := WriteJSON(w, http.StatusOK, story); err != nil {
		h.logger.Error("Failed to encode story response", zap.Error(err))
	}
}

// Remove handles DELETE /api/projects/{pid}/stories/{sid}
func (h *StoriesHandler) Remove(w http.ResponseWriter, r *http.Request) {
	projectID, ok := ParseProjectID(w, r, h.logger)
	if !ok {
		return
	}
	storyID, ok := ParseStoryID(w, r, h.logger)
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

	if err := h.storyService.Remove(r.Context(), projectID, actingUserID, storyID); err != nil {
		writeServiceError(w, h.logger, err, "remove_failed", "Failed to remove story")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseOptionalUUID parses a nullable UUID string from a request body.
// Returns (nil, true) when the field was absent.
func parseOptionalUUID(w http.ResponseWriter, value *string, errorCode, errorMessage string, logger *zap.Logger) (*uuid.UUID, bool) {
	if value == nil {
		return nil, true
	}
	id, err := uuid.Parse(*value)
	if err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, errorCode, errorMessage); err != nil {
			logger.Error("Failed to write error response", zap.Error(err))
		}
		return nil, false
	}
	return &id, true
}
