package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/tracklight-io/tracklight-engine/pkg/auth"
	"github.com/tracklight-io/tracklight-engine/pkg/services"
)

// TenantMiddleware is a function that wraps a handler with a database scope.
type TenantMiddleware func(http.HandlerFunc) http.HandlerFunc

// CreateProjectRequest is the request body for creating a project.
type CreateProjectRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

// UpdateProjectRequest is the request body for updating a project.
// Absent fields are left unchanged.
type UpdateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

// ProjectsHandler handles project HTTP requests.
type ProjectsHandler struct {
	projectService services.ProjectService
	logger         *zap.Logger
}

// NewProjectsHandler creates a new projects handler.
func NewProjectsHandler(projectService services.ProjectService, logger *zap.Logger) *ProjectsHandler {
	return &ProjectsHandler{
		projectService: projectService,
		logger:         logger,
	}
}

// RegisterRoutes registers the projects handler's routes on the given mux.
// Create and list run on an unscoped connection; everything under {pid}
// runs on that project's scope.
func (h *ProjectsHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware, tenantMiddleware, globalMiddleware TenantMiddleware) {
	mux.HandleFunc("POST /api/projects",
		authMiddleware.RequireAuth(globalMiddleware(h.Create)))
	mux.HandleFunc("GET /api/projects",
		authMiddleware.RequireAuth(globalMiddleware(h.List)))

	mux.HandleFunc("GET /api/projects/{pid}",
		authMiddleware.RequireAuth(tenantMiddleware(h.Get)))
	mux.HandleFunc("PATCH /api/projects/{pid}",
		authMiddleware.RequireAuth(tenantMiddleware(h.Update)))
	mux.HandleFunc("DELETE /api/projects/{pid}",
		authMiddleware.RequireAuth(tenantMiddleware(h.Remove)))
}

// Create handles POST /api/projects
// The creator becomes the project's first admin.
func (h *ProjectsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	var req CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if req.Name == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "missing_name", "Project name is required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	project, err := h.projectService.Create(r.Context(), req.Name, req.Description, userID)
	if err != nil {
		writeServiceError(w, h.logger, err, "create_failed", "Failed to create project")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, project); err != nil {
		h.logger.Error("Failed to encode project response", zap.Error(err))
	}
}

// List handles GET /api/projects
// Returns the active projects the caller belongs to.
func (h *ProjectsHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, err := auth.RequireUserIDFromContext(r.Context())
	if err != nil {
		if err := ErrorResponse(w, http.StatusUnauthorized, "unauthorized", "Authentication required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	projects, err := h.projectService.List(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err, "list_failed", "Failed to list projects")
		return
	}

	if err := WriteJSON(w, http.StatusOK, projects); err != nil {
		h.logger.Error("Failed to encode projects response", zap.Error(err))
	}
}

// Get handles GET /api/projects/{pid}
func (h *ProjectsHandler) Get(w http.ResponseWriter, r *http.Request) {
	projectID, ok := ParseProjectID(w, r, h.logger)
	if !ok {
		return
	}

	project, err := h.projectService.Get(r.Context(), projectID)
	if err != nil {
		writeServiceError(w, h.logger, err, "get_failed", "Failed to load project")
		return
	}

	if err := WriteJSON(w, http.StatusOK, project); err != nil {
		h.logger.Error("Failed to encode project response", zap.Error(err))
	}
}

// Update handles PATCH /api/projects/{pid}
func (h *ProjectsHandler) Update(w http.ResponseWriter, r *http.Request) {
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

	var req UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	project, err := h.projectService.Update(r.Context(), projectID, userID, services.UpdateProjectInput{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		writeServiceError(w, h.logger, err, "update_failed", "Failed to update project")
		return
	}

	if err := WriteJSON(w, http.StatusOK, project); err != nil {
		h.logger.Error("Failed to encode project response", zap.Error(err))
	}
}

// Remove handles DELETE /api/projects/{pid}
func (h *ProjectsHandler) Remove(w http.ResponseWriter, r *http.Request) {
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

	if err := h.projectService.Remove(r.Context(), projectID, userID); err != nil {
		writeServiceError(w, h.logger, err, "remove_failed", "Failed to remove project")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
