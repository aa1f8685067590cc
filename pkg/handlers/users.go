package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/tracklight-io/tracklight-engine/pkg/auth"
	"github.com/tracklight-io/tracklight-engine/pkg/services"
)

// RegisterUserRequest is the request body for account registration.
type RegisterUserRequest struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"password_hash"`
}

// UpdateUserRequest is the request body for updating an account.
// Absent fields are left unchanged.
type UpdateUserRequest struct {
	Email        *string `json:"email"`
	PasswordHash *string `json:"password_hash"`
}

// UsersHandler handles account HTTP requests.
type UsersHandler struct {
	userService services.UserService
	logger      *zap.Logger
}

// NewUsersHandler creates a new users handler.
func NewUsersHandler(userService services.UserService, logger *zap.Logger) *UsersHandler {
	return &UsersHandler{
		userService: userService,
		logger:      logger,
	}
}

// RegisterRoutes registers the users handler's routes on the given mux.
// Registration is unauthenticated; profile routes require a token.
func (h *UsersHandler) RegisterRoutes(mux *http.ServeMux, authMiddleware *auth.Middleware, globalMiddleware TenantMiddleware) {
	mux.HandleFunc("POST /api/users", globalMiddleware(h.Register))
	mux.HandleFunc("GET /api/users/{uid}",
		authMiddleware.RequireAuth(globalMiddleware(h.Get)))
	mux.HandleFunc("PATCH /api/users/{uid}",
		authMiddleware.RequireAuth(globalMiddleware(h.Update)))
	mux.HandleFunc("DELETE /api/users/{uid}",
		authMiddleware.RequireAuth(globalMiddleware(h.Deactivate)))
}

// Register handles POST /api/users
func (h *UsersHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	if req.Username == "" || req.Email == "" {
		if err := ErrorResponse(w, http.StatusBadRequest, "missing_fields", "Username and email are required"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	user, err := h.userService.Register(r.Context(), services.RegisterUserInput{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: req.PasswordHash,
	})
	if err != nil {
		writeServiceError(w, h.logger, err, "register_failed", "Failed to register user")
		return
	}

	if err := WriteJSON(w, http.StatusCreated, user); err != nil {
		h.logger.Error("Failed to encode user response", zap.Error(err))
	}
}

// Get handles GET /api/users/{uid}
func (h *UsersHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := ParseUserID(w, r, h.logger)
	if !ok {
		return
	}

	user, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err, "get_failed", "Failed to load user")
		return
	}

	if err := WriteJSON(w, http.StatusOK, user); err != nil {
		h.logger.Error("Failed to encode user response", zap.Error(err))
	}
}

// Update handles PATCH /api/users/{uid}
// Only the account owner may change the profile.
func (h *UsersHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := ParseUserID(w, r, h.logger)
	if !ok {
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		if err := ErrorResponse(w, http.StatusBadRequest, "invalid_request", "Invalid request body"); err != nil {
			h.logger.Error("Failed to write error response", zap.Error(err))
		}
		return
	}

	actingUsername := auth.GetUsernameFromContext(r.Context())
	user, err := h.userService.Update(r.Context(), actingUsername, userID, services.UpdateUserInput{
		Email:        req.Email,
		PasswordHash: req.PasswordHash,
	})
	if err != nil {
		writeServiceError(w, h.logger, err, "update_failed", "Failed to update user")
		return
	}

	if err := WriteJSON(w, http.StatusOK, user); err != nil {
		h.logger.Error("Failed to encode user response", zap.Error(err))
	}
}

// Deactivate handles DELETE /api/users/{uid}
func (h *UsersHandler) Deactivate(w http.ResponseWriter, r *http.Request) {
	userID, ok := ParseUserID(w, r, h.logger)
	if !ok {
		return
	}

	actingUsername := auth.GetUsernameFromContext(r.Context())
	if err := h.userService.Deactivate(r.Context(), actingUsername, userID); err != nil {
		writeServiceError(w, h.logger, err, "deactivate_failed", "Failed to deactivate user")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
