package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/tracklight-io/tracklight-engine/pkg/apperrors"
)

// writeServiceError maps a service error onto an HTTP response. Authorization
// denials carry their rule's message verbatim; domain sentinels get stable
// error codes. Anything unrecognized is logged and reported as the given
// fallback.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error, fallbackCode, fallbackMessage string) {
	var writeErr error

	var authErr *apperrors.AuthorizationError
	switch {
	case errors.As(err, &authErr):
		writeErr = ErrorResponse(w, http.StatusForbidden, "forbidden", authErr.Message)
	case errors.Is(err, apperrors.ErrNotFound):
		writeErr = ErrorResponse(w, http.StatusNotFound, "not_found", "Resource not found")
	case errors.Is(err, apperrors.ErrConflict):
		writeErr = ErrorResponse(w, http.StatusConflict, "conflict", "Resource already exists")
	case errors.Is(err, apperrors.ErrLastAdmin):
		writeErr = ErrorResponse(w, http.StatusConflict, "last_admin", "Cannot remove the project's last admin")
	case errors.Is(err, apperrors.ErrStatusNameTaken):
		writeErr = ErrorResponse(w, http.StatusConflict, "status_name_taken", "A status with this name already exists in the project")
	case errors.Is(err, apperrors.ErrStatusLimitReached):
		writeErr = ErrorResponse(w, http.StatusConflict, "status_limit_reached", "The project has reached its status limit")
	case errors.Is(err, apperrors.ErrStatusProjectMismatch):
		writeErr = ErrorResponse(w, http.StatusUnprocessableEntity, "status_project_mismatch", "Status does not belong to this project")
	case errors.Is(err, apperrors.ErrInvalidOwner):
		writeErr = ErrorResponse(w, http.StatusUnprocessableEntity, "invalid_owner", "Owner must be a project member with developer role or higher")
	default:
		logger.Error("Request failed", zap.Error(err))
		writeErr = ErrorResponse(w, http.StatusInternalServerError, fallbackCode, fallbackMessage)
	}

	if writeErr != nil {
		logger.Error("Failed to write error response", zap.Error(writeErr))
	}
}
