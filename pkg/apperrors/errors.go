package apperrors

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrConflict              = errors.New("conflict")
	ErrLastAdmin             = errors.New("cannot remove last admin")
	ErrStatusLimitReached    = errors.New("status limit reached")
	ErrStatusNameTaken       = errors.New("status name already in use")
	ErrStatusProjectMismatch = errors.New("status belongs to a different project")
	ErrInvalidOwner          = errors.New("owner must be a project developer")
)

// AuthorizationError is returned by authorization rules when the acting user
// may not perform the requested action. The message is part of the API
// contract: handlers surface it verbatim and tests assert on the exact string.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

// NewAuthorizationError creates an AuthorizationError with the given message.
func NewAuthorizationError(message string) *AuthorizationError {
	return &AuthorizationError{Message: message}
}

// IsAuthorization reports whether err is (or wraps) an AuthorizationError.
func IsAuthorization(err error) bool {
	var authErr *AuthorizationError
	return errors.As(err, &authErr)
}
