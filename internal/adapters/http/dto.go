// Package http contains the HTTP boundary of the service. It translates
// requests into core calls and core errors into transport responses; no
// business rule lives here.
package http

import (
	"errors"
	"net/http"

	"notekeeper/internal/domain/entities"
)

// RegisterRequest is the user registration payload.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginRequest is the credential pair for token issuance.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}

// ChangePasswordRequest is the password rotation payload.
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// CreateNoteRequest is the note creation payload. Any owner field a client
// sends is simply absent here: ownership comes from the token.
type CreateNoteRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateNoteRequest is the note update payload.
type UpdateNoteRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// statusFromError maps core error kinds to transport status codes.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, entities.ErrUserAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, entities.ErrUserNotFound), errors.Is(err, entities.ErrNoteNotFound):
		return http.StatusNotFound
	case errors.Is(err, entities.ErrSuperAdminRestricted):
		return http.StatusForbidden
	case errors.Is(err, entities.ErrWrongOldPassword), errors.Is(err, entities.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, entities.ErrInvalidEmail), errors.Is(err, entities.ErrInvalidRole),
		errors.Is(err, entities.ErrEmptyPassword):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
