package handler

import (
	"github.com/cognitodo/todo-system/internal/core/domain"
)

type registerRequest struct {
	Name            string `json:"name" validate:"max=100"`
	Email           string `json:"email" validate:"required,email"`
	Password        string `json:"password" validate:"required,min=8"`
	ConfirmPassword string `json:"confirmPassword" validate:"required"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// authResponse carries the bearer token and its countdown in seconds. The
// refresh token never appears in a body; it travels in the HTTP-only cookie.
type authResponse struct {
	User       *domain.User `json:"user,omitempty"`
	Token      string       `json:"token"`
	Expiration int64        `json:"expiration"`
}
