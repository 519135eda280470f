package ports

import (
	"context"

	"github.com/cognitodo/todo-system/internal/core/domain"
)

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
}

// AuthResult is returned by Login and Register. Expiration is a
// client-relative countdown in seconds, already reduced by a safety margin.
type AuthResult struct {
	User         *domain.User
	Token        string
	RefreshToken string
	Expiration   int64
}

// TokenResult is returned by Refresh: a fresh bearer token only, the refresh
// credential in the cookie stays as-is.
type TokenResult struct {
	Token      string
	Expiration int64
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	Refresh(ctx context.Context, refreshToken, userID string) (*TokenResult, error)
}
