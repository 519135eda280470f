package ports

import (
	"context"

	"github.com/cognitodo/todo-system/internal/core/domain"
)

type UserService interface {
	GetMe(ctx context.Context, userID string) (*domain.User, error)
	UpdateName(ctx context.Context, userID, name string) (*domain.User, error)
	UpdateEmail(ctx context.Context, userID, email, password string) error
	UpdatePassword(ctx context.Context, userID, currentPassword, newPassword, confirmPassword string) error
	DeleteMe(ctx context.Context, userID, password string) error
	ValidateEmail(ctx context.Context, email string) error
}
