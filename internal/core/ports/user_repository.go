package ports

import (
	"context"

	"github.com/cognitodo/todo-system/internal/core/domain"
)

// UserRepository defines persistence for user rows.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateName(ctx context.Context, id, name string) (*domain.User, error)
	UpdateEmail(ctx context.Context, id, email string) error
	Delete(ctx context.Context, id string) error

	// WithTx runs fn against a repository view bound to a single store
	// transaction. The transaction commits when fn returns nil and rolls
	// back otherwise, so identity-provider calls staged inside fn can abort
	// the persisted write.
	WithTx(ctx context.Context, fn func(ctx context.Context, repo UserRepository) error) error
}
