package ports

import (
	"context"

	"github.com/cognitodo/todo-system/internal/core/domain"
)

// TodoRepository defines persistence for todo rows. FindByID is the single
// choke point mutating operations use to load the row for the ownership check.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	FindByID(ctx context.Context, id string) (*domain.Todo, error)
	ListByOwner(ctx context.Context, userID string) ([]domain.Todo, error)
	UpdateTitle(ctx context.Context, id, title string) (*domain.Todo, error)
	SetCompleted(ctx context.Context, id string, completed bool) (*domain.Todo, error)
	Delete(ctx context.Context, id string) error
}
