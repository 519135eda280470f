package ports

import (
	"context"

	"github.com/cognitodo/todo-system/internal/core/domain"
)

type TodoService interface {
	ListMine(ctx context.Context, userID string) ([]domain.Todo, error)
	Create(ctx context.Context, userID, title string) (*domain.Todo, error)
	Update(ctx context.Context, userID, todoID, title string) (*domain.Todo, error)
	ToggleCompleted(ctx context.Context, userID, todoID string) (bool, error)
	Delete(ctx context.Context, userID, todoID string) error
}
