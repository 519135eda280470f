package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/cognitodo/todo-system/internal/core/domain"
)

const todoColumns = `id, title, is_completed, user_id, created_at, updated_at`

// TodoRepository persists todo rows.
type TodoRepository struct {
	db DBTX
}

func NewTodoRepository(db DBTX) *TodoRepository {
	return &TodoRepository{db: db}
}

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	query := `
		INSERT INTO todos (id, title, is_completed, user_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + todoColumns

	created, err := scanTodo(r.db.QueryRowContext(ctx, query,
		todo.ID, todo.Title, todo.IsCompleted, todo.UserID, todo.CreatedAt, todo.UpdatedAt))
	if err != nil {
		return nil, fmt.Errorf("insert todo: %w", err)
	}
	return created, nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id string) (*domain.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1`

	todo, err := scanTodo(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return todo, nil
}

func (r *TodoRepository) ListByOwner(ctx context.Context, userID string) ([]domain.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	todos := []domain.Todo{}
	for rows.Next() {
		var t domain.Todo
		if err := rows.Scan(&t.ID, &t.Title, &t.IsCompleted, &t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

func (r *TodoRepository) UpdateTitle(ctx context.Context, id, title string) (*domain.Todo, error) {
	query := `
		UPDATE todos SET title = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + todoColumns

	todo, err := scanTodo(r.db.QueryRowContext(ctx, query, id, title))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("update todo title: %w", err)
	}
	return todo, nil
}

func (r *TodoRepository) SetCompleted(ctx context.Context, id string, completed bool) (*domain.Todo, error) {
	query := `
		UPDATE todos SET is_completed = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + todoColumns

	todo, err := scanTodo(r.db.QueryRowContext(ctx, query, id, completed))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("set todo completed: %w", err)
	}
	return todo, nil
}

func (r *TodoRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func scanTodo(row *sql.Row) (*domain.Todo, error) {
	var t domain.Todo
	if err := row.Scan(&t.ID, &t.Title, &t.IsCompleted, &t.UserID, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return nil, err
	}
	return &t, nil
}
