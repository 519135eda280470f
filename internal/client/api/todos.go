package api

import (
	"context"
	"net/http"

	"github.com/cognitodo/todo-system/internal/core/domain"
)

type todoTitleRequest struct {
	Title string `json:"title"`
}

type toggleResponse struct {
	IsCompleted bool `json:"isCompleted"`
}

func (c *Client) ListTodos(ctx context.Context) ([]domain.Todo, error) {
	var todos []domain.Todo
	if err := c.do(ctx, http.MethodGet, "/todos/me", nil, &todos); err != nil {
		return nil, err
	}
	return todos, nil
}

func (c *Client) CreateTodo(ctx context.Context, title string) (*domain.Todo, error) {
	var todo domain.Todo
	if err := c.do(ctx, http.MethodPost, "/todos", todoTitleRequest{Title: title}, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *Client) UpdateTodo(ctx context.Context, id, title string) (*domain.Todo, error) {
	var todo domain.Todo
	if err := c.do(ctx, http.MethodPatch, "/todos/"+id, todoTitleRequest{Title: title}, &todo); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (c *Client) ToggleTodo(ctx context.Context, id string) (bool, error) {
	var resp toggleResponse
	if err := c.do(ctx, http.MethodPatch, "/todos/toggleIsCompleted/"+id, nil, &resp); err != nil {
		return false, err
	}
	return resp.IsCompleted, nil
}

func (c *Client) DeleteTodo(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/todos/"+id, nil, nil)
}
