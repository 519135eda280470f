package api

import (
	"context"
	"net/http"

	"github.com/cognitodo/todo-system/internal/core/domain"
)

type updateNameRequest struct {
	Name string `json:"name"`
}

type updateEmailRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type updatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

type passwordRequest struct {
	Password string `json:"password"`
}

type emailRequest struct {
	Email string `json:"email"`
}

func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodGet, "/users/me", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateName(ctx context.Context, name string) (*domain.User, error) {
	var user domain.User
	if err := c.do(ctx, http.MethodPatch, "/users/update-name", updateNameRequest{Name: name}, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) UpdateEmail(ctx context.Context, email, password string) error {
	return c.do(ctx, http.MethodPatch, "/users/update-email",
		updateEmailRequest{Email: email, Password: password}, nil)
}

func (c *Client) UpdatePassword(ctx context.Context, current, next, confirm string) error {
	return c.do(ctx, http.MethodPatch, "/users/update-password",
		updatePasswordRequest{CurrentPassword: current, NewPassword: next, ConfirmPassword: confirm}, nil)
}

func (c *Client) DeleteMe(ctx context.Context, password string) error {
	return c.do(ctx, http.MethodDelete, "/users/delete-me", passwordRequest{Password: password}, nil)
}

func (c *Client) ValidateEmail(ctx context.Context, email string) error {
	return c.do(ctx, http.MethodPost, "/users/validate-email", emailRequest{Email: email}, nil)
}
