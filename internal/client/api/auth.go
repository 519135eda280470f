package api

import (
	"context"
	"net/http"

	"github.com/cognitodo/todo-system/internal/core/domain"
)

// AuthResponse mirrors the server's auth envelope. Expiration counts down in
// seconds; the refresh credential arrives only as a cookie.
type AuthResponse struct {
	User       *domain.User `json:"user"`
	Token      string       `json:"token"`
	Expiration int64        `json:"expiration"`
}

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (c *Client) Register(ctx context.Context, name, email, password, confirmPassword string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/register", registerRequest{
		Name:            name,
		Email:           email,
		Password:        password,
		ConfirmPassword: confirmPassword,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var resp AuthResponse
	err := c.do(ctx, http.MethodPost, "/auth/login", loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}

// RefreshSession exchanges the refresh cookie for a new token. A logged-out
// client gets a null body, returned here as a nil response with no error.
func (c *Client) RefreshSession(ctx context.Context) (*AuthResponse, error) {
	var resp *AuthResponse
	if err := c.doOnce(ctx, http.MethodPost, "/auth/refreshSession", nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

func (c *Client) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/auth/logout", nil, nil)
}
