// Package api is the HTTP client for the todo service. It injects the bearer
// token, keeps the refresh cookies in a jar, and retries a request once after
// an unexpected 401 by forcing a token refresh.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"strings"
	"time"
)

// TokenSource supplies the current bearer token and can force a refresh.
// Implemented by session.Manager.
type TokenSource interface {
	Token() string
	Refresh(ctx context.Context) error
}

// Error is a non-2xx response decoded from the server's error envelope.
type Error struct {
	StatusCode  int
	Message     string
	FieldErrors map[string][]string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api: %d %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api: status %d", e.StatusCode)
}

// Client talks to one todo service instance.
type Client struct {
	http    *http.Client
	baseURL string
	tokens  TokenSource
}

// New creates a Client for baseURL. The cookie jar holds the HTTP-only
// refresh cookies the server sets on login.
func New(baseURL string, tokens TokenSource) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("api: cookie jar: %w", err)
	}
	return &Client{
		http:    &http.Client{Jar: jar, Timeout: 30 * time.Second},
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
	}, nil
}

// SetTokens installs the token source after construction. Lets the session
// manager's refresh call go through this same client.
func (c *Client) SetTokens(tokens TokenSource) {
	c.tokens = tokens
}

// do sends one JSON request and decodes the response into out (skipped when
// out is nil). A 401 on an authenticated request triggers a single
// out-of-band refresh and retry; a second 401 is returned as-is.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	err := c.doOnce(ctx, method, path, body, out)
	if apiErr, ok := err.(*Error); ok && apiErr.StatusCode == http.StatusUnauthorized && c.tokens != nil {
		if refreshErr := c.tokens.Refresh(ctx); refreshErr != nil {
			return err
		}
		return c.doOnce(ctx, method, path, body, out)
	}
	return err
}

func (c *Client) doOnce(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("api: encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("api: build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token := c.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("api: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("api: decode response: %w", err)
	}
	return nil
}

func decodeError(resp *http.Response) error {
	apiErr := &Error{StatusCode: resp.StatusCode}

	var envelope struct {
		Error       string              `json:"error"`
		FieldErrors map[string][]string `json:"fieldErrors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil {
		apiErr.Message = envelope.Error
		apiErr.FieldErrors = envelope.FieldErrors
	}
	return apiErr
}
