package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cognitodo/todo-system/internal/core/domain"
	"github.com/cognitodo/todo-system/internal/core/ports"
)

type stubAuthService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	refreshFn  func(ctx context.Context, refreshToken, userID string) (*ports.TokenResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken, userID string) (*ports.TokenResult, error) {
	return s.refreshFn(ctx, refreshToken, userID)
}

func newTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func cookieByName(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func authResult() *ports.AuthResult {
	return &ports.AuthResult{
		User:         &domain.User{ID: "user-1", Email: "alice@example.com", Role: domain.RoleUser},
		Token:        "id-token",
		RefreshToken: "refresh-token",
		Expiration:   3300,
	}
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, email, password string) (*ports.AuthResult, error) {
			if email != "alice@example.com" || password != "secret" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return authResult(), nil
		},
	}
	h := NewAuthHandler(stub, false)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"secret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "id-token" {
		t.Fatalf("expected token, got %v", resp["token"])
	}
	if resp["expiration"] != float64(3300) {
		t.Fatalf("expected expiration 3300, got %v", resp["expiration"])
	}
	if _, present := resp["refreshToken"]; present {
		t.Fatalf("refresh token must not appear in the body")
	}

	refresh := cookieByName(rec, "refreshToken")
	if refresh == nil || refresh.Value != "refresh-token" {
		t.Fatalf("refresh cookie not set: %+v", refresh)
	}
	if !refresh.HttpOnly || refresh.Path != "/" {
		t.Fatalf("refresh cookie misconfigured: %+v", refresh)
	}
	if refresh.SameSite != http.SameSiteLaxMode || refresh.Secure {
		t.Fatalf("development cookies must be Lax and not Secure: %+v", refresh)
	}
	userCookie := cookieByName(rec, "userId")
	if userCookie == nil || userCookie.Value != "user-1" {
		t.Fatalf("user cookie not set: %+v", userCookie)
	}
}

func TestAuthHandler_Login_ProductionCookiePolicy(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.AuthResult, error) {
			return authResult(), nil
		},
	}
	h := NewAuthHandler(stub, true)

	c, rec := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"secret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	refresh := cookieByName(rec, "refreshToken")
	if refresh.SameSite != http.SameSiteNoneMode || !refresh.Secure {
		t.Fatalf("production cookies must be None+Secure: %+v", refresh)
	}
}

func TestAuthHandler_Login_PropagatesCredentialError(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.AuthResult, error) {
			return nil, domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub, false)

	c, _ := newTestContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"bad"}`)
	if err := h.Login(c); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthHandler_Login_ValidationFailure(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(context.Context, string, string) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, false)

	c, _ := newTestContext(t, http.MethodPost, "/auth/login", `{"email":"not-an-email"}`)
	err := h.Login(c)
	fieldErrs, ok := domain.AsFieldErrors(err)
	if !ok {
		t.Fatalf("expected field errors, got %v", err)
	}
	if len(fieldErrs["email"]) == 0 || len(fieldErrs["password"]) == 0 {
		t.Fatalf("expected email and password messages, got %v", fieldErrs)
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
			if in.Email != "alice@example.com" || in.ConfirmPassword != "secret123" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return authResult(), nil
		},
	}
	h := NewAuthHandler(stub, false)

	c, rec := newTestContext(t, http.MethodPost, "/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"secret123","confirmPassword":"secret123"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if cookieByName(rec, "refreshToken") == nil {
		t.Fatalf("registration must log the user in")
	}
}

func TestAuthHandler_Register_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		registerFn: func(context.Context, ports.RegisterInput) (*ports.AuthResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, false)

	c, _ := newTestContext(t, http.MethodPost, "/auth/register", "not-json")
	err := h.Register(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestAuthHandler_RefreshSession_MissingCookies(t *testing.T) {
	stub := &stubAuthService{
		refreshFn: func(context.Context, string, string) (*ports.TokenResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	h := NewAuthHandler(stub, false)

	c, rec := newTestContext(t, http.MethodPost, "/auth/refreshSession", "")
	if err := h.RefreshSession(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	// Logged-out visitors are normal, not an error.
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "null" {
		t.Fatalf("expected null body, got %q", body)
	}
}

func TestAuthHandler_RefreshSession_Success(t *testing.T) {
	stub := &stubAuthService{
		refreshFn: func(_ context.Context, refreshToken, userID string) (*ports.TokenResult, error) {
			if refreshToken != "refresh-token" || userID != "user-1" {
				t.Fatalf("unexpected args: %s %s", refreshToken, userID)
			}
			return &ports.TokenResult{Token: "fresh-token", Expiration: 3300}, nil
		},
	}
	h := NewAuthHandler(stub, false)

	c, rec := newTestContext(t, http.MethodPost, "/auth/refreshSession", "")
	c.Request().AddCookie(&http.Cookie{Name: "refreshToken", Value: "refresh-token"})
	c.Request().AddCookie(&http.Cookie{Name: "userId", Value: "user-1"})

	if err := h.RefreshSession(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "fresh-token" {
		t.Fatalf("expected fresh token, got %v", resp["token"])
	}
}

func TestAuthHandler_Logout_ClearsCookies(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, false)

	c, rec := newTestContext(t, http.MethodPost, "/auth/logout", "")
	if err := h.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	for _, name := range []string{"refreshToken", "userId"} {
		cookie := cookieByName(rec, name)
		if cookie == nil {
			t.Fatalf("%s cookie not cleared", name)
		}
		if cookie.Value != "" || cookie.Expires.After(time.Now()) {
			t.Fatalf("%s cookie still live: %+v", name, cookie)
		}
	}
}
