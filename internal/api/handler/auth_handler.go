package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cognitodo/todo-system/internal/core/domain"
	"github.com/cognitodo/todo-system/internal/core/ports"
)

const (
	refreshTokenCookie = "refreshToken"
	userIDCookie       = "userId"
)

type AuthHandler struct {
	authService ports.AuthService
	production  bool
}

func NewAuthHandler(authService ports.AuthService, production bool) *AuthHandler {
	return &AuthHandler{authService: authService, production: production}
}

// Register creates the account and logs the user straight in.
//
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration form"
// @Success      201   {object}  authResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]string
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Name:            req.Name,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		return err
	}

	setSessionCookies(c, result, h.production)
	return c.JSON(http.StatusCreated, authResponse{
		User:       result.User,
		Token:      result.Token,
		Expiration: result.Expiration,
	})
}

// Login authenticates against the identity provider and sets the refresh
// cookies.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]string
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return err
	}

	setSessionCookies(c, result, h.production)
	return c.JSON(http.StatusOK, authResponse{
		User:       result.User,
		Token:      result.Token,
		Expiration: result.Expiration,
	})
}

// RefreshSession exchanges the refresh cookie for a fresh bearer token.
// Absent cookies are the normal logged-out state and answer 200 with a null
// body rather than an error.
//
// @Summary      Refresh the bearer token
// @Tags         auth
// @Produce      json
// @Success      200  {object}  authResponse
// @Failure      401  {object}  map[string]string
// @Router       /auth/refreshSession [post]
func (h *AuthHandler) RefreshSession(c echo.Context) error {
	refreshCookie, err := c.Cookie(refreshTokenCookie)
	if err != nil {
		return c.JSON(http.StatusOK, nil)
	}
	userCookie, err := c.Cookie(userIDCookie)
	if err != nil {
		return c.JSON(http.StatusOK, nil)
	}

	result, err := h.authService.Refresh(c.Request().Context(), refreshCookie.Value, userCookie.Value)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Token:      result.Token,
		Expiration: result.Expiration,
	})
}

// Logout clears both session cookies unconditionally.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Success      200  {boolean}  bool
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	clearSessionCookies(c, h.production)
	return c.JSON(http.StatusOK, true)
}

func setSessionCookies(c echo.Context, result *ports.AuthResult, production bool) {
	expires := time.Now().Add(domain.RefreshTokenTTL)
	c.SetCookie(sessionCookie(refreshTokenCookie, result.RefreshToken, expires, production))
	c.SetCookie(sessionCookie(userIDCookie, result.User.ID, expires, production))
}

func clearSessionCookies(c echo.Context, production bool) {
	expired := time.Unix(0, 0)
	c.SetCookie(sessionCookie(refreshTokenCookie, "", expired, production))
	c.SetCookie(sessionCookie(userIDCookie, "", expired, production))
}

// sessionCookie builds an HTTP-only cookie scoped to the whole site.
// Cross-site frontends need SameSite=None, which browsers only accept over
// HTTPS, so None+Secure is reserved for production.
func sessionCookie(name, value string, expires time.Time, production bool) *http.Cookie {
	cookie := &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if production {
		cookie.SameSite = http.SameSiteNoneMode
		cookie.Secure = true
	}
	return cookie
}
