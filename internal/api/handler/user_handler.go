package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cognitodo/todo-system/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
	production  bool
}

func NewUserHandler(userService ports.UserService, production bool) *UserHandler {
	return &UserHandler{userService: userService, production: production}
}

// Me returns the authenticated user's profile.
//
// @Summary      Get own profile
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.User
// @Failure      401  {object}  map[string]string
// @Router       /users/me [get]
func (h *UserHandler) Me(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	user, err := h.userService.GetMe(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateName changes the display name.
//
// @Summary      Update display name
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateNameRequest  true  "New name"
// @Success      200   {object}  domain.User
// @Router       /users/update-name [patch]
func (h *UserHandler) UpdateName(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateNameRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.userService.UpdateName(c.Request().Context(), userID, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// UpdateEmail changes the login email after re-authenticating.
//
// @Summary      Update email
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateEmailRequest  true  "New email and current password"
// @Success      200   {boolean}  bool
// @Failure      403   {object}   map[string]string
// @Router       /users/update-email [patch]
func (h *UserHandler) UpdateEmail(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.userService.UpdateEmail(c.Request().Context(), userID, req.Email, req.Password); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, true)
}

// UpdatePassword rotates the password at the identity provider.
//
// @Summary      Update password
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updatePasswordRequest  true  "Current and new password"
// @Success      200   {boolean}  bool
// @Failure      400   {object}   map[string]any
// @Router       /users/update-password [patch]
func (h *UserHandler) UpdatePassword(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err = h.userService.UpdatePassword(c.Request().Context(), userID,
		req.CurrentPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, true)
}

// DeleteMe removes the account and ends the session.
//
// @Summary      Delete own account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      deleteMeRequest  true  "Current password"
// @Success      200   {boolean}  bool
// @Failure      403   {object}   map[string]string
// @Router       /users/delete-me [delete]
func (h *UserHandler) DeleteMe(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req deleteMeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.userService.DeleteMe(c.Request().Context(), userID, req.Password); err != nil {
		return err
	}

	// The account is gone; the refresh cookies are useless now.
	clearSessionCookies(c, h.production)
	return c.JSON(http.StatusOK, true)
}

// ValidateEmail reports whether an email is still free to register.
//
// @Summary      Check email availability
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      validateEmailRequest  true  "Email to check"
// @Success      200   {boolean}  bool
// @Failure      403   {object}   map[string]string
// @Router       /users/validate-email [post]
func (h *UserHandler) ValidateEmail(c echo.Context) error {
	var req validateEmailRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	if err := h.userService.ValidateEmail(c.Request().Context(), req.Email); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, true)
}
