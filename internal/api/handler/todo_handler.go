package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cognitodo/todo-system/internal/core/ports"
)

// TodoHandler handles HTTP requests for todo operations. Every route runs
// behind the Auth middleware; ownership checks live in the service.
type TodoHandler struct {
	todoService ports.TodoService
}

func NewTodoHandler(todoService ports.TodoService) *TodoHandler {
	return &TodoHandler{todoService: todoService}
}

// ListMine returns the caller's todos, newest first.
//
// @Summary      List own todos
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.Todo
// @Failure      401  {object}  map[string]string
// @Router       /todos/me [get]
func (h *TodoHandler) ListMine(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	todos, err := h.todoService.ListMine(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, todos)
}

// Create adds a todo owned by the caller.
//
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createTodoRequest  true  "Todo title"
// @Success      201   {object}  domain.Todo
// @Failure      400   {object}  map[string]any
// @Router       /todos [post]
func (h *TodoHandler) Create(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req createTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	todo, err := h.todoService.Create(c.Request().Context(), userID, req.Title)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, todo)
}

// Update edits a todo's title.
//
// @Summary      Update a todo title
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "Todo id"
// @Param        body  body      updateTodoRequest  true  "New title"
// @Success      200   {object}  domain.Todo
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /todos/{id} [patch]
func (h *TodoHandler) Update(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	var req updateTodoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	todo, err := h.todoService.Update(c.Request().Context(), userID, c.Param("id"), req.Title)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, todo)
}

// ToggleCompleted flips a todo's completion flag.
//
// @Summary      Toggle a todo's completion flag
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Todo id"
// @Success      200  {object}  toggleResponse
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /todos/toggleIsCompleted/{id} [patch]
func (h *TodoHandler) ToggleCompleted(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	completed, err := h.todoService.ToggleCompleted(c.Request().Context(), userID, c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toggleResponse{IsCompleted: completed})
}

// Delete removes a todo.
//
// @Summary      Delete a todo
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Todo id"
// @Success      200  {boolean}  bool
// @Failure      403  {object}   map[string]string
// @Failure      404  {object}   map[string]string
// @Router       /todos/{id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	userID, err := ctxUserID(c)
	if err != nil {
		return err
	}

	if err := h.todoService.Delete(c.Request().Context(), userID, c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, true)
}
