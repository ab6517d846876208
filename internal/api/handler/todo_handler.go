package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/myproject/todo-management/internal/api/metrics"
	"github.com/myproject/todo-management/internal/core/ports"
)

// TodoHandler handles HTTP requests for todo CRUD and completion toggles.
// Every route runs behind the auth middleware; ownership is enforced in the
// service.
type TodoHandler struct {
	service ports.TodoService
}

func NewTodoHandler(service ports.TodoService) *TodoHandler {
	return &TodoHandler{service: service}
}

// Add creates a todo owned by the caller.
//
// @Summary      Create a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      todoRequest  true  "Todo payload"
// @Success      201   {object}  todoResponse
// @Failure      400   {object}  errorResponse
// @Router       /api/todos [post]
func (h *TodoHandler) Add(c echo.Context) error {
	cl, err := caller(c)
	if err != nil {
		return err
	}

	req, err := bindTodo(c)
	if err != nil {
		return err
	}

	todo, err := h.service.Add(c.Request().Context(), cl, req)
	if err != nil {
		return err
	}

	metrics.TodosCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, toTodoResponse(todo))
}

// Get fetches a single todo through the ownership gate.
//
// @Summary      Get a todo
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Todo id"
// @Success      200  {object}  todoResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/todos/{id} [get]
func (h *TodoHandler) Get(c echo.Context) error {
	cl, err := caller(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	todo, err := h.service.Get(c.Request().Context(), cl, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTodoResponse(todo))
}

// List returns one page of todos, scoped to the caller unless admin.
//
// @Summary      List todos
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        page  query  int  false  "Page number (0-based)"
// @Param        size  query  int  false  "Page size"
// @Success      200   {object}  pagedTodosResponse
// @Router       /api/todos [get]
func (h *TodoHandler) List(c echo.Context) error {
	cl, err := caller(c)
	if err != nil {
		return err
	}

	page, size := pagingParams(c)

	result, err := h.service.List(c.Request().Context(), cl, page, size)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toPagedTodosResponse(result))
}

// Update rewrites a todo through the ownership gate.
//
// @Summary      Update a todo
// @Tags         todos
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int          true  "Todo id"
// @Param        body  body  todoRequest  true  "Todo payload"
// @Success      200   {object}  todoResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /api/todos/{id} [put]
func (h *TodoHandler) Update(c echo.Context) error {
	cl, err := caller(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	req, err := bindTodo(c)
	if err != nil {
		return err
	}

	todo, err := h.service.Update(c.Request().Context(), cl, id, req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTodoResponse(todo))
}

// Delete removes a todo through the ownership gate.
//
// @Summary      Delete a todo
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Todo id"
// @Success      200  {object}  messageResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/todos/{id} [delete]
func (h *TodoHandler) Delete(c echo.Context) error {
	cl, err := caller(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), cl, id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "Todo deleted successfully"})
}

// Complete marks a todo as done.
//
// @Summary      Mark a todo completed
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Todo id"
// @Success      200  {object}  todoResponse
// @Router       /api/todos/{id}/complete [patch]
func (h *TodoHandler) Complete(c echo.Context) error {
	return h.toggle(c, true)
}

// Incomplete marks a todo as not done.
//
// @Summary      Mark a todo incomplete
// @Tags         todos
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "Todo id"
// @Success      200  {object}  todoResponse
// @Router       /api/todos/{id}/in-complete [patch]
func (h *TodoHandler) Incomplete(c echo.Context) error {
	return h.toggle(c, false)
}

func (h *TodoHandler) toggle(c echo.Context, completed bool) error {
	cl, err := caller(c)
	if err != nil {
		return err
	}

	id, err := pathID(c)
	if err != nil {
		return err
	}

	if completed {
		t, err := h.service.Complete(c.Request().Context(), cl, id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, toTodoResponse(t))
	}

	t, err := h.service.Incomplete(c.Request().Context(), cl, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toTodoResponse(t))
}

func bindTodo(c echo.Context) (ports.TodoInput, error) {
	var req todoRequest
	if err := c.Bind(&req); err != nil {
		return ports.TodoInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return ports.TodoInput{}, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return ports.TodoInput{
		Title:       req.Title,
		Description: req.Description,
		Completed:   req.Completed,
	}, nil
}
