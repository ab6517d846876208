package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/myproject/todo-management/internal/core/ports"
)

// caller extracts the identity injected by the Auth middleware. A missing
// role means the middleware never ran for this route; fail fast with 401
// before any service call.
func caller(c echo.Context) (ports.Caller, error) {
	username, _ := c.Get("username").(string)
	role, _ := c.Get("role").(string)
	if username == "" || role == "" {
		return ports.Caller{}, echo.NewHTTPError(http.StatusUnauthorized, "You are not authorized. Please log in first.")
	}
	return ports.Caller{Username: username, Role: role}, nil
}
