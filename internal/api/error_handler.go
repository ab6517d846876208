package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/myproject/todo-management/internal/core/domain"
)

// timestampLayout matches the original API contract; clients parse it.
const timestampLayout = "2006:01:02 15:04:05"

// errorResponse is the canonical error envelope for all API errors.
// Path is only populated on 401 responses.
type errorResponse struct {
	Error     string `json:"error"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
	Status    int    `json:"status"`
	Path      string `json:"path,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders the uniform envelope {error, message, timestamp, status[, path]}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)

		resp := errorResponse{
			Error:     http.StatusText(code),
			Message:   msg,
			Timestamp: time.Now().Format(timestampLayout),
			Status:    code,
		}
		if code == http.StatusUnauthorized {
			resp.Path = c.Request().URL.Path
		}

		_ = c.JSON(code, resp)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Ownership violations carry the attempted action in the message.
	var ae *domain.AccessError
	if errors.As(err, &ae) {
		return http.StatusForbidden, ae.Error()
	}

	var nfe *domain.NotFoundError
	if errors.As(err, &nfe) {
		return http.StatusNotFound, nfe.Error()
	}

	// Business-rule violations keep their messages; everything below is
	// deliberately client-safe.
	switch {
	case errors.Is(err, domain.ErrUsernameExists),
		errors.Is(err, domain.ErrEmailExists),
		errors.Is(err, domain.ErrUsernameTaken),
		errors.Is(err, domain.ErrEmailTaken),
		errors.Is(err, domain.ErrTitleExists),
		errors.Is(err, domain.ErrPhotoType),
		errors.Is(err, domain.ErrPhotoSize),
		errors.Is(err, domain.ErrPasswordMismatch),
		errors.Is(err, domain.ErrOldPasswordWrong):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, err.Error()
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid or expired token"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, err.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, "User not found"
	case errors.Is(err, domain.ErrTodoNotFound):
		return http.StatusNotFound, "Todo not found"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "There is an error"
}
