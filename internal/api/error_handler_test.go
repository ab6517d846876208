package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/myproject/todo-management/internal/core/domain"
)

func render(t *testing.T, err error) (int, map[string]any) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewHTTPErrorHandler(zerolog.Nop())
	handler(err, c)

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return rec.Code, body
}

func TestErrorHandler_StatusMapping(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"username exists", domain.ErrUsernameExists, http.StatusBadRequest, "Username already exists"},
		{"title exists", domain.ErrTitleExists, http.StatusBadRequest, "Title already exists"},
		{"photo type", domain.ErrPhotoType, http.StatusBadRequest, "Only JPG/PNG files are allowed"},
		{"photo size", domain.ErrPhotoSize, http.StatusBadRequest, "Maximum file size is 2MB"},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Incorrect username or password"},
		{"throttled", domain.ErrTooManyAttempts, http.StatusTooManyRequests, "Too many login attempts. Try again later"},
		{"user missing", domain.ErrUserNotFound, http.StatusNotFound, "User not found"},
		{"password mismatch", domain.ErrPasswordMismatch, http.StatusBadRequest, "New password and confirm password do not match"},
		{"access denied", &domain.AccessError{Action: "delete"}, http.StatusForbidden, "you don't have access to delete another user data"},
		{"todo missing by id", &domain.NotFoundError{Resource: "Todo", ID: 7}, http.StatusNotFound, "Todo not found with id : 7"},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid id"), http.StatusBadRequest, "invalid id"},
		{"unexpected", errors.New("pool exhausted"), http.StatusInternalServerError, "There is an error"},
	}

	for _, tc := range cases {
		code, body := render(t, tc.err)
		if code != tc.wantCode {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.wantCode, code)
		}
		if body["message"] != tc.wantMsg {
			t.Fatalf("%s: unexpected message %q", tc.name, body["message"])
		}
		if body["status"] != float64(tc.wantCode) {
			t.Fatalf("%s: status field mismatch: %v", tc.name, body["status"])
		}
		if body["error"] != http.StatusText(tc.wantCode) {
			t.Fatalf("%s: error field mismatch: %v", tc.name, body["error"])
		}
		if body["timestamp"] == nil {
			t.Fatalf("%s: missing timestamp", tc.name)
		}
	}
}

func TestErrorHandler_PathOnlyOnUnauthorized(t *testing.T) {
	code, body := render(t, domain.ErrInvalidCredentials)
	if code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", code)
	}
	if body["path"] != "/api/test" {
		t.Fatalf("expected path on 401, got %v", body["path"])
	}

	_, body = render(t, domain.ErrTitleExists)
	if _, present := body["path"]; present {
		t.Fatalf("path must be omitted on non-401 responses")
	}
}
