package domain

import (
	"errors"
	"fmt"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameExists     = errors.New("Username already exists")
	ErrEmailExists        = errors.New("Email already exists")
	ErrUsernameTaken      = errors.New("Username already taken")
	ErrEmailTaken         = errors.New("Email already taken")
	ErrInvalidCredentials = errors.New("Incorrect username or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
	ErrTooManyAttempts    = errors.New("Too many login attempts. Try again later")
	ErrPasswordMismatch   = errors.New("New password and confirm password do not match")
	ErrOldPasswordWrong   = errors.New("Old password is incorrect")

	ErrTodoNotFound = errors.New("todo not found")
	ErrTitleExists  = errors.New("Title already exists")

	ErrPhotoType = errors.New("Only JPG/PNG files are allowed")
	ErrPhotoSize = errors.New("Maximum file size is 2MB")
)

// AccessError is raised when a non-admin touches another user's resource.
// Action names the attempted operation so the client message can disambiguate
// (view, update, delete, completed, incompleted).
type AccessError struct {
	Action string
}

func (e *AccessError) Error() string {
	return fmt.Sprintf("you don't have access to %s another user data", e.Action)
}

// NotFoundError carries the id the lookup failed on.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id : %d", e.Resource, e.ID)
}

func (e *NotFoundError) Is(target error) bool {
	switch e.Resource {
	case "Todo":
		return target == ErrTodoNotFound
	case "User":
		return target == ErrUserNotFound
	}
	return false
}
