package ports

import (
	"context"
	"io"
	"time"

	"github.com/myproject/todo-management/internal/core/domain"
)

// PhotoUpload is an incoming multipart photo, validated and persisted by the
// photo store. Content is consumed at most once.
type PhotoUpload struct {
	ContentType string
	Size        int64
	Content     io.Reader
}

// RegisterInput carries all data needed to create an account.
type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Password string
	Photo    *PhotoUpload // optional
}

// UpdateUserInput carries profile fields for an account update.
// Password is re-hashed only when non-blank. The photo is replaced
// unconditionally: the old file is removed and Photo (possibly nil) becomes
// the new state.
type UpdateUserInput struct {
	Name      string
	Username  string
	Email     string
	Password  string
	BirthDate *time.Time
	JobTitle  string
	Location  string
	Photo     *PhotoUpload
}

type LoginInput struct {
	UsernameOrEmail string
	Password        string
}

// LoginResult is the payload returned on successful authentication.
type LoginResult struct {
	AccessToken     string
	TokenType       string
	Role            string
	UsernameOrEmail string
}

type UpdatePasswordInput struct {
	OldPassword     string
	NewPassword     string
	ConfirmPassword string
}

// UserPage is one page of users plus paging metadata.
type UserPage struct {
	Data          []*domain.User
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
}

// AuthService implements registration, login and user management.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) error
	UpdateUser(ctx context.Context, caller Caller, userID int64, input UpdateUserInput) error
	DeleteUser(ctx context.Context, userID int64) error
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
	UpdatePassword(ctx context.Context, caller Caller, input UpdatePasswordInput) error
	ListUsers(ctx context.Context, page, size int) (*UserPage, error)
	GetUserByID(ctx context.Context, id int64) (*domain.User, error)
	GetUserByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error)
}
