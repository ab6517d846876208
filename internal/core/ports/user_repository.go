package ports

import (
	"context"

	"github.com/myproject/todo-management/internal/core/domain"
)

// UserRepository defines persistence operations for user accounts.
// Lookups return domain.ErrUserNotFound when no row matches. Writes that
// touch more than one table run inside a single transaction.
type UserRepository interface {
	// Create inserts the user and its role links, returning the new id.
	Create(ctx context.Context, user *domain.User) (int64, error)
	// Update rewrites the profile fields of an existing user. Roles are untouched.
	Update(ctx context.Context, user *domain.User) error
	// Delete removes the user together with its todos and role links.
	Delete(ctx context.Context, userID int64) error

	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByUsernameOrEmail matches the identifier against either column.
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error)

	// List returns one page of users ordered by id and the total row count.
	List(ctx context.Context, page, size int) ([]*domain.User, int64, error)

	UpdatePassword(ctx context.Context, userID int64, passwordHash, updatedBy string) error
	// TouchAudit stamps updated_at/updated_by without changing anything else.
	TouchAudit(ctx context.Context, userID int64, updatedBy string) error
}
