package ports

import (
	"context"

	"github.com/myproject/todo-management/internal/core/domain"
)

// TodoListFilter carries the query parameters for listing todos.
// An empty CreatedBy means no owner filter (admin view).
type TodoListFilter struct {
	CreatedBy string
	Page      int // 0-based
	Size      int
}

// TodoRepository defines persistence operations for todos.
// Lookups return domain.ErrTodoNotFound when no row matches.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	Update(ctx context.Context, todo *domain.Todo) error
	Delete(ctx context.Context, id int64) error
	FindByID(ctx context.Context, id int64) (*domain.Todo, error)
	ExistsByTitleAndUser(ctx context.Context, title string, userID int64) (bool, error)
	// List returns one page of todos matching filter and the total count.
	List(ctx context.Context, filter TodoListFilter) ([]*domain.Todo, int64, error)
}
