package ports

import (
	"context"

	"github.com/myproject/todo-management/internal/core/domain"
)

// TodoInput carries the writable fields of a todo.
type TodoInput struct {
	Title       string
	Description string
	Completed   bool
}

// TodoPage is one page of todos plus paging metadata.
type TodoPage struct {
	Data          []*domain.Todo
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
}

// TodoService defines the todo use cases. Every operation receives the
// caller explicitly; non-admins may only act on their own todos.
type TodoService interface {
	Add(ctx context.Context, caller Caller, input TodoInput) (*domain.Todo, error)
	Get(ctx context.Context, caller Caller, id int64) (*domain.Todo, error)
	List(ctx context.Context, caller Caller, page, size int) (*TodoPage, error)
	Update(ctx context.Context, caller Caller, id int64, input TodoInput) (*domain.Todo, error)
	Delete(ctx context.Context, caller Caller, id int64) error
	Complete(ctx context.Context, caller Caller, id int64) (*domain.Todo, error)
	Incomplete(ctx context.Context, caller Caller, id int64) (*domain.Todo, error)
}
