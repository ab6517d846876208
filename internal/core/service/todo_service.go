package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/myproject/todo-management/internal/core/domain"
	"github.com/myproject/todo-management/internal/core/ports"
)

// TodoService implements the todo use cases with per-resource ownership
// checks: non-admins may only act on todos they created.
type TodoService struct {
	todos  ports.TodoRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewTodoService(todos ports.TodoRepository, users ports.UserRepository, logger zerolog.Logger) *TodoService {
	return &TodoService{todos: todos, users: users, logger: logger}
}

// Add creates a todo owned by the caller. Title must be unique per owner;
// the same title under a different user is fine.
func (s *TodoService) Add(ctx context.Context, caller ports.Caller, input ports.TodoInput) (*domain.Todo, error) {
	user, err := s.users.FindByUsername(ctx, caller.Username)
	if err != nil {
		return nil, err
	}

	exists, err := s.todos.ExistsByTitleAndUser(ctx, input.Title, user.ID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrTitleExists
	}

	now := time.Now().UTC()
	todo := &domain.Todo{
		Title:       input.Title,
		Description: input.Description,
		Completed:   input.Completed,
		UserID:      user.ID,
		CreatedAt:   now,
		CreatedBy:   caller.Username,
		UpdatedAt:   now,
	}

	created, err := s.todos.Create(ctx, todo)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Int64("todo_id", created.ID).Str("created_by", caller.Username).Msg("todo created")
	return created, nil
}

func (s *TodoService) Get(ctx context.Context, caller ports.Caller, id int64) (*domain.Todo, error) {
	return s.getWithAccessCheck(ctx, caller, id, "view")
}

// List returns one page of todos, scoped to the caller unless admin.
func (s *TodoService) List(ctx context.Context, caller ports.Caller, page, size int) (*ports.TodoPage, error) {
	page, size = normalizePaging(page, size)

	filter := ports.TodoListFilter{Page: page, Size: size}
	if !caller.IsAdmin() {
		filter.CreatedBy = caller.Username
	}

	todos, total, err := s.todos.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	return &ports.TodoPage{
		Data:          todos,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages(total, size),
	}, nil
}

func (s *TodoService) Update(ctx context.Context, caller ports.Caller, id int64, input ports.TodoInput) (*domain.Todo, error) {
	todo, err := s.getWithAccessCheck(ctx, caller, id, "update")
	if err != nil {
		return nil, err
	}

	todo.Title = input.Title
	todo.Description = input.Description
	todo.Completed = input.Completed
	return s.save(ctx, caller, todo)
}

func (s *TodoService) Delete(ctx context.Context, caller ports.Caller, id int64) error {
	todo, err := s.getWithAccessCheck(ctx, caller, id, "delete")
	if err != nil {
		return err
	}

	if err := s.todos.Delete(ctx, todo.ID); err != nil {
		return err
	}

	s.logger.Info().Int64("todo_id", todo.ID).Str("deleted_by", caller.Username).Msg("todo deleted")
	return nil
}

func (s *TodoService) Complete(ctx context.Context, caller ports.Caller, id int64) (*domain.Todo, error) {
	todo, err := s.getWithAccessCheck(ctx, caller, id, "completed")
	if err != nil {
		return nil, err
	}

	todo.Completed = true
	return s.save(ctx, caller, todo)
}

func (s *TodoService) Incomplete(ctx context.Context, caller ports.Caller, id int64) (*domain.Todo, error) {
	todo, err := s.getWithAccessCheck(ctx, caller, id, "incompleted")
	if err != nil {
		return nil, err
	}

	todo.Completed = false
	return s.save(ctx, caller, todo)
}

// getWithAccessCheck loads a todo and enforces the ownership gate. The action
// name ends up in the Forbidden message shown to the client.
func (s *TodoService) getWithAccessCheck(ctx context.Context, caller ports.Caller, id int64, action string) (*domain.Todo, error) {
	todo, err := s.todos.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrTodoNotFound) {
			return nil, &domain.NotFoundError{Resource: "Todo", ID: id}
		}
		return nil, err
	}

	if !caller.IsAdmin() && todo.CreatedBy != caller.Username {
		return nil, &domain.AccessError{Action: action}
	}
	return todo, nil
}

func (s *TodoService) save(ctx context.Context, caller ports.Caller, todo *domain.Todo) (*domain.Todo, error) {
	todo.UpdatedAt = time.Now().UTC()
	todo.UpdatedBy = caller.Username

	if err := s.todos.Update(ctx, todo); err != nil {
		return nil, err
	}
	return todo, nil
}
