package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/myproject/todo-management/internal/core/domain"
	"github.com/myproject/todo-management/internal/core/ports"
)

type stubTodoRepo struct {
	todos  map[int64]*domain.Todo
	nextID int64
}

func newStubTodoRepo() *stubTodoRepo {
	return &stubTodoRepo{todos: make(map[int64]*domain.Todo)}
}

func cloneTodo(t *domain.Todo) *domain.Todo {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func (r *stubTodoRepo) Create(_ context.Context, todo *domain.Todo) (*domain.Todo, error) {
	r.nextID++
	copy := cloneTodo(todo)
	copy.ID = r.nextID
	r.todos[copy.ID] = cloneTodo(copy)
	return copy, nil
}

func (r *stubTodoRepo) Update(_ context.Context, todo *domain.Todo) error {
	if _, ok := r.todos[todo.ID]; !ok {
		return domain.ErrTodoNotFound
	}
	r.todos[todo.ID] = cloneTodo(todo)
	return nil
}

func (r *stubTodoRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.todos[id]; !ok {
		return domain.ErrTodoNotFound
	}
	delete(r.todos, id)
	return nil
}

func (r *stubTodoRepo) FindByID(_ context.Context, id int64) (*domain.Todo, error) {
	if t, ok := r.todos[id]; ok {
		return cloneTodo(t), nil
	}
	return nil, domain.ErrTodoNotFound
}

func (r *stubTodoRepo) ExistsByTitleAndUser(_ context.Context, title string, userID int64) (bool, error) {
	for _, t := range r.todos {
		if t.Title == title && t.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubTodoRepo) List(_ context.Context, filter ports.TodoListFilter) ([]*domain.Todo, int64, error) {
	var all []*domain.Todo
	for id := int64(1); id <= r.nextID; id++ {
		t, ok := r.todos[id]
		if !ok {
			continue
		}
		if filter.CreatedBy != "" && t.CreatedBy != filter.CreatedBy {
			continue
		}
		all = append(all, cloneTodo(t))
	}
	total := int64(len(all))
	start := filter.Page * filter.Size
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + filter.Size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func newTestTodoService() (*TodoService, *stubTodoRepo, *stubUserRepo) {
	todos := newStubTodoRepo()
	users := newStubUserRepo()
	svc := NewTodoService(todos, users, zerolog.Nop())
	return svc, todos, users
}

func seedUser(t *testing.T, users *stubUserRepo, username string) ports.Caller {
	t.Helper()
	_, err := users.Create(context.Background(), &domain.User{
		Name:     username,
		Username: username,
		Email:    username + "@example.com",
		Roles:    []string{domain.RoleUser},
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return ports.Caller{Username: username, Role: domain.RoleUser}
}

func addTodo(t *testing.T, svc *TodoService, caller ports.Caller, title string) *domain.Todo {
	t.Helper()
	todo, err := svc.Add(context.Background(), caller, ports.TodoInput{Title: title, Description: "desc"})
	if err != nil {
		t.Fatalf("add todo %q: %v", title, err)
	}
	return todo
}

func TestTodoService_Add(t *testing.T) {
	svc, _, users := newTestTodoService()
	alice := seedUser(t, users, "alice")

	todo := addTodo(t, svc, alice, "buy milk")
	if todo.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if todo.CreatedBy != "alice" {
		t.Fatalf("unexpected created_by: %q", todo.CreatedBy)
	}
	if todo.Completed {
		t.Fatalf("new todo should not be completed")
	}
}

func TestTodoService_Add_DuplicateTitlePerUser(t *testing.T) {
	svc, _, users := newTestTodoService()
	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")

	addTodo(t, svc, alice, "buy milk")

	_, err := svc.Add(context.Background(), alice, ports.TodoInput{Title: "buy milk"})
	if !errors.Is(err, domain.ErrTitleExists) {
		t.Fatalf("expected ErrTitleExists, got %v", err)
	}

	// The same title under a different owner is fine.
	if _, err := svc.Add(context.Background(), bob, ports.TodoInput{Title: "buy milk"}); err != nil {
		t.Fatalf("cross-user title should be allowed: %v", err)
	}
}

func TestTodoService_OwnershipGatePerAction(t *testing.T) {
	svc, _, users := newTestTodoService()
	alice := seedUser(t, users, "alice")
	mallory := seedUser(t, users, "mallory")
	todo := addTodo(t, svc, alice, "secret plan")

	cases := []struct {
		action string
		call   func() error
	}{
		{"view", func() error { _, err := svc.Get(context.Background(), mallory, todo.ID); return err }},
		{"update", func() error {
			_, err := svc.Update(context.Background(), mallory, todo.ID, ports.TodoInput{Title: "x"})
			return err
		}},
		{"delete", func() error { return svc.Delete(context.Background(), mallory, todo.ID) }},
		{"completed", func() error { _, err := svc.Complete(context.Background(), mallory, todo.ID); return err }},
		{"incompleted", func() error { _, err := svc.Incomplete(context.Background(), mallory, todo.ID); return err }},
	}
	for _, tc := range cases {
		err := tc.call()
		var accessErr *domain.AccessError
		if !errors.As(err, &accessErr) {
			t.Fatalf("%s: expected AccessError, got %v", tc.action, err)
		}
		want := "you don't have access to " + tc.action + " another user data"
		if accessErr.Error() != want {
			t.Fatalf("%s: unexpected message %q", tc.action, accessErr.Error())
		}
	}
}

func TestTodoService_AdminBypassesOwnership(t *testing.T) {
	svc, _, users := newTestTodoService()
	alice := seedUser(t, users, "alice")
	todo := addTodo(t, svc, alice, "chore")
	admin := ports.Caller{Username: "root", Role: domain.RoleAdmin}

	if _, err := svc.Get(context.Background(), admin, todo.ID); err != nil {
		t.Fatalf("admin get failed: %v", err)
	}
	if err := svc.Delete(context.Background(), admin, todo.ID); err != nil {
		t.Fatalf("admin delete failed: %v", err)
	}
}

func TestTodoService_CompleteIncomplete(t *testing.T) {
	svc, _, users := newTestTodoService()
	alice := seedUser(t, users, "alice")
	todo := addTodo(t, svc, alice, "laundry")

	done, err := svc.Complete(context.Background(), alice, todo.ID)
	if err != nil {
		t.Fatalf("complete failed: %v", err)
	}
	if !done.Completed {
		t.Fatalf("expected completed=true")
	}
	if done.UpdatedBy != "alice" {
		t.Fatalf("expected updated_by alice, got %q", done.UpdatedBy)
	}

	undone, err := svc.Incomplete(context.Background(), alice, todo.ID)
	if err != nil {
		t.Fatalf("incomplete failed: %v", err)
	}
	if undone.Completed {
		t.Fatalf("expected completed=false")
	}
}

func TestTodoService_Get_NotFound(t *testing.T) {
	svc, _, users := newTestTodoService()
	alice := seedUser(t, users, "alice")

	_, err := svc.Get(context.Background(), alice, 99)
	var nf *domain.NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected NotFoundError, got %v", err)
	}
	if nf.Error() != "Todo not found with id : 99" {
		t.Fatalf("unexpected message: %q", nf.Error())
	}
}

func TestTodoService_List_ScopedToCaller(t *testing.T) {
	svc, _, users := newTestTodoService()
	alice := seedUser(t, users, "alice")
	bob := seedUser(t, users, "bob")
	addTodo(t, svc, alice, "a1")
	addTodo(t, svc, alice, "a2")
	addTodo(t, svc, bob, "b1")

	page, err := svc.List(context.Background(), alice, 0, 10)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if page.TotalElements != 2 {
		t.Fatalf("expected alice to see 2 todos, got %d", page.TotalElements)
	}
	for _, todo := range page.Data {
		if todo.CreatedBy != "alice" {
			t.Fatalf("leaked todo from %q", todo.CreatedBy)
		}
	}

	admin := ports.Caller{Username: "root", Role: domain.RoleAdmin}
	page, err = svc.List(context.Background(), admin, 0, 10)
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if page.TotalElements != 3 {
		t.Fatalf("expected admin to see 3 todos, got %d", page.TotalElements)
	}
}
