package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/myproject/todo-management/internal/core/domain"
	"github.com/myproject/todo-management/internal/core/ports"
)

type TodoRepository struct {
	pool *pgxpool.Pool
}

func NewTodoRepository(pool *pgxpool.Pool) *TodoRepository {
	return &TodoRepository{pool: pool}
}

const todoColumns = `id, title, description, completed, user_id,
	created_at, created_by, updated_at, updated_by`

func (r *TodoRepository) Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO todos (title, description, completed, user_id,
		                   created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		todo.Title, todo.Description, todo.Completed, todo.UserID,
		todo.CreatedAt, todo.CreatedBy, todo.UpdatedAt, todo.UpdatedBy,
	).Scan(&todo.ID)
	if err != nil {
		return nil, translateTodoConflict(err)
	}
	return todo, nil
}

func (r *TodoRepository) Update(ctx context.Context, todo *domain.Todo) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE todos
		SET title = $1, description = $2, completed = $3,
		    updated_at = $4, updated_by = $5
		WHERE id = $6`,
		todo.Title, todo.Description, todo.Completed,
		todo.UpdatedAt, todo.UpdatedBy, todo.ID,
	)
	if err != nil {
		return translateTodoConflict(err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func (r *TodoRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM todos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTodoNotFound
	}
	return nil
}

func (r *TodoRepository) FindByID(ctx context.Context, id int64) (*domain.Todo, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+todoColumns+` FROM todos WHERE id = $1`, id)
	t, err := scanTodo(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTodoNotFound
		}
		return nil, fmt.Errorf("find todo: %w", err)
	}
	return t, nil
}

func (r *TodoRepository) ExistsByTitleAndUser(ctx context.Context, title string, userID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM todos WHERE title = $1 AND user_id = $2)`,
		title, userID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check title: %w", err)
	}
	return exists, nil
}

func (r *TodoRepository) List(ctx context.Context, filter ports.TodoListFilter) ([]*domain.Todo, int64, error) {
	where := ""
	args := []any{}
	if filter.CreatedBy != "" {
		where = "WHERE created_by = $1"
		args = append(args, filter.CreatedBy)
	}

	var total int64
	countQuery := "SELECT count(*) FROM todos " + where
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count todos: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT %s FROM todos %s ORDER BY id LIMIT $%d OFFSET $%d`,
		todoColumns, where, len(args)+1, len(args)+2)
	args = append(args, filter.Size, filter.Page*filter.Size)

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list todos: %w", err)
	}
	defer rows.Close()

	var todos []*domain.Todo
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, 0, err
		}
		todos = append(todos, t)
	}
	return todos, total, rows.Err()
}

func scanTodo(row pgx.Row) (*domain.Todo, error) {
	var t domain.Todo
	err := row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Completed, &t.UserID,
		&t.CreatedAt, &t.CreatedBy, &t.UpdatedAt, &t.UpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func translateTodoConflict(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrTitleExists
	}
	return fmt.Errorf("todo write: %w", err)
}
