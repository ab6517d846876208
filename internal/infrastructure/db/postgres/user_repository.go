package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/myproject/todo-management/internal/core/domain"
)

// UserRepository persists user accounts in PostgreSQL. Multi-table writes
// (row + role links, delete with owned todos) run in a single transaction.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userSelect = `
	SELECT u.id, u.name, u.username, u.email, u.password_hash, u.birth_date,
	       u.job_title, u.location, u.photo_path,
	       u.created_at, u.created_by, u.updated_at, u.updated_by,
	       COALESCE(array_agg(r.name ORDER BY r.name) FILTER (WHERE r.name IS NOT NULL), '{}')
	FROM users u
	LEFT JOIN user_roles ur ON ur.user_id = u.id
	LEFT JOIN roles r ON r.id = ur.role_id
	%s
	GROUP BY u.id`

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (int64, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var id int64
	err = tx.QueryRow(ctx, `
		INSERT INTO users (name, username, email, password_hash, birth_date,
		                   job_title, location, photo_path,
		                   created_at, created_by, updated_at, updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id`,
		user.Name, user.Username, user.Email, user.PasswordHash, user.BirthDate,
		user.JobTitle, user.Location, user.PhotoPath,
		user.CreatedAt, user.CreatedBy, user.UpdatedAt, user.UpdatedBy,
	).Scan(&id)
	if err != nil {
		return 0, translateUserConflict(err, domain.ErrUsernameExists, domain.ErrEmailExists)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO user_roles (user_id, role_id)
		SELECT $1, id FROM roles WHERE name = ANY($2)`,
		id, user.Roles,
	)
	if err != nil {
		return 0, fmt.Errorf("link roles: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return id, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users
		SET name = $1, username = $2, email = $3, password_hash = $4,
		    birth_date = $5, job_title = $6, location = $7, photo_path = $8,
		    updated_at = $9, updated_by = $10
		WHERE id = $11`,
		user.Name, user.Username, user.Email, user.PasswordHash,
		user.BirthDate, user.JobTitle, user.Location, user.PhotoPath,
		user.UpdatedAt, user.UpdatedBy, user.ID,
	)
	if err != nil {
		return translateUserConflict(err, domain.ErrUsernameTaken, domain.ErrEmailTaken)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// Delete removes the user's todos, role links and the row itself in one
// transaction so a partial delete can never be observed.
func (r *UserRepository) Delete(ctx context.Context, userID int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM todos WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete todos: %w", err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM user_roles WHERE user_id = $1`, userID); err != nil {
		return fmt.Errorf("delete role links: %w", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}

	return tx.Commit(ctx)
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*domain.User, error) {
	return r.findOne(ctx, "WHERE u.id = $1", id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.findOne(ctx, "WHERE u.username = $1", username)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, "WHERE u.email = $1", email)
}

func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error) {
	return r.findOne(ctx, "WHERE u.username = $1 OR u.email = $1", identifier)
}

func (r *UserRepository) List(ctx context.Context, page, size int) ([]*domain.User, int64, error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count users: %w", err)
	}

	query := fmt.Sprintf(userSelect, "") + ` ORDER BY u.id LIMIT $1 OFFSET $2`
	rows, err := r.pool.Query(ctx, query, size, page*size)
	if err != nil {
		return nil, 0, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, u)
	}
	return users, total, rows.Err()
}

func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash, updatedBy string) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE users SET password_hash = $1, updated_at = now(), updated_by = $2
		WHERE id = $3`,
		passwordHash, updatedBy, userID,
	)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) TouchAudit(ctx context.Context, userID int64, updatedBy string) error {
	_, err := r.pool.Exec(ctx, `
		UPDATE users SET updated_at = now(), updated_by = $1 WHERE id = $2`,
		updatedBy, userID,
	)
	if err != nil {
		return fmt.Errorf("touch audit: %w", err)
	}
	return nil
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	row := r.pool.QueryRow(ctx, fmt.Sprintf(userSelect, where), arg)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Name, &u.Username, &u.Email, &u.PasswordHash, &u.BirthDate,
		&u.JobTitle, &u.Location, &u.PhotoPath,
		&u.CreatedAt, &u.CreatedBy, &u.UpdatedAt, &u.UpdatedBy,
		&u.Roles,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// translateUserConflict maps a unique-constraint violation to the matching
// domain error, based on which column the constraint covers.
func translateUserConflict(err error, onUsername, onEmail error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch {
		case strings.Contains(pgErr.ConstraintName, "username"):
			return onUsername
		case strings.Contains(pgErr.ConstraintName, "email"):
			return onEmail
		}
	}
	return fmt.Errorf("user write: %w", err)
}
