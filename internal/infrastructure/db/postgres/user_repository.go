package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/cognitodo/todo-system/internal/core/domain"
	"github.com/cognitodo/todo-system/internal/core/ports"
)

const uniqueViolation = "23505"

// UserRepository persists user rows. The zero pool marks a transaction-bound
// view vended by WithTx.
type UserRepository struct {
	db   DBTX
	pool *sql.DB
}

func NewUserRepository(pool *sql.DB) *UserRepository {
	return &UserRepository{db: pool, pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
		INSERT INTO users (id, name, email, role, created_at, updated_at)
		VALUES ($1, NULLIF($2, ''), $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Name, user.Email, user.Role, user.CreatedAt, user.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `WHERE email = $1`, email)
}

func (r *UserRepository) findOne(ctx context.Context, where string, arg any) (*domain.User, error) {
	query := `
		SELECT id, COALESCE(name, ''), email, role, created_at, updated_at
		FROM users ` + where

	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Name, &user.Email, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (r *UserRepository) UpdateName(ctx context.Context, id, name string) (*domain.User, error) {
	query := `
		UPDATE users SET name = NULLIF($2, ''), updated_at = now()
		WHERE id = $1
		RETURNING id, COALESCE(name, ''), email, role, created_at, updated_at
	`
	user := &domain.User{}
	err := r.db.QueryRowContext(ctx, query, id, name).Scan(
		&user.ID, &user.Name, &user.Email, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("update user name: %w", err)
	}
	return user, nil
}

func (r *UserRepository) UpdateEmail(ctx context.Context, id, email string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET email = $2, updated_at = now() WHERE id = $1`, id, email)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailExists
		}
		return fmt.Errorf("update user email: %w", err)
	}
	return requireRow(res)
}

func (r *UserRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return requireRow(res)
}

// WithTx vends a transaction-bound view of the repository. Calls nested
// inside an existing transaction reuse it.
func (r *UserRepository) WithTx(ctx context.Context, fn func(ctx context.Context, repo ports.UserRepository) error) error {
	if r.pool == nil {
		return fn(ctx, r)
	}
	return withTx(ctx, r.pool, func(ctx context.Context, tx DBTX) error {
		return fn(ctx, &UserRepository{db: tx})
	})
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
