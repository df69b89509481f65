package users

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/digital-guidance/guidance-api/internal/auth"
)

// ErrEmailTaken indicates a unique violation on users.email.
var ErrEmailTaken = errors.New("users: email already registered")

const uniqueViolation = "23505"

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// ListUsers returns all users.
func (r *Repository) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, `SELECT user_id, email, role, created_at FROM users ORDER BY user_id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (User, error) {
		var (
			user User
			role string
		)
		if err := row.Scan(&user.ID, &user.Email, &role, &user.CreatedAt); err != nil {
			return User{}, err
		}
		user.Role = auth.Role(role)
		return user, nil
	})
}

// DeleteUser removes a user, reporting whether a row matched.
func (r *Repository) DeleteUser(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// UpdateRole sets a user's role, reporting whether a row matched.
func (r *Repository) UpdateRole(ctx context.Context, id int64, role auth.Role) (bool, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET role = $1 WHERE user_id = $2`, string(role), id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// UpdatePassword stores a new password hash, reporting whether a row matched.
func (r *Repository) UpdatePassword(ctx context.Context, id int64, hash string) (bool, error) {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET password = $1 WHERE user_id = $2`, hash, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// CreateUser inserts an account and returns its ID.
func (r *Repository) CreateUser(ctx context.Context, email, hash string, role auth.Role) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (email, password, role) VALUES ($1, $2, $3) RETURNING user_id`,
		email, hash, string(role),
	).Scan(&id)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return 0, ErrEmailTaken
	}
	return id, err
}

var _ RepositoryPort = (*Repository)(nil)
