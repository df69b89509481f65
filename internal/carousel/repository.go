package carousel

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// List returns images newest first.
func (r *Repository) List(ctx context.Context) ([]Image, error) {
	rows, err := r.pool.Query(ctx, `SELECT id, image, public_id, title, caption, created_at FROM carousel ORDER BY id DESC`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Image, error) {
		var img Image
		err := row.Scan(&img.ID, &img.Image, &img.PublicID, &img.Title, &img.Caption, &img.CreatedAt)
		return img, err
	})
}

// Create inserts image metadata and returns its ID.
func (r *Repository) Create(ctx context.Context, req CreateRequest) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO carousel (image, public_id, title, caption) VALUES ($1, $2, $3, $4) RETURNING id`,
		req.Image, req.PublicID, req.Title, req.Caption,
	).Scan(&id)
	return id, err
}

// Delete removes an image, reporting whether a row matched.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM carousel WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

var _ RepositoryPort = (*Repository)(nil)
