package services

import (
	"context"
	"errors"

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

// ListPublic returns services ordered by name without their content.
func (r *Repository) ListPublic(ctx context.Context) ([]Service, error) {
	rows, err := r.pool.Query(ctx, `SELECT service_id, name, description, description2, video FROM services ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Service, error) {
		var s Service
		err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Description2, &s.Video)
		return s, err
	})
}

// ListAll returns every service including content.
func (r *Repository) ListAll(ctx context.Context) ([]Service, error) {
	rows, err := r.pool.Query(ctx, `SELECT service_id, name, description, description2, video, content FROM services ORDER BY service_id`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, scanService)
}

// Get fetches a single service.
func (r *Repository) Get(ctx context.Context, id int64) (Service, bool, error) {
	rows, err := r.pool.Query(ctx, `SELECT service_id, name, description, description2, video, content FROM services WHERE service_id = $1`, id)
	if err != nil {
		return Service{}, false, err
	}
	s, err := pgx.CollectExactlyOneRow(rows, scanService)
	if errors.Is(err, pgx.ErrNoRows) {
		return Service{}, false, nil
	}
	if err != nil {
		return Service{}, false, err
	}
	return s, true, nil
}

// Create inserts a service and returns its ID.
func (r *Repository) Create(ctx context.Context, req CreateRequest) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx,
		`INSERT INTO services (name, description, description2, video, content) VALUES ($1, $2, $3, $4, $5) RETURNING service_id`,
		req.Name, req.Description, req.Description2, req.Video, req.Content.String(),
	).Scan(&id)
	return id, err
}

// Update edits a service, reporting whether a row matched.
func (r *Repository) Update(ctx context.Context, id int64, req UpdateRequest) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`UPDATE services SET name = $1, description = $2, description2 = $3, content = $4 WHERE service_id = $5`,
		req.Name, req.Description, req.Description2, req.Content.String(), id,
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a service, reporting whether a row matched.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM services WHERE service_id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanService(row pgx.CollectableRow) (Service, error) {
	var s Service
	err := row.Scan(&s.ID, &s.Name, &s.Description, &s.Description2, &s.Video, &s.Content)
	return s, err
}

var _ RepositoryPort = (*Repository)(nil)
