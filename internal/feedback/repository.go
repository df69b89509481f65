package feedback

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/digital-guidance/guidance-api/internal/platform/db"
)

// ErrServiceNotFound is returned when feedback references a missing service.
var ErrServiceNotFound = errors.New("feedback: service not found")

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Insert stores feedback, filling in the service name from the services
// table when the client did not send one.
func (r *Repository) Insert(ctx context.Context, req SubmitRequest) (int64, error) {
	var id int64
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		name := req.ServiceName
		if name == "" {
			err := tx.QueryRow(ctx, `SELECT name FROM services WHERE service_id = $1`, req.ServiceID).Scan(&name)
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrServiceNotFound
			}
			if err != nil {
				return fmt.Errorf("feedback: service name: %w", err)
			}
		}
		var comment *string
		if req.Comment != "" {
			comment = &req.Comment
		}
		return tx.QueryRow(ctx,
			`INSERT INTO feedback (service_id, service_name, step_number, rating, comment, created_at)
			 VALUES ($1, $2, $3, $4, $5, NOW()) RETURNING feedback_id`,
			req.ServiceID, name, req.StepNumber, req.Rating, comment,
		).Scan(&id)
	})
	return id, err
}

// ListWithServices returns every feedback entry, newest first.
func (r *Repository) ListWithServices(ctx context.Context) ([]Feedback, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT f.feedback_id, f.service_id, COALESCE(s.name, f.service_name, ''), f.step_number,
		       f.rating, COALESCE(f.comment, 'No comment'), f.created_at
		FROM feedback f
		LEFT JOIN services s ON f.service_id = s.service_id
		ORDER BY f.created_at DESC`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (Feedback, error) {
		var f Feedback
		err := row.Scan(&f.ID, &f.ServiceID, &f.ServiceName, &f.StepNumber, &f.Rating, &f.Comment, &f.CreatedAt)
		return f, err
	})
}

// Summaries returns the average rating and count for every service.
func (r *Repository) Summaries(ctx context.Context) ([]ServiceSummary, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.name, ROUND(AVG(f.rating)::numeric, 1)::float8, COUNT(f.feedback_id)
		FROM services s
		LEFT JOIN feedback f ON s.service_id = f.service_id
		GROUP BY s.service_id, s.name
		ORDER BY s.name`)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (ServiceSummary, error) {
		var s ServiceSummary
		err := row.Scan(&s.ServiceName, &s.AvgRating, &s.TotalFeedbacks)
		return s, err
	})
}

// StepRatings aggregates ratings per step for a service.
func (r *Repository) StepRatings(ctx context.Context, serviceID int64) ([]StepRating, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT step_number, ROUND(AVG(rating)::numeric, 1)::float8, COUNT(*)
		FROM feedback
		WHERE service_id = $1
		GROUP BY step_number
		ORDER BY step_number ASC`, serviceID)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (StepRating, error) {
		var s StepRating
		err := row.Scan(&s.StepNumber, &s.AvgRating, &s.Count)
		return s, err
	})
}

// Delete removes a feedback entry, reporting whether a row matched.
func (r *Repository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM feedback WHERE feedback_id = $1`, id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

var _ RepositoryPort = (*Repository)(nil)
