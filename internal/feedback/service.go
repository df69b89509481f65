package feedback

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/sync/errgroup"

	"github.com/digital-guidance/guidance-api/internal/platform/httpx"
)

// RepositoryPort defines data access methods for feedback.
type RepositoryPort interface {
	Insert(ctx context.Context, req SubmitRequest) (int64, error)
	ListWithServices(ctx context.Context) ([]Feedback, error)
	Summaries(ctx context.Context) ([]ServiceSummary, error)
	StepRatings(ctx context.Context, serviceID int64) ([]StepRating, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Service handles feedback business logic.
type Service struct {
	repo     RepositoryPort
	validate *validator.Validate
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, validate: httpx.NewValidator()}
}

// Submit validates and records feedback.
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (int64, error) {
	if req.ServiceID <= 0 || req.Rating == 0 {
		return 0, httpx.Validation("Missing required fields")
	}
	req.ServiceName = strings.TrimSpace(req.ServiceName)
	req.Comment = strings.TrimSpace(req.Comment)
	if err := httpx.Validate(s.validate, req); err != nil {
		return 0, err
	}
	id, err := s.repo.Insert(ctx, req)
	if errors.Is(err, ErrServiceNotFound) {
		return 0, httpx.NotFound("Service not found")
	}
	return id, err
}

// Report loads the feedback list and per-service summary concurrently.
func (s *Service) Report(ctx context.Context) (Report, error) {
	var report Report
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.repo.ListWithServices(gctx)
		if err != nil {
			return fmt.Errorf("feedback: list: %w", err)
		}
		report.Feedback = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.repo.Summaries(gctx)
		if err != nil {
			return fmt.Errorf("feedback: summary: %w", err)
		}
		report.Summary = rows
		return nil
	})
	if err := g.Wait(); err != nil {
		return Report{}, err
	}
	if report.Feedback == nil {
		report.Feedback = []Feedback{}
	}
	if report.Summary == nil {
		report.Summary = []ServiceSummary{}
	}
	return report, nil
}

// StepRatings returns per-step averages for a service.
func (s *Service) StepRatings(ctx context.Context, serviceID int64) ([]StepRating, error) {
	rows, err := s.repo.StepRatings(ctx, serviceID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []StepRating{}
	}
	return rows, nil
}

// Delete removes a feedback entry.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("feedback: delete %d: %w", id, err)
	}
	if !ok {
		return httpx.NotFound("Feedback not found")
	}
	return nil
}
