package carousel

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/digital-guidance/guidance-api/internal/platform/httpx"
)

// RepositoryPort defines data access methods for carousel images.
type RepositoryPort interface {
	List(ctx context.Context) ([]Image, error)
	Create(ctx context.Context, req CreateRequest) (int64, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

// Service handles carousel business logic.
type Service struct {
	repo     RepositoryPort
	validate *validator.Validate
}

// NewService builds Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo, validate: httpx.NewValidator()}
}

// List returns all images.
func (s *Service) List(ctx context.Context) ([]Image, error) {
	images, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if images == nil {
		images = []Image{}
	}
	return images, nil
}

// Create validates and stores image metadata.
func (s *Service) Create(ctx context.Context, req CreateRequest) (int64, error) {
	req.Image = strings.TrimSpace(req.Image)
	if req.Image == "" {
		return 0, httpx.Validation("No image uploaded")
	}
	if err := httpx.Validate(s.validate, req); err != nil {
		return 0, err
	}
	return s.repo.Create(ctx, req)
}

// Delete removes image metadata.
func (s *Service) Delete(ctx context.Context, id int64) error {
	ok, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return httpx.NotFound("Image not found")
	}
	return nil
}
