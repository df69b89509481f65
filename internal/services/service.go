package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/digital-guidance/guidance-api/internal/platform/httpx"
)

// RepositoryPort defines data access methods for services.
type RepositoryPort interface {
	ListPublic(ctx context.Context) ([]Service, error)
	ListAll(ctx context.Context) ([]Service, error)
	Get(ctx context.Context, id int64) (Service, bool, error)
	Create(ctx context.Context, req CreateRequest) (int64, error)
	Update(ctx context.Context, id int64, req UpdateRequest) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

var errServiceNotFound = httpx.NotFound("Service not found")

// Catalog handles service business logic.
type Catalog struct {
	repo     RepositoryPort
	validate *validator.Validate
}

// NewCatalog builds a Catalog instance.
func NewCatalog(repo RepositoryPort) *Catalog {
	return &Catalog{repo: repo, validate: httpx.NewValidator()}
}

// ListPublic returns the public listing.
func (c *Catalog) ListPublic(ctx context.Context) ([]Service, error) {
	return c.repo.ListPublic(ctx)
}

// ListAll returns every service for administrators.
func (c *Catalog) ListAll(ctx context.Context) ([]Service, error) {
	return c.repo.ListAll(ctx)
}

// Get returns a service by ID.
func (c *Catalog) Get(ctx context.Context, id int64) (Service, error) {
	s, ok, err := c.repo.Get(ctx, id)
	if err != nil {
		return Service{}, fmt.Errorf("services: get %d: %w", id, err)
	}
	if !ok {
		return Service{}, errServiceNotFound
	}
	return s, nil
}

// Create validates and stores a new service.
func (c *Catalog) Create(ctx context.Context, req CreateRequest) (int64, error) {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return 0, httpx.Validation("Service name is required")
	}
	if err := httpx.Validate(c.validate, req); err != nil {
		return 0, err
	}
	return c.repo.Create(ctx, req)
}

// Update validates and applies changes to a service.
func (c *Catalog) Update(ctx context.Context, id int64, req UpdateRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		return httpx.Validation("Service name is required")
	}
	if err := httpx.Validate(c.validate, req); err != nil {
		return err
	}
	ok, err := c.repo.Update(ctx, id, req)
	if err != nil {
		return fmt.Errorf("services: update %d: %w", id, err)
	}
	if !ok {
		return errServiceNotFound
	}
	return nil
}

// Delete removes a service.
func (c *Catalog) Delete(ctx context.Context, id int64) error {
	ok, err := c.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("services: delete %d: %w", id, err)
	}
	if !ok {
		return errServiceNotFound
	}
	return nil
}
