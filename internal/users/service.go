package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/digital-guidance/guidance-api/internal/auth"
	"github.com/digital-guidance/guidance-api/internal/platform/httpx"
)

// RepositoryPort defines data access methods for users.
type RepositoryPort interface {
	ListUsers(ctx context.Context) ([]User, error)
	DeleteUser(ctx context.Context, id int64) (bool, error)
	UpdateRole(ctx context.Context, id int64, role auth.Role) (bool, error)
	UpdatePassword(ctx context.Context, id int64, hash string) (bool, error)
	CreateUser(ctx context.Context, email, hash string, role auth.Role) (int64, error)
}

// DefaultHashCost matches the cost used for existing password hashes.
const DefaultHashCost = 10

var errUserNotFound = httpx.NotFound("User not found")

// Service handles user business logic.
type Service struct {
	repo     RepositoryPort
	validate *validator.Validate
	hashCost int
}

// NewService builds Service instance.
func NewService(repo RepositoryPort, hashCost int) *Service {
	if hashCost < bcrypt.MinCost {
		hashCost = DefaultHashCost
	}
	return &Service{repo: repo, validate: httpx.NewValidator(), hashCost: hashCost}
}

// ListUsers returns all users.
func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []User{}
	}
	return users, nil
}

// DeleteUser removes the account id. Admins cannot delete themselves.
func (s *Service) DeleteUser(ctx context.Context, actor *auth.Principal, id int64) error {
	if actor != nil && actor.ID == id {
		return httpx.Validation("You cannot delete your own account")
	}
	ok, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		return fmt.Errorf("users: delete %d: %w", id, err)
	}
	if !ok {
		return errUserNotFound
	}
	return nil
}

// ChangeRole updates the role of id and returns the role as stored.
// Admins cannot demote themselves.
func (s *Service) ChangeRole(ctx context.Context, actor *auth.Principal, id int64, req RoleRequest) (auth.Role, error) {
	req.Role = strings.ToLower(strings.TrimSpace(req.Role))
	if err := httpx.Validate(s.validate, req); err != nil {
		return "", err
	}
	role, _ := auth.ParseRole(req.Role)
	if actor != nil && actor.ID == id && !role.IsAdmin() {
		return "", httpx.Validation("You cannot remove your own admin role")
	}
	ok, err := s.repo.UpdateRole(ctx, id, role)
	if err != nil {
		return "", fmt.Errorf("users: update role %d: %w", id, err)
	}
	if !ok {
		return "", errUserNotFound
	}
	return role, nil
}

// ChangePassword hashes and stores a new password for id.
func (s *Service) ChangePassword(ctx context.Context, id int64, req PasswordRequest) error {
	if req.NewPassword == "" {
		return httpx.Validation("Password is required")
	}
	if err := httpx.Validate(s.validate, req); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), s.hashCost)
	if err != nil {
		return fmt.Errorf("users: hash password: %w", err)
	}
	ok, err := s.repo.UpdatePassword(ctx, id, string(hash))
	if err != nil {
		return fmt.Errorf("users: update password %d: %w", id, err)
	}
	if !ok {
		return errUserNotFound
	}
	return nil
}

// CreateAdmin registers a new administrator account.
func (s *Service) CreateAdmin(ctx context.Context, req CreateAdminRequest) (int64, error) {
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return 0, httpx.Validation("Email and password are required")
	}
	if len(req.Password) < 6 {
		return 0, httpx.Validation("Password must be at least 6 characters long")
	}
	if err := httpx.Validate(s.validate, req); err != nil {
		return 0, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.hashCost)
	if err != nil {
		return 0, fmt.Errorf("users: hash password: %w", err)
	}
	id, err := s.repo.CreateUser(ctx, req.Email, string(hash), auth.RoleAdmin)
	if errors.Is(err, ErrEmailTaken) {
		return 0, httpx.Duplicate("User already exists with this email")
	}
	return id, err
}
