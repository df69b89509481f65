package users

import (
	"time"

	"github.com/digital-guidance/guidance-api/internal/auth"
)

// User represents a user account for management.
type User struct {
	ID        int64     `json:"user_id"`
	Email     string    `json:"email"`
	Role      auth.Role `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// RoleRequest changes a user's role.
type RoleRequest struct {
	Role string `json:"role" validate:"required,oneof=admin user"`
}

// PasswordRequest replaces a user's password.
type PasswordRequest struct {
	NewPassword string `json:"newPassword" validate:"required,min=6,max=72"`
}

// CreateAdminRequest creates a new administrator account.
type CreateAdminRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=72"`
}
