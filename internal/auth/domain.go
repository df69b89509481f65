package auth

import (
	"strings"
	"time"
)

// Role is the authorization level stored on an identity record.
type Role string

// Known roles.
const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// ParseRole normalises a stored or submitted role value.
func ParseRole(raw string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(raw))) {
	case RoleAdmin:
		return RoleAdmin, true
	case RoleUser:
		return RoleUser, true
	default:
		return "", false
	}
}

// IsAdmin reports whether r grants administrative access.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// Identity is the authoritative record for a subject as held in the users table.
type Identity struct {
	ID        int64
	Email     string
	Role      Role
	CreatedAt time.Time
}

// Principal is the caller resolved for a single request. It is always built
// from the current Identity, never from the role embedded in a token.
type Principal struct {
	ID    int64  `json:"user_id"`
	Email string `json:"email"`
	Role  Role   `json:"role"`
}

func principalFromIdentity(id Identity) *Principal {
	return &Principal{ID: id.ID, Email: id.Email, Role: id.Role}
}
