package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// Identity store errors.
var (
	ErrSubjectNotFound  = errors.New("auth: subject not found")
	ErrStoreUnavailable = errors.New("auth: identity store unavailable")
)

// IdentityStore fetches the current identity record for a subject.
type IdentityStore interface {
	Lookup(ctx context.Context, subject string) (Identity, error)
}

// DBTX is the subset of pgxpool.Pool used by the identity store.
type DBTX interface {
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

const lookupIdentity = `SELECT user_id, email, role, created_at FROM users WHERE user_id = $1`

// PGIdentityStore implements IdentityStore on PostgreSQL.
type PGIdentityStore struct {
	db      DBTX
	timeout time.Duration
}

// NewIdentityStore constructs a PostgreSQL backed identity store. A zero
// timeout leaves the lookup bounded only by the pool.
func NewIdentityStore(db DBTX, timeout time.Duration) *PGIdentityStore {
	return &PGIdentityStore{db: db, timeout: timeout}
}

// Lookup reads the identity row for subject. A missing row yields
// ErrSubjectNotFound; any other failure wraps ErrStoreUnavailable.
//
// The read is detached from caller cancellation so an aborted request never
// interrupts it mid-flight. The pool connection is released once Scan returns.
func (s *PGIdentityStore) Lookup(ctx context.Context, subject string) (Identity, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(subject), 10, 64)
	if err != nil || id <= 0 {
		return Identity{}, ErrSubjectNotFound
	}

	ctx = context.WithoutCancel(ctx)
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var (
		identity Identity
		role     string
	)
	err = s.db.QueryRow(ctx, lookupIdentity, id).Scan(&identity.ID, &identity.Email, &role, &identity.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Identity{}, ErrSubjectNotFound
		}
		return Identity{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	parsed, ok := ParseRole(role)
	if !ok {
		// Unknown roles grant nothing beyond an authenticated user.
		parsed = Role(strings.ToLower(strings.TrimSpace(role)))
	}
	identity.Role = parsed
	return identity, nil
}

var _ IdentityStore = (*PGIdentityStore)(nil)
