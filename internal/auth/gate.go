package auth

import (
	"log/slog"
	"net/http"
)

// RolePredicate decides whether a principal's current role is sufficient.
type RolePredicate func(Role) bool

// Gate guards handlers behind a role predicate. It only reads the principal
// that the Resolver placed in the request context.
type Gate struct {
	Logger   *slog.Logger
	Recorder OutcomeRecorder
}

// Require passes the request on when the resolved principal satisfies pred.
// forbidden, when non-empty, replaces the default 403 message.
func (g Gate) Require(pred RolePredicate, forbidden string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			principal := PrincipalFromContext(r.Context())
			if principal == nil {
				g.reject(w, r, &Error{Kind: KindUnauthenticated})
				return
			}
			if pred == nil || !pred(principal.Role) {
				g.reject(w, r, &Error{Kind: KindForbidden, Message: forbidden})
				return
			}
			g.observe(OutcomeOK)
			next.ServeHTTP(w, r)
		})
	}
}

// RequireRole allows principals holding any of roles.
func (g Gate) RequireRole(roles ...Role) func(http.Handler) http.Handler {
	allowed := make(map[Role]struct{}, len(roles))
	for _, role := range roles {
		allowed[role] = struct{}{}
	}
	return g.Require(func(role Role) bool {
		_, ok := allowed[role]
		return ok
	}, "")
}

// RequireAdmin allows only principals whose current role is admin.
func (g Gate) RequireAdmin() func(http.Handler) http.Handler {
	return g.Require(Role.IsAdmin, "Forbidden: Admins only")
}

func (g Gate) reject(w http.ResponseWriter, r *http.Request, err *Error) {
	g.observe(err.Kind.Code())
	WriteError(w, r, g.Logger, err)
}

func (g Gate) observe(outcome string) {
	if g.Recorder != nil {
		g.Recorder.ObserveAuth(StageGate, outcome)
	}
}
