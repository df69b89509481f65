package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
)

const bearerPrefix = "Bearer "

// Stages label where an outcome was decided. A request that reaches a gate is
// recorded once per stage.
const (
	StageResolve = "resolve"
	StageGate    = "gate"
)

// OutcomeOK is recorded when a stage lets the request through.
const OutcomeOK = "ok"

// OutcomeRecorder receives one outcome per stage for each request.
type OutcomeRecorder interface {
	ObserveAuth(stage, outcome string)
}

// Resolver turns a bearer token into a Principal backed by the identity store.
type Resolver struct {
	codec    *TokenCodec
	store    IdentityStore
	logger   *slog.Logger
	recorder OutcomeRecorder
}

// NewResolver wires a Resolver. logger and recorder may be nil.
func NewResolver(codec *TokenCodec, store IdentityStore, logger *slog.Logger, recorder OutcomeRecorder) *Resolver {
	return &Resolver{codec: codec, store: store, logger: logger, recorder: recorder}
}

// Resolve verifies the request's bearer token and loads the current identity
// of its subject. It returns either a complete Principal or an *Error.
func (r *Resolver) Resolve(req *http.Request) (*Principal, error) {
	raw, ok := bearerToken(req.Header.Get("Authorization"))
	if !ok {
		return nil, newError(KindMissingToken, nil)
	}

	claims, err := r.codec.Decode(raw)
	if err != nil {
		if errors.Is(err, ErrExpiredToken) {
			return nil, newError(KindExpiredToken, err)
		}
		return nil, newError(KindInvalidToken, err)
	}

	identity, err := r.store.Lookup(req.Context(), claims.SubjectID())
	if err != nil {
		if errors.Is(err, ErrSubjectNotFound) {
			return nil, newError(KindUnknownSubject, err)
		}
		return nil, newError(KindDependencyFailure, err)
	}
	return principalFromIdentity(identity), nil
}

// Middleware resolves the principal and stores it in the request context,
// short-circuiting with the mapped error response on failure.
func (r *Resolver) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		principal, err := r.Resolve(req)
		if err != nil {
			r.observe(KindOf(err).Code())
			WriteError(w, req, r.logger, err)
			return
		}
		r.observe(OutcomeOK)
		next.ServeHTTP(w, req.WithContext(ContextWithPrincipal(req.Context(), principal)))
	})
}

func (r *Resolver) observe(outcome string) {
	if r.recorder != nil {
		r.recorder.ObserveAuth(StageResolve, outcome)
	}
}

func bearerToken(header string) (string, bool) {
	if !strings.HasPrefix(header, bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix))
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}
