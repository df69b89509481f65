package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	mu         sync.Mutex
	identities map[string]Identity
	err        error
	calls      int
}

func newFakeStore() *fakeStore {
	return &fakeStore{identities: make(map[string]Identity)}
}

func (s *fakeStore) Lookup(ctx context.Context, subject string) (Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return Identity{}, s.err
	}
	identity, ok := s.identities[subject]
	if !ok {
		return Identity{}, ErrSubjectNotFound
	}
	return identity, nil
}

func (s *fakeStore) put(subject string, identity Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identities[subject] = identity
}

func (s *fakeStore) setRole(subject string, role Role) {
	s.mu.Lock()
	defer s.mu.Unlock()
	identity := s.identities[subject]
	identity.Role = role
	s.identities[subject] = identity
}

func (s *fakeStore) remove(subject string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.identities, subject)
}

func (s *fakeStore) lookups() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type countingRecorder struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (c *countingRecorder) ObserveAuth(stage, outcome string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.outcomes == nil {
		c.outcomes = make(map[string]int)
	}
	c.outcomes[stage+"/"+outcome]++
}

type resolverFixture struct {
	codec    *TokenCodec
	store    *fakeStore
	resolver *Resolver
	recorder *countingRecorder
	now      time.Time
}

func newResolverFixture(t *testing.T) *resolverFixture {
	t.Helper()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := newTestCodec(t, now)
	store := newFakeStore()
	store.put("u1", Identity{ID: 1, Email: "u1@example.com", Role: RoleUser})
	recorder := &countingRecorder{}
	return &resolverFixture{
		codec:    codec,
		store:    store,
		resolver: NewResolver(codec, store, nil, recorder),
		recorder: recorder,
		now:      now,
	}
}

func (f *resolverFixture) token(t *testing.T, subject string, role Role) string {
	t.Helper()
	raw, err := f.codec.Issue(subject, role, time.Hour)
	require.NoError(t, err)
	return raw
}

func requestWithAuth(header string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/api/admin/users", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	return req
}

func requireKind(t *testing.T, err error, want Kind) {
	t.Helper()
	var authErr *Error
	require.True(t, errors.As(err, &authErr), "expected *Error, got %v", err)
	assert.Equal(t, want, authErr.Kind)
}

func TestResolveUsesCurrentRole(t *testing.T) {
	f := newResolverFixture(t)
	raw := f.token(t, "u1", RoleAdmin)

	principal, err := f.resolver.Resolve(requestWithAuth("Bearer " + raw))
	require.NoError(t, err)
	assert.Equal(t, int64(1), principal.ID)
	assert.Equal(t, "u1@example.com", principal.Email)
	assert.Equal(t, RoleUser, principal.Role, "token role claim must not be trusted")
	assert.Equal(t, 1, f.store.lookups())
}

func TestResolveMissingTokenSkipsStore(t *testing.T) {
	f := newResolverFixture(t)
	raw := f.token(t, "u1", RoleUser)

	for _, header := range []string{"", raw, "Basic " + raw, "bearer " + raw, "Bearer ", "Bearer    ", "Bearer a b"} {
		principal, err := f.resolver.Resolve(requestWithAuth(header))
		assert.Nil(t, principal)
		requireKind(t, err, KindMissingToken)
	}
	assert.Equal(t, 0, f.store.lookups())
}

func TestResolveBadSignatureSkipsStore(t *testing.T) {
	f := newResolverFixture(t)
	other, err := NewTokenCodec([]byte("another-secret"), WithClock(fixedClock(f.now)))
	require.NoError(t, err)
	forged, err := other.Issue("u1", RoleAdmin, time.Hour)
	require.NoError(t, err)

	principal, err := f.resolver.Resolve(requestWithAuth("Bearer " + forged))
	assert.Nil(t, principal)
	requireKind(t, err, KindInvalidToken)
	assert.Equal(t, 0, f.store.lookups())
}

func TestResolveMalformedTokenIsInvalid(t *testing.T) {
	f := newResolverFixture(t)
	_, err := f.resolver.Resolve(requestWithAuth("Bearer not-a-jwt"))
	requireKind(t, err, KindInvalidToken)
	assert.Equal(t, 0, f.store.lookups())
}

func TestResolveExpiredToken(t *testing.T) {
	f := newResolverFixture(t)
	issuer := newTestCodec(t, f.now.Add(-2*time.Hour))
	raw, err := issuer.Issue("u1", RoleUser, time.Hour)
	require.NoError(t, err)

	_, err = f.resolver.Resolve(requestWithAuth("Bearer " + raw))
	requireKind(t, err, KindExpiredToken)
	assert.Equal(t, 0, f.store.lookups())
}

func TestResolveDeletedSubject(t *testing.T) {
	f := newResolverFixture(t)
	raw := f.token(t, "u1", RoleUser)
	f.store.remove("u1")

	handler := f.resolver.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, requestWithAuth("Bearer "+raw))

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, "User no longer exists", body["message"])
	assert.Equal(t, "unknown_subject", body["code"])
}

func TestResolvePromotionTakesEffectImmediately(t *testing.T) {
	f := newResolverFixture(t)
	raw := f.token(t, "u1", RoleUser)
	f.store.setRole("u1", RoleAdmin)

	principal, err := f.resolver.Resolve(requestWithAuth("Bearer " + raw))
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, principal.Role)

	chain := f.resolver.Middleware(Gate{}.RequireAdmin()(okHandler()))
	res := httptest.NewRecorder()
	chain.ServeHTTP(res, requestWithAuth("Bearer "+raw))
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestResolveDemotionTakesEffectImmediately(t *testing.T) {
	f := newResolverFixture(t)
	f.store.setRole("u1", RoleAdmin)
	raw := f.token(t, "u1", RoleAdmin)
	chain := f.resolver.Middleware(Gate{}.RequireAdmin()(okHandler()))

	res := httptest.NewRecorder()
	chain.ServeHTTP(res, requestWithAuth("Bearer "+raw))
	require.Equal(t, http.StatusOK, res.Code)

	f.store.setRole("u1", RoleUser)
	res = httptest.NewRecorder()
	chain.ServeHTTP(res, requestWithAuth("Bearer "+raw))
	assert.Equal(t, http.StatusForbidden, res.Code)
}

func TestResolveStoreUnavailable(t *testing.T) {
	f := newResolverFixture(t)
	raw := f.token(t, "u1", RoleAdmin)
	f.store.err = errors.Join(ErrStoreUnavailable, errors.New("dial tcp 10.0.0.5:5432: connection refused"))

	_, err := f.resolver.Resolve(requestWithAuth("Bearer " + raw))
	requireKind(t, err, KindDependencyFailure)

	handler := f.resolver.Middleware(okHandler())
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, requestWithAuth("Bearer "+raw))
	assert.Equal(t, http.StatusInternalServerError, res.Code)
	assert.NotContains(t, res.Body.String(), "connection refused")
	assert.Equal(t, 2, f.store.lookups(), "store failures are not retried")
}

func TestMiddlewareAttachesPrincipal(t *testing.T) {
	f := newResolverFixture(t)
	raw := f.token(t, "u1", RoleUser)

	var seen *Principal
	handler := f.resolver.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
	res := httptest.NewRecorder()
	handler.ServeHTTP(res, requestWithAuth("Bearer "+raw))

	assert.Equal(t, http.StatusNoContent, res.Code)
	require.NotNil(t, seen)
	assert.Equal(t, int64(1), seen.ID)
	assert.Equal(t, 1, f.recorder.outcomes["resolve/ok"])
}

func TestMiddlewareRecordsFailureOutcome(t *testing.T) {
	f := newResolverFixture(t)
	handler := f.resolver.Middleware(okHandler())

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, requestWithAuth(""))

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Equal(t, 1, f.recorder.outcomes["resolve/missing_token"])
}

func TestResolveConcurrentRequestsAreIndependent(t *testing.T) {
	f := newResolverFixture(t)
	f.store.put("u2", Identity{ID: 2, Email: "u2@example.com", Role: RoleAdmin})
	tokens := map[string]string{
		"u1": f.token(t, "u1", RoleUser),
		"u2": f.token(t, "u2", RoleUser),
	}

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		for subject, raw := range tokens {
			wg.Add(1)
			go func(subject, raw string) {
				defer wg.Done()
				principal, err := f.resolver.Resolve(requestWithAuth("Bearer " + raw))
				if !assert.NoError(t, err) {
					return
				}
				if subject == "u2" {
					assert.Equal(t, RoleAdmin, principal.Role)
				} else {
					assert.Equal(t, RoleUser, principal.Role)
				}
			}(subject, raw)
		}
	}
	wg.Wait()
	assert.Equal(t, 40, f.store.lookups())
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}
