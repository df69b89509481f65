package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serveWithPrincipal(h http.Handler, p *Principal) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/api/admin/services/3", nil)
	if p != nil {
		req = req.WithContext(ContextWithPrincipal(req.Context(), p))
	}
	res := httptest.NewRecorder()
	h.ServeHTTP(res, req)
	return res
}

func TestRequireAdmin(t *testing.T) {
	recorder := &countingRecorder{}
	gate := Gate{Recorder: recorder}

	var reached *Principal
	protected := gate.RequireAdmin()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = PrincipalFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	admin := &Principal{ID: 1, Email: "admin@example.com", Role: RoleAdmin}
	res := serveWithPrincipal(protected, admin)
	assert.Equal(t, http.StatusOK, res.Code)
	assert.Same(t, admin, reached)

	reached = nil
	res = serveWithPrincipal(protected, &Principal{ID: 2, Role: RoleUser})
	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Nil(t, reached)
	var body map[string]string
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
	assert.Equal(t, "Forbidden: Admins only", body["message"])
	assert.Equal(t, "forbidden", body["code"])
	assert.Equal(t, 1, recorder.outcomes["gate/forbidden"])
	assert.Equal(t, 1, recorder.outcomes["gate/ok"])
}

func TestForbiddenCountsOncePerStage(t *testing.T) {
	f := newResolverFixture(t)
	gate := Gate{Recorder: f.recorder}
	handler := f.resolver.Middleware(gate.RequireAdmin()(okHandler()))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, requestWithAuth("Bearer "+f.token(t, "u1", RoleAdmin)))

	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Equal(t, map[string]int{"resolve/ok": 1, "gate/forbidden": 1}, f.recorder.outcomes)
}

func TestRoleIsAdmin(t *testing.T) {
	assert.True(t, RoleAdmin.IsAdmin())
	assert.False(t, RoleUser.IsAdmin())
	assert.False(t, Role("ADMIN").IsAdmin())
}

func TestRequireWithoutPrincipal(t *testing.T) {
	protected := Gate{}.RequireAdmin()(okHandler())
	res := serveWithPrincipal(protected, nil)

	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.Contains(t, res.Body.String(), `"unauthenticated"`)
}

func TestRequireRoleAllowsAnyListedRole(t *testing.T) {
	protected := Gate{}.RequireRole(RoleUser, RoleAdmin)(okHandler())

	assert.Equal(t, http.StatusOK, serveWithPrincipal(protected, &Principal{Role: RoleUser}).Code)
	assert.Equal(t, http.StatusOK, serveWithPrincipal(protected, &Principal{Role: RoleAdmin}).Code)
	res := serveWithPrincipal(protected, &Principal{Role: Role("editor")})
	assert.Equal(t, http.StatusForbidden, res.Code)
	assert.Contains(t, res.Body.String(), `"Forbidden"`)
}

func TestRequireNilPredicateDenies(t *testing.T) {
	protected := Gate{}.Require(nil, "")(okHandler())
	assert.Equal(t, http.StatusForbidden, serveWithPrincipal(protected, &Principal{Role: RoleAdmin}).Code)
}
