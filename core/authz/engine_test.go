package authz_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuicr/scaffold/core/authz"
	"github.com/tuicr/scaffold/core/session"
)

func testEngine() *authz.Engine {
	return authz.NewEngine([]authz.Rule{
		authz.Public("/login"),
		authz.Public("/assets/**"),
		authz.RolesAny("/admin/**", "ADMIN"),
		authz.Authenticated("/dashboard"),
		authz.Expr("/reports/*", func(p session.Principal, r *http.Request) bool {
			return p.HasRole("AUDITOR") && r.Method == http.MethodGet
		}),
	})
}

func request(path string) *http.Request {
	return httptest.NewRequest(http.MethodGet, path, nil)
}

func TestEngine_Decide(t *testing.T) {
	t.Parallel()

	alice := session.Principal{Username: "alice", Roles: []string{"USER"}}
	admin := session.Principal{Username: "root", Roles: []string{"ADMIN"}}
	auditor := session.Principal{Username: "carol", Roles: []string{"AUDITOR"}}
	var anonymous session.Principal

	tests := []struct {
		name      string
		principal session.Principal
		path      string
		allowed   bool
	}{
		{"public path allows anonymous", anonymous, "/login", true},
		{"public subtree allows anonymous", anonymous, "/assets/css/site.css", true},
		{"public path allows authenticated", alice, "/login", true},
		{"admin path denies USER role", alice, "/admin/users", false},
		{"admin path allows ADMIN role", admin, "/admin/users", true},
		{"admin path denies anonymous", anonymous, "/admin/users", false},
		{"authenticated path allows any principal", alice, "/dashboard", true},
		{"authenticated path denies anonymous", anonymous, "/dashboard", false},
		{"expression grants auditor", auditor, "/reports/q3", true},
		{"expression denies non-auditor", alice, "/reports/q3", false},
		{"unmatched path requires authentication", alice, "/profile", true},
		{"unmatched path denies anonymous", anonymous, "/profile", false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			decision := testEngine().Decide(tt.principal, request(tt.path))
			assert.Equal(t, tt.allowed, decision.Allowed())
		})
	}
}

func TestEngine_Decide_ExpressionMethod(t *testing.T) {
	t.Parallel()

	auditor := session.Principal{Username: "carol", Roles: []string{"AUDITOR"}}

	r := httptest.NewRequest(http.MethodPost, "/reports/q3", nil)
	assert.False(t, testEngine().Decide(auditor, r).Allowed(),
		"expression checks the request, not just the principal")
}

func TestEngine_Decide_FirstMatchWins(t *testing.T) {
	t.Parallel()

	// A public rule declared before a role rule for the same subtree takes
	// precedence.
	engine := authz.NewEngine([]authz.Rule{
		authz.Public("/admin/health"),
		authz.RolesAny("/admin/**", "ADMIN"),
	})

	var anonymous session.Principal
	assert.True(t, engine.Decide(anonymous, request("/admin/health")).Allowed())
	assert.False(t, engine.Decide(anonymous, request("/admin/users")).Allowed())
}

func TestEngine_Decide_AllAbstainDenies(t *testing.T) {
	t.Parallel()

	// An engine with no voter that understands the rule fails closed.
	engine := authz.NewEngine(
		[]authz.Rule{authz.RolesAny("/admin/**", "ADMIN")},
		authz.WithVoters(authz.ExpressionVoter{}),
	)

	admin := session.Principal{Username: "root", Roles: []string{"ADMIN"}}
	assert.False(t, engine.Decide(admin, request("/admin/users")).Allowed())
}
