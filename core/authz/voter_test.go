package authz_test

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tuicr/scaffold/core/authz"
	"github.com/tuicr/scaffold/core/session"
)

func principalWithRoles(roles ...string) session.Principal {
	return session.Principal{Username: "tester", Roles: roles}
}

func TestRoleVoter(t *testing.T) {
	t.Parallel()

	voter := authz.RoleVoter{}
	rule := authz.RolesAny("/x", "ADMIN", "OPERATOR")

	assert.Equal(t, authz.Grant, voter.Vote(principalWithRoles("OPERATOR"), request("/x"), rule))
	assert.Equal(t, authz.Deny, voter.Vote(principalWithRoles("USER"), request("/x"), rule))
	assert.Equal(t, authz.Abstain, voter.Vote(principalWithRoles("ADMIN"), request("/x"), authz.Authenticated("/x")))
}

func TestAuthenticatedVoter(t *testing.T) {
	t.Parallel()

	voter := authz.AuthenticatedVoter{}
	rule := authz.Authenticated("/x")

	assert.Equal(t, authz.Grant, voter.Vote(principalWithRoles(), request("/x"), rule))
	assert.Equal(t, authz.Deny, voter.Vote(session.Principal{}, request("/x"), rule))
	assert.Equal(t, authz.Abstain, voter.Vote(principalWithRoles(), request("/x"), authz.RolesAny("/x", "ADMIN")))
}

func TestExpressionVoter(t *testing.T) {
	t.Parallel()

	voter := authz.ExpressionVoter{}

	granting := authz.Expr("/x", func(session.Principal, *http.Request) bool { return true })
	denying := authz.Expr("/x", func(session.Principal, *http.Request) bool { return false })

	assert.Equal(t, authz.Grant, voter.Vote(principalWithRoles(), request("/x"), granting))
	assert.Equal(t, authz.Deny, voter.Vote(principalWithRoles(), request("/x"), denying))

	// A nil expression cannot be evaluated; the voter abstains and the
	// engine's fail-closed combining denies.
	assert.Equal(t, authz.Abstain, voter.Vote(principalWithRoles(), request("/x"), authz.Rule{Requirement: authz.RequireExpression}))
}
