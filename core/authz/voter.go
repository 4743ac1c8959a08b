package authz

import (
	"net/http"

	"github.com/tuicr/scaffold/core/session"
)

// Vote is the tri-state result a voter produces for an authorization
// question.
type Vote int

const (
	// Abstain means the voter has no opinion on this rule.
	Abstain Vote = iota
	// Grant allows access. Under affirmative combining a single grant is
	// sufficient.
	Grant
	// Deny refuses access unless another voter grants it.
	Deny
)

// String returns the vote name for logging.
func (v Vote) String() string {
	switch v {
	case Grant:
		return "grant"
	case Deny:
		return "deny"
	default:
		return "abstain"
	}
}

// Voter is a unit of access-decision logic. Each concrete voter handles
// the rule requirements it understands and abstains on the rest, which
// keeps voters freely pluggable.
type Voter interface {
	Vote(p session.Principal, r *http.Request, rule Rule) Vote
}

// RoleVoter votes on role-based rules: it grants when the principal holds
// any of the rule's roles and denies otherwise. An optional prefix is
// prepended to rule roles before comparison.
type RoleVoter struct {
	Prefix string
}

// Vote implements Voter.
func (v RoleVoter) Vote(p session.Principal, _ *http.Request, rule Rule) Vote {
	if rule.Requirement != RequireRolesAny {
		return Abstain
	}

	for _, role := range rule.Roles {
		if p.HasRole(v.Prefix + role) {
			return Grant
		}
	}
	return Deny
}

// AuthenticatedVoter votes on authenticated-only rules: any logged-in
// principal is granted, anonymous requests are denied.
type AuthenticatedVoter struct{}

// Vote implements Voter.
func (AuthenticatedVoter) Vote(p session.Principal, _ *http.Request, rule Rule) Vote {
	if rule.Requirement != RequireAuthenticated {
		return Abstain
	}
	if p.IsAuthenticated() {
		return Grant
	}
	return Deny
}

// ExpressionVoter evaluates a rule's boolean predicate over the principal
// and request.
type ExpressionVoter struct{}

// Vote implements Voter.
func (ExpressionVoter) Vote(p session.Principal, r *http.Request, rule Rule) Vote {
	if rule.Requirement != RequireExpression || rule.Expression == nil {
		return Abstain
	}
	if rule.Expression(p, r) {
		return Grant
	}
	return Deny
}
