package authz

import (
	"net/http"
	"strings"

	"github.com/tuicr/scaffold/core/session"
)

// Requirement classifies what a rule demands from the request.
type Requirement int

const (
	// RequirePublic allows the request unconditionally, bypassing all voters.
	RequirePublic Requirement = iota
	// RequireAuthenticated demands any logged-in principal.
	RequireAuthenticated
	// RequireRolesAny demands at least one of the rule's roles.
	RequireRolesAny
	// RequireExpression demands the rule's predicate to evaluate true.
	RequireExpression
)

// Expression is a boolean predicate over principal and request.
type Expression func(p session.Principal, r *http.Request) bool

// Rule pairs a URL pattern with an access requirement. Rules are evaluated
// in declaration order; the first match wins.
//
// Patterns support three forms: an exact path, a single-segment wildcard
// suffix ("/reports/*"), and a subtree wildcard suffix ("/admin/**" which
// also matches "/admin" itself).
type Rule struct {
	Pattern     string
	Requirement Requirement
	Roles       []string
	Expression  Expression
}

// Public creates a rule allowing unauthenticated access.
func Public(pattern string) Rule {
	return Rule{Pattern: pattern, Requirement: RequirePublic}
}

// Authenticated creates a rule requiring any logged-in principal.
func Authenticated(pattern string) Rule {
	return Rule{Pattern: pattern, Requirement: RequireAuthenticated}
}

// RolesAny creates a rule requiring at least one of the given roles.
func RolesAny(pattern string, roles ...string) Rule {
	return Rule{Pattern: pattern, Requirement: RequireRolesAny, Roles: roles}
}

// Expr creates a rule requiring the predicate to hold.
func Expr(pattern string, expr Expression) Rule {
	return Rule{Pattern: pattern, Requirement: RequireExpression, Expression: expr}
}

// Matches reports whether the rule's pattern covers the given path.
func (r Rule) Matches(path string) bool {
	return MatchPattern(r.Pattern, path)
}

// MatchPattern implements the pattern forms described on Rule.
func MatchPattern(pattern, path string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}

	if prefix, ok := strings.CutSuffix(pattern, "/*"); ok {
		rest, found := strings.CutPrefix(path, prefix+"/")
		return found && rest != "" && !strings.Contains(rest, "/")
	}

	return path == pattern
}

// MatchAny reports whether any pattern in the list covers the path.
func MatchAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if MatchPattern(p, path) {
			return true
		}
	}
	return false
}
