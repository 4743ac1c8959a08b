package authz

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/tuicr/scaffold/core/session"
)

// Decision is the outcome of an access check.
type Decision int

const (
	// DecisionDeny refuses the request. The zero value denies: an engine
	// that cannot decide fails closed.
	DecisionDeny Decision = iota
	// DecisionAllow lets the request through.
	DecisionAllow
)

// Allowed reports whether the decision permits the request.
func (d Decision) Allowed() bool {
	return d == DecisionAllow
}

// Engine decides, per request, whether access is allowed. It matches the
// path against the ordered rule list (first match wins) and combines voter
// results with an affirmative strategy: any grant allows, otherwise deny.
// Paths matching no rule fall through to an implicit authenticated-only
// catch-all.
type Engine struct {
	rules  []Rule
	voters []Voter
	logger *slog.Logger
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithVoters replaces the default voter set (role, authenticated,
// expression).
func WithVoters(voters ...Voter) EngineOption {
	return func(e *Engine) {
		if len(voters) > 0 {
			e.voters = voters
		}
	}
}

// WithEngineLogger sets the logger for access decisions.
func WithEngineLogger(log *slog.Logger) EngineOption {
	return func(e *Engine) {
		if log != nil {
			e.logger = log
		}
	}
}

// NewEngine creates an access-decision engine over the ordered rules.
func NewEngine(rules []Rule, opts ...EngineOption) *Engine {
	e := &Engine{
		rules: rules,
		voters: []Voter{
			RoleVoter{},
			AuthenticatedVoter{},
			ExpressionVoter{},
		},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// catchAll is the implicit rule for paths matching nothing explicit.
var catchAll = Rule{Pattern: "/**", Requirement: RequireAuthenticated}

// Decide runs the access decision for the request path.
func (e *Engine) Decide(p session.Principal, r *http.Request) Decision {
	rule := e.match(r.URL.Path)

	if rule.Requirement == RequirePublic {
		return DecisionAllow
	}

	for _, voter := range e.voters {
		if voter.Vote(p, r, rule) == Grant {
			return DecisionAllow
		}
	}

	e.logger.DebugContext(r.Context(), "access denied",
		"path", r.URL.Path,
		"pattern", rule.Pattern,
		"username", p.Username,
	)
	return DecisionDeny
}

func (e *Engine) match(path string) Rule {
	for _, rule := range e.rules {
		if rule.Matches(path) {
			return rule
		}
	}
	return catchAll
}
