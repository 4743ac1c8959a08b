package secure

import (
	"time"

	"github.com/tuicr/scaffold/core/authz"
)

// Config is the single environment surface for the security pipeline.
// Every URL the filters redirect to or intercept is configured here, so
// the login page, processing URL and failure targets cannot drift apart
// across packages.
type Config struct {
	// LoginPage renders the login form and receives failure redirects.
	LoginPage string `env:"SECURE_LOGIN_PAGE" envDefault:"/login"`
	// LoginProcessingURL is the path the login form posts to.
	LoginProcessingURL string `env:"SECURE_LOGIN_PROCESSING_URL" envDefault:"/login/process"`
	// LoginSuccessURL receives successful logins.
	LoginSuccessURL string `env:"SECURE_LOGIN_SUCCESS_URL" envDefault:"/"`
	// LogoutURL invalidates the session and redirects to the login page.
	LogoutURL string `env:"SECURE_LOGOUT_URL" envDefault:"/logout"`
	// AccessDeniedURL receives authenticated requests that fail authorization.
	AccessDeniedURL string `env:"SECURE_ACCESS_DENIED_URL" envDefault:"/access-denied"`
	// ReasonParam is the query parameter carrying the failure reason on
	// redirects to the login page.
	ReasonParam string `env:"SECURE_REASON_PARAM" envDefault:"param.error"`

	// RememberMeField names the login form checkbox that opts into a
	// persistent session.
	RememberMeField string `env:"SECURE_REMEMBER_ME_FIELD" envDefault:"remember-me"`
	// RememberMeTTL is the lifetime of remembered sessions.
	RememberMeTTL time.Duration `env:"SECURE_REMEMBER_ME_TTL" envDefault:"720h"`

	// CSRFCookieName is the double-submit cookie carrying the CSRF token.
	CSRFCookieName string `env:"SECURE_CSRF_COOKIE" envDefault:"csrf_token"`
	// CSRFField names the form field that echoes the CSRF token.
	CSRFField string `env:"SECURE_CSRF_FIELD" envDefault:"_csrf"`

	// AdminRole guards the admin subtree in the default rule set.
	AdminRole string `env:"SECURE_ADMIN_ROLE" envDefault:"ADMIN"`
	// AdminPathPrefix is the subtree the default rules restrict to AdminRole.
	AdminPathPrefix string `env:"SECURE_ADMIN_PATH_PREFIX" envDefault:"/admin"`

	// IgnorePaths bypass the filter chain entirely (static assets, probes).
	IgnorePaths []string `env:"SECURE_IGNORE_PATHS" envSeparator:"," envDefault:"/static/**,/favicon.ico,/health"`
	// PublicPaths traverse the chain but require no authentication.
	PublicPaths []string `env:"SECURE_PUBLIC_PATHS" envSeparator:","`
}

// DefaultRules builds the access rule set implied by the configuration:
// the login and access-denied pages plus PublicPaths are public, the admin
// subtree requires AdminRole, and everything else requires authentication.
// Rules are ordered most-specific first since the first match wins.
func DefaultRules(cfg Config) []authz.Rule {
	rules := []authz.Rule{
		authz.Public(cfg.LoginPage),
		authz.Public(cfg.AccessDeniedURL),
	}
	for _, p := range cfg.PublicPaths {
		rules = append(rules, authz.Public(p))
	}
	if cfg.AdminPathPrefix != "" && cfg.AdminRole != "" {
		rules = append(rules, authz.RolesAny(cfg.AdminPathPrefix+"/**", cfg.AdminRole))
	}
	return append(rules, authz.Authenticated("/**"))
}
