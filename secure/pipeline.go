package secure

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/tuicr/scaffold/core/authn"
	"github.com/tuicr/scaffold/core/authz"
	"github.com/tuicr/scaffold/core/handler"
	"github.com/tuicr/scaffold/core/session"
	"github.com/tuicr/scaffold/middleware"
)

// Deps carries the pipeline collaborators. Transport, Captcha, Credentials
// and Registry are required; the rest have sensible defaults.
type Deps struct {
	// Transport loads and persists the request's session.
	Transport middleware.SessionTransport
	// Captcha verifies login challenge answers.
	Captcha middleware.CaptchaRegistry
	// Credentials resolves usernames to stored credentials.
	Credentials authn.CredentialStore
	// Decrypter decrypts at-rest password hashes (optional).
	Decrypter authn.Decrypter
	// Registry enforces the per-user concurrent session limit.
	Registry *session.Registry
	// Rules overrides the access rule set (default: DefaultRules(cfg)).
	Rules []authz.Rule
	// Voters overrides the voter set (default: role, authenticated,
	// expression).
	Voters []authz.Voter
	// Logger for structured logging (default: discard)
	Logger *slog.Logger
	// ErrorHandler renders pipeline errors (default: plain 500).
	ErrorHandler handler.ErrorHandler
}

// New assembles the full security filter chain around the endpoint and
// returns it as a standard http.Handler.
//
// The chain order is fixed: request ID, client IP, logging, session,
// CSRF, CAPTCHA, login, logout, access decision. CSRF runs before the
// CAPTCHA filter so a forged POST cannot burn the user's one-shot
// challenge, and the CAPTCHA filter always precedes the login filter, so
// a failed challenge redirects before credentials are ever processed; the
// login filter's processor checks the context flag the CAPTCHA filter
// sets instead of consuming the one-shot challenge again. Requests
// matching IgnorePaths skip the chain and hit the endpoint directly.
func New(cfg Config, deps Deps, endpoint handler.HandlerFunc) (http.Handler, error) {
	switch {
	case deps.Transport == nil:
		return nil, ErrMissingTransport
	case deps.Captcha == nil:
		return nil, ErrMissingCaptcha
	case deps.Credentials == nil:
		return nil, ErrMissingCredentials
	case deps.Registry == nil:
		return nil, ErrMissingRegistry
	case endpoint == nil:
		return nil, ErrMissingEndpoint
	}

	log := deps.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	opts := []authn.Option{authn.WithLogger(log)}
	if deps.Decrypter != nil {
		opts = append(opts, authn.WithDecrypter(deps.Decrypter))
	}
	processor, err := authn.NewProcessor(deps.Credentials, middleware.ContextVerifier(), opts...)
	if err != nil {
		return nil, err
	}

	rules := deps.Rules
	if rules == nil {
		rules = DefaultRules(cfg)
	}
	engineOpts := []authz.EngineOption{authz.WithEngineLogger(log)}
	if deps.Voters != nil {
		engineOpts = append(engineOpts, authz.WithVoters(deps.Voters...))
	}
	engine := authz.NewEngine(rules, engineOpts...)

	secured := handler.Chain([]handler.Middleware{
		middleware.RequestID(),
		middleware.ClientIP(),
		middleware.LoggingWithLogger(log),
		middleware.SessionWithConfig(middleware.SessionConfig{
			Transport:   deps.Transport,
			Toucher:     deps.Registry,
			LoginPage:   cfg.LoginPage,
			ReasonParam: cfg.ReasonParam,
			Logger:      log,
		}),
		middleware.CSRFWithConfig(middleware.CSRFConfig{
			CookieName: cfg.CSRFCookieName,
			Field:      cfg.CSRFField,
			Logger:     log,
		}),
		middleware.CaptchaWithConfig(middleware.CaptchaConfig{
			Registry:      deps.Captcha,
			ProcessingURL: cfg.LoginProcessingURL,
			LoginPage:     cfg.LoginPage,
			ReasonParam:   cfg.ReasonParam,
			Logger:        log,
		}),
		middleware.LoginWithConfig(middleware.LoginConfig{
			Processor:     processor,
			Registry:      deps.Registry,
			ProcessingURL: cfg.LoginProcessingURL,
			LoginPage:     cfg.LoginPage,
			SuccessURL:    cfg.LoginSuccessURL,
			RememberField: cfg.RememberMeField,
			RememberTTL:   cfg.RememberMeTTL,
			ReasonParam:   cfg.ReasonParam,
			Logger:        log,
		}),
		middleware.LogoutWithConfig(middleware.LogoutConfig{
			Registry:  deps.Registry,
			LogoutURL: cfg.LogoutURL,
			LoginPage: cfg.LoginPage,
			Logger:    log,
		}),
		middleware.AccessWithConfig(middleware.AccessConfig{
			Engine:          engine,
			LoginPage:       cfg.LoginPage,
			AccessDeniedURL: cfg.AccessDeniedURL,
			Logger:          log,
		}),
	}, endpoint)

	root := func(ctx handler.Context) handler.Response {
		if authz.MatchAny(cfg.IgnorePaths, ctx.Request().URL.Path) {
			return endpoint(ctx)
		}
		return secured(ctx)
	}

	return handler.HTTP(root, deps.ErrorHandler), nil
}
