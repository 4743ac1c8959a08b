package middleware

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/tuicr/scaffold/core/authn"
	"github.com/tuicr/scaffold/core/handler"
	"github.com/tuicr/scaffold/core/response"
	"github.com/tuicr/scaffold/core/session"
)

// SessionRegistrar enforces the per-user concurrent session limit.
type SessionRegistrar interface {
	Register(ctx context.Context, sess session.Session) error
}

// LoginConfig configures the form-login middleware.
type LoginConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Processor validates login attempts (required)
	Processor *authn.Processor
	// Registry enforces the concurrent session limit (required)
	Registry SessionRegistrar
	// ProcessingURL is the path the login form posts to (required)
	ProcessingURL string
	// LoginPage receives failed attempts with a reason parameter (required)
	LoginPage string
	// SuccessURL receives successful logins (required)
	SuccessURL string
	// UsernameField and PasswordField name the form fields
	// (defaults: "username", "password")
	UsernameField string
	PasswordField string
	// CaptchaField names the challenge answer field (default: "captcha")
	CaptchaField string
	// RememberField names the persistent-login opt-in checkbox
	// (default: "remember-me")
	RememberField string
	// RememberTTL is the lifetime of remembered sessions
	// (default: session.RememberTTLDefault)
	RememberTTL time.Duration
	// ReasonParam overrides the failure reason query parameter
	ReasonParam string
	// Logger for structured logging (default: discard)
	Logger *slog.Logger
}

// Login creates middleware that processes login form submissions. Requests
// that are not a POST to the processing URL pass through untouched.
//
// A successful attempt promotes the request's session to authenticated,
// rotating its token, and registers it against the per-user limit before
// redirecting to the success URL. Checking the remember-me box makes the
// session persistent with the configured lifetime. Failures redirect back
// to the login page with a machine-readable reason.
func Login(p *authn.Processor, reg SessionRegistrar, processingURL, loginPage, successURL string) handler.Middleware {
	return LoginWithConfig(LoginConfig{
		Processor:     p,
		Registry:      reg,
		ProcessingURL: processingURL,
		LoginPage:     loginPage,
		SuccessURL:    successURL,
	})
}

// LoginWithConfig creates a form-login middleware with custom configuration.
func LoginWithConfig(cfg LoginConfig) handler.Middleware {
	if cfg.Processor == nil {
		panic("login middleware: processor is required")
	}
	if cfg.Registry == nil {
		panic("login middleware: registry is required")
	}
	if cfg.ProcessingURL == "" {
		panic("login middleware: processing URL is required")
	}
	if cfg.LoginPage == "" {
		panic("login middleware: login page is required")
	}
	if cfg.SuccessURL == "" {
		panic("login middleware: success URL is required")
	}
	if cfg.UsernameField == "" {
		cfg.UsernameField = "username"
	}
	if cfg.PasswordField == "" {
		cfg.PasswordField = "password"
	}
	if cfg.CaptchaField == "" {
		cfg.CaptchaField = "captcha"
	}
	if cfg.RememberField == "" {
		cfg.RememberField = "remember-me"
	}
	if cfg.RememberTTL <= 0 {
		cfg.RememberTTL = session.RememberTTLDefault
	}
	if cfg.ReasonParam == "" {
		cfg.ReasonParam = DefaultReasonParam
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return func(next handler.HandlerFunc) handler.HandlerFunc {
		return func(ctx handler.Context) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			r := ctx.Request()
			if r.Method != http.MethodPost || r.URL.Path != cfg.ProcessingURL {
				return next(ctx)
			}

			sess := MustGetSession(ctx)

			attempt := authn.Attempt{
				SessionID:     sess.ID.String(),
				Username:      strings.TrimSpace(r.PostFormValue(cfg.UsernameField)),
				Password:      r.PostFormValue(cfg.PasswordField),
				CaptchaAnswer: strings.TrimSpace(r.PostFormValue(cfg.CaptchaField)),
			}

			principal, err := cfg.Processor.Attempt(ctx, attempt)
			if err != nil {
				switch {
				case errors.Is(err, authn.ErrBadCaptcha):
					return response.RedirectWithReason(cfg.LoginPage, cfg.ReasonParam, ReasonBadCaptcha)
				case errors.Is(err, authn.ErrBadCredentials):
					return response.RedirectWithReason(cfg.LoginPage, cfg.ReasonParam, ReasonBadCredentials)
				default:
					cfg.Logger.ErrorContext(ctx, "login attempt failed",
						slog.String("username", attempt.Username), slog.Any("error", err))
					return response.Error(err)
				}
			}

			if err := sess.Authenticate(principal); err != nil {
				cfg.Logger.ErrorContext(ctx, "failed to authenticate session", slog.Any("error", err))
				return response.Error(err)
			}

			if r.PostFormValue(cfg.RememberField) != "" {
				sess.Remember(cfg.RememberTTL)
			}

			if err := cfg.Registry.Register(ctx, sess); err != nil {
				if errors.Is(err, session.ErrSessionLimitExceeded) {
					cfg.Logger.InfoContext(ctx, "login rejected: session limit",
						slog.String("username", principal.Username))
					return response.RedirectWithReason(cfg.LoginPage, cfg.ReasonParam, ReasonSessionLimit)
				}
				cfg.Logger.ErrorContext(ctx, "failed to register session", slog.Any("error", err))
				return response.Error(err)
			}

			SetSession(ctx, sess)

			cfg.Logger.InfoContext(ctx, "login succeeded",
				slog.String("username", principal.Username),
				slog.String("session_id", sess.ID.String()))

			return response.Redirect(cfg.SuccessURL)
		}
	}
}
