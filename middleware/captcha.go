package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tuicr/scaffold/core/handler"
	"github.com/tuicr/scaffold/core/response"
)

type captchaVerifiedKey struct{}

// CaptchaRegistry verifies a challenge answer for a session. Verification
// consumes the challenge regardless of outcome.
type CaptchaRegistry interface {
	Verify(ctx context.Context, sessionID, answer string) bool
}

// CaptchaConfig configures the captcha middleware.
type CaptchaConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Registry verifies challenge answers (required)
	Registry CaptchaRegistry
	// ProcessingURL is the login form submission path the filter guards (required)
	ProcessingURL string
	// LoginPage is the redirect target on a failed challenge (required)
	LoginPage string
	// Field is the form field carrying the answer (default: "captcha")
	Field string
	// ReasonParam overrides the failure reason query parameter
	ReasonParam string
	// Logger for structured logging (default: discard)
	Logger *slog.Logger
}

// Captcha creates middleware that checks the challenge answer on login form
// submissions before any credential processing happens. It runs ahead of
// the login filter in the chain, mirroring a chain ordered with the
// challenge check in front of username/password authentication.
//
// A wrong or missing answer short-circuits the request back to the login
// page with a "bad_captcha" reason. Submitted credentials are never
// inspected on that path. A correct answer marks the request context so
// downstream verification treats the challenge as already passed.
func Captcha(registry CaptchaRegistry, processingURL, loginPage string) handler.Middleware {
	return CaptchaWithConfig(CaptchaConfig{
		Registry:      registry,
		ProcessingURL: processingURL,
		LoginPage:     loginPage,
	})
}

// CaptchaWithConfig creates a captcha middleware with custom configuration.
func CaptchaWithConfig(cfg CaptchaConfig) handler.Middleware {
	if cfg.Registry == nil {
		panic("captcha middleware: registry is required")
	}
	if cfg.ProcessingURL == "" {
		panic("captcha middleware: processing URL is required")
	}
	if cfg.LoginPage == "" {
		panic("captcha middleware: login page is required")
	}
	if cfg.Field == "" {
		cfg.Field = "captcha"
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
			answer := strings.TrimSpace(r.PostFormValue(cfg.Field))
			if !cfg.Registry.Verify(ctx, sess.ID.String(), answer) {
				cfg.Logger.InfoContext(ctx, "captcha verification failed",
					slog.String("session_id", sess.ID.String()))
				return response.RedirectWithReason(cfg.LoginPage, cfg.ReasonParam, ReasonBadCaptcha)
			}

			ctx.SetValue(captchaVerifiedKey{}, true)
			return next(ctx)
		}
	}
}

// contextVerifier reports whether the captcha middleware already verified
// the challenge for this request.
type contextVerifier struct{}

func (contextVerifier) Verify(ctx context.Context, _, _ string) bool {
	verified, ok := ctx.Value(captchaVerifiedKey{}).(bool)
	return ok && verified
}

// ContextVerifier returns a captcha verifier backed by the request context
// flag set by the captcha middleware. Wiring it into the authentication
// processor avoids consuming the one-shot challenge a second time.
func ContextVerifier() contextVerifier {
	return contextVerifier{}
}
