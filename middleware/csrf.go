package middleware

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"io"
	"log/slog"
	"net/http"

	"github.com/tuicr/scaffold/core/handler"
	"github.com/tuicr/scaffold/core/response"
)

type csrfKey struct{}

// CSRFConfig configures the CSRF protection middleware.
type CSRFConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// CookieName is the double-submit cookie (default: "csrf_token")
	CookieName string
	// Field names the form field carrying the token (default: "_csrf")
	Field string
	// HeaderName is checked when the form field is absent
	// (default: "X-CSRF-Token")
	HeaderName string
	// Logger for structured logging (default: discard)
	Logger *slog.Logger
}

// CSRF creates a CSRF protection middleware with default configuration.
func CSRF() handler.Middleware {
	return CSRFWithConfig(CSRFConfig{})
}

// CSRFWithConfig creates a CSRF protection middleware using the
// double-submit cookie pattern. Every response carries a token cookie;
// unsafe methods (anything but GET, HEAD, OPTIONS, TRACE) must echo the
// token in a form field or header, which a cross-site attacker cannot
// read. Mismatches are rejected with 403 before any later filter runs.
//
// Handlers rendering forms read the token with GetCSRFToken and embed it
// as a hidden field.
func CSRFWithConfig(cfg CSRFConfig) handler.Middleware {
	if cfg.CookieName == "" {
		cfg.CookieName = "csrf_token"
	}
	if cfg.Field == "" {
		cfg.Field = "_csrf"
	}
	if cfg.HeaderName == "" {
		cfg.HeaderName = "X-CSRF-Token"
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

			token, fresh := requestCSRFToken(r, cfg.CookieName)
			if fresh {
				http.SetCookie(ctx.ResponseWriter(), &http.Cookie{
					Name:     cfg.CookieName,
					Value:    token,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			ctx.SetValue(csrfKey{}, token)

			if safeMethod(r.Method) {
				return next(ctx)
			}

			// A freshly issued token cannot have been echoed back yet.
			submitted := r.PostFormValue(cfg.Field)
			if submitted == "" {
				submitted = r.Header.Get(cfg.HeaderName)
			}
			if fresh || subtle.ConstantTimeCompare([]byte(token), []byte(submitted)) != 1 {
				cfg.Logger.WarnContext(ctx, "rejected request with missing or invalid csrf token",
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path))
				return response.Status(http.StatusForbidden)
			}

			return next(ctx)
		}
	}
}

// GetCSRFToken retrieves the request's CSRF token from the context.
func GetCSRFToken(ctx handler.Context) (string, bool) {
	token, ok := ctx.Value(csrfKey{}).(string)
	return token, ok
}

func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions, http.MethodTrace:
		return true
	}
	return false
}

// requestCSRFToken returns the token from the request cookie, or a newly
// generated one when the cookie is absent or malformed. fresh reports
// whether the token was generated for this request.
func requestCSRFToken(r *http.Request, cookieName string) (token string, fresh bool) {
	if c, err := r.Cookie(cookieName); err == nil && validCSRFToken(c.Value) {
		return c.Value, false
	}

	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic("csrf middleware: " + err.Error())
	}
	return base64.RawURLEncoding.EncodeToString(b), true
}

func validCSRFToken(v string) bool {
	if v == "" {
		return false
	}
	b, err := base64.RawURLEncoding.DecodeString(v)
	return err == nil && len(b) == 32
}
