package middleware

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/tuicr/scaffold/core/handler"
	"github.com/tuicr/scaffold/core/response"
)

// SessionUnregistrar releases a session's slot in the per-user limit.
type SessionUnregistrar interface {
	Unregister(username string, id uuid.UUID)
}

// LogoutConfig configures the logout middleware.
type LogoutConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Registry releases the session's limit slot (required)
	Registry SessionUnregistrar
	// LogoutURL is the path that triggers logout (required)
	LogoutURL string
	// LoginPage is the redirect target after logout (required)
	LoginPage string
	// Logger for structured logging (default: discard)
	Logger *slog.Logger
}

// Logout creates middleware that invalidates the request's session and
// redirects to the login page. Logging out an anonymous session is a no-op
// apart from the redirect, so repeated logouts are harmless.
func Logout(reg SessionUnregistrar, logoutURL, loginPage string) handler.Middleware {
	return LogoutWithConfig(LogoutConfig{
		Registry:  reg,
		LogoutURL: logoutURL,
		LoginPage: loginPage,
	})
}

// LogoutWithConfig creates a logout middleware with custom configuration.
func LogoutWithConfig(cfg LogoutConfig) handler.Middleware {
	if cfg.Registry == nil {
		panic("logout middleware: registry is required")
	}
	if cfg.LogoutURL == "" {
		panic("logout middleware: logout URL is required")
	}
	if cfg.LoginPage == "" {
		panic("logout middleware: login page is required")
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
			if r.URL.Path != cfg.LogoutURL || (r.Method != http.MethodPost && r.Method != http.MethodGet) {
				return next(ctx)
			}

			sess := MustGetSession(ctx)

			if sess.IsAuthenticated() {
				cfg.Registry.Unregister(sess.Principal.Username, sess.ID)
				username := sess.Principal.Username
				sess.Logout()
				SetSession(ctx, sess)
				cfg.Logger.InfoContext(ctx, "logout",
					slog.String("username", username),
					slog.String("session_id", sess.ID.String()))
			}

			return response.Redirect(cfg.LoginPage)
		}
	}
}
