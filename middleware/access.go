package middleware

import (
	"io"
	"log/slog"

	"github.com/tuicr/scaffold/core/authz"
	"github.com/tuicr/scaffold/core/handler"
	"github.com/tuicr/scaffold/core/response"
)

// AccessConfig configures the access-decision middleware.
type AccessConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Engine decides access for each request (required)
	Engine *authz.Engine
	// LoginPage receives denied anonymous requests (required)
	LoginPage string
	// AccessDeniedURL receives denied authenticated requests (required)
	AccessDeniedURL string
	// Logger for structured logging (default: discard)
	Logger *slog.Logger
}

// Access creates middleware that gates every request through the access
// decision engine. Denied anonymous users are sent to the login page;
// denied authenticated users land on the access-denied page, since asking
// them to log in again would not help.
func Access(engine *authz.Engine, loginPage, accessDeniedURL string) handler.Middleware {
	return AccessWithConfig(AccessConfig{
		Engine:          engine,
		LoginPage:       loginPage,
		AccessDeniedURL: accessDeniedURL,
	})
}

// AccessWithConfig creates an access-decision middleware with custom configuration.
func AccessWithConfig(cfg AccessConfig) handler.Middleware {
	if cfg.Engine == nil {
		panic("access middleware: engine is required")
	}
	if cfg.LoginPage == "" {
		panic("access middleware: login page is required")
	}
	if cfg.AccessDeniedURL == "" {
		panic("access middleware: access denied URL is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return func(next handler.HandlerFunc) handler.HandlerFunc {
		return func(ctx handler.Context) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			sess := MustGetSession(ctx)
			r := ctx.Request()

			if cfg.Engine.Decide(sess.Principal, r).Allowed() {
				return next(ctx)
			}

			if !sess.IsAuthenticated() {
				cfg.Logger.DebugContext(ctx, "access denied, redirecting to login",
					slog.String("path", r.URL.Path))
				return response.Redirect(cfg.LoginPage)
			}

			cfg.Logger.InfoContext(ctx, "access denied",
				slog.String("username", sess.Principal.Username),
				slog.String("path", r.URL.Path))
			return response.Redirect(cfg.AccessDeniedURL)
		}
	}
}
