package middleware

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tuicr/scaffold/core/handler"
	"github.com/tuicr/scaffold/core/response"
	"github.com/tuicr/scaffold/core/session"
	"github.com/tuicr/scaffold/core/sessiontransport"
)

type sessionKey struct{}

// SessionTransport moves sessions between requests and the store. Store
// returns the session as persisted, including any expiry extension.
type SessionTransport interface {
	Load(handler.Context) (session.Session, error)
	Store(handler.Context, session.Session) (session.Session, error)
}

// SessionToucher is told about activity on authenticated sessions so the
// per-user limit accounting tracks the store's extended expiry.
type SessionToucher interface {
	Touch(username string, id uuid.UUID, expiresAt time.Time)
}

// SessionConfig configures the session middleware.
type SessionConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool
	// Transport loads and stores the request's session (required)
	Transport SessionTransport
	// Toucher receives the persisted expiry of authenticated sessions
	// after each request (optional)
	Toucher SessionToucher
	// LoginPage is the redirect target when a stale session cookie is
	// detected; the expired reason is appended as a query parameter.
	LoginPage string
	// ReasonParam overrides the failure reason query parameter
	ReasonParam string
	// Logger for structured logging (default: discard)
	Logger *slog.Logger
}

// Session creates middleware that resolves the request's session, stores
// it in the context for later filters, and persists it after the request.
//
// A request carrying a cookie for an expired or invalidated session gets a
// fresh anonymous session and is redirected to the login page with an
// "expired" reason, so a timed-out user sees an accurate message instead
// of a generic error.
func Session(transport SessionTransport, loginPage string) handler.Middleware {
	return SessionWithConfig(SessionConfig{
		Transport: transport,
		LoginPage: loginPage,
	})
}

// SessionWithConfig creates a session middleware with custom configuration.
func SessionWithConfig(cfg SessionConfig) handler.Middleware {
	if cfg.Transport == nil {
		panic("session middleware: transport is required")
	}
	if cfg.LoginPage == "" {
		panic("session middleware: login page is required")
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

			sess, err := cfg.Transport.Load(ctx)
			if err != nil {
				if errors.Is(err, sessiontransport.ErrStaleSession) {
					// The fresh anonymous session is already saved; the
					// redirect cannot loop.
					return response.RedirectWithReason(cfg.LoginPage, cfg.ReasonParam, ReasonExpired)
				}
				cfg.Logger.ErrorContext(ctx, "failed to load session", "error", err)
				return response.Error(err)
			}

			ctx.SetValue(sessionKey{}, sess)

			resp := next(ctx)

			current, ok := GetSession(ctx)
			if !ok {
				return resp
			}

			stored, err := cfg.Transport.Store(ctx, current)
			if err != nil {
				cfg.Logger.ErrorContext(ctx, "failed to store session", "error", err)
				return response.Error(err)
			}

			if cfg.Toucher != nil && stored.IsAuthenticated() {
				cfg.Toucher.Touch(stored.Principal.Username, stored.ID, stored.ExpiresAt)
			}

			return resp
		}
	}
}

// GetSession retrieves the session from the context.
func GetSession(ctx handler.Context) (session.Session, bool) {
	if ctx == nil {
		return session.Session{}, false
	}

	sess, ok := ctx.Value(sessionKey{}).(session.Session)
	return sess, ok
}

// MustGetSession retrieves the session or panics. Use in filters that are
// guaranteed to run after the session middleware.
func MustGetSession(ctx handler.Context) session.Session {
	sess, ok := GetSession(ctx)
	if !ok {
		panic("session not found in context")
	}
	return sess
}

// SetSession updates the session in the context. Filters mutate session
// state through this so the session middleware persists it after the
// request.
func SetSession(ctx handler.Context, sess session.Session) {
	ctx.SetValue(sessionKey{}, sess)
}
