package sessiontransport

import (
	"errors"
	"fmt"
	"time"

	"github.com/tuicr/scaffold/core/cookie"
	"github.com/tuicr/scaffold/core/handler"
	"github.com/tuicr/scaffold/core/session"
	"github.com/tuicr/scaffold/pkg/clientip"
)

// Cookie provides HTTP cookie-based session transport.
// It stores Session.Token as the cookie value, signed via cookie.Manager.
type Cookie struct {
	manager   *session.Manager
	cookieMgr *cookie.Manager
	name      string
}

// NewCookie creates a new cookie-based session transport.
func NewCookie(mgr *session.Manager, cookieMgr *cookie.Manager, name string) *Cookie {
	return &Cookie{
		manager:   mgr,
		cookieMgr: cookieMgr,
		name:      name,
	}
}

// Load resolves the request's session from its cookie.
//
// With no cookie (or an unverifiable signature) a fresh anonymous session
// is created and returned with a nil error. When a well-formed cookie
// references a session that is expired or no longer in the store (timeout,
// eviction, restart), a fresh anonymous session is returned together with
// ErrStaleSession so the caller can redirect with an "expired" reason.
func (c *Cookie) Load(ctx handler.Context) (session.Session, error) {
	token, err := c.cookieMgr.GetSigned(ctx.Request(), c.name)
	if err != nil {
		return c.newAnonymous(ctx)
	}

	sess, err := c.manager.GetByToken(ctx, token)
	if err != nil {
		if !errors.Is(err, session.ErrExpired) && !errors.Is(err, session.ErrNotFound) {
			return session.Session{}, err
		}

		fresh, newErr := c.newAnonymous(ctx)
		if newErr != nil {
			return session.Session{}, newErr
		}
		return fresh, errors.Join(ErrStaleSession, err)
	}

	return sess, nil
}

// Save writes the session token to the response as a signed cookie whose
// MaxAge matches the session expiry.
func (c *Cookie) Save(ctx handler.Context, sess session.Session) error {
	until := time.Until(sess.ExpiresAt)
	if until <= 0 {
		return fmt.Errorf("%w: expired %v ago", ErrSessionExpired, -until)
	}

	return c.cookieMgr.SetSigned(ctx.ResponseWriter(), c.name, sess.Token,
		cookie.WithHTTPOnly(true),
		cookie.WithMaxAge(int(until.Seconds())),
	)
}

// Store persists the session after request processing and returns it as
// persisted, with any expiry extension applied. Deleted sessions are
// removed from the store and their cookie cleared; the zero session is
// returned for them.
func (c *Cookie) Store(ctx handler.Context, sess session.Session) (session.Session, error) {
	stored, err := c.manager.Store(ctx, sess)
	if errors.Is(err, session.ErrNotAuthenticated) {
		c.cookieMgr.Delete(ctx.ResponseWriter(), c.name)
		return session.Session{}, nil
	}
	if err != nil {
		return session.Session{}, err
	}

	if stored.IsModified() {
		if err := c.Save(ctx, stored); err != nil {
			return session.Session{}, err
		}
	}
	return stored, nil
}

// Delete removes the session from the store and clears the cookie.
func (c *Cookie) Delete(ctx handler.Context, sess session.Session) error {
	if err := c.manager.Delete(ctx, sess.ID); err != nil {
		return err
	}
	c.cookieMgr.Delete(ctx.ResponseWriter(), c.name)
	return nil
}

// newAnonymous creates, persists, and emits a fresh anonymous session.
func (c *Cookie) newAnonymous(ctx handler.Context) (session.Session, error) {
	sess, err := c.manager.New(ctx, session.NewSessionParams{
		IP:        clientip.Get(ctx.Request()),
		UserAgent: ctx.Request().Header.Get("User-Agent"),
	})
	if err != nil {
		return session.Session{}, err
	}

	if err := c.Save(ctx, sess); err != nil {
		return session.Session{}, err
	}
	return sess, nil
}
