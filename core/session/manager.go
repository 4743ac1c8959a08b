package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Manager handles session lifecycle including creation, retrieval, and
// expiration. The touchInterval determines how often sessions are
// automatically extended on access, reducing write operations to the store.
type Manager struct {
	store         Store
	ttl           time.Duration
	rememberTTL   time.Duration
	touchInterval time.Duration
}

// ManagerOption configures the Manager.
type ManagerOption func(*Manager)

// WithRememberTTL sets the lifetime applied to remembered sessions
// instead of the regular TTL.
func WithRememberTTL(ttl time.Duration) ManagerOption {
	return func(m *Manager) {
		if ttl > 0 {
			m.rememberTTL = ttl
		}
	}
}

// NewManager creates a session manager with the specified store,
// time-to-live duration, and touch interval.
func NewManager(store Store, ttl, touchInterval time.Duration, opts ...ManagerOption) *Manager {
	m := &Manager{
		store:         store,
		ttl:           ttl,
		rememberTTL:   RememberTTLDefault,
		touchInterval: touchInterval,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// NewFromConfig creates a session manager from configuration.
func NewFromConfig(store Store, cfg Config) *Manager {
	return NewManager(store, cfg.TTL, cfg.TouchInterval, WithRememberTTL(cfg.RememberMeTTL))
}

// New creates and persists a new anonymous session.
func (m *Manager) New(ctx context.Context, params NewSessionParams) (Session, error) {
	sess, err := New(params, m.ttl)
	if err != nil {
		return Session{}, err
	}

	if err := m.store.Save(ctx, &sess); err != nil {
		return Session{}, errors.Join(ErrSaveSession, err)
	}

	return sess, nil
}

// GetByID retrieves a session by ID and validates expiration.
func (m *Manager) GetByID(ctx context.Context, id uuid.UUID) (Session, error) {
	sess, err := m.store.GetByID(ctx, id)
	if err != nil {
		return Session{}, err
	}

	if sess.IsExpired() {
		return Session{}, ErrExpired
	}

	return *sess, nil
}

// GetByToken retrieves a session by token and validates expiration.
func (m *Manager) GetByToken(ctx context.Context, token string) (Session, error) {
	sess, err := m.store.GetByToken(ctx, token)
	if err != nil {
		return Session{}, err
	}

	if sess.IsExpired() {
		return Session{}, ErrExpired
	}

	return *sess, nil
}

// Store handles all session persistence based on session state and
// returns the session as persisted, including any expiry extension from
// the touch. When a session is marked deleted, it is removed from the
// store and ErrNotAuthenticated is returned to signal the transport to
// clear the cookie.
func (m *Manager) Store(ctx context.Context, sess Session) (Session, error) {
	if sess.IsDeleted() {
		if err := m.store.Delete(ctx, sess.ID); err != nil && !errors.Is(err, ErrNotFound) {
			return Session{}, errors.Join(ErrDeleteSession, err)
		}
		return Session{}, ErrNotAuthenticated
	}

	ttl := m.ttl
	if sess.RememberMe {
		ttl = m.rememberTTL
	}
	sess.Touch(ttl, m.touchInterval)

	if sess.IsModified() {
		if err := m.store.Save(ctx, &sess); err != nil {
			return Session{}, errors.Join(ErrSaveSession, err)
		}
	}

	return sess, nil
}

// Delete removes a session from the store by ID.
func (m *Manager) Delete(ctx context.Context, id uuid.UUID) error {
	if err := m.store.Delete(ctx, id); err != nil && !errors.Is(err, ErrNotFound) {
		return errors.Join(ErrDeleteSession, err)
	}
	return nil
}

// CleanupExpired removes all expired sessions from the store.
// Should be called periodically to prevent session store growth.
func (m *Manager) CleanupExpired(ctx context.Context) (int64, error) {
	return m.store.DeleteExpired(ctx)
}

// GetTTL returns the session time-to-live duration.
func (m *Manager) GetTTL() time.Duration {
	return m.ttl
}
