package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"slices"
	"time"

	"github.com/google/uuid"
)

// Principal is the authenticated identity attached to a session after a
// successful login. A zero Principal represents an anonymous request.
type Principal struct {
	Username string
	Roles    []string
}

// IsAuthenticated reports whether the principal represents a logged-in user.
func (p Principal) IsAuthenticated() bool {
	return p.Username != ""
}

// HasRole reports whether the principal carries the given role.
func (p Principal) HasRole(role string) bool {
	return slices.Contains(p.Roles, role)
}

// Session represents a client session identified by a cookie token.
type Session struct {
	// ID is the stable unique session identifier that never changes during
	// the session lifecycle.
	ID uuid.UUID

	// Token is the cryptographically secure session token (32 bytes
	// base64url) used as the cookie value. Rotated on authentication.
	Token string

	// Principal is the identity bound to the session. Zero for anonymous
	// sessions.
	Principal Principal

	IP        string
	UserAgent string

	// RememberMe marks the session as persistent: it outlives the regular
	// idle timeout and its cookie survives browser restarts.
	RememberMe bool

	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt time.Time

	// isModified tracks if the session needs saving
	isModified bool
}

// NewSessionParams contains parameters for creating a new session.
type NewSessionParams struct {
	IP        string
	UserAgent string
}

// New creates a new anonymous session with a generated token and ID.
// The session is marked as modified and ready to be saved.
func New(params NewSessionParams, ttl time.Duration) (Session, error) {
	if params.IP == "" {
		return Session{}, ErrMissingIP
	}

	token, err := generateToken()
	if err != nil {
		return Session{}, errors.Join(ErrTokenGeneration, err)
	}

	now := time.Now()
	return Session{
		ID:         uuid.New(),
		Token:      token,
		IP:         params.IP,
		UserAgent:  params.UserAgent,
		ExpiresAt:  now.Add(ttl),
		CreatedAt:  now,
		UpdatedAt:  now,
		isModified: true,
	}, nil
}

// Authenticate binds the principal to the session. The session token is
// rotated to prevent session fixation, but the session ID is preserved.
func (s *Session) Authenticate(p Principal) error {
	if !p.IsAuthenticated() {
		return ErrAnonymousPrincipal
	}
	if err := s.rotateToken(); err != nil {
		return err
	}
	s.Principal = p
	s.UpdatedAt = time.Now()
	s.isModified = true
	return nil
}

// Remember marks the session as persistent and extends its expiry to ttl
// from now, so the login survives the regular idle timeout. Subsequent
// touches keep using the persistent lifetime.
func (s *Session) Remember(ttl time.Duration) {
	s.RememberMe = true
	s.ExpiresAt = time.Now().Add(ttl)
	s.UpdatedAt = time.Now()
	s.isModified = true
}

// Logout detaches the principal and marks the session for deletion.
func (s *Session) Logout() {
	s.Principal = Principal{}
	s.DeletedAt = time.Now()
	s.isModified = true
}

// Touch extends the session expiration if the touch interval has elapsed.
// This reduces write operations by only updating when sufficient time has passed.
func (s *Session) Touch(ttl, touchInterval time.Duration) {
	if time.Since(s.UpdatedAt) >= touchInterval {
		s.ExpiresAt = time.Now().Add(ttl)
		s.UpdatedAt = time.Now()
		s.isModified = true
	}
}

// IsAuthenticated returns true if the session carries an authenticated principal.
func (s Session) IsAuthenticated() bool {
	return s.Principal.IsAuthenticated() && s.Token != ""
}

// IsDeleted returns true if the session is marked for deletion.
func (s Session) IsDeleted() bool {
	return !s.DeletedAt.IsZero()
}

// IsModified returns true if the session has been modified and needs saving.
func (s Session) IsModified() bool {
	return s.isModified
}

// IsExpired returns true if the session has expired.
func (s Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// rotateToken generates a new token while preserving the session ID.
func (s *Session) rotateToken() error {
	newToken, err := generateToken()
	if err != nil {
		return errors.Join(ErrTokenGeneration, err)
	}
	s.Token = newToken
	s.isModified = true
	return nil
}

// generateToken creates a cryptographically secure random token using
// 32 bytes (256 bits) encoded as base64 URL-safe string without padding.
func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
