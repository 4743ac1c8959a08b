package authn

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/tuicr/scaffold/core/session"
)

// Attempt is a single login submission. It is consumed exactly once by
// Processor.Attempt and never persisted.
type Attempt struct {
	// SessionID identifies the session the CAPTCHA challenge was issued to.
	SessionID string
	Username  string
	Password  string
	// CaptchaAnswer is the submitted CAPTCHA token/answer.
	CaptchaAnswer string
}

// Processor validates login attempts against the credential store,
// gated by CAPTCHA verification.
type Processor struct {
	creds     CredentialStore
	captcha   CaptchaVerifier
	decrypter Decrypter
	logger    *slog.Logger
}

// Option configures the Processor.
type Option func(*Processor)

// WithDecrypter configures decryption of at-rest password hashes.
func WithDecrypter(d Decrypter) Option {
	return func(p *Processor) {
		p.decrypter = d
	}
}

// WithLogger sets the logger for authentication events.
func WithLogger(log *slog.Logger) Option {
	return func(p *Processor) {
		if log != nil {
			p.logger = log
		}
	}
}

// NewProcessor creates an authentication processor.
// Both the credential store and the CAPTCHA verifier are required.
func NewProcessor(creds CredentialStore, captcha CaptchaVerifier, opts ...Option) (*Processor, error) {
	if creds == nil {
		return nil, errors.New("authn: credential store is required")
	}
	if captcha == nil {
		return nil, errors.New("authn: captcha verifier is required")
	}

	p := &Processor{
		creds:   creds,
		captcha: captcha,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Attempt validates a login submission and produces the principal to bind
// to the session.
//
// The CAPTCHA is verified first; on failure the credential store is never
// consulted, so a captcha-farming client learns nothing about which
// usernames exist. Unknown usernames and wrong passwords both map to
// ErrBadCredentials.
func (p *Processor) Attempt(ctx context.Context, a Attempt) (session.Principal, error) {
	if !p.captcha.Verify(ctx, a.SessionID, a.CaptchaAnswer) {
		p.logger.InfoContext(ctx, "login rejected: bad captcha", "username", a.Username)
		return session.Principal{}, ErrBadCaptcha
	}

	creds, err := p.creds.Lookup(ctx, a.Username)
	if err != nil {
		if errors.Is(err, ErrUnknownUser) {
			p.logger.InfoContext(ctx, "login rejected: unknown user", "username", a.Username)
			return session.Principal{}, ErrBadCredentials
		}
		return session.Principal{}, errors.Join(ErrCredentialStore, err)
	}

	hash := creds.PasswordHash
	if creds.Encrypted {
		if p.decrypter == nil {
			return session.Principal{}, ErrDecrypterRequired
		}
		hash, err = p.decrypter.Decrypt(hash)
		if err != nil {
			return session.Principal{}, errors.Join(ErrCredentialStore, err)
		}
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(a.Password)); err != nil {
		p.logger.InfoContext(ctx, "login rejected: bad password", "username", a.Username)
		return session.Principal{}, ErrBadCredentials
	}

	return session.Principal{
		Username: a.Username,
		Roles:    creds.Roles,
	}, nil
}
