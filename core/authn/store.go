package authn

import "context"

// Credentials is the stored material for a single user.
type Credentials struct {
	// PasswordHash is the bcrypt hash of the user's password. When
	// Encrypted is true the hash is additionally encrypted at rest and
	// must pass through the configured Decrypter before comparison.
	PasswordHash string
	Roles        []string
	Encrypted    bool
}

// CredentialStore supplies username lookups. Implementations live outside
// this package: see the in-memory store for development and the pg
// integration for production deployments.
type CredentialStore interface {
	// Lookup returns the credentials for username or ErrUnknownUser.
	Lookup(ctx context.Context, username string) (Credentials, error)
}

// CaptchaVerifier checks a submitted CAPTCHA answer against the challenge
// bound to the session. Verification happens strictly before any
// credential lookup.
type CaptchaVerifier interface {
	Verify(ctx context.Context, sessionID, answer string) bool
}

// Decrypter decrypts at-rest secrets, typically backed by the RSA
// keystore. Loaded once at startup and read-only afterwards.
type Decrypter interface {
	Decrypt(ciphertext string) (string, error)
}
