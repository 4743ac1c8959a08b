package authn

import "errors"

var (
	// ErrBadCaptcha is returned when CAPTCHA verification fails.
	// The credential store is never consulted in that case.
	ErrBadCaptcha = errors.New("captcha verification failed")
	// ErrBadCredentials is returned for unknown usernames and password
	// mismatches alike, so the two cases are indistinguishable to a caller.
	ErrBadCredentials = errors.New("invalid username or password")
	// ErrUnknownUser is returned by credential stores for missing usernames.
	// The processor maps it to ErrBadCredentials before it reaches a client.
	ErrUnknownUser = errors.New("unknown user")
	// ErrDecrypterRequired is returned when stored credentials are
	// encrypted at rest but no decrypter is configured.
	ErrDecrypterRequired = errors.New("credentials are encrypted but no decrypter is configured")
	// ErrCredentialStore wraps credential store infrastructure failures.
	ErrCredentialStore = errors.New("credential store lookup failed")
)
