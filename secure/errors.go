package secure

import "errors"

var (
	// ErrMissingTransport indicates no session transport was provided.
	ErrMissingTransport = errors.New("secure: session transport is required")
	// ErrMissingCaptcha indicates no CAPTCHA registry was provided.
	ErrMissingCaptcha = errors.New("secure: captcha registry is required")
	// ErrMissingCredentials indicates no credential store was provided.
	ErrMissingCredentials = errors.New("secure: credential store is required")
	// ErrMissingRegistry indicates no session registry was provided.
	ErrMissingRegistry = errors.New("secure: session registry is required")
	// ErrMissingEndpoint indicates no endpoint handler was provided.
	ErrMissingEndpoint = errors.New("secure: endpoint handler is required")
)
