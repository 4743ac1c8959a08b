package sessiontransport

import "errors"

var (
	// ErrStaleSession is returned by Load together with a fresh anonymous
	// session when the request carried a cookie for a session that has
	// expired or was invalidated server-side.
	ErrStaleSession = errors.New("session referenced by cookie is no longer valid")

	// ErrSessionExpired is returned when attempting to save an already
	// expired session to the cookie.
	ErrSessionExpired = errors.New("cannot save expired session")
)
