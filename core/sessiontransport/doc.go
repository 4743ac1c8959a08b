// Package sessiontransport moves sessions between the HTTP layer and the
// session store. The cookie transport keeps the session token in a signed
// cookie: Load resolves the request's session (degrading to a fresh
// anonymous one when the cookie is absent or stale), Save synchronizes the
// cookie with the session expiry, and Store persists post-request state,
// returning the session with any expiry extension applied and clearing
// the cookie for deleted sessions.
package sessiontransport
