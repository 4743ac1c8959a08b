// Package session manages client sessions for the security pipeline:
// creation, lookup, expiry, and per-user concurrency limits.
//
// A Session is a value type identified by a stable ID and a rotating
// token; the token is what travels in the cookie. Authenticating a session
// binds a Principal (username plus roles) and rotates the token to prevent
// session fixation. The Manager wraps a Store with TTL validation and
// throttled expiry extension, and the Registry enforces the
// maximum-concurrent-sessions policy per username:
//
//	store := session.NewMemoryStore()
//	manager := session.NewManager(store, 24*time.Hour, 5*time.Minute)
//	registry := session.NewRegistry(1, false, store.Delete)
//
//	sess, _ := manager.New(ctx, session.NewSessionParams{IP: ip})
//	_ = sess.Authenticate(session.Principal{Username: "alice", Roles: roles})
//	if err := registry.Register(ctx, sess); err != nil {
//		// limit reached and policy prevents login
//	}
//
// With preventsLogin=false the registry evicts the user's oldest session
// instead of rejecting the new one; the evicted client is redirected to
// the login page with an expired reason on its next request.
package session
