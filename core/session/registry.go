package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// EvictFunc removes an evicted session from the backing store.
type EvictFunc func(ctx context.Context, id uuid.UUID) error

// Registry tracks live sessions per username and enforces the configured
// concurrent-session limit. The check-count-then-add/evict sequence runs
// under a single lock so two simultaneous logins for the same user can
// never both slip past a max-of-1 limit.
type Registry struct {
	mu            sync.Mutex
	byUser        map[string][]registryEntry
	maxSessions   int
	preventsLogin bool
	evict         EvictFunc
}

type registryEntry struct {
	id        uuid.UUID
	createdAt time.Time
	expiresAt time.Time
}

// NewRegistry creates a session registry. maxSessions is the number of
// concurrent sessions allowed per username (minimum 1). When preventsLogin
// is true a login exceeding the limit is rejected with
// ErrSessionLimitExceeded; otherwise the oldest session is evicted via the
// evict callback and the login proceeds.
func NewRegistry(maxSessions int, preventsLogin bool, evict EvictFunc) *Registry {
	if maxSessions < 1 {
		maxSessions = 1
	}
	return &Registry{
		byUser:        make(map[string][]registryEntry),
		maxSessions:   maxSessions,
		preventsLogin: preventsLogin,
		evict:         evict,
	}
}

// NewRegistryFromConfig creates a registry using the limit settings from Config.
func NewRegistryFromConfig(cfg Config, evict EvictFunc) *Registry {
	return NewRegistry(cfg.MaxSessionsPerUser, cfg.MaxSessionsPreventsLogin, evict)
}

// Register records an authenticated session against its username, applying
// the concurrency policy atomically. Expired entries are dropped before
// the limit check so stale logins do not block new ones. A session that is
// already registered does not count against its own limit: re-registering
// replaces the existing entry.
func (r *Registry) Register(ctx context.Context, sess Session) error {
	if !sess.IsAuthenticated() {
		return ErrNotAuthenticated
	}

	username := sess.Principal.Username

	r.mu.Lock()
	defer r.mu.Unlock()

	live := prune(r.byUser[username])
	for i := 0; i < len(live); i++ {
		if live[i].id == sess.ID {
			live = append(live[:i], live[i+1:]...)
			i--
		}
	}

	for len(live) >= r.maxSessions {
		if r.preventsLogin {
			r.byUser[username] = live
			return ErrSessionLimitExceeded
		}

		oldest := 0
		for i := range live {
			if live[i].createdAt.Before(live[oldest].createdAt) {
				oldest = i
			}
		}
		if r.evict != nil {
			if err := r.evict(ctx, live[oldest].id); err != nil {
				r.byUser[username] = live
				return err
			}
		}
		live = append(live[:oldest], live[oldest+1:]...)
	}

	r.byUser[username] = append(live, registryEntry{
		id:        sess.ID,
		createdAt: sess.CreatedAt,
		expiresAt: sess.ExpiresAt,
	})

	return nil
}

// Touch extends the registered entry's expiry to match the session's
// extended lifetime in the store. Without it an active user's entry would
// age out on its login-time expiry and the limit could be exceeded by a
// second login. Unknown sessions are a no-op.
func (r *Registry) Touch(username string, id uuid.UUID, expiresAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	live := r.byUser[username]
	for i := range live {
		if live[i].id == id {
			live[i].expiresAt = expiresAt
			return
		}
	}
}

// Unregister removes a session from its username's live set.
// Unknown sessions are a no-op, which keeps logout idempotent.
func (r *Registry) Unregister(username string, id uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	live := r.byUser[username]
	for i := range live {
		if live[i].id == id {
			live = append(live[:i], live[i+1:]...)
			break
		}
	}

	if len(live) == 0 {
		delete(r.byUser, username)
		return
	}
	r.byUser[username] = live
}

// Count returns the number of live (non-expired) sessions for the username.
func (r *Registry) Count(username string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	live := prune(r.byUser[username])
	if len(live) == 0 {
		delete(r.byUser, username)
	} else {
		r.byUser[username] = live
	}
	return len(live)
}

// prune drops entries whose sessions have expired.
func prune(entries []registryEntry) []registryEntry {
	now := time.Now()
	live := entries[:0]
	for _, e := range entries {
		if e.expiresAt.After(now) {
			live = append(live, e)
		}
	}
	return live
}
