package session

import "time"

// Config holds session lifecycle and concurrency-limit configuration.
type Config struct {
	// TTL is the session time-to-live (idle timeout).
	TTL time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	// TouchInterval is the minimum time between activity updates
	// (0 = extend on every request).
	TouchInterval time.Duration `env:"SESSION_TOUCH_INTERVAL" envDefault:"5m"`
	// RememberMeTTL is the lifetime of sessions the user asked to be
	// remembered on. It replaces TTL for those sessions.
	RememberMeTTL time.Duration `env:"SESSION_REMEMBER_ME_TTL" envDefault:"720h"`
	// MaxSessionsPerUser limits concurrent live sessions per username.
	MaxSessionsPerUser int `env:"SESSION_MAX_PER_USER" envDefault:"1"`
	// MaxSessionsPreventsLogin selects the limit policy: true rejects the
	// new login, false evicts the user's oldest session.
	MaxSessionsPreventsLogin bool `env:"SESSION_MAX_PREVENTS_LOGIN" envDefault:"false"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		TTL:                TTLDefault,
		TouchInterval:      5 * time.Minute,
		RememberMeTTL:      RememberTTLDefault,
		MaxSessionsPerUser: 1,
	}
}

// TTLDefault is the default session idle timeout.
const TTLDefault = 24 * time.Hour

// RememberTTLDefault is the default lifetime of remembered sessions.
const RememberTTLDefault = 30 * 24 * time.Hour
