// Package redis provides Redis client initialization, health checking and
// a Redis-backed session store.
//
// # Connecting
//
// Configuration is handled through the Config struct with environment
// variable mapping:
//
//	type Config struct {
//		ConnectionURL  string        `env:"REDIS_URL,required" envDefault:"redis://localhost:6379/0"`
//		RetryAttempts  int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3"`
//		RetryInterval  time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s"`
//		ConnectTimeout time.Duration `env:"REDIS_CONNECT_TIMEOUT" envDefault:"30s"`
//	}
//
// Connect validates the URL (redis:// and rediss:// schemes), attempts the
// connection with retries and verifies it with a ping before returning:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal("failed to connect to redis:", err)
//	}
//	defer client.Close()
//
// Healthcheck returns a ping function suitable for readiness probes:
//
//	check := redis.Healthcheck(client)
//	if err := check(ctx); err != nil {
//		// report unhealthy
//	}
//
// # Session Store
//
// NewSessionStore adapts the client into a session.Store. Sessions live
// under "session:id:<uuid>" with a "session:token:<token>" index; both
// keys carry a TTL matching the session expiry, so expired sessions
// disappear without a cleanup job and a restarted process simply treats
// missing keys as logged-out clients:
//
//	store := redis.NewSessionStore(client)
//	manager := session.NewManager(store, 24*time.Hour, 5*time.Minute)
//
// # Error Handling
//
// The package defines domain-specific errors that can be checked using
// errors.Is(): ErrFailedToParseRedisConnString, ErrRedisNotReady,
// ErrEmptyConnectionURL and ErrHealthcheckFailed. These wrap the
// underlying go-redis errors while providing stable error types for
// application-level handling.
package redis
