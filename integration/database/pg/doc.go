// Package pg provides PostgreSQL connection pool initialization, health
// checking and a database-backed credential store.
//
// # Connecting
//
// Configuration is handled through the Config struct with environment
// variable mapping:
//
//	type Config struct {
//		ConnectionString  string        `env:"PG_CONN_URL,required"`
//		MaxOpenConns      int32         `env:"PG_MAX_OPEN_CONNS" envDefault:"10"`
//		MaxIdleConns      int32         `env:"PG_MAX_IDLE_CONNS" envDefault:"5"`
//		HealthCheckPeriod time.Duration `env:"PG_HEALTHCHECK_PERIOD" envDefault:"1m"`
//		MaxConnIdleTime   time.Duration `env:"PG_MAX_CONN_IDLE_TIME" envDefault:"10m"`
//		MaxConnLifetime   time.Duration `env:"PG_MAX_CONN_LIFETIME" envDefault:"30m"`
//		RetryAttempts     int           `env:"PG_RETRY_ATTEMPTS" envDefault:"3"`
//		RetryInterval     time.Duration `env:"PG_RETRY_INTERVAL" envDefault:"5s"`
//	}
//
// Connect creates a pgxpool.Pool, applies the pool limits and verifies
// connectivity with retries before returning:
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//		log.Fatal("failed to connect to postgres:", err)
//	}
//	defer pool.Close()
//
// # Credential Store
//
// NewCredentialStore adapts the pool into an authn.CredentialStore
// reading from the users table:
//
//	CREATE TABLE users (
//		username      TEXT PRIMARY KEY,
//		password_hash TEXT NOT NULL,
//		roles         TEXT[] NOT NULL DEFAULT '{}',
//		encrypted     BOOLEAN NOT NULL DEFAULT FALSE
//	);
//
// The encrypted flag marks hashes stored RSA-encrypted at rest; the
// authentication processor decrypts them through its configured keystore
// before comparison.
//
// # Transactions
//
// WithTx and TxFromContext pass a pgx.Tx through the context so the
// credential store participates in an enclosing transaction without API
// changes.
package pg
