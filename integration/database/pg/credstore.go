package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tuicr/scaffold/core/authn"
)

// queryRower is satisfied by both pgxpool.Pool and pgx.Tx.
type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CredentialStore is a PostgreSQL-backed authn.CredentialStore reading
// from the users table (username, password_hash, roles, encrypted).
type CredentialStore struct {
	pool *pgxpool.Pool
}

// NewCredentialStore creates a credential store on top of the given pool.
func NewCredentialStore(pool *pgxpool.Pool) *CredentialStore {
	return &CredentialStore{pool: pool}
}

// Lookup resolves the stored credentials for a username. Unknown usernames
// map to authn.ErrUnknownUser. A transaction carried in the context via
// WithTx takes precedence over the pool.
func (s *CredentialStore) Lookup(ctx context.Context, username string) (authn.Credentials, error) {
	var q queryRower = s.pool
	if tx, ok := TxFromContext(ctx); ok {
		q = tx
	}

	var creds authn.Credentials
	err := q.QueryRow(ctx,
		`SELECT password_hash, roles, encrypted FROM users WHERE username = $1`,
		username,
	).Scan(&creds.PasswordHash, &creds.Roles, &creds.Encrypted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return authn.Credentials{}, authn.ErrUnknownUser
		}
		return authn.Credentials{}, fmt.Errorf("pg credential store: %w", err)
	}

	return creds, nil
}
