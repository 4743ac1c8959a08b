package authn

import (
	"context"
	"sync"

	"golang.org/x/crypto/bcrypt"
)

// MemoryStore is an in-memory CredentialStore for development and tests.
// Production deployments authenticate exclusively through an external
// credential store; never seed real users here.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]Credentials
}

// NewMemoryStore creates an empty in-memory credential store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]Credentials)}
}

// Seed registers a user with a bcrypt-hashed password and the given roles.
func (s *MemoryStore) Seed(username, password string, roles ...string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = Credentials{
		PasswordHash: string(hash),
		Roles:        roles,
	}
	return nil
}

// Put stores pre-built credentials, e.g. encrypted-at-rest hashes.
func (s *MemoryStore) Put(username string, creds Credentials) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[username] = creds
}

// Lookup implements CredentialStore.
func (s *MemoryStore) Lookup(_ context.Context, username string) (Credentials, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	creds, ok := s.users[username]
	if !ok {
		return Credentials{}, ErrUnknownUser
	}
	return creds, nil
}
