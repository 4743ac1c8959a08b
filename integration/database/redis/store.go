package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/tuicr/scaffold/core/session"
)

const (
	idKeyPrefix    = "session:id:"
	tokenKeyPrefix = "session:token:"
)

// SessionStore is a Redis-backed session.Store. Sessions are stored as
// JSON under their ID with a secondary token index, both expiring with the
// session so Redis reclaims them without a cleanup job.
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a session store on top of the given client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// record is the Redis serialization of a session.
type record struct {
	ID        uuid.UUID         `json:"id"`
	Token     string            `json:"token"`
	Principal session.Principal `json:"principal"`
	IP        string            `json:"ip"`
	UserAgent string            `json:"user_agent"`
	Remember  bool              `json:"remember,omitzero"`
	ExpiresAt time.Time         `json:"expires_at"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
	DeletedAt time.Time         `json:"deleted_at,omitzero"`
}

func toRecord(sess *session.Session) record {
	return record{
		ID:        sess.ID,
		Token:     sess.Token,
		Principal: sess.Principal,
		IP:        sess.IP,
		UserAgent: sess.UserAgent,
		Remember:  sess.RememberMe,
		ExpiresAt: sess.ExpiresAt,
		CreatedAt: sess.CreatedAt,
		UpdatedAt: sess.UpdatedAt,
		DeletedAt: sess.DeletedAt,
	}
}

func (r record) toSession() *session.Session {
	return &session.Session{
		ID:         r.ID,
		Token:      r.Token,
		Principal:  r.Principal,
		IP:         r.IP,
		UserAgent:  r.UserAgent,
		RememberMe: r.Remember,
		ExpiresAt:  r.ExpiresAt,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		DeletedAt:  r.DeletedAt,
	}
}

// GetByID fetches a session by its stable identifier.
func (s *SessionStore) GetByID(ctx context.Context, id uuid.UUID) (*session.Session, error) {
	return s.get(ctx, idKeyPrefix+id.String())
}

// GetByToken fetches a session through the token index.
func (s *SessionStore) GetByToken(ctx context.Context, token string) (*session.Session, error) {
	id, err := s.client.Get(ctx, tokenKeyPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("redis session store: %w", err)
	}
	return s.get(ctx, idKeyPrefix+id)
}

func (s *SessionStore) get(ctx context.Context, key string) (*session.Session, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, session.ErrNotFound
		}
		return nil, fmt.Errorf("redis session store: %w", err)
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("redis session store: decode: %w", err)
	}
	return rec.toSession(), nil
}

// Save upserts the session and its token index. A rotated token replaces
// the previous index entry so stale cookies cannot resolve the session.
func (s *SessionStore) Save(ctx context.Context, sess *session.Session) error {
	ttl := time.Until(sess.ExpiresAt)
	if ttl <= 0 {
		return session.ErrExpired
	}

	data, err := json.Marshal(toRecord(sess))
	if err != nil {
		return fmt.Errorf("redis session store: encode: %w", err)
	}

	var staleToken string
	if prev, err := s.GetByID(ctx, sess.ID); err == nil && prev.Token != sess.Token {
		staleToken = prev.Token
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, idKeyPrefix+sess.ID.String(), data, ttl)
	pipe.Set(ctx, tokenKeyPrefix+sess.Token, sess.ID.String(), ttl)
	if staleToken != "" {
		pipe.Del(ctx, tokenKeyPrefix+staleToken)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis session store: save: %w", err)
	}
	return nil
}

// Delete removes the session and its token index.
func (s *SessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	sess, err := s.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return session.ErrNotFound
		}
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, idKeyPrefix+id.String())
	pipe.Del(ctx, tokenKeyPrefix+sess.Token)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis session store: delete: %w", err)
	}
	return nil
}

// DeleteExpired is a no-op: every key is written with a TTL matching the
// session expiry, so Redis reclaims expired sessions itself.
func (s *SessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	return 0, nil
}
