package captcha

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"math/big"
	"sync"
	"time"
)

// Memory is an in-memory CAPTCHA challenge registry keyed by session ID.
// Challenge generation (images, puzzles) happens elsewhere; this registry
// only binds the expected answer to a session and verifies submissions.
//
// A challenge is consumed by its first verification attempt, pass or fail,
// so a client cannot brute-force answers against a single challenge.
type Memory struct {
	mu         sync.Mutex
	challenges map[string]challenge
	ttl        time.Duration
}

type challenge struct {
	answer    string
	expiresAt time.Time
}

// NewMemory creates a challenge registry. Challenges expire after ttl.
func NewMemory(ttl time.Duration) *Memory {
	return &Memory{
		challenges: make(map[string]challenge),
		ttl:        ttl,
	}
}

// Issue binds the expected answer to the session, replacing any previous
// challenge for it.
func (m *Memory) Issue(sessionID, answer string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.challenges[sessionID] = challenge{
		answer:    answer,
		expiresAt: time.Now().Add(m.ttl),
	}
}

// Verify implements authn.CaptchaVerifier. The challenge is removed
// regardless of outcome; expired challenges never verify.
func (m *Memory) Verify(_ context.Context, sessionID, answer string) bool {
	m.mu.Lock()
	ch, ok := m.challenges[sessionID]
	delete(m.challenges, sessionID)
	m.mu.Unlock()

	if !ok || time.Now().After(ch.expiresAt) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(ch.answer), []byte(answer)) == 1
}

// Cleanup removes expired challenges and returns the count removed.
// Call periodically to bound memory on abandoned login pages.
func (m *Memory) Cleanup() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now()
	removed := 0
	for id, ch := range m.challenges {
		if now.After(ch.expiresAt) {
			delete(m.challenges, id)
			removed++
		}
	}
	return removed
}

// NewAnswer generates a random numeric answer of n digits for deployments
// without an external challenge source.
func NewAnswer(n int) (string, error) {
	if n <= 0 {
		n = 6
	}

	digits := make([]byte, n)
	for i := range digits {
		v, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + v.Int64())
	}
	return string(digits), nil
}
