package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

// TokenStore holds short-lived one-time tokens (email verification, password
// reset) keyed by the token string.
type TokenStore interface {
	Set(ctx context.Context, token, userID string, ttl time.Duration) error
	// Get returns the user id for a live token, or ErrInvalidToken.
	Get(ctx context.Context, token string) (string, error)
	Delete(ctx context.Context, token string) error
}

// NewSecureToken returns a random hex token.
func NewSecureToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

type memToken struct {
	userID    string
	expiresAt time.Time
}

// MemoryTokenStore is the default token store when no Redis is configured.
// Expired entries are dropped lazily on Get.
type MemoryTokenStore struct {
	mu     sync.Mutex
	tokens map[string]memToken
	now    func() time.Time
}

func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{tokens: map[string]memToken{}, now: time.Now}
}

func (s *MemoryTokenStore) Set(_ context.Context, token, userID string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = memToken{userID: userID, expiresAt: s.now().Add(ttl)}
	return nil
}

func (s *MemoryTokenStore) Get(_ context.Context, token string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.tokens[token]
	if !ok {
		return "", ErrInvalidToken
	}
	if s.now().After(t.expiresAt) {
		delete(s.tokens, token)
		return "", ErrInvalidToken
	}
	return t.userID, nil
}

func (s *MemoryTokenStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
	return nil
}
