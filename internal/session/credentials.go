package session

import (
	"context"
	"errors"
	"sync"
)

var ErrNoCredential = errors.New("no stored credential")

// CredentialStore persists the access token of a console session between requests and restarts.
type CredentialStore interface {
	// Load returns ErrNoCredential when nothing is stored under key.
	Load(ctx context.Context, key string) (string, error)
	Save(ctx context.Context, key, token string) error
	Clear(ctx context.Context, key string) error
	// Discard clears key only while it still holds token.
	Discard(ctx context.Context, key, token string) error
}

// MemoryStore keeps tokens in process memory. Tokens do not survive a restart.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

var _ CredentialStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]string)}
}

func (m *MemoryStore) Load(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	token, ok := m.tokens[key]
	if !ok {
		return "", ErrNoCredential
	}
	return token, nil
}

func (m *MemoryStore) Save(_ context.Context, key, token string) error {
	m.mu.Lock()
	m.tokens[key] = token
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.tokens, key)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Discard(_ context.Context, key, token string) error {
	m.mu.Lock()
	if m.tokens[key] == token {
		delete(m.tokens, key)
	}
	m.mu.Unlock()
	return nil
}
