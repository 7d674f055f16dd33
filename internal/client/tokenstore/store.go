// Package tokenstore keeps the single bearer token of the process.
//
// The token is read directly by the request authenticator and written only
// through the session package; absence of a token means "no active session".
package tokenstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/branchadmin/internal/common"
)

// Store is a durable slot holding at most one token.
//
// Load returns "" when no token is stored. DeleteIf removes the token only
// if it still equals the given value and reports whether it did.
type Store interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Delete(ctx context.Context) error
	DeleteIf(ctx context.Context, token string) (bool, error)
}

// MemoryStore keeps the token for the lifetime of the process only.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (m *MemoryStore) Load(_ context.Context) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, nil
}

func (m *MemoryStore) Save(_ context.Context, token string) error {
	if token == "" {
		return fmt.Errorf("%w: empty token", common.ErrValidation)
	}
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete(_ context.Context) error {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) DeleteIf(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if token == "" || m.token != token {
		return false, nil
	}
	m.token = ""
	return true, nil
}
