package session

import (
	"context"
	"sync"
)

// MemoryStore is an in-memory Store for tests and Redis-less boot.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*Session),
	}
}

// Get returns a copy of the stored session, or nil when absent.
func (m *MemoryStore) Get(ctx context.Context, phone string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[phone].Clone(), nil
}

// Put stores a copy of the session.
func (m *MemoryStore) Put(ctx context.Context, s *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.Phone] = s.Clone()
	return nil
}

// List returns copies of every stored session.
func (m *MemoryStore) List(ctx context.Context) ([]*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		out = append(out, s.Clone())
	}
	return out, nil
}

var _ Store = (*MemoryStore)(nil)
