package tokenstore

import (
	"sync"

	"github.com/Leikaab/apiconfig-sub000/auth"
)

// Memory is an in-memory auth.TokenStore. Snapshots are copied on the
// way in and out, so callers and strategies never share mutable state
// with the store.
type Memory struct {
	mu    sync.RWMutex
	creds map[string]*auth.Credentials
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{creds: make(map[string]*auth.Credentials)}
}

// Load returns the snapshot stored under key, or (nil, nil) when the
// key is unknown.
func (m *Memory) Load(key string) (*auth.Credentials, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.creds[key].Clone(), nil
}

// Store saves a copy of the snapshot under key. Storing nil deletes
// the key.
func (m *Memory) Store(key string, creds *auth.Credentials) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if creds == nil {
		delete(m.creds, key)
		return nil
	}
	m.creds[key] = creds.Clone()
	return nil
}
