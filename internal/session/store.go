// Package session holds the client-side pieces of session state: token
// stores, token expiry introspection and the inactivity guard.
package session

import "sync"

// MemoryStore is a process-scoped TokenStore. Writes are rare whole-value
// replacements; a read racing a concurrent clear simply yields an absent
// token and the subsequent request fails with an auth error.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Get() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, s.token != ""
}

func (s *MemoryStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
