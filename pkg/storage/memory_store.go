package storage

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	state   SessionState
	expires time.Time
}

// MemoryStore keeps session state in process, used when no redis is configured.
type MemoryStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:     ttl,
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) Save(_ context.Context, sessionId string, state SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[sessionId] = memoryEntry{state: state, expires: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Load(_ context.Context, sessionId string) (*SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[sessionId]
	if !ok {
		return nil, ErrNotFound
	}
	if s.ttl > 0 && e.expires.Before(s.now()) {
		delete(s.entries, sessionId)
		return nil, ErrNotFound
	}
	state := e.state
	return &state, nil
}

func (s *MemoryStore) Delete(_ context.Context, sessionId string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, sessionId)
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
