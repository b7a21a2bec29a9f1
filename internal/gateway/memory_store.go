package gateway

import (
	"context"
	"sync"
)

// MemoryStore holds the configuration in process.
type MemoryStore struct {
	mu  sync.RWMutex
	cfg *Configuration
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, cfg Configuration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = &cfg
	return nil
}

func (s *MemoryStore) Load(_ context.Context) (Configuration, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cfg == nil {
		return Configuration{}, ErrNotFound
	}
	return *s.cfg, nil
}
