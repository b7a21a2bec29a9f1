package trusted

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"sync"
)

// MemoryStore is a Store for development and tests.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]TrustedUser
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]TrustedUser)}
}

func (s *MemoryStore) Insert(_ context.Context, u TrustedUser) (TrustedUser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.users[u.FacebookID]; ok {
		return existing, nil
	}
	s.users[u.FacebookID] = u
	return u, nil
}

func (s *MemoryStore) InsertAll(_ context.Context, users []TrustedUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range users {
		if _, ok := s.users[u.FacebookID]; !ok {
			s.users[u.FacebookID] = u
		}
	}
	return nil
}

func (s *MemoryStore) Update(_ context.Context, u TrustedUser) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[u.FacebookID]; !ok {
		return ErrNotFound
	}
	s.users[u.FacebookID] = u
	return nil
}

func (s *MemoryStore) FindByID(_ context.Context, facebookID string) (TrustedUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[facebookID]
	if !ok {
		return TrustedUser{}, ErrNotFound
	}
	return u, nil
}

// FindByMAC returns the lowest FacebookID registered with mac so repeated
// lookups are stable.
func (s *MemoryStore) FindByMAC(_ context.Context, mac string) (TrustedUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		found TrustedUser
		ok    bool
	)
	for _, u := range s.users {
		if u.MACAddress == mac && (!ok || u.FacebookID < found.FacebookID) {
			found, ok = u, true
		}
	}
	if !ok {
		return TrustedUser{}, ErrNotFound
	}
	return found, nil
}

func (s *MemoryStore) List(_ context.Context) ([]TrustedUser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.SortedFunc(maps.Values(s.users), func(a, b TrustedUser) int {
		return cmp.Compare(a.FacebookID, b.FacebookID)
	}), nil
}

func (s *MemoryStore) Delete(_ context.Context, facebookID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[facebookID]; !ok {
		return ErrNotFound
	}
	delete(s.users, facebookID)
	return nil
}

func (s *MemoryStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clear(s.users)
	return nil
}
