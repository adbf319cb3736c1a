package wallet

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu      sync.RWMutex
	wallets map[string]Wallet
	byOwner map[string]string
}

// NewMemoryStore constructs an in-memory wallet store for tests and dev mode.
func NewMemoryStore() Store {
	return &memoryStore{
		wallets: make(map[string]Wallet),
		byOwner: make(map[string]string),
	}
}

func (s *memoryStore) Create(_ context.Context, w Wallet) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.wallets[w.ID]; exists {
		return ErrExists
	}
	if _, exists := s.byOwner[w.OwnerID]; exists {
		return ErrExists
	}
	s.wallets[w.ID] = w.Clone()
	s.byOwner[w.OwnerID] = w.ID
	return nil
}

func (s *memoryStore) Get(_ context.Context, id string) (Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	w, ok := s.wallets[id]
	if !ok {
		return Wallet{}, ErrNotFound
	}
	return w.Clone(), nil
}

func (s *memoryStore) GetByOwner(_ context.Context, ownerID string) (Wallet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byOwner[ownerID]
	if !ok {
		return Wallet{}, ErrNotFound
	}
	return s.wallets[id].Clone(), nil
}

// Update runs fn on a copy of the wallet under the store lock, so the copy's
// balance changes land together or not at all and concurrent updates never
// interleave.
func (s *memoryStore) Update(_ context.Context, id string, fn func(*Wallet) error) (Wallet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.wallets[id]
	if !ok {
		return Wallet{}, ErrNotFound
	}
	w := stored.Clone()
	if err := fn(&w); err != nil {
		return Wallet{}, err
	}
	s.wallets[id] = w.Clone()
	return w, nil
}
