package oracle

import (
	"context"
	"sync"
)

type memoryStore struct {
	mu     sync.RWMutex
	quotes map[string]Quote
}

// NewMemoryStore builds an in-memory quote store for tests and dev mode.
func NewMemoryStore() Store {
	return &memoryStore{quotes: make(map[string]Quote)}
}

func (s *memoryStore) Publish(_ context.Context, quote Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.quotes[quote.Key] = quote
	return nil
}

func (s *memoryStore) LatestQuote(_ context.Context, key string) (Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	quote, ok := s.quotes[key]
	if !ok {
		return Quote{}, ErrQuoteUnavailable
	}
	return quote, nil
}
