package registry

import (
	"context"
	"sync"
)

type memoryRegistry struct {
	mu      sync.Mutex
	claimed map[string]struct{}
}

// NewMemory builds an in-process registry for tests and dev mode.
func NewMemory() Registry {
	return &memoryRegistry{claimed: make(map[string]struct{})}
}

func (r *memoryRegistry) TryClaim(_ context.Context, identity string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.claimed[identity]; exists {
		return false, nil
	}
	r.claimed[identity] = struct{}{}
	return true, nil
}

func (r *memoryRegistry) Revoke(_ context.Context, identity string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.claimed, identity)
	return nil
}

func (r *memoryRegistry) Claimed(_ context.Context, identity string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, exists := r.claimed[identity]
	return exists, nil
}
