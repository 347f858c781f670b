package memory

import (
	"context"
	"slices"
	"sync"

	"docqa/internal/repository"
)

// StateMemory keeps state in process memory. Nothing survives a restart.
type StateMemory struct {
	mu     sync.RWMutex
	values map[string][]byte
}

var _ repository.StateRepository = (*StateMemory)(nil)

func NewStateMemory() *StateMemory {
	return &StateMemory{values: make(map[string][]byte)}
}

func (r *StateMemory) Get(_ context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.values[key]
	if !ok {
		return nil, repository.ErrKeyNotFound
	}
	return slices.Clone(v), nil
}

func (r *StateMemory) Put(_ context.Context, key string, value []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[key] = slices.Clone(value)
	return nil
}

func (r *StateMemory) Delete(_ context.Context, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, key)
	return nil
}

func (r *StateMemory) Ping(context.Context) error { return nil }
