package store

import (
	"context"
	"fmt"
	"sync"
)

// InMemory is an in-memory implementation of Store. It does not survive a
// process restart; it exists for tests and ephemeral sessions.
type InMemory struct {
	mu     sync.RWMutex
	values map[string]string
}

var _ Store = (*InMemory)(nil)

// NewInMemory creates a new in-memory key-value store
func NewInMemory() *InMemory {
	return &InMemory{
		values: make(map[string]string),
	}
}

// Get retrieves the value for a key
func (s *InMemory) Get(_ context.Context, key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("key is required")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return "", NotFoundErr
	}
	return value, nil
}

// Set creates or replaces the value for a key
func (s *InMemory) Set(_ context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.values[key] = value
	return nil
}

// Delete removes a key
func (s *InMemory) Delete(_ context.Context, key string) error {
	if key == "" {
		return fmt.Errorf("key is required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}
