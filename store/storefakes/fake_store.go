package storefakes

import (
	"context"
	"sync"

	"github.com/aimarketplace/go-client-auth/store"
)

var _ store.Store = (*FakeStore)(nil)

// FakeStore is an in-memory Store with per-key error injection for
// exercising storage failure paths.
type FakeStore struct {
	lock   sync.RWMutex
	values map[string]string

	GetErrors    map[string]error
	SetErrors    map[string]error
	DeleteErrors map[string]error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{
		values:       make(map[string]string),
		GetErrors:    make(map[string]error),
		SetErrors:    make(map[string]error),
		DeleteErrors: make(map[string]error),
	}
}

func (s *FakeStore) Get(_ context.Context, key string) (string, error) {
	if err := s.GetErrors[key]; err != nil {
		return "", err
	}

	s.lock.RLock()
	defer s.lock.RUnlock()

	value, ok := s.values[key]
	if !ok {
		return "", store.NotFoundErr
	}
	return value, nil
}

func (s *FakeStore) Set(_ context.Context, key, value string) error {
	if err := s.SetErrors[key]; err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	s.values[key] = value
	return nil
}

func (s *FakeStore) Delete(_ context.Context, key string) error {
	if err := s.DeleteErrors[key]; err != nil {
		return err
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	delete(s.values, key)
	return nil
}

// Has reports whether a key currently holds a value
func (s *FakeStore) Has(key string) bool {
	s.lock.RLock()
	defer s.lock.RUnlock()

	_, ok := s.values[key]
	return ok
}
