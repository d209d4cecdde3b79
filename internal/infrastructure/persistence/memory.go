package persistence

import (
	"context"
	"slices"
	"sync"

	"github.com/samber/lo"
)

type MemoryStore struct {
	mu      sync.RWMutex
	buckets map[string]map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{buckets: make(map[string]map[string][]byte)}
}

func (s *MemoryStore) Put(_ context.Context, bucket, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	items, ok := s.buckets[bucket]
	if !ok {
		items = make(map[string][]byte)
		s.buckets[bucket] = items
	}
	items[key] = slices.Clone(value)

	return nil
}

func (s *MemoryStore) Get(_ context.Context, bucket, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.buckets[bucket][key]
	if !ok {
		return nil, ErrNotFound
	}

	return slices.Clone(value), nil
}

func (s *MemoryStore) List(_ context.Context, bucket string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := lo.Keys(s.buckets[bucket])
	slices.Sort(keys)

	return keys, nil
}

func (s *MemoryStore) Delete(_ context.Context, bucket, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.buckets[bucket], key)

	return nil
}
