package storage

import (
	"context"
	"sync"
)

// MemoryKeyValueStore is a map-backed store. Nothing survives the process.
type MemoryKeyValueStore struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemoryKeyValueStore returns an empty in-memory store.
func NewMemoryKeyValueStore() *MemoryKeyValueStore {
	return &MemoryKeyValueStore{values: make(map[string][]byte)}
}

func (s *MemoryKeyValueStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte{}, v...), true, nil
}

func (s *MemoryKeyValueStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte{}, value...)
	return nil
}

func (s *MemoryKeyValueStore) Close() error { return nil }
