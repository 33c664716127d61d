package store

import (
	"context"
	"slices"
	"strings"
	"sync"
)

// memoryBlobStore keeps objects in a map guarded by a mutex. It backs tests
// and single-process local runs; data does not survive a restart.
type memoryBlobStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryBlobStore returns an empty in-memory [BlobStore].
func NewMemoryBlobStore() BlobStore {
	return &memoryBlobStore{objects: make(map[string][]byte)}
}

func (m *memoryBlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateBlobKey(key); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.objects[key]
	if !ok {
		return nil, ErrBlobNotFound
	}
	return slices.Clone(data), nil
}

func (m *memoryBlobStore) Put(ctx context.Context, key string, data []byte) error {
	if err := validateBlobKey(key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[key] = slices.Clone(data)
	return nil
}

func (m *memoryBlobStore) PutIfAbsent(ctx context.Context, key string, data []byte) error {
	if err := validateBlobKey(key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.objects[key]; ok {
		return ErrBlobExists
	}
	m.objects[key] = slices.Clone(data)
	return nil
}

func (m *memoryBlobStore) Delete(ctx context.Context, key string) error {
	if err := validateBlobKey(key); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.objects, key)
	return nil
}

func (m *memoryBlobStore) List(ctx context.Context, prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	keys := make([]string, 0)
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	slices.Sort(keys)
	return keys, nil
}
