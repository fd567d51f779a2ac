package store

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryStore is an in-memory Store used by tests and ephemeral sessions.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]fileEntry
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]fileEntry)}
}

func (ms *MemoryStore) Get(key string) (string, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	entry, ok := ms.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return entry.Value, nil
}

func (ms *MemoryStore) Set(key, value string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.entries[key] = fileEntry{Value: value, UpdatedAt: time.Now()}
	return nil
}

func (ms *MemoryStore) Delete(key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.entries, key)
	return nil
}

func (ms *MemoryStore) Keys(prefix string) ([]string, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	var keys []string
	for k := range ms.entries {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (ms *MemoryStore) ModifiedAt(key string) (time.Time, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	entry, ok := ms.entries[key]
	if !ok {
		return time.Time{}, ErrNotFound
	}
	return entry.UpdatedAt, nil
}

// SetModifiedAt backdates an entry's timestamp; used by maintenance tests.
func (ms *MemoryStore) SetModifiedAt(key string, at time.Time) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	if entry, ok := ms.entries[key]; ok {
		entry.UpdatedAt = at
		ms.entries[key] = entry
	}
}
