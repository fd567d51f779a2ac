package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

type fileEntry struct {
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FileStore persists entries as a single JSON document on disk. One process
// owns the file; a mutex serializes access within the process.
type FileStore struct {
	mu      sync.Mutex
	path    string
	entries map[string]fileEntry
}

// OpenFileStore loads the store at path, creating the parent directory and an
// empty store if nothing exists yet.
func OpenFileStore(path string) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	fs := &FileStore{
		path:    path,
		entries: make(map[string]fileEntry),
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fs, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read storage file: %w", err)
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &fs.entries); err != nil {
			return nil, fmt.Errorf("failed to parse storage file: %w", err)
		}
	}
	return fs, nil
}

func (fs *FileStore) Get(key string) (string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	entry, ok := fs.entries[key]
	if !ok {
		return "", ErrNotFound
	}
	return entry.Value, nil
}

func (fs *FileStore) Set(key, value string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	fs.entries[key] = fileEntry{Value: value, UpdatedAt: time.Now()}
	return fs.persist()
}

func (fs *FileStore) Delete(key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	if _, ok := fs.entries[key]; !ok {
		return nil
	}
	delete(fs.entries, key)
	return fs.persist()
}

func (fs *FileStore) Keys(prefix string) ([]string, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	var keys []string
	for k := range fs.entries {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func (fs *FileStore) ModifiedAt(key string) (time.Time, error) {
	fs.mu.Lock()
	defer fs.mu.Unlock()

	entry, ok := fs.entries[key]
	if !ok {
		return time.Time{}, ErrNotFound
	}
	return entry.UpdatedAt, nil
}

// persist writes the whole document atomically. Callers hold the mutex.
func (fs *FileStore) persist() error {
	data, err := json.MarshalIndent(fs.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode storage file: %w", err)
	}

	tmp := fs.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("failed to write storage file: %w", err)
	}
	if err := os.Rename(tmp, fs.path); err != nil {
		return fmt.Errorf("failed to replace storage file: %w", err)
	}
	return nil
}
