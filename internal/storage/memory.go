package storage

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// MemoryStorage is an in-process StorageInterface used when no storage
// account is configured, and in tests.
type MemoryStorage struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

var _ StorageInterface = (*MemoryStorage)(nil)

// NewMemoryStorage creates an empty in-memory storage
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{blobs: make(map[string][]byte)}
}

// Store saves a copy of data under filename
func (m *MemoryStorage) Store(filename string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	copied := make([]byte, len(data))
	copy(copied, data)
	m.blobs[filename] = copied
	return nil
}

// Retrieve returns the stored bytes for filename
func (m *MemoryStorage) Retrieve(filename string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.blobs[filename]
	if !ok {
		return nil, fmt.Errorf("blob %s not found", filename)
	}
	copied := make([]byte, len(data))
	copy(copied, data)
	return copied, nil
}

// List returns stored filenames matching prefix, sorted
func (m *MemoryStorage) List(prefix string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var names []string
	for name := range m.blobs {
		if strings.HasPrefix(name, prefix) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// Delete removes filename if present
func (m *MemoryStorage) Delete(filename string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.blobs[filename]; !ok {
		return fmt.Errorf("blob %s not found", filename)
	}
	delete(m.blobs, filename)
	return nil
}
