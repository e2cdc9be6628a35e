// Package storage is the object-storage collaborator: the core stores only
// the URLs it returns.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Storage persists an object and returns a public URL for it.
type Storage interface {
	Put(path string, data []byte, contentType string) (string, error)
}

// DiskStorage writes objects under a base directory and serves them from a
// base URL.
type DiskStorage struct {
	dir     string
	baseURL string
}

// NewDiskStorage creates a DiskStorage rooted at dir.
func NewDiskStorage(dir, baseURL string) *DiskStorage {
	return &DiskStorage{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}
}

// Put writes the object to disk and returns its URL.
func (s *DiskStorage) Put(path string, data []byte, contentType string) (string, error) {
	full := filepath.Join(s.dir, filepath.FromSlash(path))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage directory: %w", err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write object %s: %w", path, err)
	}
	return s.baseURL + "/" + path, nil
}

// MemoryStorage keeps objects in a map. Used in tests.
type MemoryStorage struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: make(map[string][]byte)}
}

// Put stores the object in memory and returns a mem:// URL.
func (s *MemoryStorage) Put(path string, data []byte, contentType string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	buf := make([]byte, len(data))
	copy(buf, data)
	s.objects[path] = buf
	return "mem://" + path, nil
}

// Get returns a stored object, or false when absent.
func (s *MemoryStorage) Get(path string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[path]
	return data, ok
}

// Len returns the number of stored objects.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
