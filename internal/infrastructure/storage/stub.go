package storage

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/shcya/backend/internal/application/document"
)

// StubObjectStorage keeps objects in memory. It is used in development and
// tests when no bucket is configured.
type StubObjectStorage struct {
	// BaseURL prefixes public URLs, defaults to "http://localhost:8080/files"
	BaseURL string

	mu      sync.RWMutex
	objects map[string]StoredObject
}

// StoredObject is an object held by StubObjectStorage
type StoredObject struct {
	Data        []byte
	ContentType string
}

// Ensure StubObjectStorage implements ObjectStorage
var _ document.ObjectStorage = (*StubObjectStorage)(nil)

// NewStubObjectStorage creates a new StubObjectStorage
func NewStubObjectStorage(baseURL string) *StubObjectStorage {
	if baseURL == "" {
		baseURL = "http://localhost:8080/files"
	}
	return &StubObjectStorage{
		BaseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string]StoredObject),
	}
}

// Upload stores a copy of data, replacing any previous object at key
func (s *StubObjectStorage) Upload(ctx context.Context, key string, data []byte, contentType string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = StoredObject{
		Data:        append([]byte(nil), data...),
		ContentType: contentType,
	}
	return nil
}

// PublicURL returns BaseURL/key
func (s *StubObjectStorage) PublicURL(key string) string {
	return s.BaseURL + "/" + escapeKey(key)
}

// DeleteObject removes key. Missing keys are not an error.
func (s *StubObjectStorage) DeleteObject(ctx context.Context, key string) error {
	if key == "" {
		return errors.New("storage key is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

// Object returns the object stored at key
func (s *StubObjectStorage) Object(key string) (StoredObject, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	return obj, ok
}

// Len returns the number of stored objects
func (s *StubObjectStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
