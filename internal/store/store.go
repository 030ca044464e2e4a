package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Store is a persistent key-value store for captured schedule pages.
type Store interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte) error
	GetJSON(key string, v any) bool
	SetJSON(key string, v any) error
	SetWithExtension(key string, ext string, value []byte) error
}

// LocalStore is a file-based implementation of Store.
type LocalStore struct {
	dir string
	mu  sync.RWMutex
}

// NewLocal creates a LocalStore rooted at dir, creating it if needed.
func NewLocal(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating store directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Get retrieves a value by key. Returns the value and true if found,
// or nil and false if not found.
func (s *LocalStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.keyPath(key, ".json"))
	if err != nil {
		return nil, false
	}
	return data, true
}

// Set stores a value with the given key.
func (s *LocalStore) Set(key string, value []byte) error {
	return s.SetWithExtension(key, ".json", value)
}

// GetJSON retrieves and unmarshals a JSON value.
func (s *LocalStore) GetJSON(key string, v any) bool {
	data, ok := s.Get(key)
	if !ok {
		return false
	}
	return json.Unmarshal(data, v) == nil
}

// SetJSON marshals and stores a value as JSON.
func (s *LocalStore) SetJSON(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return s.Set(key, data)
}

// SetWithExtension stores raw bytes with a custom file extension.
func (s *LocalStore) SetWithExtension(key string, ext string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return os.WriteFile(s.keyPath(key, ext), value, 0644)
}

func (s *LocalStore) keyPath(key, ext string) string {
	return filepath.Join(s.dir, sanitize(key)+ext)
}

// sanitize keeps keys filesystem and object-name safe.
func sanitize(key string) string {
	safe := []rune(key)
	for i, r := range safe {
		if !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_') {
			safe[i] = '_'
		}
	}
	return string(safe)
}

// Open returns a GCSStore when bucket is set and a LocalStore in dir
// otherwise. The returned close function releases the client, if any.
func Open(ctx context.Context, bucket, credentialsFile, dir string) (Store, func() error, error) {
	if bucket != "" {
		s, err := NewGCS(ctx, bucket, credentialsFile)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	}

	s, err := NewLocal(dir)
	if err != nil {
		return nil, nil, err
	}
	return s, func() error { return nil }, nil
}
