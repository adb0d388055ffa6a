package session

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TokenStore is the persistence slot for the bearer token. Absence of a
// token means unauthenticated. Implementations must treat the slot as a
// single opaque string.
type TokenStore interface {
	Get() (string, bool)
	Set(token string) error
	Clear() error
}

// FileStore persists the token as a plain file under the config directory.
type FileStore struct {
	path string
}

// NewFileStore creates a file-backed token store. The parent directory is
// created on first Set.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, "authToken")}
}

// Get reads the stored token, if any.
func (s *FileStore) Get() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", false
	}
	return token, true
}

// Set writes the token.
func (s *FileStore) Set(token string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(token), 0600)
}

// Clear removes the token. Clearing an empty slot is not an error.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// MemoryStore is an in-memory token store for tests and ephemeral runs.
type MemoryStore struct {
	mu    sync.Mutex
	token string
	has   bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore { return &MemoryStore{} }

// Get returns the stored token, if any.
func (s *MemoryStore) Get() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.has
}

// Set stores the token.
func (s *MemoryStore) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.has = true
	return nil
}

// Clear empties the slot.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.has = false
	return nil
}
