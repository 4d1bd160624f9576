// Copyright (c) 2026 Lorevault. All rights reserved.

package client

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// # Token Persistence

// TokenStorage persists the bearer token between SDK sessions.
//
// A missing token is not an error: Load returns an empty string when nothing
// has been saved yet, mirroring a signed-out browser.
type TokenStorage interface {
	// Save persists the token, replacing any previous value.
	Save(token string) error

	// Load returns the persisted token, or "" when none exists.
	Load() (string, error)

	// Clear removes the persisted token.
	Clear() error
}

// # File-Backed Storage

// FileTokenStorage stores the token in a single file with owner-only
// permissions. It is the default persistence for CLI and desktop callers.
type FileTokenStorage struct {
	path string
}

// NewFileTokenStorage creates a storage rooted at the given file path.
// Parent directories are created on first save.
func NewFileTokenStorage(path string) *FileTokenStorage {
	return &FileTokenStorage{path: path}
}

// Save writes the token to disk with 0600 permissions.
func (storage *FileTokenStorage) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(storage.path), 0o700); err != nil {
		return fmt.Errorf("token_storage_mkdir_failed: %w", err)
	}

	if err := os.WriteFile(storage.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("token_storage_write_failed: %w", err)
	}

	return nil
}

// Load reads the persisted token, returning "" when the file does not exist.
func (storage *FileTokenStorage) Load() (string, error) {
	raw, err := os.ReadFile(storage.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("token_storage_read_failed: %w", err)
	}

	return strings.TrimSpace(string(raw)), nil
}

// Clear deletes the token file. Clearing an absent file succeeds.
func (storage *FileTokenStorage) Clear() error {
	if err := os.Remove(storage.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("token_storage_clear_failed: %w", err)
	}
	return nil
}

// # In-Memory Storage

// MemoryTokenStorage keeps the token in process memory only. Useful for
// tests and short-lived tools that should never write credentials to disk.
type MemoryTokenStorage struct {
	mu    sync.Mutex
	token string
}

// NewMemoryTokenStorage creates an empty in-memory storage.
func NewMemoryTokenStorage() *MemoryTokenStorage {
	return &MemoryTokenStorage{}
}

// Save stores the token in memory.
func (storage *MemoryTokenStorage) Save(token string) error {
	storage.mu.Lock()
	defer storage.mu.Unlock()
	storage.token = token
	return nil
}

// Load returns the stored token.
func (storage *MemoryTokenStorage) Load() (string, error) {
	storage.mu.Lock()
	defer storage.mu.Unlock()
	return storage.token, nil
}

// Clear drops the stored token.
func (storage *MemoryTokenStorage) Clear() error {
	return storage.Save("")
}
