// Package keystore persists the client's two credential strings (access
// and refresh token) as files under a state directory. It deliberately
// mirrors browser key-value storage semantics: reads and writes never
// fail upward, a broken store just behaves as empty.
package keystore

import (
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
)

// Store is a file-backed string store. Safe for concurrent use at the
// granularity the client needs: each value is a whole-file write.
type Store struct {
	dir    string
	logger *zap.Logger
}

// New creates a store rooted at dir, creating the directory if needed.
func New(dir string, logger *zap.Logger) *Store {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		logger.Warn("keystore directory unavailable", zap.String("dir", dir), zap.Error(err))
	}
	return &Store{dir: dir, logger: logger}
}

// Get returns the stored value for key, or "" when absent or unreadable.
func (s *Store) Get(key string) string {
	data, err := os.ReadFile(s.path(key))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}

// Set writes the value for key. Errors are swallowed after logging; the
// caller proceeds as if storage simply is not available.
func (s *Store) Set(key, value string) {
	if err := os.WriteFile(s.path(key), []byte(value), 0o600); err != nil {
		s.logger.Warn("keystore write failed", zap.String("key", key), zap.Error(err))
	}
}

// Delete removes the value for key. Missing values are not an error.
func (s *Store) Delete(key string) {
	if err := os.Remove(s.path(key)); err != nil && !os.IsNotExist(err) {
		s.logger.Warn("keystore delete failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key)
}
