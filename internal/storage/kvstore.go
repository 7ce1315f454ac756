// Package storage provides the persistence layer for bomreport: a
// quota-bounded key-value store over the filesystem, the draft/history/theme
// store built on top of it, and the export/import envelope.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrQuotaExceeded is returned by KVStore.Set when writing the value would
// push the store past its byte quota. Callers distinguish it from other
// failures to trigger the history eviction policy.
var ErrQuotaExceeded = errors.New("storage quota exceeded")

// KVStore is a minimal key-value abstraction over the storage medium.
// A missing key reads as (nil, nil).
type KVStore interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Available() bool
}

// fileKVStore stores each key as a file under dir. quota caps the combined
// size of all values; zero means unlimited.
type fileKVStore struct {
	dir       string
	quota     int64
	available bool
}

// NewFileKVStore creates a KVStore rooted at dir with the given byte quota.
// The store probes the directory once at construction; if it cannot be
// created or written, every operation degrades to a no-op.
func NewFileKVStore(dir string, quotaBytes int64) KVStore {
	s := &fileKVStore{dir: dir, quota: quotaBytes}
	s.available = s.probe()
	return s
}

func (s *fileKVStore) probe() bool {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return false
	}
	probePath := filepath.Join(s.dir, ".probe")
	if err := os.WriteFile(probePath, []byte("ok"), 0o600); err != nil {
		return false
	}
	_ = os.Remove(probePath)
	return true
}

func (s *fileKVStore) keyPath(key string) string {
	return filepath.Join(s.dir, key)
}

// Get reads the value for key. Missing keys yield (nil, nil).
func (s *fileKVStore) Get(key string) ([]byte, error) {
	if !s.available {
		return nil, nil
	}
	data, err := os.ReadFile(s.keyPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading key %s: %w", key, err)
	}
	return data, nil
}

// Set writes the value for key, enforcing the byte quota over the combined
// size of all stored values.
func (s *fileKVStore) Set(key string, value []byte) error {
	if !s.available {
		return fmt.Errorf("storage unavailable")
	}
	if s.quota > 0 {
		used, err := s.usedExcluding(key)
		if err != nil {
			return err
		}
		if used+int64(len(value)) > s.quota {
			return fmt.Errorf("writing key %s (%d bytes, %d in use, quota %d): %w",
				key, len(value), used, s.quota, ErrQuotaExceeded)
		}
	}
	if err := os.WriteFile(s.keyPath(key), value, 0o600); err != nil {
		return fmt.Errorf("writing key %s: %w", key, err)
	}
	return nil
}

// Delete removes the key. Deleting a missing key is not an error.
func (s *fileKVStore) Delete(key string) error {
	if !s.available {
		return nil
	}
	if err := os.Remove(s.keyPath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("deleting key %s: %w", key, err)
	}
	return nil
}

// Available reports whether the construction-time probe succeeded.
func (s *fileKVStore) Available() bool {
	return s.available
}

// usedExcluding sums the sizes of all stored values except the named key,
// which is about to be overwritten.
func (s *fileKVStore) usedExcluding(key string) (int64, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, fmt.Errorf("scanning store: %w", err)
	}
	var used int64
	for _, e := range entries {
		if e.IsDir() || e.Name() == key {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		used += info.Size()
	}
	return used, nil
}
