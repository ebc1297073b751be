// Package storage persists the task list into a single named key-value slot.
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultKey names the slot holding the serialized task list.
const DefaultKey = "todos"

const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
)

// ErrNoValue is returned by Slot.Get when nothing is stored under the key.
var ErrNoValue = errors.New("storage: no value")

// Slot is a durable key-value location. Put overwrites unconditionally.
type Slot interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
	Close() error
}

// Open returns the slot implementation for backend, creating the parent
// directory of path when needed.
func Open(backend, path string) (Slot, error) {
	if path == "" {
		return nil, errors.New("storage: db path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("storage: create db dir: %w", err)
	}
	switch backend {
	case BackendSQLite, "":
		return OpenSQLite(path)
	case BackendBolt:
		return OpenBolt(path)
	default:
		return nil, fmt.Errorf("storage: unknown backend %q", backend)
	}
}
