// Package storage provides durable local key-value storage for the task store.
//
// It mirrors the semantics of a browser's localStorage: named string
// entries that are read, written and removed whole. Two backends exist:
// a directory of files (one per key) on an afero filesystem, and a
// single SQLite table.
package storage

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

var (
	// ErrCorrupt is returned when an entry exists but its content cannot be trusted.
	ErrCorrupt = errors.New("storage entry corrupt")

	// ErrClosed is returned by operations on a closed storage.
	ErrClosed = errors.New("storage closed")
)

// Storage is a durable key-value store of string entries.
type Storage interface {
	// GetItem returns the value stored under key. ok is false when the key is absent.
	GetItem(key string) (value string, ok bool, err error)

	// SetItem stores value under key, replacing any previous value.
	// The write is durable when SetItem returns.
	SetItem(key, value string) error

	// RemoveItem deletes key. Removing an absent key is not an error.
	RemoveItem(key string) error

	// Close releases held resources.
	Close() error
}

// Locator is implemented by backends whose entries live in watchable files.
type Locator interface {
	// Path returns the file that holds key.
	Path(key string) string
}

// Options configures Open.
type Options struct {
	Backend string
	// Dir is the data directory. The sqlite backend stores tasklist.db inside it;
	// ":memory:" opens an in-memory database.
	Dir string
	// Fs overrides the filesystem used by the file backend. Defaults to the OS filesystem.
	Fs afero.Fs
}

// Open creates the storage backend described by opts.
func Open(opts Options) (Storage, error) {
	switch opts.Backend {
	case "", BackendFile:
		fs := opts.Fs
		if fs == nil {
			fs = afero.NewOsFs()
		}
		return NewFileStorage(fs, opts.Dir)
	case BackendSQLite:
		if opts.Dir == MemoryDSN {
			return NewSQLiteStorage(MemoryDSN)
		}
		return NewSQLiteStorage(filepath.Join(opts.Dir, "tasklist.db"))
	default:
		return nil, fmt.Errorf("unsupported storage backend %q (expected %s or %s)", opts.Backend, BackendFile, BackendSQLite)
	}
}
