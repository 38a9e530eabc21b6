package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/spf13/afero"
)

const (
	entryExt       = ".json"
	checksumSuffix = ".checksum"
	tempSuffix     = ".tmp"
)

// readAttempts bounds how often GetItem re-reads an entry whose checksum
// does not match. Another process may replace the entry and its sidecar
// between our two reads; a mismatch that persists is real corruption.
const readAttempts = 4

const readBackoff = 5 * time.Millisecond

var validKey = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// FileStorage keeps one file per key in a directory, next to a SHA-256
// checksum sidecar. Writes go through a temp file and a rename.
type FileStorage struct {
	fs     afero.Fs
	dir    string
	mu     sync.Mutex
	closed bool
}

// NewFileStorage creates the directory if needed and returns a FileStorage rooted at dir.
// Use afero.NewOsFs() for real files or afero.NewMemMapFs() in tests.
func NewFileStorage(fsys afero.Fs, dir string) (*FileStorage, error) {
	if dir == "" {
		return nil, errors.New("file storage: directory required")
	}
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create storage directory %s: %w", dir, err)
	}
	return &FileStorage{fs: fsys, dir: dir}, nil
}

// Path returns the data file for key.
func (s *FileStorage) Path(key string) string {
	return filepath.Join(s.dir, key+entryExt)
}

// ValidKey reports whether key can name a storage entry: a letter or digit
// followed by letters, digits, dots, underscores or dashes.
func ValidKey(key string) bool {
	return validKey.MatchString(key)
}

func checkKey(key string) error {
	if !ValidKey(key) {
		return fmt.Errorf("invalid storage key %q", key)
	}
	return nil
}

func checksum(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// GetItem reads key and verifies its checksum when a sidecar exists.
// Entries written before checksums existed are accepted.
func (s *FileStorage) GetItem(key string) (string, bool, error) {
	if err := checkKey(key); err != nil {
		return "", false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", false, ErrClosed
	}

	path := s.Path(key)
	var err error
	for attempt := 1; attempt <= readAttempts; attempt++ {
		var data string
		var ok bool
		data, ok, err = s.readEntry(path)
		if !errors.Is(err, errChecksumMismatch) {
			return data, ok, err
		}
		if attempt < readAttempts {
			time.Sleep(time.Duration(attempt) * readBackoff)
		}
	}
	return "", true, fmt.Errorf("%w: %w for %s", ErrCorrupt, err, path)
}

var errChecksumMismatch = errors.New("checksum mismatch")

// readEntry reads the data file and then its sidecar once.
func (s *FileStorage) readEntry(path string) (string, bool, error) {
	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("read %s: %w", path, err)
	}

	want, err := afero.ReadFile(s.fs, path+checksumSuffix)
	switch {
	case err == nil:
		if checksum(data) != strings.TrimSpace(string(want)) {
			return "", true, errChecksumMismatch
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return "", false, fmt.Errorf("read checksum for %s: %w", path, err)
	}

	return string(data), true, nil
}

// SetItem writes value and its checksum atomically.
func (s *FileStorage) SetItem(key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	path := s.Path(key)
	sumPath := path + checksumSuffix
	tmp := path + tempSuffix
	tmpSum := sumPath + tempSuffix
	defer func() { _ = s.fs.Remove(tmp) }()
	defer func() { _ = s.fs.Remove(tmpSum) }()

	data := []byte(value)
	if err := afero.WriteFile(s.fs, tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp file %s: %w", tmp, err)
	}
	if err := afero.WriteFile(s.fs, tmpSum, []byte(checksum(data)), 0o644); err != nil {
		return fmt.Errorf("write temp checksum %s: %w", tmpSum, err)
	}
	// Drop the old sidecar first so a crash between the two renames leaves
	// an entry without a checksum, which still loads.
	if err := s.fs.Remove(sumPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove checksum %s: %w", sumPath, err)
	}
	if err := s.fs.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename %s to %s: %w", tmp, path, err)
	}
	if err := s.fs.Rename(tmpSum, sumPath); err != nil {
		return fmt.Errorf("rename %s to %s: %w", tmpSum, sumPath, err)
	}
	return nil
}

// RemoveItem deletes the entry and its checksum.
func (s *FileStorage) RemoveItem(key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}

	path := s.Path(key)
	for _, p := range []string{path, path + checksumSuffix} {
		if err := s.fs.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("remove %s: %w", p, err)
		}
	}
	return nil
}

// Close marks the storage closed. Files need no cleanup.
func (s *FileStorage) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
