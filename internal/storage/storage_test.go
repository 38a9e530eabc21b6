package storage

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// backends returns every Storage implementation, freshly opened.
func backends(t *testing.T) map[string]Storage {
	t.Helper()

	file, err := NewFileStorage(afero.NewMemMapFs(), "/data")
	require.NoError(t, err)

	mem, err := NewSQLiteStorage(MemoryDSN)
	require.NoError(t, err)

	onDisk, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "tasklist.db"))
	require.NoError(t, err)

	all := map[string]Storage{"file": file, "sqlite-memory": mem, "sqlite-disk": onDisk}
	t.Cleanup(func() {
		for _, s := range all {
			_ = s.Close()
		}
	})
	return all
}

func TestStorage_RoundTrip(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, ok, err := s.GetItem("task-storage")
			require.NoError(t, err)
			assert.False(t, ok, "absent key should report ok=false")

			require.NoError(t, s.SetItem("task-storage", `{"tasks":[]}`))
			v, ok, err := s.GetItem("task-storage")
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, `{"tasks":[]}`, v)

			require.NoError(t, s.SetItem("task-storage", `{"tasks":[1]}`))
			v, _, err = s.GetItem("task-storage")
			require.NoError(t, err)
			assert.Equal(t, `{"tasks":[1]}`, v)

			require.NoError(t, s.RemoveItem("task-storage"))
			_, ok, err = s.GetItem("task-storage")
			require.NoError(t, err)
			assert.False(t, ok)

			// Removing twice is fine.
			require.NoError(t, s.RemoveItem("task-storage"))
		})
	}
}

func TestStorage_ClosedRejectsOperations(t *testing.T) {
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Close())
			_, _, err := s.GetItem("k")
			assert.ErrorIs(t, err, ErrClosed)
			assert.ErrorIs(t, s.SetItem("k", "v"), ErrClosed)
		})
	}
}

func TestFileStorage_ChecksumMismatchIsCorrupt(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := NewFileStorage(fs, "/data")
	require.NoError(t, err)

	require.NoError(t, s.SetItem("task-storage", `{"theme":"dark"}`))
	require.NoError(t, afero.WriteFile(fs, s.Path("task-storage"), []byte(`{"theme":"tampered"}`), 0o644))

	_, _, err = s.GetItem("task-storage")
	assert.ErrorIs(t, err, ErrCorrupt)
}

// interleavingFs runs beforeChecksum once, just before the next checksum
// sidecar is opened, so a concurrent writer can land between the two reads.
type interleavingFs struct {
	afero.Fs
	beforeChecksum func()
}

func (f *interleavingFs) Open(name string) (afero.File, error) {
	if strings.HasSuffix(name, checksumSuffix) && f.beforeChecksum != nil {
		hook := f.beforeChecksum
		f.beforeChecksum = nil
		hook()
	}
	return f.Fs.Open(name)
}

func TestFileStorage_ConcurrentWriteBetweenReads(t *testing.T) {
	base := afero.NewMemMapFs()
	writer, err := NewFileStorage(base, "/data")
	require.NoError(t, err)
	require.NoError(t, writer.SetItem("task-storage", `{"tasks":["one"]}`))

	wrapped := &interleavingFs{Fs: base}
	reader, err := NewFileStorage(wrapped, "/data")
	require.NoError(t, err)

	wrapped.beforeChecksum = func() {
		require.NoError(t, writer.SetItem("task-storage", `{"tasks":["one","two"]}`))
	}

	v, ok, err := reader.GetItem("task-storage")
	require.NoError(t, err, "a write between data and sidecar reads is not corruption")
	assert.True(t, ok)
	assert.Equal(t, `{"tasks":["one","two"]}`, v)
	assert.Nil(t, wrapped.beforeChecksum, "hook should have run")
}

func TestFileStorage_MissingChecksumStillLoads(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := NewFileStorage(fs, "/data")
	require.NoError(t, err)

	require.NoError(t, afero.WriteFile(fs, s.Path("legacy"), []byte("hello"), 0o644))
	v, ok, err := s.GetItem("legacy")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", v)
}

func TestFileStorage_NoTempFilesLeft(t *testing.T) {
	fs := afero.NewMemMapFs()
	s, err := NewFileStorage(fs, "/data")
	require.NoError(t, err)
	require.NoError(t, s.SetItem("task-storage", "x"))

	entries, err := afero.ReadDir(fs, "/data")
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"task-storage.json", "task-storage.json.checksum"}, names)
}

func TestFileStorage_RejectsBadKeys(t *testing.T) {
	s, err := NewFileStorage(afero.NewMemMapFs(), "/data")
	require.NoError(t, err)
	assert.Error(t, s.SetItem("../escape", "x"))
	assert.Error(t, s.SetItem("", "x"))

	assert.True(t, ValidKey("task-storage"))
	assert.False(t, ValidKey("a/b"))
	assert.False(t, ValidKey(".hidden"))
}

func TestOpen(t *testing.T) {
	s, err := Open(Options{Backend: BackendFile, Dir: "/d", Fs: afero.NewMemMapFs()})
	require.NoError(t, err)
	assert.IsType(t, &FileStorage{}, s)

	s, err = Open(Options{Backend: BackendSQLite, Dir: MemoryDSN})
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStorage{}, s)
	require.NoError(t, s.Close())

	_, err = Open(Options{Backend: "redis"})
	assert.Error(t, err)
}
