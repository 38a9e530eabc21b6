package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// isolate resets Viper and points every lookup location at a temp dir.
func isolate(t *testing.T) string {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	t.Setenv("XDG_DATA_HOME", "")

	orig := GetGlobalConfigDir
	GetGlobalConfigDir = func() (string, error) { return filepath.Join(dir, ".tasklist"), nil }
	t.Cleanup(func() { GetGlobalConfigDir = orig })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, Init())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "file", cfg.Storage.Backend)
	assert.Equal(t, "task-storage", cfg.Storage.Key)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, filepath.Join(dir, ".tasklist", "data"), cfg.Storage.Path)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolate(t)
	t.Setenv("TASKLIST_STORAGE_BACKEND", "SQLite")
	t.Setenv("TASKLIST_LOG_LEVEL", "debug")
	require.NoError(t, Init())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"backend", KeyStorageBackend, "redis", "Backend"},
		{"level", KeyLogLevel, "loud", "Level"},
		{"format", KeyLogFormat, "xml", "Format"},
		{"empty key", KeyStorageKey, "", "Key"},
		{"key with slash", KeyStorageKey, "a/b", "storagekey"},
		{"key starting with dot", KeyStorageKey, ".hidden", "storagekey"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			require.NoError(t, Init())
			viper.Set(tt.key, tt.val)

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_AcceptsStorageKey(t *testing.T) {
	isolate(t)
	require.NoError(t, Init())
	viper.Set(KeyStorageKey, "work_tasks-2.v1")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "work_tasks-2.v1", cfg.Storage.Key)
}

func TestInit_ReadsConfigFile(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, ".tasklist", ".tasklist.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  backend: sqlite\n  path: /srv/tasks\nlog:\n  format: json\n"), 0o644))

	require.NoError(t, Init())
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", cfg.Storage.Backend)
	assert.Equal(t, "/srv/tasks", cfg.Storage.Path)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "warn", cfg.Log.Level, "unset keys keep defaults")
}

func TestInit_ExplicitConfigMustParse(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("storage: [unterminated"), 0o644))
	viper.Set(KeyConfig, path)

	assert.Error(t, Init())
}

func TestDataDir_Resolution(t *testing.T) {
	dir := isolate(t)

	// Global fallback.
	assert.Equal(t, filepath.Join(dir, ".tasklist", "data"), DataDir())

	// XDG beats global.
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "xdg"))
	assert.Equal(t, filepath.Join(dir, "xdg", "tasklist"), DataDir())

	// Local project directory beats XDG.
	require.NoError(t, os.MkdirAll(filepath.Join(LocalDir, "data"), 0o755))
	assert.Equal(t, filepath.Join(LocalDir, "data"), DataDir())

	// Explicit path beats everything.
	viper.Set(KeyStoragePath, "/explicit")
	assert.Equal(t, "/explicit", DataDir())
	assert.Equal(t, filepath.Join("/explicit", "crash_logs"), CrashLogDir())
}

func TestWriteDefault(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "cfg", ".tasklist.yaml")

	require.NoError(t, WriteDefault(path, false))
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got fileConfig
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, "file", got.Storage.Backend)
	assert.Equal(t, "task-storage", got.Storage.Key)
	assert.Equal(t, "warn", got.Log.Level)

	err = WriteDefault(path, false)
	assert.ErrorIs(t, err, ErrConfigExists)
	assert.NoError(t, WriteDefault(path, true))
}
