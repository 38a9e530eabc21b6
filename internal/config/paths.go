package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// GetGlobalConfigDir returns the path to the global configuration directory (~/.tasklist).
// It's a variable to allow overriding in tests.
var GetGlobalConfigDir = func() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "."+AppName), nil
}

// DataDir returns the directory that holds persisted task state.
// Resolution order (first match wins):
// 1. Explicit config via "storage.path" (Viper/env/flag)
// 2. Local project directory: .tasklist/data (if exists)
// 3. XDG_DATA_HOME/tasklist (if XDG_DATA_HOME is set)
// 4. Global fallback: ~/.tasklist/data
func DataDir() string {
	if path := viper.GetString(KeyStoragePath); path != "" {
		return path
	}

	localData := filepath.Join(LocalDir, "data")
	if info, err := os.Stat(localData); err == nil && info.IsDir() {
		return localData
	}

	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return filepath.Join(xdgData, AppName)
	}

	dir, err := GetGlobalConfigDir()
	if err != nil {
		return "./data"
	}
	return filepath.Join(dir, "data")
}

// CrashLogDir returns where crash logs are written.
func CrashLogDir() string {
	return filepath.Join(DataDir(), "crash_logs")
}
