package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk layout written by WriteDefault.
type fileConfig struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// ErrConfigExists is returned by WriteDefault when the file is already present.
var ErrConfigExists = errors.New("config file already exists")

// DefaultConfigPath returns the project-local config file path.
func DefaultConfigPath() string {
	return filepath.Join(LocalDir, ConfigName+".yaml")
}

// WriteDefault writes a starter config to path. It refuses to overwrite
// an existing file unless force is set.
func WriteDefault(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrConfigExists, path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}

	data, err := yaml.Marshal(fileConfig{
		Storage: StorageConfig{Backend: DefaultBackend, Key: DefaultStorageKey},
		Log:     LogConfig{Level: DefaultLogLevel, Format: DefaultLogFormat},
	})
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	content := append([]byte("# tasklist configuration\n"), data...)
	return os.WriteFile(path, content, 0o644)
}
