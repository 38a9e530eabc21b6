// Package config provides centralized configuration for tasklist.
// All default values are defined here to ensure a single source of truth.
package config

import "github.com/josephgoksu/tasklist/internal/storage"

const (
	// AppName is used for directory and env var naming.
	AppName = "tasklist"

	// EnvPrefix prefixes environment overrides, e.g. TASKLIST_STORAGE_BACKEND.
	EnvPrefix = "TASKLIST"

	// ConfigName is the config file base name (.tasklist.yaml).
	ConfigName = ".tasklist"

	// LocalDir is the per-project directory checked before global locations.
	LocalDir = ".tasklist"
)

// Storage defaults
const (
	DefaultBackend    = storage.BackendFile
	DefaultStorageKey = "task-storage"
)

// Logging defaults
const (
	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"
)

// Config keys shared between flags, env and file.
const (
	KeyStorageBackend = "storage.backend"
	KeyStoragePath    = "storage.path"
	KeyStorageKey     = "storage.key"
	KeyLogLevel       = "log.level"
	KeyLogFormat      = "log.format"
	KeyVerbose        = "verbose"
	KeyJSON           = "json"
	KeyConfig         = "config"
)
