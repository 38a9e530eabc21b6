package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/josephgoksu/tasklist/internal/storage"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppConfig represents the complete application configuration.
type AppConfig struct {
	Verbose bool          `mapstructure:"verbose"`
	JSON    bool          `mapstructure:"json"`
	Config  string        `mapstructure:"config"`
	Storage StorageConfig `mapstructure:"storage" validate:"required"`
	Log     LogConfig     `mapstructure:"log" validate:"required"`
}

// StorageConfig selects where task state is persisted.
type StorageConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend" validate:"required,oneof=file sqlite"`
	Path    string `mapstructure:"path" yaml:"path,omitempty"`
	Key     string `mapstructure:"key" yaml:"key" validate:"required,max=128,storagekey"`
}

// LogConfig controls the slog handler.
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"required,oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"required,oneof=text json"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("storagekey", func(fl validator.FieldLevel) bool {
		return storage.ValidKey(fl.Field().String())
	})
	return v
}

// SetDefaults registers every default with Viper.
func SetDefaults() {
	viper.SetDefault(KeyStorageBackend, DefaultBackend)
	viper.SetDefault(KeyStoragePath, "")
	viper.SetDefault(KeyStorageKey, DefaultStorageKey)
	viper.SetDefault(KeyLogLevel, DefaultLogLevel)
	viper.SetDefault(KeyLogFormat, DefaultLogFormat)
}

// Init reads .env, environment variables and the config file into Viper.
// A missing config file is fine; an unreadable one is reported.
func Init() error {
	// It's okay if .env doesn't exist.
	_ = godotenv.Load()

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	SetDefaults()

	if cfgFile := viper.GetString(KeyConfig); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName(ConfigName)
		viper.SetConfigType("yaml")
		viper.AddConfigPath(LocalDir)
		if dir, err := GetGlobalConfigDir(); err == nil {
			viper.AddConfigPath(dir)
		}
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			slog.Debug("no config file found, using defaults and environment")
			return nil
		}
		return fmt.Errorf("read config %s: %w", viper.ConfigFileUsed(), err)
	}
	slog.Debug("using config file", "path", viper.ConfigFileUsed())
	return nil
}

// Load unmarshals and validates the current Viper state.
func Load() (*AppConfig, error) {
	var cfg AppConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.Storage.Backend = strings.ToLower(strings.TrimSpace(cfg.Storage.Backend))
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	cfg.Log.Format = strings.ToLower(strings.TrimSpace(cfg.Log.Format))
	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DataDir()
	}

	if err := validate.Struct(&cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, e := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: rule %q (value: %v)", e.Namespace(), e.Tag(), e.Value()))
			}
			return nil, fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}
