package config

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load,
// e.g. TASKBIN_BACKEND_BASE_URL for backend.base_url.
const EnvPrefix = "TASKBIN"

// Default values applied before any file or environment override.
const (
	DefaultServerPort    = 8000
	DefaultWebPort       = 8080
	DefaultLogLevel      = "info"
	DefaultBackendURL    = "http://localhost:8000"
	DefaultMessageTTL    = 5 * time.Second
	DefaultLocale        = "es_ES"
	DefaultTimeZone      = "Local"
	DefaultSessionCookie = "taskbin_session"
	DefaultSessionIdle   = 30 * time.Minute
	DefaultMaxSessions   = 1000
)

// Load configuration from a .env file, an optional config.yaml and environment
// variables. Environment variables take precedence over values from the file.
// Returns a populated Config or an error if loading or validation fails.
func Load() (*Config, error) {
	return LoadFrom(".")
}

// LoadFrom behaves like Load but looks for .env and config.yaml in dir.
func LoadFrom(dir string) (*Config, error) {
	// .env only seeds the process environment; existing variables win.
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env file: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks cfg against its struct tags.
func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// setDefaults registers every key so AutomaticEnv can override it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", DefaultServerPort)
	v.SetDefault("server.log_level", DefaultLogLevel)
	v.SetDefault("web.port", DefaultWebPort)
	v.SetDefault("backend.base_url", DefaultBackendURL)
	v.SetDefault("backend.timeout", time.Duration(0))
	v.SetDefault("view.message_ttl", DefaultMessageTTL)
	v.SetDefault("view.locale", DefaultLocale)
	v.SetDefault("view.time_zone", DefaultTimeZone)
	v.SetDefault("view.session_cookie", DefaultSessionCookie)
	v.SetDefault("view.session_idle", DefaultSessionIdle)
	v.SetDefault("view.max_sessions", DefaultMaxSessions)
	v.SetDefault("view.active_tasks_url", "")
	v.SetDefault("database.url", "")
}
