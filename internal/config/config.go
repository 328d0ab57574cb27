package config

import "time"

// Config holds all application configuration.
// Both binaries load the same structure and read the sections they need.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Web      WebConfig      `mapstructure:"web" validate:"required"`
	Backend  BackendConfig  `mapstructure:"backend" validate:"required"`
	View     ViewConfig     `mapstructure:"view" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
}

// ServerConfig contains the tasks backend listener settings and the shared log level.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// WebConfig contains the deleted-tasks web view listener settings.
type WebConfig struct {
	Port int `mapstructure:"port" validate:"required,gt=0,lt=65536"`
}

// BackendConfig describes how the web view reaches the tasks backend.
type BackendConfig struct {
	// BaseURL is resolved once at startup into the client's immutable context.
	BaseURL string `mapstructure:"base_url" validate:"required,url"`
	// Timeout of zero keeps the HTTP client's default.
	Timeout time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// ViewConfig contains presentation settings for the deleted-tasks view.
type ViewConfig struct {
	MessageTTL    time.Duration `mapstructure:"message_ttl" validate:"gt=0"`
	Locale        string        `mapstructure:"locale" validate:"required"`
	TimeZone      string        `mapstructure:"time_zone" validate:"required"`
	SessionCookie string        `mapstructure:"session_cookie" validate:"required"`
	SessionIdle   time.Duration `mapstructure:"session_idle" validate:"gt=0"`
	// MaxSessions bounds the live sessions; the least recently used is evicted first.
	MaxSessions int `mapstructure:"max_sessions" validate:"gt=0"`
	// ActiveTasksURL is the target of the "back to tasks" link. Empty hides the link.
	ActiveTasksURL string `mapstructure:"active_tasks_url" validate:"omitempty,url"`
}

// DatabaseConfig contains the tasks backend storage settings.
// An empty URL selects the in-memory store.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"omitempty,url"`
}
