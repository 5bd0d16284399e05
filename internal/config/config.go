package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the gateway configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Upstream  UpstreamConfig  `yaml:"upstream"`
	Log       LogConfig       `yaml:"log"`
	Session   SessionConfig   `yaml:"session"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains the gateway's HTTP listen settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// UpstreamConfig locates the external library server that owns persistence
// and sanction issuing
type UpstreamConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SessionConfig governs loan edit sessions
type SessionConfig struct {
	TTLMinutes int `yaml:"ttl_minutes"`
}

// SchedulerConfig contains cron schedule settings. RefreshReferenceData is
// the long-interval polling fallback behind the event-driven cache
// invalidation; ExpireSessions drops abandoned loan edit sessions.
type SchedulerConfig struct {
	RefreshReferenceData string `yaml:"refresh_reference_data"`
	ExpireSessions       string `yaml:"expire_sessions"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.overrideWithEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}
	if val := os.Getenv("UPSTREAM_BASE_URL"); val != "" {
		c.Upstream.BaseURL = val
	}
	if val := os.Getenv("UPSTREAM_TIMEOUT_SECONDS"); val != "" {
		fmt.Sscanf(val, "%d", &c.Upstream.TimeoutSeconds)
	}
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}
	if val := os.Getenv("SESSION_TTL_MINUTES"); val != "" {
		fmt.Sscanf(val, "%d", &c.Session.TTLMinutes)
	}
}

// Validate checks the configuration and fills in defaults
func (c *Config) Validate() error {
	if c.Server.Port == 0 {
		c.Server.Port = 8090
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream base URL is required")
	}
	if c.Upstream.TimeoutSeconds <= 0 {
		c.Upstream.TimeoutSeconds = 10
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.Session.TTLMinutes <= 0 {
		c.Session.TTLMinutes = 30
	}

	// Scheduler defaults: the reference-data poll is deliberately infrequent,
	// it is only a safety net behind the invalidation events.
	if c.Scheduler.RefreshReferenceData == "" {
		c.Scheduler.RefreshReferenceData = "0 0 */6 * * *" // every 6 hours
	}
	if c.Scheduler.ExpireSessions == "" {
		c.Scheduler.ExpireSessions = "0 */10 * * * *" // every 10 minutes
	}

	return nil
}

// GetServerAddress returns the gateway HTTP listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
