package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	RemoteAPI RemoteAPIConfig `yaml:"remote_api"`
	Email     EmailConfig     `yaml:"email"`
	Session   SessionConfig   `yaml:"session"`
	Cache     CacheConfig     `yaml:"cache"`
	Log       LogConfig       `yaml:"log"`
	Scheduler SchedulerConfig `yaml:"scheduler"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig contains PostgreSQL connection settings for the audit store
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	SSLMode  string `yaml:"ssl_mode"`
}

// RemoteAPIConfig points at the upstream finance API
type RemoteAPIConfig struct {
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// EmailConfig contains SendGrid settings for overdue notices
type EmailConfig struct {
	SendGridAPIKey string `yaml:"sendgrid_api_key"`
	FromAddress    string `yaml:"from_address"`
	FromName       string `yaml:"from_name"`
}

// SessionConfig contains session token settings
type SessionConfig struct {
	Secret string `yaml:"secret"`
}

// CacheConfig contains view cache settings
type CacheConfig struct {
	TTLSeconds int `yaml:"ttl_seconds"`
}

// LogConfig contains logging settings
type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// SchedulerConfig contains cron schedule settings
type SchedulerConfig struct {
	SweepViewCache     string `yaml:"sweep_view_cache"`
	NotifyOverdueBills string `yaml:"notify_overdue_bills"`
}

// Load reads configuration from a YAML file
func Load(configPath string) (*Config, error) {
	// Read config file
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Parse YAML
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Override with environment variables if present
	cfg.overrideWithEnv()

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// overrideWithEnv overrides config values with environment variables
func (c *Config) overrideWithEnv() {
	// Database
	if val := os.Getenv("DB_HOST"); val != "" {
		c.Database.Host = val
	}
	if val := os.Getenv("DB_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Database.Port)
	}
	if val := os.Getenv("DB_USER"); val != "" {
		c.Database.User = val
	}
	if val := os.Getenv("DB_PASSWORD"); val != "" {
		c.Database.Password = val
	}
	if val := os.Getenv("DB_NAME"); val != "" {
		c.Database.Database = val
	}
	if val := os.Getenv("DB_SSL_MODE"); val != "" {
		c.Database.SSLMode = val
	}

	// Remote API
	if val := os.Getenv("REMOTE_API_BASE_URL"); val != "" {
		c.RemoteAPI.BaseURL = val
	}
	if val := os.Getenv("REMOTE_API_TIMEOUT_SECONDS"); val != "" {
		fmt.Sscanf(val, "%d", &c.RemoteAPI.TimeoutSeconds)
	}

	// Email
	if val := os.Getenv("SENDGRID_API_KEY"); val != "" {
		c.Email.SendGridAPIKey = val
	}
	if val := os.Getenv("EMAIL_FROM_ADDRESS"); val != "" {
		c.Email.FromAddress = val
	}

	// Session
	if val := os.Getenv("SESSION_SECRET"); val != "" {
		c.Session.Secret = val
	}

	// Server
	if val := os.Getenv("SERVER_HOST"); val != "" {
		c.Server.Host = val
	}
	if val := os.Getenv("SERVER_PORT"); val != "" {
		fmt.Sscanf(val, "%d", &c.Server.Port)
	}

	// Log
	if val := os.Getenv("LOG_LEVEL"); val != "" {
		c.Log.Level = val
	}
	if val := os.Getenv("LOG_FORMAT"); val != "" {
		c.Log.Format = val
	}

	// Set defaults for log if not configured
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	// Server validation
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	// Database validation
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if c.Database.Database == "" {
		return fmt.Errorf("database name is required")
	}

	// Remote API validation
	if c.RemoteAPI.BaseURL == "" {
		return fmt.Errorf("remote API base URL is required")
	}
	if c.RemoteAPI.TimeoutSeconds <= 0 {
		c.RemoteAPI.TimeoutSeconds = 30
	}

	// Session validation
	if c.Session.Secret == "" {
		return fmt.Errorf("session secret is required")
	}
	if len(c.Session.Secret) < 32 {
		return fmt.Errorf("session secret must be at least 32 characters")
	}

	// Cache defaults
	if c.Cache.TTLSeconds <= 0 {
		c.Cache.TTLSeconds = 300 // 5 minutes
	}

	// Scheduler defaults
	if c.Scheduler.SweepViewCache == "" {
		c.Scheduler.SweepViewCache = "0 */10 * * * *" // every 10 minutes
	}
	if c.Scheduler.NotifyOverdueBills == "" {
		c.Scheduler.NotifyOverdueBills = "0 0 9 * * *" // daily at 9 AM UTC
	}

	return nil
}

// GetDatabaseConnectionString returns a PostgreSQL connection string
func (c *Config) GetDatabaseConnectionString() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
		c.Database.SSLMode,
	)
}

// GetServerAddress returns the HTTP server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// GetRemoteAPITimeout returns the upstream call timeout
func (c *Config) GetRemoteAPITimeout() time.Duration {
	return time.Duration(c.RemoteAPI.TimeoutSeconds) * time.Second
}

// GetCacheTTL returns the view cache TTL
func (c *Config) GetCacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}
