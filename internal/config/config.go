// Package config provides application configuration loaded from environment variables.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/joeshaw/envdecode"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	App      AppConfig
	Session  SessionConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string `env:"PORT,default=8080"`
	ReadTimeout  int    `env:"SERVER_READ_TIMEOUT,default=15"`  // seconds
	WriteTimeout int    `env:"SERVER_WRITE_TIMEOUT,default=15"` // seconds
	IdleTimeout  int    `env:"SERVER_IDLE_TIMEOUT,default=60"`  // seconds
}

// DatabaseConfig holds PostgreSQL connection settings.
// URL, when set, takes precedence over the discrete fields.
type DatabaseConfig struct {
	URL      string `env:"DATABASE_URL"`
	Host     string `env:"DB_HOST,default=localhost"`
	Port     int    `env:"DB_PORT,default=5432"`
	User     string `env:"DB_USER,default=dashboard"`
	Password string `env:"DB_PASSWORD,default=dashboard"`
	DBName   string `env:"DB_NAME,default=dashboard"`
	SSLMode  string `env:"DB_SSLMODE,default=disable"`
	Debug    bool   `env:"DB_DEBUG,default=false"`
}

// AppConfig holds application-level settings.
type AppConfig struct {
	Dev        bool          `env:"DEV,default=true"`
	Migrations bool          `env:"MIGRATIONS,default=false"`
	Seed       bool          `env:"DB_SEED,default=false"`
	CacheTTL   time.Duration `env:"CACHE_TTL,default=1m"`
	LoginRate  float64       `env:"LOGIN_RATE,default=1"`
	LoginBurst int           `env:"LOGIN_BURST,default=5"`
}

// SessionConfig holds the cookie signing secret.
type SessionConfig struct {
	Secret string `env:"SESSION_SECRET,default=devsessionsecret"`
}

// DSN returns the PostgreSQL connection string in key=value format.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode,
	)
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return ":" + s.Port
}

// Load reads configuration from environment variables.
// Unset variables fall back to defaults suited for local development.
func Load() (*Config, error) {
	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}
