package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATABASE_URL", "")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want 8080", cfg.Server.Port)
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want 5432", cfg.Database.Port)
	}
	if cfg.App.CacheTTL != time.Minute {
		t.Errorf("App.CacheTTL = %v, want 1m", cfg.App.CacheTTL)
	}
	if !cfg.App.Dev {
		t.Errorf("App.Dev = false, want true")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("MIGRATIONS", "true")
	t.Setenv("CACHE_TTL", "30s")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Server.Addr() != ":9090" {
		t.Errorf("Server.Addr() = %q, want :9090", cfg.Server.Addr())
	}
	if cfg.Database.Port != 6543 {
		t.Errorf("Database.Port = %d, want 6543", cfg.Database.Port)
	}
	if !cfg.App.Migrations {
		t.Errorf("App.Migrations = false, want true")
	}
	if cfg.App.CacheTTL != 30*time.Second {
		t.Errorf("App.CacheTTL = %v, want 30s", cfg.App.CacheTTL)
	}
}

func TestDatabaseDSN(t *testing.T) {
	tests := []struct {
		name string
		cfg  DatabaseConfig
		want string
	}{
		{
			name: "discrete fields",
			cfg:  DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", DBName: "d", SSLMode: "disable"},
			want: "host=db port=5432 user=u password=p dbname=d sslmode=disable",
		},
		{
			name: "url wins",
			cfg:  DatabaseConfig{URL: "postgres://u:p@db:5432/d", Host: "ignored"},
			want: "postgres://u:p@db:5432/d",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.DSN(); got != tt.want {
				t.Errorf("DSN() = %q, want %q", got, tt.want)
			}
		})
	}
}
