package config

import (
	"testing"
	"time"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"LISTEN_ADDR", "REDIS_URL", "DATABASE_URL", "SESSION_TTL", "MESSAGES_FILE"} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.SessionTTL != 24*time.Hour {
		t.Fatalf("SessionTTL = %v, want 24h", cfg.SessionTTL)
	}
	if cfg.RedisURL != "" || cfg.DatabaseURL != "" {
		t.Fatalf("optional backends should default to empty: %+v", cfg)
	}
}

func TestLoadFromEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("LISTEN_ADDR", "0.0.0.0:9000")
	t.Setenv("REDIS_URL", "redis://localhost:6379/2")
	t.Setenv("DATABASE_URL", "postgres://fow@localhost/fow")
	t.Setenv("SESSION_TTL", "600")
	t.Setenv("MESSAGES_FILE", "/etc/fow/messages.yaml")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ListenAddr != "0.0.0.0:9000" {
		t.Fatalf("ListenAddr = %q", cfg.ListenAddr)
	}
	if cfg.SessionTTL != 10*time.Minute {
		t.Fatalf("SessionTTL = %v, want 10m", cfg.SessionTTL)
	}
	if cfg.RedisURL != "redis://localhost:6379/2" || cfg.MessagesFile != "/etc/fow/messages.yaml" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name  string
		key   string
		value string
	}{
		{"ttl not a number", "SESSION_TTL", "soon"},
		{"ttl zero", "SESSION_TTL", "0"},
		{"ttl negative", "SESSION_TTL", "-5"},
		{"addr without port", "LISTEN_ADDR", "localhost"},
	}
	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)
			if _, err := Load(); err == nil {
				t.Fatalf("Load accepted %s=%q", tt.key, tt.value)
			}
		})
	}
}
