package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// AppConfig carries everything the server binary needs. Stores and the
// results database are optional: with no REDIS_URL sessions live in process
// memory, with no DATABASE_URL finished games are kept in memory only.
type AppConfig struct {
	ListenAddr string

	RedisURL    string
	DatabaseURL string

	SessionTTL time.Duration

	MessagesFile string
}

const (
	defaultListenAddr = ":8080"
	defaultSessionTTL = 24 * time.Hour
)

// Load reads the environment and validates the result.
func Load() (*AppConfig, error) {
	cfg := &AppConfig{
		ListenAddr: defaultListenAddr,
		SessionTTL: defaultSessionTTL,
	}

	if v := strings.TrimSpace(os.Getenv("LISTEN_ADDR")); v != "" {
		cfg.ListenAddr = v
	}
	cfg.RedisURL = strings.TrimSpace(os.Getenv("REDIS_URL"))
	cfg.DatabaseURL = strings.TrimSpace(os.Getenv("DATABASE_URL"))
	cfg.MessagesFile = strings.TrimSpace(os.Getenv("MESSAGES_FILE"))

	if v := strings.TrimSpace(os.Getenv("SESSION_TTL")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("SESSION_TTL must be a positive number of seconds, got %q", v)
		}
		cfg.SessionTTL = time.Duration(n) * time.Second
	}

	if !strings.Contains(cfg.ListenAddr, ":") {
		return nil, fmt.Errorf("LISTEN_ADDR must be host:port or :port, got %q", cfg.ListenAddr)
	}

	return cfg, nil
}
