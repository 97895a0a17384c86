// Package config loads client configuration from an optional .env file
// and the process environment. Flags override both.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	// DefaultAPIBase is the backend the client talks to.
	DefaultAPIBase = "https://linked-posts.routemisr.com"
	// DefaultDBPath is the local BoltDB file.
	DefaultDBPath = "linkup-client.db"
	// DefaultFeedLimit is the page size for feed fetches.
	DefaultFeedLimit = 50
)

// Config carries the client's runtime settings.
type Config struct {
	APIBase      string
	StaticBase   string
	DBPath       string
	FeedLimit    int
	CacheTTL     time.Duration
	PollInterval time.Duration
	LogLevel     slog.Level
}

// Load reads .env (when present) and the environment.
func Load() (*Config, error) {
	// Missing .env is fine; explicit env vars still apply.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := &Config{
		APIBase:      getEnv("LINKUP_API_BASE", DefaultAPIBase),
		StaticBase:   os.Getenv("LINKUP_STATIC_BASE"),
		DBPath:       getEnv("LINKUP_DB", DefaultDBPath),
		FeedLimit:    DefaultFeedLimit,
		CacheTTL:     30 * time.Second,
		PollInterval: 30 * time.Second,
		LogLevel:     slog.LevelInfo,
	}
	// Photos are served from the API host unless configured otherwise.
	if cfg.StaticBase == "" {
		cfg.StaticBase = cfg.APIBase
	}

	if v := os.Getenv("LINKUP_FEED_LIMIT"); v != "" {
		limit, err := strconv.Atoi(v)
		if err != nil || limit <= 0 {
			return nil, fmt.Errorf("invalid LINKUP_FEED_LIMIT %q", v)
		}
		cfg.FeedLimit = limit
	}
	if v := os.Getenv("LINKUP_CACHE_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("invalid LINKUP_CACHE_TTL %q", v)
		}
		cfg.CacheTTL = ttl
	}
	if v := os.Getenv("LINKUP_POLL_INTERVAL"); v != "" {
		interval, err := time.ParseDuration(v)
		if err != nil || interval <= 0 {
			return nil, fmt.Errorf("invalid LINKUP_POLL_INTERVAL %q", v)
		}
		cfg.PollInterval = interval
	}
	if v := os.Getenv("LINKUP_LOG_LEVEL"); v != "" {
		var level slog.Level
		if err := level.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("invalid LINKUP_LOG_LEVEL %q", v)
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
