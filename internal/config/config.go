package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP    HTTPConfig
	Source  SourceConfig
	Store   StoreConfig
	Logging LoggingConfig
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Host              string
	Port              int
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	IdleTimeout       time.Duration
	ShutdownTimeout   time.Duration
	AllowedOriginsCSV string
}

// SourceConfig describes the upstream user dataset and the fallback generator.
type SourceConfig struct {
	URL           string
	FetchTimeout  time.Duration
	CacheTTL      time.Duration
	FallbackUsers int
	FallbackSeed  int64
}

// StoreConfig locates the local durable stores.
type StoreConfig struct {
	SQLitePath string
	BoltPath   string
}

// LoggingConfig controls structured logging settings.
type LoggingConfig struct {
	Level         string
	Format        string // text|json
	IncludeCaller bool
}

const (
	defaultHost            = "0.0.0.0"
	defaultPort            = 8080
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultLoggingLevel    = "info"
	defaultLoggingFormat   = "text"

	defaultSourceURL     = "https://api.npoint.io/24eb0dde1623416ece94"
	defaultFetchTimeout  = 10 * time.Second
	defaultCacheTTL      = 5 * time.Minute
	defaultFallbackUsers = 500

	defaultSQLitePath = "lenddesk.db"
	defaultBoltPath   = "lenddesk.kv"
)

// Load reads configuration from the environment, applying defaults. A .env
// file in the working directory is merged in first when present.
func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		HTTP: HTTPConfig{
			Host:              valueOrDefault("SERVER_HOST", defaultHost),
			ReadTimeout:       defaultReadTimeout,
			WriteTimeout:      defaultWriteTimeout,
			IdleTimeout:       defaultIdleTimeout,
			ShutdownTimeout:   defaultShutdownTimeout,
			AllowedOriginsCSV: os.Getenv("SERVER_ALLOWED_ORIGINS"),
		},
		Source: SourceConfig{
			URL:           valueOrDefault("SOURCE_URL", defaultSourceURL),
			FetchTimeout:  defaultFetchTimeout,
			CacheTTL:      defaultCacheTTL,
			FallbackUsers: parseIntWithDefault("SOURCE_FALLBACK_USERS", defaultFallbackUsers),
			FallbackSeed:  parseInt64WithDefault("SOURCE_FALLBACK_SEED", 0),
		},
		Store: StoreConfig{
			SQLitePath: valueOrDefault("STORE_SQLITE_PATH", defaultSQLitePath),
			BoltPath:   valueOrDefault("STORE_BOLT_PATH", defaultBoltPath),
		},
		Logging: LoggingConfig{
			Level:         valueOrDefault("LOG_LEVEL", defaultLoggingLevel),
			Format:        valueOrDefault("LOG_FORMAT", defaultLoggingFormat),
			IncludeCaller: parseBoolWithDefault("LOG_INCLUDE_CALLER", false),
		},
	}

	port, err := parsePort("SERVER_PORT", defaultPort)
	if err != nil {
		return Config{}, err
	}
	cfg.HTTP.Port = port

	durations := []struct {
		key string
		dst *time.Duration
	}{
		{"SERVER_READ_TIMEOUT", &cfg.HTTP.ReadTimeout},
		{"SERVER_WRITE_TIMEOUT", &cfg.HTTP.WriteTimeout},
		{"SERVER_IDLE_TIMEOUT", &cfg.HTTP.IdleTimeout},
		{"SERVER_SHUTDOWN_TIMEOUT", &cfg.HTTP.ShutdownTimeout},
		{"SOURCE_FETCH_TIMEOUT", &cfg.Source.FetchTimeout},
		{"SOURCE_CACHE_TTL", &cfg.Source.CacheTTL},
	}
	for _, entry := range durations {
		if v := os.Getenv(entry.key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return Config{}, fmt.Errorf("invalid %s: %w", entry.key, err)
			}
			*entry.dst = d
		}
	}

	if cfg.Source.FallbackUsers <= 0 {
		return Config{}, fmt.Errorf("SOURCE_FALLBACK_USERS must be positive, got %d", cfg.Source.FallbackUsers)
	}

	return cfg, nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		val, err := strconv.ParseBool(v)
		if err != nil {
			return fallback
		}
		return val
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}

func parseInt64WithDefault(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.ParseInt(v, 10, 64); err == nil {
			return val
		}
	}
	return fallback
}

func parsePort(key string, fallback int) (int, error) {
	if v := os.Getenv(key); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value %q: %w", key, v, err)
		}
		if port <= 0 || port > 65535 {
			return 0, fmt.Errorf("port %d is out of range", port)
		}
		return port, nil
	}
	return fallback, nil
}
