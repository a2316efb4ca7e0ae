// Package config contains everything related to configuration
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	// APIBaseURL is the dashboard API root.
	APIBaseURL string

	// SessionToken is the browser session cookie value. When empty the
	// token is read from SessionTokenPath instead.
	SessionToken string

	// SessionTokenPath is the file the session token is read from and
	// watched for changes.
	SessionTokenPath string

	// CacheDBPath is the SQLite file backing the event cache. Empty
	// means an in-memory cache for this run only.
	CacheDBPath string

	// EventsCacheTTL is how long a cached event snapshot stays valid.
	EventsCacheTTL time.Duration

	// EventsPageSize is the fixed page size for the usage-event feed.
	EventsPageSize int

	// UsageWindowDays is the trailing window for the token/cost charts.
	UsageWindowDays int

	// CostAlertCents triggers a desktop notification when a completed
	// sweep shows today's usage-based cost at or above this many cents.
	// Zero disables the alert.
	CostAlertCents int
}

// Default values
const (
	defaultAPIBaseURL      = "https://cursor.com/api/dashboard"
	defaultEventsCacheTTL  = time.Hour
	defaultEventsPageSize  = 600
	defaultUsageWindowDays = 14
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	envPaths := getEnvPaths()
	for _, path := range envPaths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		APIBaseURL:       getEnvString("CURSOR_API_BASE_URL", defaultAPIBaseURL),
		SessionToken:     os.Getenv("CURSOR_SESSION_TOKEN"),
		SessionTokenPath: getEnvString("CURSOR_SESSION_TOKEN_PATH", getDefaultSessionTokenPath()),
		CacheDBPath:      getEnvString("CACHE_DB_PATH", getDefaultCacheDBPath()),
		EventsCacheTTL:   getEnvDuration("EVENTS_CACHE_TTL", defaultEventsCacheTTL),
		EventsPageSize:   getEnvInt("EVENTS_PAGE_SIZE", defaultEventsPageSize),
		UsageWindowDays:  getEnvInt("USAGE_WINDOW_DAYS", defaultUsageWindowDays),
		CostAlertCents:   getEnvInt("COST_ALERT_CENTS", 0),
	}

	// Ensure cache directory exists
	if cfg.CacheDBPath != "" {
		if err := ensureDir(filepath.Dir(cfg.CacheDBPath)); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "cursorboard", ".env"),
			filepath.Join(home, ".cursorboard", ".env"),
		)
	}

	return paths
}

// getDefaultCacheDBPath returns the default path for the cache database.
func getDefaultCacheDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cache.db"
	}
	return filepath.Join(home, ".config", "cursorboard", "cache.db")
}

// getDefaultSessionTokenPath returns the default session token file path.
func getDefaultSessionTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session"
	}
	return filepath.Join(home, ".config", "cursorboard", "session")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
