package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the client.
type AppConfig struct {
	APIBaseURL           string
	LoginEmail           string
	LoginPassword        string
	SessionFile          string
	LogLevel             string
	Environment          string
	SentryDSN            string
	MetricsAddr          string
	CronSpecTodayRefresh string
	HTTPTimeout          time.Duration
	SearchDebounce       time.Duration
	CacheStaleAfter      time.Duration
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// Attempt to load .env file. Errors are ignored if the file doesn't exist.
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.APIBaseURL = strings.TrimRight(os.Getenv("CRM_API_BASE_URL"), "/")
	if cfg.APIBaseURL == "" {
		return nil, fmt.Errorf("CRM_API_BASE_URL is not set")
	}

	cfg.LoginEmail = os.Getenv("CRM_LOGIN_EMAIL")
	cfg.LoginPassword = os.Getenv("CRM_LOGIN_PASSWORD")

	cfg.SessionFile = os.Getenv("SESSION_FILE")
	if cfg.SessionFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("SESSION_FILE is not set and home directory is unknown: %w", err)
		}
		cfg.SessionFile = home + "/.crm_session"
	}

	cfg.LogLevel = strings.ToLower(os.Getenv("LOG_LEVEL"))
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info" // Default log level
	}

	cfg.Environment = strings.ToLower(os.Getenv("ENVIRONMENT"))
	if cfg.Environment == "" {
		cfg.Environment = "development" // Default environment
	}

	cfg.SentryDSN = os.Getenv("SENTRY_DSN")     // Optional; error reporting is off when empty.
	cfg.MetricsAddr = os.Getenv("METRICS_ADDR") // Optional; metrics endpoint is off when empty.

	cfg.CronSpecTodayRefresh = os.Getenv("CRON_SPEC_TODAY_REFRESH")
	if cfg.CronSpecTodayRefresh == "" {
		cfg.CronSpecTodayRefresh = "*/5 * * * *" // Default: every 5 minutes
	}

	var err error
	cfg.HTTPTimeout, err = durationFromSeconds("HTTP_TIMEOUT_SECONDS", 30*time.Second)
	if err != nil {
		return nil, err
	}

	cfg.SearchDebounce, err = durationFromMillis("SEARCH_DEBOUNCE_MS", 500*time.Millisecond)
	if err != nil {
		return nil, err
	}

	cfg.CacheStaleAfter, err = durationFromSeconds("CACHE_STALE_AFTER_SECONDS", 60*time.Second)
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

func durationFromSeconds(envKey string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(envKey)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", envKey, raw)
	}
	return time.Duration(n) * time.Second, nil
}

func durationFromMillis(envKey string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(envKey)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", envKey, raw)
	}
	return time.Duration(n) * time.Millisecond, nil
}
