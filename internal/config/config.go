package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all agent settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	StatePath       string
	Language        string
	ShutdownTimeout time.Duration

	// Provider endpoints, overridable for testing.
	ForecastBaseURL string
	SearchBaseURL   string
	ReverseBaseURL  string
	IPGeoBaseURL    string

	// Per-request HTTP timeout shared by the forecast and search clients.
	HTTPTimeout time.Duration

	// Location resolution bounds.
	HostInitTimeout     time.Duration
	HostLocationTimeout time.Duration
	SystemTimeout       time.Duration
	SystemMaxAge        time.Duration

	// Search behaviour.
	SearchDebounce time.Duration
	SearchLimit    int

	// Forecast shape.
	ForecastDays int

	// Reverse geocode cache.
	ReverseCacheSize int

	// Periodic forecast refresh; zero disables it.
	RefreshInterval time.Duration
}

// Load reads configuration from the environment, applying defaults
// where unset. A .env file in the working directory is read first when
// present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		HTTPAddr:  envOrDefault("HTTP_ADDR", "127.0.0.1:8553"),
		LogLevel:  envOrDefault("LOG_LEVEL", "info"),
		LogFormat: envOrDefault("LOG_FORMAT", "text"),
		StatePath: os.Getenv("STATE_PATH"),
		Language:  envOrDefault("LANGUAGE", "en"),

		ForecastBaseURL: envOrDefault("FORECAST_BASE_URL", "https://api.open-meteo.com/v1/forecast"),
		SearchBaseURL:   envOrDefault("SEARCH_BASE_URL", "https://geocoding-api.open-meteo.com/v1/search"),
		ReverseBaseURL:  envOrDefault("REVERSE_BASE_URL", "https://nominatim.openstreetmap.org/reverse"),
		IPGeoBaseURL:    envOrDefault("IPGEO_BASE_URL", "https://geolocation-db.com/json/"),
	}

	var err error
	if cfg.ShutdownTimeout, err = parseDuration("SHUTDOWN_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.HTTPTimeout, err = parseDuration("HTTP_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.HostInitTimeout, err = parseDuration("HOST_INIT_TIMEOUT", "6s"); err != nil {
		return nil, err
	}
	if cfg.HostLocationTimeout, err = parseDuration("HOST_LOCATION_TIMEOUT", "45s"); err != nil {
		return nil, err
	}
	if cfg.SystemTimeout, err = parseDuration("SYSTEM_TIMEOUT", "12s"); err != nil {
		return nil, err
	}
	if cfg.SystemMaxAge, err = parseDuration("SYSTEM_MAX_AGE", "120s"); err != nil {
		return nil, err
	}
	if cfg.SearchDebounce, err = parseDuration("SEARCH_DEBOUNCE", "260ms"); err != nil {
		return nil, err
	}
	if cfg.SearchLimit, err = parsePositiveInt("SEARCH_LIMIT", 8); err != nil {
		return nil, err
	}
	if cfg.ForecastDays, err = parsePositiveInt("FORECAST_DAYS", 8); err != nil {
		return nil, err
	}
	if cfg.ReverseCacheSize, err = parsePositiveInt("REVERSE_CACHE_SIZE", 256); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = parseNonNegativeDuration("REFRESH_INTERVAL", "30m"); err != nil {
		return nil, err
	}

	if cfg.StatePath == "" {
		cfg.StatePath, err = defaultStatePath()
		if err != nil {
			return nil, err
		}
	}

	if cfg.HTTPAddr == "" {
		return nil, errors.New("HTTP_ADDR is required")
	}
	if cfg.ForecastDays > 16 {
		return nil, errors.New("FORECAST_DAYS must be 16 or less")
	}

	return cfg, nil
}

func defaultStatePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolving state path: %w", err)
	}
	return filepath.Join(dir, "pocketwx", "state.json"), nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

// parseNonNegativeDuration allows zero, used for intervals where zero
// means disabled.
func parseNonNegativeDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d < 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return n, nil
}
