package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8553", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 15*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 6*time.Second, cfg.HostInitTimeout)
	assert.Equal(t, 45*time.Second, cfg.HostLocationTimeout)
	assert.Equal(t, 12*time.Second, cfg.SystemTimeout)
	assert.Equal(t, 120*time.Second, cfg.SystemMaxAge)
	assert.Equal(t, 260*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, 8, cfg.SearchLimit)
	assert.Equal(t, 8, cfg.ForecastDays)
	assert.Equal(t, 256, cfg.ReverseCacheSize)
	assert.Equal(t, 30*time.Minute, cfg.RefreshInterval)
	assert.True(t, strings.HasSuffix(cfg.StatePath, "state.json"))
	assert.Contains(t, cfg.ForecastBaseURL, "open-meteo.com")
	assert.Contains(t, cfg.ReverseBaseURL, "nominatim")
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HTTP_ADDR", "127.0.0.1:9000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("STATE_PATH", "/tmp/wx/state.json")
	t.Setenv("LANGUAGE", "de")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("SEARCH_DEBOUNCE", "100ms")
	t.Setenv("SEARCH_LIMIT", "5")
	t.Setenv("FORECAST_DAYS", "10")
	t.Setenv("REVERSE_CACHE_SIZE", "64")
	t.Setenv("REFRESH_INTERVAL", "0s")
	t.Setenv("FORECAST_BASE_URL", "http://localhost:1234/v1/forecast")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "/tmp/wx/state.json", cfg.StatePath)
	assert.Equal(t, "de", cfg.Language)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 100*time.Millisecond, cfg.SearchDebounce)
	assert.Equal(t, 5, cfg.SearchLimit)
	assert.Equal(t, 10, cfg.ForecastDays)
	assert.Equal(t, 64, cfg.ReverseCacheSize)
	assert.Equal(t, time.Duration(0), cfg.RefreshInterval)
	assert.Equal(t, "http://localhost:1234/v1/forecast", cfg.ForecastBaseURL)
}

func TestLoad_InvalidValues(t *testing.T) {
	cases := []struct {
		key, value string
	}{
		{"SHUTDOWN_TIMEOUT", "soon"},
		{"HTTP_TIMEOUT", "-1s"},
		{"SEARCH_DEBOUNCE", "0s"},
		{"SEARCH_LIMIT", "0"},
		{"FORECAST_DAYS", "eight"},
		{"FORECAST_DAYS", "20"},
		{"REVERSE_CACHE_SIZE", "-5"},
		{"REFRESH_INTERVAL", "-1m"},
	}
	for _, tc := range cases {
		t.Run(tc.key+"="+tc.value, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}
