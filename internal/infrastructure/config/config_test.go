package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	os.Unsetenv("REMINDER_INTERVAL_MINUTES")
	os.Unsetenv("STATUS_CACHE_TTL_MINUTES")
	os.Unsetenv("PROVIDER_TIMEOUT_SECONDS")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 30*time.Minute, cfg.ReminderInterval)
	assert.Equal(t, 15*time.Minute, cfg.FlightStatusInterval)
	assert.Equal(t, 6*time.Hour, cfg.WeatherInterval)
	assert.Equal(t, time.Hour, cfg.CacheSweepInterval)
	assert.Equal(t, 5*time.Minute, cfg.StatusCacheTTL)
	assert.Equal(t, 10*time.Second, cfg.ProviderTimeout)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	os.Setenv("STATUS_CACHE_TTL_MINUTES", "2")
	defer os.Unsetenv("STATUS_CACHE_TTL_MINUTES")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, cfg.StatusCacheTTL)
}

func TestReminderToleranceTracksPollingCadence(t *testing.T) {
	cfg := &Config{ReminderInterval: 30 * time.Minute}
	assert.Equal(t, 30*time.Minute, cfg.ReminderTolerance())

	// A slower poller widens the tolerance so no threshold is skipped.
	cfg.ReminderInterval = 2 * time.Hour
	assert.Equal(t, time.Hour, cfg.ReminderTolerance())

	// A faster poller never narrows it below half an hour.
	cfg.ReminderInterval = 10 * time.Minute
	assert.Equal(t, 30*time.Minute, cfg.ReminderTolerance())
}
