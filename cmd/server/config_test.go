package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"DATABASE_URL", "PORT", "GO_ENV", "CLOCK_INTERVAL", "SESSION_IDLE_TIMEOUT", "DEFAULT_LOCATION"} {
		t.Setenv(key, "")
	}

	cfg := loadConfig()
	assert.Equal(t, "", cfg.DatabaseURL)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, time.Minute, cfg.ClockInterval)
	assert.Equal(t, 30*time.Minute, cfg.SessionIdleTimeout)
	assert.Equal(t, "san-francisco", cfg.DefaultLocation)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("CLOCK_INTERVAL", "15s")
	t.Setenv("SESSION_IDLE_TIMEOUT", "5m")
	t.Setenv("DEFAULT_LOCATION", "fresno")

	cfg := loadConfig()
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 15*time.Second, cfg.ClockInterval)
	assert.Equal(t, 5*time.Minute, cfg.SessionIdleTimeout)
	assert.Equal(t, "fresno", cfg.DefaultLocation)
}

func TestGetDurationFallsBack(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"malformed", "soon"},
		{"negative", "-1m"},
		{"zero", "0s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CLOCK_INTERVAL", tt.value)
			assert.Equal(t, time.Minute, getDuration("CLOCK_INTERVAL", time.Minute))
		})
	}
}
