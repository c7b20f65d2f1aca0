package main

import (
	"log"
	"os"
	"time"

	"github.com/heatguard/backend/internal/domain"
)

type Config struct {
	DatabaseURL        string
	Port               string
	Env                string
	ClockInterval      time.Duration
	SessionIdleTimeout time.Duration
	DefaultLocation    string
}

func loadConfig() *Config {
	return &Config{
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("GO_ENV", "development"),
		ClockInterval:      getDuration("CLOCK_INTERVAL", time.Minute),
		SessionIdleTimeout: getDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
		DefaultLocation:    getEnv("DEFAULT_LOCATION", domain.DefaultLocationKey),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getDuration falls back to the default on malformed or non-positive values
func getDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		log.Printf("Invalid %s %q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
