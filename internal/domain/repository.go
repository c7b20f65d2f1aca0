package domain

import (
	"context"
	"time"
)

// HourlyTemperature is one point of the 24-hour profile
type HourlyTemperature struct {
	Hour        int     `json:"hour"`
	Temperature float64 `json:"temperature"`
	Cooling     float64 `json:"cooling"`
}

// DailyForecast is one day of the 30-day outlook
type DailyForecast struct {
	Day         int     `json:"day"`
	Temperature float64 `json:"temperature"`
	Extreme     bool    `json:"extreme"`
}

// TrendPoint is one year of the warming trend
type TrendPoint struct {
	Year        int     `json:"year"`
	Temperature float64 `json:"temperature"`
}

// PowerProjectionPoint is one hour of the 48-hour battery/load projection
type PowerProjectionPoint struct {
	Hour    int     `json:"hour"`
	Battery float64 `json:"battery"`
	Load    float64 `json:"load"`
}

// HeatwaveImpact is a historical heatwave year with its relative impact
type HeatwaveImpact struct {
	HeatwaveRecord
	Impact float64 `json:"impact"`
}

// ClimateSummary describes a location's heatwave history
type ClimateSummary struct {
	Location             string           `json:"location"`
	AverageEventsPerYear float64          `json:"avg_events_per_year"`
	RecordMaxTemp        float64          `json:"record_max_temp"`
	AverageDuration      float64          `json:"avg_duration_days"`
	History              []HeatwaveImpact `json:"history"`
}

// Forecast bundles the weather panels of a session
type Forecast struct {
	Hourly          []HourlyTemperature    `json:"hourly"`
	Daily           []DailyForecast        `json:"daily"`
	Trend           []TrendPoint           `json:"trend"`
	PowerProjection []PowerProjectionPoint `json:"power_projection"`
	Climate         ClimateSummary         `json:"climate"`
	GeneratedAt     time.Time              `json:"generated_at"`
}

// LocationRepository defines read access to the location catalog.
// Implementations never fail on an unknown key; they return the default profile.
type LocationRepository interface {
	// ListLocations returns every profile ordered by key
	ListLocations(ctx context.Context) ([]LocationProfile, error)

	// GetLocation resolves a key, falling back to the default profile
	GetLocation(ctx context.Context, key string) (LocationProfile, error)

	// Health checks backing store connectivity
	Health(ctx context.Context) error
}
