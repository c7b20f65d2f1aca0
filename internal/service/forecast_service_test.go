package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heatguard/backend/internal/catalog"
	"github.com/heatguard/backend/internal/domain"
	"github.com/heatguard/backend/internal/repository/postgres"
)

func sanFrancisco(t *testing.T) domain.LocationProfile {
	t.Helper()
	profile, ok := catalog.DefaultLocations().Lookup("san-francisco")
	require.True(t, ok)
	return profile
}

func TestHourlyProfile(t *testing.T) {
	hours := HourlyProfile()
	require.Len(t, hours, 24)

	assert.Equal(t, 0, hours[0].Hour)
	assert.Equal(t, 0.0, hours[0].Cooling)
	assert.Equal(t, 48.0, hours[14].Temperature)
	assert.Equal(t, 69.0, hours[14].Cooling)
}

func TestDailyForecast(t *testing.T) {
	for _, key := range []string{"san-francisco", "fresno"} {
		t.Run(key, func(t *testing.T) {
			profile, ok := catalog.DefaultLocations().Lookup(key)
			require.True(t, ok)

			days := DailyForecast(profile)
			require.Len(t, days, 30)
			assert.Equal(t, profile.AverageSummerTemperature, days[0].Temperature)

			for _, d := range days {
				dome := d.Day >= 16 && d.Day <= 23
				assert.Equal(t, dome, d.Extreme, "day %d", d.Day)
			}
			assert.Equal(t, profile.AverageSummerTemperature+18, days[15].Temperature)
		})
	}
}

func TestWarmingTrend(t *testing.T) {
	trend := WarmingTrend(sanFrancisco(t))
	require.Len(t, trend, 10)

	assert.Equal(t, domain.TrendPoint{Year: 2015, Temperature: 22}, trend[0])
	assert.Equal(t, domain.TrendPoint{Year: 2024, Temperature: 29.2}, trend[9])
}

func TestPowerProjection(t *testing.T) {
	in := domain.DefaultSimulationInput()
	points := PowerProjection(in)
	require.Len(t, points, 48)

	assert.Equal(t, 85.0, points[0].Battery)
	assert.Equal(t, 75.0, points[0].Load)
	assert.Equal(t, 0.4, points[47].Battery)

	in.BatteryCapacity = 20
	for _, p := range PowerProjection(in) {
		assert.GreaterOrEqual(t, p.Battery, 0.0)
	}
}

func TestClimate(t *testing.T) {
	summary := Climate(sanFrancisco(t))

	assert.Equal(t, "san-francisco", summary.Location)
	assert.InDelta(t, 2.75, summary.AverageEventsPerYear, 1e-9)
	assert.Equal(t, 41.0, summary.RecordMaxTemp)
	assert.InDelta(t, 3.75, summary.AverageDuration, 1e-9)

	require.Len(t, summary.History, 4)
	assert.Equal(t, 2021, summary.History[2].Year)
	assert.InDelta(t, 45, summary.History[2].Impact, 1e-9)
}

func TestClimateWithoutHistory(t *testing.T) {
	summary := Climate(domain.LocationProfile{Key: "nowhere", AverageSummerTemperature: 20, HeatwaveThreshold: 30})
	assert.Empty(t, summary.History)
	assert.Zero(t, summary.RecordMaxTemp)
}

func TestGetForecast(t *testing.T) {
	svc := NewForecastService(postgres.NewStaticRepository(catalog.DefaultLocations()))
	fixed := time.Date(2024, 7, 19, 14, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	in := domain.DefaultSimulationInput()
	in.Location = "unknown-site"

	forecast, err := svc.GetForecast(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "san-francisco", forecast.Climate.Location)
	assert.Len(t, forecast.Hourly, 24)
	assert.Len(t, forecast.Daily, 30)
	assert.Len(t, forecast.PowerProjection, 48)
	assert.Equal(t, fixed, forecast.GeneratedAt)

	climate, err := svc.GetClimate(context.Background(), "fresno")
	require.NoError(t, err)
	assert.Equal(t, 52.0, climate.RecordMaxTemp)
}
