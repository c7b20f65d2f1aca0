package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/heatguard/backend/internal/domain"
	"github.com/heatguard/backend/pkg/utils"
)

// referenceHeatDay is an hourly temperature trace (°C) recorded during a
// San Francisco heat wave, used as the 24-hour profile.
var referenceHeatDay = [24]float64{
	22, 21, 20, 19, 21, 24, 28, 32, 36, 38, 41, 43,
	45, 47, 48, 46, 44, 42, 39, 36, 33, 30, 27, 24,
}

const (
	forecastDays      = 30
	heatDomeStart     = 15
	heatDomeEnd       = 22
	trendYears        = 10
	trendFirstYear    = 2015
	trendStepC        = 0.8
	projectionHours   = 48
	batteryDrainPerHr = 1.8
)

// ForecastService builds the weather and projection panels
type ForecastService struct {
	repo LocationRepository
	now  func() time.Time
}

// NewForecastService creates a new forecast service
func NewForecastService(repo LocationRepository) *ForecastService {
	return &ForecastService{repo: repo, now: time.Now}
}

// GetForecast returns every forecast panel for a snapshot
func (s *ForecastService) GetForecast(ctx context.Context, in domain.SimulationInput) (domain.Forecast, error) {
	profile, err := s.repo.GetLocation(ctx, in.Location)
	if err != nil {
		return domain.Forecast{}, fmt.Errorf("forecast: failed to resolve location: %w", err)
	}

	return domain.Forecast{
		Hourly:          HourlyProfile(),
		Daily:           DailyForecast(profile),
		Trend:           WarmingTrend(profile),
		PowerProjection: PowerProjection(in),
		Climate:         Climate(profile),
		GeneratedAt:     s.now(),
	}, nil
}

// GetClimate returns the heatwave history summary of a location
func (s *ForecastService) GetClimate(ctx context.Context, key string) (domain.ClimateSummary, error) {
	profile, err := s.repo.GetLocation(ctx, key)
	if err != nil {
		return domain.ClimateSummary{}, fmt.Errorf("forecast: failed to resolve location: %w", err)
	}
	return Climate(profile), nil
}

// HourlyProfile returns the 24-hour temperature trace with cooling demand
func HourlyProfile() []domain.HourlyTemperature {
	out := make([]domain.HourlyTemperature, 0, len(referenceHeatDay))
	for hour, temp := range referenceHeatDay {
		out = append(out, domain.HourlyTemperature{
			Hour:        hour,
			Temperature: temp,
			Cooling:     math.Max(0, (temp-25)*3),
		})
	}
	return out
}

// DailyForecast returns the 30-day outlook with a heat dome between days 15 and 22
func DailyForecast(profile domain.LocationProfile) []domain.DailyForecast {
	base := profile.AverageSummerTemperature
	out := make([]domain.DailyForecast, 0, forecastDays)
	for i := 0; i < forecastDays; i++ {
		temp := base + math.Sin(float64(i)*math.Pi/15)*6
		if i >= heatDomeStart && i <= heatDomeEnd {
			temp = base + 18 + math.Sin(float64(i-heatDomeStart)*math.Pi/7)*5
		}
		out = append(out, domain.DailyForecast{
			Day:         i + 1,
			Temperature: utils.RoundTenths(temp),
			Extreme:     temp > profile.HeatwaveThreshold,
		})
	}
	return out
}

// WarmingTrend returns the yearly summer average rising by 0.8 °C per step
func WarmingTrend(profile domain.LocationProfile) []domain.TrendPoint {
	out := make([]domain.TrendPoint, 0, trendYears)
	for i := 0; i < trendYears; i++ {
		out = append(out, domain.TrendPoint{
			Year:        trendFirstYear + i,
			Temperature: utils.RoundTenths(profile.AverageSummerTemperature+float64(i)*trendStepC),
		})
	}
	return out
}

// PowerProjection projects battery charge and facility load over the next 48 hours
func PowerProjection(in domain.SimulationInput) []domain.PowerProjectionPoint {
	out := make([]domain.PowerProjectionPoint, 0, projectionHours)
	for i := 0; i < projectionHours; i++ {
		load := float64(in.CurrentLoad) + math.Sin(float64(i)/8)*15
		if i > 24 {
			load += 10
		}
		out = append(out, domain.PowerProjectionPoint{
			Hour:    i,
			Battery: utils.RoundTenths(utils.Clamp(float64(in.BatteryCapacity)-float64(i)*batteryDrainPerHr, 0, 100)),
			Load:    utils.RoundTenths(load),
		})
	}
	return out
}

// Climate summarises a location's heatwave history. Impact is the excess of
// the yearly maximum over the threshold on the 20 °C stress band, capped at 100.
func Climate(profile domain.LocationProfile) domain.ClimateSummary {
	summary := domain.ClimateSummary{
		Location: profile.Key,
		History:  make([]domain.HeatwaveImpact, 0, len(profile.HistoricalHeatwaves)),
	}
	if len(profile.HistoricalHeatwaves) == 0 {
		return summary
	}

	events := make([]float64, 0, len(profile.HistoricalHeatwaves))
	maxTemps := make([]float64, 0, len(profile.HistoricalHeatwaves))
	durations := make([]float64, 0, len(profile.HistoricalHeatwaves))
	for _, hw := range profile.HistoricalHeatwaves {
		events = append(events, float64(hw.Events))
		maxTemps = append(maxTemps, hw.MaxTemp)
		durations = append(durations, float64(hw.Duration))
		summary.History = append(summary.History, domain.HeatwaveImpact{
			HeatwaveRecord: hw,
			Impact:         math.Min(100, (hw.MaxTemp-profile.HeatwaveThreshold)/20*100),
		})
	}

	summary.AverageEventsPerYear = stat.Mean(events, nil)
	summary.RecordMaxTemp = floats.Max(maxTemps)
	summary.AverageDuration = stat.Mean(durations, nil)
	return summary
}
