// Package engine holds the pure computations behind the dashboard: derived
// operational metrics and the time-of-day temperature model. Nothing here
// keeps state or performs I/O, so results can be memoized or recomputed freely.
package engine

import (
	"math"

	"github.com/heatguard/backend/internal/domain"
)

const (
	// heatStressBand is the temperature excess (°C) that yields a stress factor of 1
	heatStressBand = 20.0

	baseUptime     = 99.5
	minUptime      = 85.0
	maxUptime      = 99.9
	baseCooling    = 100.0
	calmGridLevel  = 95.0
	batteryDayHrs  = 24.0
	serverLoadRate = 0.8

	// MaxPowerDurationHours is reported when total power demand is not positive
	MaxPowerDurationHours = 8760.0
)

// HeatStress returns the dimensionless stress factor of a temperature at a location.
// It is zero at or below the seasonal average.
func HeatStress(currentTemp float64, profile domain.LocationProfile) float64 {
	tempDiff := currentTemp - profile.AverageSummerTemperature
	return math.Max(0, tempDiff/heatStressBand)
}

// TotalPowerDemand is cooling load plus the weighted server load
func TotalPowerDemand(coolingLoad float64, serverLoad int) float64 {
	return coolingLoad + float64(serverLoad)*serverLoadRate
}

// ComputeMetrics derives the displayed operational metrics from an input
// snapshot and the selected location profile.
func ComputeMetrics(in domain.SimulationInput, profile domain.LocationProfile) domain.DerivedMetrics {
	heatStress := HeatStress(in.CurrentTemp, profile)

	// lower clamp first, upper clamp last
	uptime := math.Max(minUptime, baseUptime-heatStress*15+float64(in.BatteryCapacity)*0.05+float64(in.RenewablePenetration)*0.02)
	uptime = math.Min(maxUptime, uptime)

	coolingLoad := baseCooling * (1 + heatStress*0.8)

	gridStability := calmGridLevel
	if in.HeatwaveActive {
		gridStability = math.Max(0, 100-heatStress*30)
	}

	totalPowerDemand := TotalPowerDemand(coolingLoad, in.ServerLoad)
	batteryHours := float64(in.BatteryCapacity) / 100 * batteryDayHrs

	return domain.DerivedMetrics{
		Uptime:             uptime,
		CoolingLoad:        coolingLoad,
		GridStability:      gridStability,
		EnergyDemand:       baseCooling * (1 + heatStress*0.6),
		HeatRisk:           math.Min(100, heatStress*100),
		PowerDurationHours: powerDuration(batteryHours, totalPowerDemand),
		CarbonEmissions:    totalPowerDemand * profile.CarbonIntensity * 24 / 1000,
	}
}

func powerDuration(batteryHours, totalPowerDemand float64) float64 {
	if totalPowerDemand <= 0 {
		return MaxPowerDurationHours
	}
	return math.Max(1, batteryHours*(100/totalPowerDemand))
}
