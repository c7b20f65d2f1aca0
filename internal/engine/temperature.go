package engine

import (
	"math"
	"time"

	"github.com/heatguard/backend/internal/domain"
)

// intensityOffset is the °C added to ambient temperature per heatwave tier
var intensityOffset = map[domain.HeatwaveIntensity]float64{
	domain.IntensityModerate: 8,
	domain.IntensitySevere:   15,
	domain.IntensityExtreme:  22,
}

// DiurnalOffset returns the time-of-day adjustment to the seasonal average
func DiurnalOffset(hour int) float64 {
	switch {
	case hour >= 12 && hour <= 18: // afternoon peak
		return 8
	case hour >= 6 && hour < 12: // morning warming
		return 4
	default: // night cooling
		return -2
	}
}

// AmbientTemperature models the current outdoor temperature at a location,
// rounded to whole degrees. Unknown intensities add nothing.
func AmbientTemperature(profile domain.LocationProfile, hour int, heatwaveActive bool, intensity domain.HeatwaveIntensity) float64 {
	temp := profile.AverageSummerTemperature + DiurnalOffset(hour)
	if heatwaveActive {
		temp += intensityOffset[intensity]
	}
	return math.Round(temp)
}

// WithAmbientTemperature returns a copy of the snapshot with CurrentTemp
// re-derived for the given wall-clock time.
func WithAmbientTemperature(in domain.SimulationInput, profile domain.LocationProfile, now time.Time) domain.SimulationInput {
	in.CurrentTemp = AmbientTemperature(profile, now.Hour(), in.HeatwaveActive, in.HeatwaveIntensity)
	return in
}
