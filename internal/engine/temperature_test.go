package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/heatguard/backend/internal/domain"
)

func TestAmbientTemperature(t *testing.T) {
	tests := []struct {
		name      string
		hour      int
		heatwave  bool
		intensity domain.HeatwaveIntensity
		want      float64
	}{
		{"night", 3, false, domain.IntensityModerate, 20},
		{"morning", 8, false, domain.IntensityModerate, 26},
		{"noon", 12, false, domain.IntensityModerate, 30},
		{"late afternoon", 18, false, domain.IntensityModerate, 30},
		{"evening", 19, false, domain.IntensityModerate, 20},
		{"moderate heatwave", 14, true, domain.IntensityModerate, 38},
		{"severe heatwave", 14, true, domain.IntensitySevere, 45},
		{"extreme heatwave", 14, true, domain.IntensityExtreme, 52},
		{"intensity ignored without heatwave", 14, false, domain.IntensityExtreme, 30},
		{"unknown intensity adds nothing", 14, true, domain.HeatwaveIntensity("mild"), 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AmbientTemperature(sanFrancisco, tt.hour, tt.heatwave, tt.intensity)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWithAmbientTemperatureReturnsCopy(t *testing.T) {
	in := domain.DefaultSimulationInput()
	in.HeatwaveActive = true
	in.HeatwaveIntensity = domain.IntensitySevere

	noon := time.Date(2024, 7, 19, 13, 0, 0, 0, time.UTC)
	out := WithAmbientTemperature(in, sanFrancisco, noon)

	assert.Equal(t, 45.0, out.CurrentTemp)
	assert.Equal(t, 28.0, in.CurrentTemp)
}
