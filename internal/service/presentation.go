package service

import (
	"math"

	"github.com/heatguard/backend/internal/domain"
)

// SeverityFor maps headline metrics to badge bands.
// The bands are presentation policy, not part of the metrics contract.
func SeverityFor(m domain.DerivedMetrics) domain.Severity {
	return domain.Severity{
		HeatRisk:      band(m.HeatRisk > 70, m.HeatRisk > 40),
		Uptime:        band(m.Uptime < 90, m.Uptime < 99),
		GridStability: band(m.GridStability < 50, m.GridStability < 80),
		PowerDuration: band(m.PowerDurationHours < 12, m.PowerDurationHours < 24),
	}
}

func band(destructive, secondary bool) domain.Badge {
	switch {
	case destructive:
		return domain.BadgeDestructive
	case secondary:
		return domain.BadgeSecondary
	default:
		return domain.BadgeOutline
	}
}

// EnergyMix splits supply into renewable, grid and backup shares
func EnergyMix(in domain.SimulationInput) []domain.EnergyShare {
	renewable := float64(in.RenewablePenetration)
	grid := math.Max(0, 85-renewable)
	backup := math.Max(0, 100-renewable-grid)

	return []domain.EnergyShare{
		{Name: "Renewable", Value: renewable, Color: "#16a34a"},
		{Name: "Grid", Value: grid, Color: "#3b82f6"},
		{Name: "Backup", Value: backup, Color: "#f59e0b"},
	}
}

// CarbonBreakdown splits the location carbon intensity by consumer
func CarbonBreakdown(profile domain.LocationProfile) []domain.EmissionSource {
	base := profile.CarbonIntensity
	return []domain.EmissionSource{
		{Source: "IT Equipment", Emissions: base * 0.6, Color: "#dc2626"},
		{Source: "Cooling", Emissions: base * 0.3, Color: "#f97316"},
		{Source: "Infrastructure", Emissions: base * 0.1, Color: "#eab308"},
	}
}

// EstimatedPUE derives the displayed power usage effectiveness
func EstimatedPUE(profile domain.LocationProfile) float64 {
	return profile.CarbonIntensity / 0.8
}

const (
	facilityRacks        = 24
	facilityCoolingUnits = 8
	rackOverheatTemp     = 35.0
)

// Facility lays out the racks and cooling units of the facility view
func Facility(in domain.SimulationInput) domain.FacilityStatus {
	overheating := in.HeatwaveActive && in.CurrentTemp > rackOverheatTemp
	activeUnits := 4
	if in.HeatwaveActive {
		activeUnits = 6
	}

	f := domain.FacilityStatus{
		Racks:        make([]domain.Rack, 0, facilityRacks),
		CoolingUnits: make([]domain.CoolingUnit, 0, facilityCoolingUnits),
	}
	for i := 0; i < facilityRacks; i++ {
		f.Racks = append(f.Racks, domain.Rack{
			Index:       i,
			X:           float64(i%6)*2 - 5,
			Z:           float64(i/6)*2 - 3,
			Overheating: overheating && i >= facilityRacks-2,
		})
	}
	for i := 0; i < facilityCoolingUnits; i++ {
		angle := float64(i) / facilityCoolingUnits * math.Pi * 2
		f.CoolingUnits = append(f.CoolingUnits, domain.CoolingUnit{
			Index:  i,
			X:      math.Cos(angle) * 8,
			Z:      math.Sin(angle) * 8,
			Active: i < activeUnits,
		})
	}

	f.Servers, f.Cooling = "All operational", "Normal operation"
	if in.HeatwaveActive {
		f.Servers, f.Cooling = "2 thermal throttling", "Max cooling active"
	}
	f.Power = "Grid connected"
	if in.OperationMode == domain.ModeIslanded {
		f.Power = "Grid disconnected"
	}
	f.Emergency, f.EmergencyNote = "READY", "Standby mode"
	if in.HeatwaveActive && in.HeatwaveIntensity == domain.IntensityExtreme {
		f.Emergency, f.EmergencyNote = "ACTIVE", "Emergency protocols"
	}
	return f
}

// Recommendations returns the operator actions suggested for a snapshot
func Recommendations(in domain.SimulationInput) []domain.Recommendation {
	recs := []domain.Recommendation{}

	if in.HeatwaveActive {
		recs = append(recs, domain.Recommendation{
			ID: 1, Title: "Activate Emergency Cooling",
			Description: "Increase cooling capacity to maximum to prevent thermal throttling",
			Priority:    "high", Action: "Activate Now", Estimated: "2 minutes",
		})
		if in.HeatwaveIntensity == domain.IntensityExtreme {
			recs = append(recs, domain.Recommendation{
				ID: 2, Title: "Enable Load Shedding",
				Description: "Reduce non-critical workloads to minimize heat generation",
				Priority:    "high", Action: "Enable", Estimated: "30 seconds",
			})
		}
	}
	if in.BatteryCapacity < 50 {
		recs = append(recs, domain.Recommendation{
			ID: 3, Title: "Charge Battery Systems",
			Description: "Increase battery capacity before peak demand hours",
			Priority:    "medium", Action: "Start Charging", Estimated: "45 minutes",
		})
	}
	if in.OperationMode == domain.ModeGridConnected && in.RenewablePenetration < 30 {
		recs = append(recs, domain.Recommendation{
			ID: 4, Title: "Optimize Renewable Usage",
			Description: "Increase solar/wind utilization during peak generation",
			Priority:    "low", Action: "Optimize", Estimated: "5 minutes",
		})
	}
	if !in.LoadShifting && in.HeatwaveActive {
		recs = append(recs, domain.Recommendation{
			ID: 5, Title: "Enable Load Shifting",
			Description: "Move non-critical workloads to cooler periods",
			Priority:    "medium", Action: "Enable", Estimated: "1 minute",
		})
	}
	return recs
}

// PowerAlerts warns when backup runtime drops below a day
func PowerAlerts(m domain.DerivedMetrics) []domain.PowerAlert {
	alerts := []domain.PowerAlert{}
	if m.PowerDurationHours < 12 {
		alerts = append(alerts, domain.PowerAlert{
			Level:   "critical",
			Message: "Backup runtime under 12 hours: shed non-critical load and start generators",
		})
	}
	if m.PowerDurationHours < 24 {
		alerts = append(alerts, domain.PowerAlert{
			Level:   "warning",
			Message: "Backup runtime under 24 hours: prepare load balancing to a secondary site",
		})
	}
	return alerts
}
