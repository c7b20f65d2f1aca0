package domain

// HeatwaveIntensity is the coarse severity tier of an active heatwave
type HeatwaveIntensity string

const (
	IntensityModerate HeatwaveIntensity = "moderate"
	IntensitySevere   HeatwaveIntensity = "severe"
	IntensityExtreme  HeatwaveIntensity = "extreme"
)

// Valid reports whether the intensity is one of the known tiers
func (i HeatwaveIntensity) Valid() bool {
	switch i {
	case IntensityModerate, IntensitySevere, IntensityExtreme:
		return true
	}
	return false
}

// OperationMode labels whether the facility is assumed off the public grid.
// It only affects display labels.
type OperationMode string

const (
	ModeGridConnected OperationMode = "grid-connected"
	ModeIslanded      OperationMode = "islanded"
)

// Valid reports whether the mode is known
func (m OperationMode) Valid() bool {
	return m == ModeGridConnected || m == ModeIslanded
}

// SimulationInput is one immutable snapshot of the dashboard controls.
// A control change produces a new snapshot; snapshots are never mutated in place.
type SimulationInput struct {
	Location             string            `json:"location"`
	HeatwaveActive       bool              `json:"heatwave_active"`
	HeatwaveIntensity    HeatwaveIntensity `json:"heatwave_intensity"`
	RenewablePenetration int               `json:"renewable_penetration"`
	BatteryCapacity      int               `json:"battery_capacity"`
	CurrentLoad          int               `json:"current_load"`
	ServerLoad           int               `json:"server_load"`
	CurrentTemp          float64           `json:"current_temp"`

	// Display-only controls
	OperationMode     OperationMode `json:"operation_mode"`
	BackupGenerators  bool          `json:"backup_generators"`
	LoadShifting      bool          `json:"load_shifting"`
	CoolingEfficiency int           `json:"cooling_efficiency"`
	Monitoring        bool          `json:"monitoring"`
}

// DefaultSimulationInput returns the compiled-in initial control values
func DefaultSimulationInput() SimulationInput {
	return SimulationInput{
		Location:             DefaultLocationKey,
		HeatwaveActive:       false,
		HeatwaveIntensity:    IntensityModerate,
		RenewablePenetration: 45,
		BatteryCapacity:      85,
		CurrentLoad:          75,
		ServerLoad:           70,
		CurrentTemp:          28,
		OperationMode:        ModeGridConnected,
		BackupGenerators:     true,
		LoadShifting:         false,
		CoolingEfficiency:    92,
	}
}

// DerivedMetrics are the operational numbers computed from an input snapshot
type DerivedMetrics struct {
	Uptime             float64 `json:"uptime"`
	CoolingLoad        float64 `json:"cooling_load"`
	GridStability      float64 `json:"grid_stability"`
	EnergyDemand       float64 `json:"energy_demand"`
	HeatRisk           float64 `json:"heat_risk"`
	PowerDurationHours float64 `json:"power_duration_hours"`
	CarbonEmissions    float64 `json:"carbon_emissions"` // tons CO2/day
}
