package service

import (
	"fmt"

	"github.com/heatguard/backend/internal/domain"
)

// Transition derives the next input snapshot from the current one.
// Transitions receive and return values, so the current snapshot is never mutated.
type Transition func(domain.SimulationInput) domain.SimulationInput

// SelectLocation switches the simulated site
func SelectLocation(key string) Transition {
	return func(in domain.SimulationInput) domain.SimulationInput {
		in.Location = key
		return in
	}
}

// SetHeatwave flags or clears an active heatwave
func SetHeatwave(active bool) Transition {
	return func(in domain.SimulationInput) domain.SimulationInput {
		in.HeatwaveActive = active
		return in
	}
}

// SetIntensity selects the heatwave tier
func SetIntensity(intensity domain.HeatwaveIntensity) Transition {
	return func(in domain.SimulationInput) domain.SimulationInput {
		in.HeatwaveIntensity = intensity
		return in
	}
}

// SetOperationMode switches between grid-connected and islanded labelling
func SetOperationMode(mode domain.OperationMode) Transition {
	return func(in domain.SimulationInput) domain.SimulationInput {
		in.OperationMode = mode
		return in
	}
}

// SetRenewable sets the renewable penetration slider
func SetRenewable(percent int) Transition {
	return func(in domain.SimulationInput) domain.SimulationInput {
		in.RenewablePenetration = percent
		return in
	}
}

// SetBattery sets the battery capacity slider
func SetBattery(percent int) Transition {
	return func(in domain.SimulationInput) domain.SimulationInput {
		in.BatteryCapacity = percent
		return in
	}
}

// SetServerLoad sets the server load slider
func SetServerLoad(percent int) Transition {
	return func(in domain.SimulationInput) domain.SimulationInput {
		in.ServerLoad = percent
		return in
	}
}

// SetCurrentLoad sets the facility load
func SetCurrentLoad(percent int) Transition {
	return func(in domain.SimulationInput) domain.SimulationInput {
		in.CurrentLoad = percent
		return in
	}
}

// SetBackupGenerators toggles the backup generators
func SetBackupGenerators(on bool) Transition {
	return func(in domain.SimulationInput) domain.SimulationInput {
		in.BackupGenerators = on
		return in
	}
}

// SetLoadShifting toggles load shifting
func SetLoadShifting(on bool) Transition {
	return func(in domain.SimulationInput) domain.SimulationInput {
		in.LoadShifting = on
		return in
	}
}

// SetMonitoring toggles the monitoring badge
func SetMonitoring(on bool) Transition {
	return func(in domain.SimulationInput) domain.SimulationInput {
		in.Monitoring = on
		return in
	}
}

// IncreaseRenewable raises the renewable mix by 10 points, up to 100
func IncreaseRenewable(in domain.SimulationInput) domain.SimulationInput {
	in.RenewablePenetration = min(100, in.RenewablePenetration+10)
	return in
}

// ReduceNonCriticalLoad lowers the facility load by 5 points, not below 50
func ReduceNonCriticalLoad(in domain.SimulationInput) domain.SimulationInput {
	in.CurrentLoad = max(50, in.CurrentLoad-5)
	return in
}

// OptimizeCooling raises cooling efficiency by 2 points, up to 100
func OptimizeCooling(in domain.SimulationInput) domain.SimulationInput {
	in.CoolingEfficiency = min(100, in.CoolingEfficiency+2)
	return in
}

var actions = map[string]Transition{
	"increase-renewable": IncreaseRenewable,
	"reduce-load":        ReduceNonCriticalLoad,
	"optimize-cooling":   OptimizeCooling,
}

// ActionByName resolves a named emission-reduction action
func ActionByName(name string) (Transition, error) {
	t, ok := actions[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownAction, name)
	}
	return t, nil
}

// ControlUpdate is a partial change of the dashboard controls.
// Nil fields are left untouched.
type ControlUpdate struct {
	Location             *string                   `json:"location"`
	HeatwaveActive       *bool                     `json:"heatwave_active"`
	HeatwaveIntensity    *domain.HeatwaveIntensity `json:"heatwave_intensity"`
	OperationMode        *domain.OperationMode     `json:"operation_mode"`
	RenewablePenetration *int                      `json:"renewable_penetration"`
	BatteryCapacity      *int                      `json:"battery_capacity"`
	ServerLoad           *int                      `json:"server_load"`
	CurrentLoad          *int                      `json:"current_load"`
	BackupGenerators     *bool                     `json:"backup_generators"`
	LoadShifting         *bool                     `json:"load_shifting"`
	Monitoring           *bool                     `json:"monitoring"`
}

// Transitions converts the update into transitions in a fixed order
func (u ControlUpdate) Transitions() []Transition {
	var ts []Transition
	if u.Location != nil {
		ts = append(ts, SelectLocation(*u.Location))
	}
	if u.HeatwaveActive != nil {
		ts = append(ts, SetHeatwave(*u.HeatwaveActive))
	}
	if u.HeatwaveIntensity != nil {
		ts = append(ts, SetIntensity(*u.HeatwaveIntensity))
	}
	if u.OperationMode != nil {
		ts = append(ts, SetOperationMode(*u.OperationMode))
	}
	if u.RenewablePenetration != nil {
		ts = append(ts, SetRenewable(*u.RenewablePenetration))
	}
	if u.BatteryCapacity != nil {
		ts = append(ts, SetBattery(*u.BatteryCapacity))
	}
	if u.ServerLoad != nil {
		ts = append(ts, SetServerLoad(*u.ServerLoad))
	}
	if u.CurrentLoad != nil {
		ts = append(ts, SetCurrentLoad(*u.CurrentLoad))
	}
	if u.BackupGenerators != nil {
		ts = append(ts, SetBackupGenerators(*u.BackupGenerators))
	}
	if u.LoadShifting != nil {
		ts = append(ts, SetLoadShifting(*u.LoadShifting))
	}
	if u.Monitoring != nil {
		ts = append(ts, SetMonitoring(*u.Monitoring))
	}
	return ts
}
