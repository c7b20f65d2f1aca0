package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidInput    = errors.New("invalid simulation input")
	ErrUnknownPlan     = errors.New("unknown response plan")
	ErrUnknownAction   = errors.New("unknown control action")
)

// Validate checks the slider and selector ranges of the snapshot.
// CurrentLoad is only checked for negativity.
func (in SimulationInput) Validate() error {
	percent := []struct {
		name  string
		value int
	}{
		{"renewable_penetration", in.RenewablePenetration},
		{"battery_capacity", in.BatteryCapacity},
		{"server_load", in.ServerLoad},
		{"cooling_efficiency", in.CoolingEfficiency},
	}
	for _, p := range percent {
		if p.value < 0 || p.value > 100 {
			return fmt.Errorf("%w: %s must be within 0-100, got %d", ErrInvalidInput, p.name, p.value)
		}
	}
	if in.CurrentLoad < 0 {
		return fmt.Errorf("%w: current_load must not be negative, got %d", ErrInvalidInput, in.CurrentLoad)
	}
	if !in.HeatwaveIntensity.Valid() {
		return fmt.Errorf("%w: unknown heatwave intensity %q", ErrInvalidInput, in.HeatwaveIntensity)
	}
	if !in.OperationMode.Valid() {
		return fmt.Errorf("%w: unknown operation mode %q", ErrInvalidInput, in.OperationMode)
	}
	return nil
}
