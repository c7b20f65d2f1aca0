package service

import (
	"github.com/heatguard/backend/internal/domain"
)

// LocationRepository is re-exported from domain for convenience
type LocationRepository = domain.LocationRepository

// Triggers label what caused a metrics computation
const (
	TriggerAPI        = "api"
	TriggerTransition = "transition"
	TriggerClock      = "clock"
	TriggerDashboard  = "dashboard"
)
