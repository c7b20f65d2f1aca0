package service

import (
	"context"
	"fmt"
	"time"

	"github.com/heatguard/backend/internal/catalog"
	"github.com/heatguard/backend/internal/domain"
	"github.com/heatguard/backend/internal/engine"
	"github.com/heatguard/backend/internal/observability"
)

// DashboardService resolves locations and assembles dashboard views
type DashboardService struct {
	repo     LocationRepository
	recorder *observability.Recorder
	now      func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(repo LocationRepository, recorder *observability.Recorder) *DashboardService {
	return &DashboardService{
		repo:     repo,
		recorder: recorder,
		now:      time.Now,
	}
}

// ListLocations returns the location catalog
func (s *DashboardService) ListLocations(ctx context.Context) ([]domain.LocationProfile, error) {
	return s.repo.ListLocations(ctx)
}

// GetLocation resolves a location key, falling back to the default profile
func (s *DashboardService) GetLocation(ctx context.Context, key string) (domain.LocationProfile, error) {
	return s.repo.GetLocation(ctx, key)
}

// Health checks the location store
func (s *DashboardService) Health(ctx context.Context) error {
	return s.repo.Health(ctx)
}

// Compute resolves the snapshot's location and runs the metrics engine.
// The returned input carries the resolved location key.
func (s *DashboardService) Compute(ctx context.Context, in domain.SimulationInput, trigger string) (domain.SimulationInput, domain.LocationProfile, domain.DerivedMetrics, error) {
	profile, err := s.repo.GetLocation(ctx, in.Location)
	if err != nil {
		return in, domain.LocationProfile{}, domain.DerivedMetrics{}, fmt.Errorf("dashboard: failed to resolve location: %w", err)
	}
	in.Location = profile.Key

	m := engine.ComputeMetrics(in, profile)
	s.recorder.ObserveComputation(trigger, m.HeatRisk)
	return in, profile, m, nil
}

// GetDashboard assembles every panel for a snapshot
func (s *DashboardService) GetDashboard(ctx context.Context, in domain.SimulationInput) (domain.DashboardData, error) {
	in, profile, m, err := s.Compute(ctx, in, TriggerDashboard)
	if err != nil {
		return domain.DashboardData{}, err
	}

	return domain.DashboardData{
		Location:        profile,
		Input:           in,
		Metrics:         m,
		Severity:        SeverityFor(m),
		EnergyMix:       EnergyMix(in),
		CarbonBreakdown: CarbonBreakdown(profile),
		EstimatedPUE:    EstimatedPUE(profile),
		Facility:        Facility(in),
		DataCenters:     catalog.DataCenters(in, profile, m),
		Recommendations: Recommendations(in),
		PowerAlerts:     PowerAlerts(m),
		Timestamp:       s.now(),
	}, nil
}

// GetIncidents returns the incident history for a snapshot
func (s *DashboardService) GetIncidents(ctx context.Context, in domain.SimulationInput) ([]domain.Incident, error) {
	profile, err := s.repo.GetLocation(ctx, in.Location)
	if err != nil {
		return nil, fmt.Errorf("dashboard: failed to resolve location: %w", err)
	}
	return catalog.Incidents(in, profile, s.now()), nil
}
