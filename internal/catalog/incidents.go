package catalog

import (
	_ "embed"
	"fmt"
	"sync"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/google/uuid"

	"github.com/heatguard/backend/internal/domain"
)

//go:embed incidents.csv
var incidentsCSV []byte

var loadIncidents = sync.OnceValues(func() ([]domain.Incident, error) {
	var rows []*domain.Incident
	if err := gocsv.UnmarshalBytes(incidentsCSV, &rows); err != nil {
		return nil, fmt.Errorf("catalog: failed to decode incidents: %w", err)
	}
	out := make([]domain.Incident, 0, len(rows))
	for _, r := range rows {
		out = append(out, *r)
	}
	return out, nil
})

// HistoricalIncidents returns the fixed list of past extreme weather incidents
func HistoricalIncidents() []domain.Incident {
	incidents, err := loadIncidents()
	if err != nil {
		panic(err)
	}
	out := make([]domain.Incident, len(incidents))
	copy(out, incidents)
	return out
}

// Incidents returns the incident history for a snapshot. An active heatwave
// adds a live entry for the selected site at the top of the list.
func Incidents(in domain.SimulationInput, location domain.LocationProfile, now time.Time) []domain.Incident {
	history := HistoricalIncidents()
	if !in.HeatwaveActive {
		return history
	}

	live := domain.Incident{
		ID:          uuid.NewString(),
		Timestamp:   now.Format("2006-01-02 15:04"),
		Type:        "warning",
		Title:       "Current Heatwave Conditions",
		Description: fmt.Sprintf("%s heatwave detected at %s, enhanced cooling systems activated", in.HeatwaveIntensity, location.Name),
		Status:      "active",
		Location:    location.Name,
		Provider:    "Current Facility",
		Duration:    "Ongoing",
		Cause:       fmt.Sprintf("%s heat wave conditions", in.HeatwaveIntensity),
		Impact:      "Monitoring all systems, preventive measures active",
		Actions:     "Enhanced cooling, load monitoring, backup systems on standby",
		Prevention:  "Real-time monitoring and response protocols active",
	}
	return append([]domain.Incident{live}, history...)
}
