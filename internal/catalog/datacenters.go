package catalog

import (
	"github.com/heatguard/backend/internal/domain"
	"github.com/heatguard/backend/pkg/utils"
)

// site is a regional data center with its resting values
type site struct {
	id          string
	name        string
	location    string
	locationKey string // empty for sites that are never simulated
	temperature float64
	uptime      float64
	load        float64
	capacity    string
	servers     int
	coordinates domain.Coordinates
	// escalates marks sites that go critical in an extreme heatwave instead of warning
	escalates bool
}

var network = []site{
	{"CA-SF-DC01", "San Francisco Primary", "San Francisco, CA", "san-francisco", 24, 99.8, 65, "2.5 MW", 1200, domain.Coordinates{Lat: 37.7749, Lng: -122.4194}, false},
	{"CA-LA-DC01", "Los Angeles Primary", "Los Angeles, CA", "los-angeles", 28, 99.6, 78, "5.0 MW", 2400, domain.Coordinates{Lat: 34.0522, Lng: -118.2437}, true},
	{"CA-SAC-DC01", "Sacramento Regional", "Sacramento, CA", "sacramento", 32, 99.4, 85, "3.2 MW", 1800, domain.Coordinates{Lat: 38.5816, Lng: -121.4944}, true},
	{"CA-FR-DC01", "Fresno Edge", "Fresno, CA", "fresno", 35, 99.2, 92, "1.8 MW", 900, domain.Coordinates{Lat: 36.7378, Lng: -119.7871}, true},
	{"CA-SD-DC01", "San Diego Backup", "San Diego, CA", "", 26, 99.9, 45, "2.0 MW", 1000, domain.Coordinates{Lat: 32.7157, Lng: -117.1611}, false},
	{"CA-SJ-DC01", "San Jose Tech Hub", "San Jose, CA", "", 23, 99.7, 68, "4.5 MW", 2200, domain.Coordinates{Lat: 37.3382, Lng: -121.8863}, false},
}

// DataCenters returns the regional network as seen from the selected site.
// The selected site reports the live temperature, uptime and cooling load;
// every other site reports its resting values.
func DataCenters(in domain.SimulationInput, selected domain.LocationProfile, m domain.DerivedMetrics) []domain.DataCenter {
	out := make([]domain.DataCenter, 0, len(network))
	for _, s := range network {
		dc := domain.DataCenter{
			ID:          s.id,
			Name:        s.name,
			Location:    s.location,
			LocationKey: s.locationKey,
			Status:      domain.SiteOperational,
			Temperature: s.temperature,
			Uptime:      s.uptime,
			Load:        s.load,
			Capacity:    s.capacity,
			Servers:     s.servers,
			Coordinates: s.coordinates,
			DistanceKm:  utils.RoundTenths(utils.DistanceKm(utils.Point(selected.Coordinates), utils.Point(s.coordinates))),
		}

		if s.locationKey != "" && s.locationKey == selected.Key {
			dc.Selected = true
			dc.Temperature = in.CurrentTemp
			dc.Uptime = m.Uptime
			dc.Load = m.CoolingLoad
			if in.HeatwaveActive {
				dc.Status = domain.SiteWarning
				if s.escalates && in.HeatwaveIntensity == domain.IntensityExtreme {
					dc.Status = domain.SiteCritical
				}
			}
		}

		out = append(out, dc)
	}
	return out
}
