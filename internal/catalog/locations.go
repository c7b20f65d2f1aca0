// Package catalog holds the compiled-in reference data of the dashboard:
// location climate profiles, response plans, historical incidents and the
// regional data center network.
package catalog

import (
	_ "embed"
	"fmt"
	"slices"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/heatguard/backend/internal/domain"
)

//go:embed locations.yaml
var locationsYAML []byte

type locationFile struct {
	Locations []domain.LocationProfile `yaml:"locations"`
}

// Locations is an immutable set of location profiles keyed by their stable key
type Locations struct {
	byKey      map[string]domain.LocationProfile
	keys       []string
	defaultKey string
}

// ParseLocations decodes a YAML location file and checks every profile
func ParseLocations(data []byte) ([]domain.LocationProfile, error) {
	var file locationFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("catalog: failed to decode locations: %w", err)
	}
	if len(file.Locations) == 0 {
		return nil, fmt.Errorf("catalog: no locations defined")
	}
	return file.Locations, nil
}

// NewLocations builds a catalog from profiles. defaultKey must be one of them.
func NewLocations(profiles []domain.LocationProfile, defaultKey string) (*Locations, error) {
	l := &Locations{
		byKey:      make(map[string]domain.LocationProfile, len(profiles)),
		defaultKey: defaultKey,
	}
	for _, p := range profiles {
		if p.Key == "" {
			return nil, fmt.Errorf("catalog: location %q has no key", p.Name)
		}
		if _, dup := l.byKey[p.Key]; dup {
			return nil, fmt.Errorf("catalog: duplicate location key %q", p.Key)
		}
		if p.HeatwaveThreshold <= p.AverageSummerTemperature {
			return nil, fmt.Errorf("catalog: location %q heatwave threshold %.1f must exceed average summer temperature %.1f",
				p.Key, p.HeatwaveThreshold, p.AverageSummerTemperature)
		}
		l.byKey[p.Key] = cloneProfile(p)
		l.keys = append(l.keys, p.Key)
	}
	if _, ok := l.byKey[defaultKey]; !ok {
		return nil, fmt.Errorf("catalog: default location %q not defined", defaultKey)
	}
	sort.Strings(l.keys)
	return l, nil
}

var loadDefault = sync.OnceValues(func() (*Locations, error) {
	profiles, err := ParseLocations(locationsYAML)
	if err != nil {
		return nil, err
	}
	return NewLocations(profiles, domain.DefaultLocationKey)
})

// DefaultLocations returns the embedded California catalog.
// The embedded file is part of the build, so a decode failure is a programming error.
func DefaultLocations() *Locations {
	l, err := loadDefault()
	if err != nil {
		panic(err)
	}
	return l
}

// List returns every profile ordered by key
func (l *Locations) List() []domain.LocationProfile {
	out := make([]domain.LocationProfile, 0, len(l.keys))
	for _, k := range l.keys {
		out = append(out, cloneProfile(l.byKey[k]))
	}
	return out
}

// Lookup returns the profile for key and whether it exists
func (l *Locations) Lookup(key string) (domain.LocationProfile, bool) {
	p, ok := l.byKey[key]
	if !ok {
		return domain.LocationProfile{}, false
	}
	return cloneProfile(p), true
}

// Resolve returns the profile for key, or the default profile for unknown keys
func (l *Locations) Resolve(key string) domain.LocationProfile {
	if p, ok := l.Lookup(key); ok {
		return p
	}
	return cloneProfile(l.byKey[l.defaultKey])
}

// DefaultKey returns the key unknown lookups resolve to
func (l *Locations) DefaultKey() string {
	return l.defaultKey
}

// WithDefault returns a copy of the catalog resolving unknown keys to defaultKey
func (l *Locations) WithDefault(defaultKey string) (*Locations, error) {
	return NewLocations(l.List(), defaultKey)
}

// Has reports whether key is a known location
func (l *Locations) Has(key string) bool {
	_, ok := l.byKey[key]
	return ok
}

func cloneProfile(p domain.LocationProfile) domain.LocationProfile {
	p.HistoricalHeatwaves = slices.Clone(p.HistoricalHeatwaves)
	return p
}
