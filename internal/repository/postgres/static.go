package postgres

import (
	"context"

	"github.com/heatguard/backend/internal/catalog"
	"github.com/heatguard/backend/internal/domain"
)

// StaticRepository implements domain.LocationRepository on the compiled-in
// catalog. It is used when no database is configured or reachable.
type StaticRepository struct {
	locations *catalog.Locations
}

// NewStaticRepository creates a repository over the given catalog
func NewStaticRepository(locations *catalog.Locations) *StaticRepository {
	return &StaticRepository{locations: locations}
}

// ListLocations returns every compiled-in profile
func (r *StaticRepository) ListLocations(ctx context.Context) ([]domain.LocationProfile, error) {
	return r.locations.List(), nil
}

// GetLocation resolves a key, falling back to the default profile
func (r *StaticRepository) GetLocation(ctx context.Context, key string) (domain.LocationProfile, error) {
	return r.locations.Resolve(key), nil
}

// Health always returns nil for the compiled-in catalog
func (r *StaticRepository) Health(ctx context.Context) error {
	return nil
}
