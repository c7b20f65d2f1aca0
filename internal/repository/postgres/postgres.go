package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heatguard/backend/internal/catalog"
	"github.com/heatguard/backend/internal/domain"
)

// Querier is the part of *pgxpool.Pool the repository uses
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
}

var _ Querier = (*pgxpool.Pool)(nil)

// PostgresRepository implements domain.LocationRepository on the read-only
// reference tables locations and location_heatwaves.
type PostgresRepository struct {
	pool     Querier
	fallback *catalog.Locations
}

// NewPostgresRepository creates a new PostgreSQL repository. fallback serves
// the default profile when neither the requested nor the default key is stored.
func NewPostgresRepository(pool Querier, fallback *catalog.Locations) *PostgresRepository {
	return &PostgresRepository{pool: pool, fallback: fallback}
}

// ListLocations loads every stored profile with its heatwave history
func (r *PostgresRepository) ListLocations(ctx context.Context) ([]domain.LocationProfile, error) {
	query := `
		SELECT key, name, lat, lng, avg_summer_temp, heatwave_threshold, carbon_intensity
		FROM locations
		ORDER BY key
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query locations: %w", err)
	}
	defer rows.Close()

	var results []domain.LocationProfile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to iterate locations: %w", err)
	}

	history, err := r.heatwaves(ctx, "")
	if err != nil {
		return nil, err
	}
	for i := range results {
		results[i].HistoricalHeatwaves = history[results[i].Key]
	}

	return results, nil
}

// GetLocation loads one profile, falling back to the default profile for unknown keys
func (r *PostgresRepository) GetLocation(ctx context.Context, key string) (domain.LocationProfile, error) {
	p, err := r.getLocation(ctx, key)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.LocationProfile{}, err
	}

	if defaultKey := r.fallback.DefaultKey(); key != defaultKey {
		p, err = r.getLocation(ctx, defaultKey)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return domain.LocationProfile{}, err
		}
	}

	return r.fallback.Resolve(key), nil
}

func (r *PostgresRepository) getLocation(ctx context.Context, key string) (domain.LocationProfile, error) {
	query := `
		SELECT key, name, lat, lng, avg_summer_temp, heatwave_threshold, carbon_intensity
		FROM locations
		WHERE key = $1
	`

	p, err := scanProfile(r.pool.QueryRow(ctx, query, key))
	if err != nil {
		return domain.LocationProfile{}, err
	}

	history, err := r.heatwaves(ctx, key)
	if err != nil {
		return domain.LocationProfile{}, err
	}
	p.HistoricalHeatwaves = history[key]

	return p, nil
}

// heatwaves loads yearly summaries grouped by location key. An empty key loads all.
func (r *PostgresRepository) heatwaves(ctx context.Context, key string) (map[string][]domain.HeatwaveRecord, error) {
	query := `
		SELECT location_key, year, events, max_temp, duration_days
		FROM location_heatwaves
		WHERE $1 = '' OR location_key = $1
		ORDER BY location_key, year DESC
	`

	rows, err := r.pool.Query(ctx, query, key)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query heatwave history: %w", err)
	}
	defer rows.Close()

	results := make(map[string][]domain.HeatwaveRecord)
	for rows.Next() {
		var (
			locationKey string
			hw          domain.HeatwaveRecord
		)
		if err := rows.Scan(&locationKey, &hw.Year, &hw.Events, &hw.MaxTemp, &hw.Duration); err != nil {
			return nil, fmt.Errorf("postgres: failed to scan heatwave row: %w", err)
		}
		results[locationKey] = append(results[locationKey], hw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to iterate heatwave history: %w", err)
	}

	return results, nil
}

func scanProfile(row pgx.Row) (domain.LocationProfile, error) {
	var p domain.LocationProfile
	err := row.Scan(
		&p.Key, &p.Name, &p.Coordinates.Lat, &p.Coordinates.Lng,
		&p.AverageSummerTemperature, &p.HeatwaveThreshold, &p.CarbonIntensity,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return p, err
	}
	if err != nil {
		return p, fmt.Errorf("postgres: failed to scan location row: %w", err)
	}
	if p.HeatwaveThreshold <= p.AverageSummerTemperature {
		return p, fmt.Errorf("postgres: location %q heatwave threshold must exceed average summer temperature", p.Key)
	}
	return p, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
