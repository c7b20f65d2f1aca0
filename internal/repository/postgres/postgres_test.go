package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heatguard/backend/internal/catalog"
	"github.com/heatguard/backend/internal/domain"
)

var (
	locationColumns = []string{"key", "name", "lat", "lng", "avg_summer_temp", "heatwave_threshold", "carbon_intensity"}
	heatwaveColumns = []string{"location_key", "year", "events", "max_temp", "duration_days"}
)

const (
	locationQuery = `FROM locations\s+WHERE key = \$1`
	listQuery     = `FROM locations\s+ORDER BY key`
	heatwaveQuery = `FROM location_heatwaves`
)

func newMockRepository(t *testing.T) (*PostgresRepository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		mock.Close()
	})

	return NewPostgresRepository(mock, catalog.DefaultLocations()), mock
}

func fresnoRow() *pgxmock.Rows {
	return pgxmock.NewRows(locationColumns).
		AddRow("fresno", "Fresno", 36.7378, -119.7871, 35.0, 42.0, 0.35)
}

func sanFranciscoRow() *pgxmock.Rows {
	return pgxmock.NewRows(locationColumns).
		AddRow("san-francisco", "San Francisco", 37.7749, -122.4194, 22.0, 32.0, 0.28)
}

func TestGetLocation(t *testing.T) {
	ctx := context.Background()

	t.Run("stored key", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(locationQuery).WithArgs("fresno").WillReturnRows(fresnoRow())
		mock.ExpectQuery(heatwaveQuery).WithArgs("fresno").WillReturnRows(
			pgxmock.NewRows(heatwaveColumns).
				AddRow("fresno", 2023, 8, 51.0, 12).
				AddRow("fresno", 2022, 7, 49.0, 9),
		)

		p, err := repo.GetLocation(ctx, "fresno")
		require.NoError(t, err)

		assert.Equal(t, "Fresno", p.Name)
		assert.Equal(t, 42.0, p.HeatwaveThreshold)
		require.Len(t, p.HistoricalHeatwaves, 2)
		assert.Equal(t, domain.HeatwaveRecord{Year: 2023, Events: 8, MaxTemp: 51, Duration: 12}, p.HistoricalHeatwaves[0])
	})

	t.Run("unknown key falls back to the stored default", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(locationQuery).WithArgs("atlantis").WillReturnError(pgx.ErrNoRows)
		mock.ExpectQuery(locationQuery).WithArgs("san-francisco").WillReturnRows(sanFranciscoRow())
		mock.ExpectQuery(heatwaveQuery).WithArgs("san-francisco").WillReturnRows(pgxmock.NewRows(heatwaveColumns))

		p, err := repo.GetLocation(ctx, "atlantis")
		require.NoError(t, err)
		assert.Equal(t, "san-francisco", p.Key)
		assert.Empty(t, p.HistoricalHeatwaves)
	})

	t.Run("missing default falls back to the catalog", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(locationQuery).WithArgs("atlantis").WillReturnError(pgx.ErrNoRows)
		mock.ExpectQuery(locationQuery).WithArgs("san-francisco").WillReturnError(pgx.ErrNoRows)

		p, err := repo.GetLocation(ctx, "atlantis")
		require.NoError(t, err)
		assert.Equal(t, "san-francisco", p.Key)
		assert.Len(t, p.HistoricalHeatwaves, 4, "compiled-in history")
	})

	t.Run("missing default key is looked up once", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(locationQuery).WithArgs("san-francisco").WillReturnError(pgx.ErrNoRows)

		p, err := repo.GetLocation(ctx, "san-francisco")
		require.NoError(t, err)
		assert.Equal(t, "San Francisco", p.Name)
	})

	t.Run("configured default is honoured", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		fallback, err := catalog.DefaultLocations().WithDefault("fresno")
		require.NoError(t, err)
		repo := NewPostgresRepository(mock, fallback)

		mock.ExpectQuery(locationQuery).WithArgs("atlantis").WillReturnError(pgx.ErrNoRows)
		mock.ExpectQuery(locationQuery).WithArgs("fresno").WillReturnRows(fresnoRow())
		mock.ExpectQuery(heatwaveQuery).WithArgs("fresno").WillReturnRows(pgxmock.NewRows(heatwaveColumns))

		p, err := repo.GetLocation(ctx, "atlantis")
		require.NoError(t, err)
		assert.Equal(t, "fresno", p.Key)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("query failure is not masked by the fallback", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		boom := errors.New("connection reset by peer")
		mock.ExpectQuery(locationQuery).WithArgs("fresno").WillReturnError(boom)

		_, err := repo.GetLocation(ctx, "fresno")
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.False(t, errors.Is(err, pgx.ErrNoRows))
		assert.Contains(t, err.Error(), "postgres: failed to scan location row")
	})

	t.Run("failure while loading the default", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		boom := errors.New("too many connections")
		mock.ExpectQuery(locationQuery).WithArgs("atlantis").WillReturnError(pgx.ErrNoRows)
		mock.ExpectQuery(locationQuery).WithArgs("san-francisco").WillReturnError(boom)

		_, err := repo.GetLocation(ctx, "atlantis")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("row violating the threshold invariant is rejected", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(locationQuery).WithArgs("fresno").WillReturnRows(
			pgxmock.NewRows(locationColumns).
				AddRow("fresno", "Fresno", 36.7378, -119.7871, 35.0, 35.0, 0.35),
		)

		_, err := repo.GetLocation(ctx, "fresno")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "heatwave threshold must exceed average summer temperature")
	})
}

func TestListLocations(t *testing.T) {
	ctx := context.Background()

	t.Run("profiles carry their grouped history", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(listQuery).WillReturnRows(
			pgxmock.NewRows(locationColumns).
				AddRow("fresno", "Fresno", 36.7378, -119.7871, 35.0, 42.0, 0.35).
				AddRow("san-francisco", "San Francisco", 37.7749, -122.4194, 22.0, 32.0, 0.28),
		)
		mock.ExpectQuery(heatwaveQuery).WithArgs("").WillReturnRows(
			pgxmock.NewRows(heatwaveColumns).
				AddRow("fresno", 2023, 8, 51.0, 12).
				AddRow("san-francisco", 2023, 3, 38.0, 4).
				AddRow("san-francisco", 2022, 2, 35.0, 3),
		)

		list, err := repo.ListLocations(ctx)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Len(t, list[0].HistoricalHeatwaves, 1)
		assert.Len(t, list[1].HistoricalHeatwaves, 2)
		assert.Equal(t, 38.0, list[1].HistoricalHeatwaves[0].MaxTemp)
	})

	t.Run("invalid row fails the listing", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(listQuery).WillReturnRows(
			pgxmock.NewRows(locationColumns).
				AddRow("fresno", "Fresno", 36.7378, -119.7871, 35.0, 30.0, 0.35),
		)

		_, err := repo.ListLocations(ctx)
		assert.Error(t, err)
	})

	t.Run("query error is wrapped", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(listQuery).WillReturnError(errors.New("relation \"locations\" does not exist"))

		_, err := repo.ListLocations(ctx)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "postgres: failed to query locations")
	})
}

func TestPostgresHealth(t *testing.T) {
	ctx := context.Background()

	repo, mock := newMockRepository(t)
	mock.ExpectPing()
	assert.NoError(t, repo.Health(ctx))

	mock.ExpectPing().WillReturnError(errors.New("no route to host"))
	err := repo.Health(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "postgres: health check failed")
}
