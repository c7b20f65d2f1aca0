package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heatguard/backend/internal/catalog"
	"github.com/heatguard/backend/internal/domain"
)

var _ domain.LocationRepository = (*StaticRepository)(nil)
var _ domain.LocationRepository = (*PostgresRepository)(nil)

func TestStaticRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewStaticRepository(catalog.DefaultLocations())

	list, err := repo.ListLocations(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 4)

	p, err := repo.GetLocation(ctx, "sacramento")
	require.NoError(t, err)
	assert.Equal(t, "Sacramento", p.Name)

	p, err = repo.GetLocation(ctx, "unknown")
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultLocationKey, p.Key)

	assert.NoError(t, repo.Health(ctx))
}
