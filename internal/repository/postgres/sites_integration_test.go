package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/proforma-service/internal/domain"
	"github.com/proforma-service/internal/repository/postgres/testhelpers"
	"github.com/proforma-service/internal/repository/sites"
)

func TestSiteRepository_Postgres(t *testing.T) {
	tdb := testhelpers.SetupTestDB(t)
	defer tdb.Close()

	ctx := context.Background()
	require.NoError(t, tdb.Cleanup(ctx))
	defer tdb.Cleanup(ctx)

	repo := sites.NewSiteRepository(tdb.DB, tdb.Logger)
	in := []domain.Site{
		{ID: "a", Rents: map[string]float64{"residential": 30}, LandCost: 100000, ParcelSize: 1000, MaxFar: domain.Float(2)},
		{ID: "b", Rents: map[string]float64{"residential": 20}, LandCost: 100000, ParcelSize: 5000},
	}
	require.NoError(t, repo.SaveSites(ctx, in))

	out, err := repo.ListSites(ctx, "parcel_size < 2000")
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, in[0], out[0])
}

func TestResultRepository_Postgres(t *testing.T) {
	tdb := testhelpers.SetupTestDB(t)
	defer tdb.Close()

	ctx := context.Background()
	require.NoError(t, tdb.Cleanup(ctx))
	defer tdb.Cleanup(ctx)

	repo := sites.NewResultRepository(tdb.DB, tdb.Logger)
	runID := uuid.New()
	in := []domain.FeasibilityResult{
		{SiteID: "a", Form: "residential", ParkingConfig: "surface", MaxProfitFar: 1.8, MaxProfit: 20,
			PassThrough: map[string]float64{"zone_id": 4}},
	}
	require.NoError(t, repo.SaveResults(ctx, runID, in))

	out, err := repo.ListResults(ctx, runID)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
