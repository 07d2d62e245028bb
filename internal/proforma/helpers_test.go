package proforma

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/proforma-service/internal/domain"
)

func newTestProForma(t *testing.T, mutate func(*Config)) *ProForma {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	p, err := New(cfg, nil)
	require.NoError(t, err)
	return p
}

func rents(residential, office, retail, industrial float64) map[string]float64 {
	return map[string]float64{
		"residential": residential,
		"office":      office,
		"retail":      retail,
		"industrial":  industrial,
	}
}

// simpleDevSites are three parcels that are profitable for residential
// but not for office or industrial at stock costs.
func simpleDevSites() []domain.Site {
	return []domain.Site{
		{ID: "a", Rents: rents(40, 15, 12, 12), LandCost: 1000000, ParcelSize: 10000, MaxFar: domain.Float(2), MaxHeight: domain.Float(40)},
		{ID: "b", Rents: rents(40, 18, 10, 12), LandCost: 2000000, ParcelSize: 20000, MaxFar: domain.Float(3), MaxHeight: domain.Float(60)},
		{ID: "c", Rents: rents(40, 15, 10, 12), LandCost: 3000000, ParcelSize: 30000, MaxFar: domain.Float(4), MaxHeight: domain.Float(80)},
	}
}

func scaleLandCost(sites []domain.Site, factor float64) []domain.Site {
	out := make([]domain.Site, len(sites))
	for i, s := range sites {
		c := s.Clone()
		c.LandCost *= factor
		out[i] = c
	}
	return out
}

// smallParcelSites share zoning and land cost and differ only by residential rent
func smallParcelSites() []domain.Site {
	out := make([]domain.Site, 0, 3)
	for _, s := range []struct {
		id   string
		rent float64
	}{{"a", 30}, {"b", 20}, {"c", 10}} {
		out = append(out, domain.Site{
			ID:         s.id,
			Rents:      rents(s.rent, 15, 12, 12),
			LandCost:   100000,
			ParcelSize: 1000,
			MaxFar:     domain.Float(2),
			MaxHeight:  domain.Float(80),
		})
	}
	return out
}

func siteIDs(results []domain.FeasibilityResult) []string {
	ids := make([]string, len(results))
	for i, r := range results {
		ids[i] = r.SiteID
	}
	return ids
}
