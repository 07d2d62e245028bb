package proforma

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig_Valid(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	p, err := NewDefault(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"industrial", "mixedoffice", "mixedresidential", "office", "residential", "retail"}, p.Forms())
	assert.Equal(t, []ParkingConfig{ParkingSurface, ParkingDeck, ParkingUnderground}, p.ParkingConfigs())
	assert.Equal(t, []string{"retail", "industrial", "office", "residential"}, p.Uses())
	assert.Equal(t, 0.7, p.BuildingEfficiency())
	assert.Equal(t, 0.05, p.CapRate())
	assert.Equal(t, 12.0, p.HeightPerStory())
}

func TestConfig_ToDictRoundTrip(t *testing.T) {
	p := newTestProForma(t, nil)
	assert.Equal(t, DefaultConfig(), p.Config())
}

func TestConfig_FormsNormalized(t *testing.T) {
	p := newTestProForma(t, func(c *Config) {
		c.Forms["mixedoffice"] = map[string]float64{"office": 7, "residential": 3, "retail": 0}
	})

	cfg := p.Config()
	assert.InDelta(t, 0.7, cfg.Forms["mixedoffice"]["office"], 1e-12)
	assert.InDelta(t, 0.3, cfg.Forms["mixedoffice"]["residential"], 1e-12)
	assert.NotContains(t, cfg.Forms["mixedoffice"], "retail")

	ratio, err := p.ResidentialRatio("mixedoffice")
	require.NoError(t, err)
	assert.InDelta(t, 0.3, ratio, 1e-12)

	_, err = p.ResidentialRatio("warehouse")
	assert.ErrorIs(t, err, ErrUnknownForm)
}

func TestConfig_OptionalDefaults(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FormsToTest = nil
	cfg.PassThrough = nil

	p, err := New(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, p.Forms(), p.FormsToTest())
	assert.NotNil(t, p.Config().PassThrough)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{
			name:   "far above limit",
			mutate: func(c *Config) { c.Fars = append(c.Fars, 25) },
			field:  "fars[24]",
		},
		{
			name:   "non-positive far",
			mutate: func(c *Config) { c.Fars[0] = 0 },
			field:  "fars[0]",
		},
		{
			name:   "residential uses length mismatch",
			mutate: func(c *Config) { c.ResidentialUses = []bool{false, true} },
			field:  "residential_uses",
		},
		{
			name:   "form with unknown use",
			mutate: func(c *Config) { c.Forms["office"] = map[string]float64{"hotel": 1} },
			field:  "forms[office]",
		},
		{
			name:   "form with zero total",
			mutate: func(c *Config) { c.Forms["office"] = map[string]float64{"office": 0} },
			field:  "forms[office]",
		},
		{
			name:   "parking rate too high",
			mutate: func(c *Config) { c.ParkingRates["retail"] = 5 },
			field:  "parking_rates[retail]",
		},
		{
			name:   "parking rate missing a use",
			mutate: func(c *Config) { delete(c.ParkingRates, "office") },
			field:  "parking_rates",
		},
		{
			name:   "unknown parking config",
			mutate: func(c *Config) { c.ParkingConfigs = []string{"valet"} },
			field:  "parking_configs[0]",
		},
		{
			name:   "stall area too small",
			mutate: func(c *Config) { c.ParkingSqftD["deck"] = 20 },
			field:  "parking_sqft_d[deck]",
		},
		{
			name:   "parking cost too high",
			mutate: func(c *Config) { c.ParkingCostD["underground"] = 500 },
			field:  "parking_cost_d[underground]",
		},
		{
			name:   "cost out of range",
			mutate: func(c *Config) { c.Costs["office"][1] = 5 },
			field:  "costs[office][1]",
		},
		{
			name:   "cost row length mismatch",
			mutate: func(c *Config) { c.Costs["office"] = []float64{160, 175} },
			field:  "costs[office]",
		},
		{
			name:   "breakpoints not increasing",
			mutate: func(c *Config) { c.HeightsForCosts = []float64{15, 120, 55, math.Inf(1)} },
			field:  "heights_for_costs[2]",
		},
		{
			name:   "breakpoint out of range",
			mutate: func(c *Config) { c.HeightsForCosts[2] = 5000 },
			field:  "heights_for_costs[2]",
		},
		{
			name:   "efficiency above one",
			mutate: func(c *Config) { c.BuildingEfficiency = 1.2 },
			field:  "building_efficiency",
		},
		{
			name:   "interest rate of one",
			mutate: func(c *Config) { c.InterestRate = 1 },
			field:  "interest_rate",
		},
		{
			name:   "undefined form to test",
			mutate: func(c *Config) { c.FormsToTest = []string{"hotel"} },
			field:  "forms_to_test",
		},
		{
			name:   "parking config without cost",
			mutate: func(c *Config) { delete(c.ParkingCostD, "deck") },
			field:  "parking_cost_d",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			_, err := New(cfg, nil)
			require.Error(t, err)

			var cfgErr *ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Contains(t, cfgErr.Field, tt.field)
		})
	}
}

func TestNew_DoesNotAliasCallerConfig(t *testing.T) {
	cfg := DefaultConfig()
	p, err := New(cfg, nil)
	require.NoError(t, err)

	cfg.Fars[0] = 0.2
	cfg.Costs["office"][0] = 999
	cfg.Forms["office"]["office"] = 5

	got := p.Config()
	assert.Equal(t, 0.1, got.Fars[0])
	assert.Equal(t, 160.0, got.Costs["office"][0])
	assert.Equal(t, 1.0, got.Forms["office"]["office"])
}
