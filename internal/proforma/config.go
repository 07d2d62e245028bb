package proforma

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"sort"

	"github.com/go-playground/validator/v10"

	pkgvalidator "github.com/proforma-service/internal/pkg/validator"
)

// Config is the declarative parameter set of the pro forma. Field names
// match the YAML layout so a dump can be reloaded unchanged.
type Config struct {
	ParcelSizes     []float64                     `yaml:"parcel_sizes" validate:"required,min=1,dive,gt=0"`
	Fars            []float64                     `yaml:"fars" validate:"required,min=1,dive,gt=0,lte=20"`
	Uses            []string                      `yaml:"uses" validate:"required,min=1,unique,dive,required"`
	ResidentialUses []bool                        `yaml:"residential_uses" validate:"required"`
	Forms           map[string]map[string]float64 `yaml:"forms" validate:"required,min=1,dive,min=1,dive,gte=0"`

	ProfitFactor       float64 `yaml:"profit_factor" validate:"gt=0"`
	BuildingEfficiency float64 `yaml:"building_efficiency" validate:"gt=0,lte=1"`
	ParcelCoverage     float64 `yaml:"parcel_coverage" validate:"gt=0,lte=1"`
	CapRate            float64 `yaml:"cap_rate" validate:"gt=0"`

	ParkingRates   map[string]float64 `yaml:"parking_rates" validate:"required,dive,gte=0,lt=5"`
	SqftPerRate    float64            `yaml:"sqft_per_rate" validate:"gt=0"`
	ParkingConfigs []string           `yaml:"parking_configs" validate:"required,min=1,unique,dive,oneof=surface deck underground"`
	ParkingSqftD   map[string]float64 `yaml:"parking_sqft_d" validate:"required,dive,gte=50,lte=1000"`
	ParkingCostD   map[string]float64 `yaml:"parking_cost_d" validate:"required,dive,gte=10,lte=300"`

	Costs               map[string][]float64 `yaml:"costs" validate:"required,dive,min=1,dive,gt=10,lt=1000"`
	HeightsForCosts     []float64            `yaml:"heights_for_costs" validate:"required,min=1,dive,breakpoint"`
	HeightPerStory      float64              `yaml:"height_per_story" validate:"gt=0"`
	MaxRetailHeight     float64              `yaml:"max_retail_height" validate:"gte=0"`
	MaxIndustrialHeight float64              `yaml:"max_industrial_height" validate:"gte=0"`

	ConstructionMonths        map[string][]float64 `yaml:"construction_months" validate:"required,dive,min=1,dive,gt=0"`
	ConstructionSqftForMonths []float64            `yaml:"construction_sqft_for_months" validate:"required,min=1,dive,gte=0"`

	LoanToCostRatio float64 `yaml:"loan_to_cost_ratio" validate:"gte=0,lte=1"`
	DrawdownFactor  float64 `yaml:"drawdown_factor" validate:"gte=0,lte=1"`
	InterestRate    float64 `yaml:"interest_rate" validate:"gte=0,lt=1"`
	LoanFees        float64 `yaml:"loan_fees" validate:"gte=0,lt=1"`

	ResidentialToYearly bool     `yaml:"residential_to_yearly"`
	FormsToTest         []string `yaml:"forms_to_test"`
	OnlyBuilt           bool     `yaml:"only_built"`
	PassThrough         []string `yaml:"pass_through"`
	SimpleZoning        bool     `yaml:"simple_zoning"`
	ParcelFilter        string   `yaml:"parcel_filter"`
}

// DefaultConfig returns the stock parameter set: four uses, six forms and
// all three parking configurations.
func DefaultConfig() Config {
	return Config{
		ParcelSizes: []float64{10000.0},
		Fars: []float64{0.1, 0.25, 0.5, 0.75, 1.0, 1.5, 1.8,
			2.0, 2.25, 2.5, 2.75, 3.0, 3.25,
			3.5, 3.75, 4.0, 4.5, 5.0, 5.5, 6.0,
			6.5, 7.0, 9.0, 11.0},
		Uses:            []string{"retail", "industrial", "office", "residential"},
		ResidentialUses: []bool{false, false, false, true},
		Forms: map[string]map[string]float64{
			"industrial":       {"industrial": 1.0},
			"mixedoffice":      {"office": 0.7, "residential": 0.3},
			"mixedresidential": {"residential": 0.9, "retail": 0.1},
			"office":           {"office": 1.0},
			"residential":      {"residential": 1.0},
			"retail":           {"retail": 1.0},
		},
		ProfitFactor:       1.1,
		BuildingEfficiency: 0.7,
		ParcelCoverage:     0.8,
		CapRate:            0.05,
		ParkingRates: map[string]float64{
			"industrial":  0.6,
			"office":      1.0,
			"residential": 1.0,
			"retail":      2.0,
		},
		SqftPerRate:    1000.0,
		ParkingConfigs: []string{"surface", "deck", "underground"},
		ParkingSqftD:   map[string]float64{"deck": 250.0, "surface": 300.0, "underground": 250.0},
		ParkingCostD:   map[string]float64{"deck": 90, "surface": 30, "underground": 110},
		Costs: map[string][]float64{
			"industrial":  {140.0, 175.0, 200.0, 230.0},
			"office":      {160.0, 175.0, 200.0, 230.0},
			"residential": {170.0, 190.0, 210.0, 240.0},
			"retail":      {160.0, 175.0, 200.0, 230.0},
		},
		HeightsForCosts:     []float64{15, 55, 120, math.Inf(1)},
		HeightPerStory:      12.0,
		MaxRetailHeight:     2.0,
		MaxIndustrialHeight: 2.0,
		ConstructionMonths: map[string][]float64{
			"industrial":  {12.0, 14.0, 18.0, 24.0},
			"office":      {12.0, 14.0, 18.0, 24.0},
			"residential": {12.0, 14.0, 18.0, 24.0},
			"retail":      {12.0, 14.0, 18.0, 24.0},
		},
		ConstructionSqftForMonths: []float64{10000, 20000, 50000, math.Inf(1)},
		LoanToCostRatio:           0.7,
		DrawdownFactor:            0.6,
		InterestRate:              0.05,
		LoanFees:                  0.02,
		ResidentialToYearly:       true,
		FormsToTest: []string{"industrial", "mixedoffice", "mixedresidential",
			"office", "residential", "retail"},
		OnlyBuilt:   true,
		PassThrough: []string{},
	}
}

// withOptionalDefaults fills the optional fields an older or hand-written
// parameter set may leave out.
func (c Config) withOptionalDefaults() Config {
	if len(c.FormsToTest) == 0 {
		c.FormsToTest = make([]string, 0, len(c.Forms))
		for name := range c.Forms {
			c.FormsToTest = append(c.FormsToTest, name)
		}
		sort.Strings(c.FormsToTest)
	}
	if c.PassThrough == nil {
		c.PassThrough = []string{}
	}
	return c
}

// Validate checks ranges and cross-field consistency of the parameter set.
// The first problem found is returned as a *ConfigurationError.
func (c Config) Validate() error {
	if err := pkgvalidator.Validate(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return configErrorf(fe.Field(), "failed %q check (param %q, value %v)", fe.Tag(), fe.Param(), fe.Value())
		}
		return configErrorf("config", "%v", err)
	}

	if len(c.ResidentialUses) != len(c.Uses) {
		return configErrorf("residential_uses", "has %d entries, uses has %d", len(c.ResidentialUses), len(c.Uses))
	}

	for name, mix := range c.Forms {
		total := 0.0
		for use, share := range mix {
			if !slices.Contains(c.Uses, use) {
				return configErrorf(fmt.Sprintf("forms[%s]", name), "use %q is not in uses", use)
			}
			total += share
		}
		if total <= 0 {
			return configErrorf(fmt.Sprintf("forms[%s]", name), "use fractions sum to zero")
		}
	}

	if err := checkBreakpoints("heights_for_costs", c.HeightsForCosts); err != nil {
		return err
	}
	if err := checkBreakpoints("construction_sqft_for_months", c.ConstructionSqftForMonths); err != nil {
		return err
	}
	if err := checkPerUse("parking_rates", c.Uses, c.ParkingRates, nil); err != nil {
		return err
	}
	if err := checkPerUse("costs", c.Uses, c.Costs, c.HeightsForCosts); err != nil {
		return err
	}
	if err := checkPerUse("construction_months", c.Uses, c.ConstructionMonths, c.ConstructionSqftForMonths); err != nil {
		return err
	}

	for _, pc := range c.ParkingConfigs {
		if _, ok := c.ParkingSqftD[pc]; !ok {
			return configErrorf("parking_sqft_d", "no stall area for parking config %q", pc)
		}
		if _, ok := c.ParkingCostD[pc]; !ok {
			return configErrorf("parking_cost_d", "no cost for parking config %q", pc)
		}
	}

	for _, name := range c.FormsToTest {
		if _, ok := c.Forms[name]; !ok {
			return configErrorf("forms_to_test", "form %q is not defined", name)
		}
	}
	return nil
}

// checkPerUse verifies a use-keyed table covers exactly the configured uses.
// When breakpoints is non-nil every slice value must align with it.
func checkPerUse[V float64 | []float64](field string, uses []string, table map[string]V, breakpoints []float64) error {
	for key := range table {
		if !slices.Contains(uses, key) {
			return configErrorf(field, "use %q is not in uses", key)
		}
	}
	for _, use := range uses {
		v, ok := table[use]
		if !ok {
			return configErrorf(field, "no entry for use %q", use)
		}
		if row, isRow := any(v).([]float64); isRow && len(row) != len(breakpoints) {
			return configErrorf(fmt.Sprintf("%s[%s]", field, use), "has %d values, expected %d", len(row), len(breakpoints))
		}
	}
	return nil
}

func checkBreakpoints(field string, points []float64) error {
	for i := 1; i < len(points); i++ {
		if points[i] <= points[i-1] {
			return configErrorf(fmt.Sprintf("%s[%d]", field, i), "breakpoints must be strictly increasing")
		}
	}
	return nil
}
