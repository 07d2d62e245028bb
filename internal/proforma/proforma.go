// Package proforma estimates the most profitable building that can be
// built on candidate development sites. A ProForma precomputes a reference
// table of hypothetical buildings per form, parking configuration and far,
// then scores sites against it under their zoning caps.
package proforma

import (
	"fmt"
	"slices"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
)

// form is a normalized use mix
type form struct {
	name     string
	mix      *mat.VecDense
	resRatio float64
}

// ProForma is an immutable, validated parameter set together with its
// reference table. It is safe for concurrent lookups.
type ProForma struct {
	cfg    Config
	logger *zap.Logger

	uses           []string
	fars           []float64
	parcelSize     float64
	forms          map[string]form
	formNames      []string
	parkingRates   *mat.VecDense
	parkingConfigs []ParkingConfig
	parking        map[ParkingConfig]parkingLayout
	costs          stepSchedule
	months         stepSchedule

	reference map[referenceKey]*ReferenceTable
}

// New validates cfg, normalizes forms and builds the reference table
func New(cfg Config, logger *zap.Logger) (*ProForma, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	cfg = cfg.withOptionalDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	p := &ProForma{
		cfg:    cloneConfig(cfg),
		logger: logger,
		uses:   slices.Clone(cfg.Uses),
		fars:   slices.Clone(cfg.Fars),
		// parcel size cancels out of every per-area quantity; the first one is the reference
		parcelSize: cfg.ParcelSizes[0],
		forms:      make(map[string]form, len(cfg.Forms)),
		parking:    make(map[ParkingConfig]parkingLayout, len(cfg.ParkingConfigs)),
		costs:      newStepSchedule(cfg.HeightsForCosts, cfg.Costs, cfg.Uses),
		months:     newStepSchedule(cfg.ConstructionSqftForMonths, cfg.ConstructionMonths, cfg.Uses),
	}

	rates := make([]float64, len(cfg.Uses))
	for i, use := range cfg.Uses {
		rates[i] = cfg.ParkingRates[use]
	}
	p.parkingRates = mat.NewVecDense(len(rates), rates)

	for name, shares := range cfg.Forms {
		mix := make([]float64, len(cfg.Uses))
		total := 0.0
		for i, use := range cfg.Uses {
			mix[i] = shares[use]
			total += mix[i]
		}
		resRatio := 0.0
		for i := range mix {
			mix[i] /= total
			if cfg.ResidentialUses[i] {
				resRatio += mix[i]
			}
		}
		p.forms[name] = form{name: name, mix: mat.NewVecDense(len(mix), mix), resRatio: resRatio}
		p.formNames = append(p.formNames, name)
	}
	sort.Strings(p.formNames)

	for _, name := range cfg.ParkingConfigs {
		pc := ParkingConfig(name)
		layout, err := newParkingLayout(pc, parkingParams{
			sqftPerStall: cfg.ParkingSqftD[name],
			costPerSqft:  cfg.ParkingCostD[name],
			sqftPerRate:  cfg.SqftPerRate,
		})
		if err != nil {
			return nil, &ConfigurationError{Field: "parking_configs", Reason: err.Error()}
		}
		p.parkingConfigs = append(p.parkingConfigs, pc)
		p.parking[pc] = layout
	}

	p.reference = p.buildReference()

	logger.Info("Pro forma reference table built",
		zap.Int("forms", len(p.formNames)),
		zap.Int("parking_configs", len(p.parkingConfigs)),
		zap.Int("fars", len(p.fars)),
	)
	return p, nil
}

// NewDefault builds a ProForma from DefaultConfig
func NewDefault(logger *zap.Logger) (*ProForma, error) {
	return New(DefaultConfig(), logger)
}

// Forms returns the form names in sorted order
func (p *ProForma) Forms() []string {
	return slices.Clone(p.formNames)
}

// FormsToTest returns the forms a full run evaluates
func (p *ProForma) FormsToTest() []string {
	return slices.Clone(p.cfg.FormsToTest)
}

// ParkingConfigs returns the parking configurations in evaluation order
func (p *ProForma) ParkingConfigs() []ParkingConfig {
	return slices.Clone(p.parkingConfigs)
}

func (p *ProForma) Uses() []string {
	return slices.Clone(p.uses)
}

func (p *ProForma) BuildingEfficiency() float64 { return p.cfg.BuildingEfficiency }
func (p *ProForma) CapRate() float64            { return p.cfg.CapRate }
func (p *ProForma) HeightPerStory() float64     { return p.cfg.HeightPerStory }
func (p *ProForma) ParcelFilter() string        { return p.cfg.ParcelFilter }

// ResidentialRatio returns the residential share of a form's use mix
func (p *ProForma) ResidentialRatio(name string) (float64, error) {
	f, ok := p.forms[name]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownForm, name)
	}
	return f.resRatio, nil
}

// Config rebuilds the declarative parameter set from the engine's
// normalized state. Forms come back normalized with zero shares dropped.
func (p *ProForma) Config() Config {
	cfg := cloneConfig(p.cfg)
	cfg.Fars = slices.Clone(p.fars)

	cfg.ParkingRates = make(map[string]float64, len(p.uses))
	for i, use := range p.uses {
		cfg.ParkingRates[use] = p.parkingRates.AtVec(i)
	}

	cfg.Forms = make(map[string]map[string]float64, len(p.forms))
	for name, f := range p.forms {
		shares := make(map[string]float64)
		for i, use := range p.uses {
			if v := f.mix.AtVec(i); v != 0 {
				shares[use] = v
			}
		}
		cfg.Forms[name] = shares
	}

	cfg.Costs = p.costs.byUse(p.uses)
	cfg.ConstructionMonths = p.months.byUse(p.uses)
	return cfg
}

func cloneConfig(c Config) Config {
	out := c
	out.ParcelSizes = slices.Clone(c.ParcelSizes)
	out.Fars = slices.Clone(c.Fars)
	out.Uses = slices.Clone(c.Uses)
	out.ResidentialUses = slices.Clone(c.ResidentialUses)
	out.Forms = make(map[string]map[string]float64, len(c.Forms))
	for name, shares := range c.Forms {
		out.Forms[name] = cloneFloats(shares)
	}
	out.ParkingRates = cloneFloats(c.ParkingRates)
	out.ParkingConfigs = slices.Clone(c.ParkingConfigs)
	out.ParkingSqftD = cloneFloats(c.ParkingSqftD)
	out.ParkingCostD = cloneFloats(c.ParkingCostD)
	out.Costs = cloneRows(c.Costs)
	out.HeightsForCosts = slices.Clone(c.HeightsForCosts)
	out.ConstructionMonths = cloneRows(c.ConstructionMonths)
	out.ConstructionSqftForMonths = slices.Clone(c.ConstructionSqftForMonths)
	out.FormsToTest = slices.Clone(c.FormsToTest)
	out.PassThrough = slices.Clone(c.PassThrough)
	return out
}

func cloneFloats(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func cloneRows(m map[string][]float64) map[string][]float64 {
	if m == nil {
		return nil
	}
	out := make(map[string][]float64, len(m))
	for k, v := range m {
		out[k] = slices.Clone(v)
	}
	return out
}
