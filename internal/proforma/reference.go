package proforma

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"
)

// ReferenceEntry describes the hypothetical building at one far
type ReferenceEntry struct {
	Far                float64 `json:"far"`
	ParcelSize         float64 `json:"parcel_size"`
	BuildingSqft       float64 `json:"building_sqft"`
	Spaces             float64 `json:"spaces"`
	ParkSqft           float64 `json:"park_sqft"`
	TotalBuiltSqft     float64 `json:"total_built_sqft"`
	ParkingSqftRatio   float64 `json:"parking_sqft_ratio"`
	Stories            float64 `json:"stories"`
	Height             float64 `json:"height"`
	BuildCostSqft      float64 `json:"build_cost_sqft"`
	BuildCost          float64 `json:"build_cost"`
	ParkCost           float64 `json:"park_cost"`
	Cost               float64 `json:"cost"`
	AveCostSqft        float64 `json:"ave_cost_sqft"`
	ConstructionMonths float64 `json:"construction_months"`
}

// ReferenceTable holds one entry per far of the configured grid, in grid order
type ReferenceTable struct {
	Form    string
	Parking ParkingConfig
	Entries []ReferenceEntry
}

// BreakEvenCosts returns the ave_cost_sqft column: the rent per area that
// covers construction and parking at the required profit factor. Invalid
// fars are NaN.
func (t *ReferenceTable) BreakEvenCosts() []float64 {
	out := make([]float64, len(t.Entries))
	for i, e := range t.Entries {
		out[i] = e.AveCostSqft
	}
	return out
}

type referenceKey struct {
	form    string
	parking ParkingConfig
}

// Reference returns a copy of the reference table for a form and parking configuration
func (p *ProForma) Reference(formName string, pc ParkingConfig) (*ReferenceTable, error) {
	t, err := p.referenceTable(formName, pc)
	if err != nil {
		return nil, err
	}
	return &ReferenceTable{Form: t.Form, Parking: t.Parking, Entries: slices.Clone(t.Entries)}, nil
}

// BreakEvenCosts returns the break-even cost column for a form and parking configuration
func (p *ProForma) BreakEvenCosts(formName string, pc ParkingConfig) ([]float64, error) {
	t, err := p.referenceTable(formName, pc)
	if err != nil {
		return nil, err
	}
	return t.BreakEvenCosts(), nil
}

func (p *ProForma) referenceTable(formName string, pc ParkingConfig) (*ReferenceTable, error) {
	if _, ok := p.forms[formName]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownForm, formName)
	}
	t, ok := p.reference[referenceKey{form: formName, parking: pc}]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownParkingConfig, pc)
	}
	return t, nil
}

func (p *ProForma) buildReference() map[referenceKey]*ReferenceTable {
	out := make(map[referenceKey]*ReferenceTable, len(p.formNames)*len(p.parkingConfigs))
	for _, name := range p.formNames {
		f := p.forms[name]
		for _, pc := range p.parkingConfigs {
			out[referenceKey{form: name, parking: pc}] = p.referenceFor(f, pc)
		}
	}
	return out
}

func (p *ProForma) referenceFor(f form, pc ParkingConfig) *ReferenceTable {
	layout := p.parking[pc]
	weightedRate := mat.Dot(f.mix, p.parkingRates)

	entries := make([]ReferenceEntry, len(p.fars))
	for i, far := range p.fars {
		e := ReferenceEntry{Far: far, ParcelSize: p.parcelSize}

		e.BuildingSqft = layout.bulk(p.parcelSize*far, weightedRate)
		e.Spaces = e.BuildingSqft * weightedRate / p.cfg.SqftPerRate
		stories := layout.stories(e.BuildingSqft, e.Spaces, p.parcelSize) / p.cfg.ParcelCoverage

		e.ParkSqft = layout.area(e.Spaces)
		e.ParkCost = layout.cost(e.Spaces)
		e.TotalBuiltSqft = e.BuildingSqft + e.ParkSqft
		e.ParkingSqftRatio = e.ParkSqft / e.TotalBuiltSqft

		// cost brackets are keyed on the unrounded height
		e.BuildCostSqft = p.costs.eval(stories*p.cfg.HeightPerStory, f.mix)
		e.ConstructionMonths = p.months.eval(e.TotalBuiltSqft, f.mix)

		e.Stories = math.Ceil(stories)
		e.Height = e.Stories * p.cfg.HeightPerStory
		e.BuildCost = e.BuildCostSqft * e.BuildingSqft
		e.Cost = e.BuildCost + e.ParkCost
		e.AveCostSqft = e.Cost / e.TotalBuiltSqft * p.cfg.ProfitFactor

		switch {
		case f.name == "retail" && far > p.cfg.MaxRetailHeight:
			e.AveCostSqft = math.NaN()
		case f.name == "industrial" && far > p.cfg.MaxIndustrialHeight:
			e.AveCostSqft = math.NaN()
		}

		entries[i] = e
	}

	return &ReferenceTable{Form: f.name, Parking: pc, Entries: entries}
}
