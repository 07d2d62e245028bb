package dto

import (
	"math"

	"github.com/proforma-service/internal/domain"
	"github.com/proforma-service/internal/proforma"
)

// FeasibilityResponse - results of a single-form lookup
type FeasibilityResponse struct {
	Form    string                     `json:"form"`
	Results []domain.FeasibilityResult `json:"results"`
	Total   int                        `json:"total"`
	Cached  bool                       `json:"cached"`
}

// MultiFormResponse - results keyed by form
type MultiFormResponse struct {
	Forms map[string][]domain.FeasibilityResult `json:"forms"`
}

// ReferenceEntry - a reference row with NaN rendered as null
type ReferenceEntry struct {
	Far                *float64 `json:"far"`
	ParcelSize         *float64 `json:"parcel_size"`
	BuildingSqft       *float64 `json:"building_sqft"`
	Spaces             *float64 `json:"spaces"`
	ParkSqft           *float64 `json:"park_sqft"`
	TotalBuiltSqft     *float64 `json:"total_built_sqft"`
	ParkingSqftRatio   *float64 `json:"parking_sqft_ratio"`
	Stories            *float64 `json:"stories"`
	Height             *float64 `json:"height"`
	BuildCostSqft      *float64 `json:"build_cost_sqft"`
	BuildCost          *float64 `json:"build_cost"`
	ParkCost           *float64 `json:"park_cost"`
	Cost               *float64 `json:"cost"`
	AveCostSqft        *float64 `json:"ave_cost_sqft"`
	ConstructionMonths *float64 `json:"construction_months"`
}

// ReferenceResponse - the reference table for one form and parking configuration
type ReferenceResponse struct {
	Form    string           `json:"form"`
	Parking string           `json:"parking"`
	Entries []ReferenceEntry `json:"entries"`
}

// BreakEvenResponse - break-even rent per area at each far
type BreakEvenResponse struct {
	Form    string     `json:"form"`
	Parking string     `json:"parking"`
	Fars    []float64  `json:"fars"`
	Costs   []*float64 `json:"costs"`
}

// RunResponse - identifies an accepted asynchronous run
type RunResponse struct {
	RunID  string   `json:"run_id"`
	Forms  []string `json:"forms"`
	Stream string   `json:"stream"`
}

// RunResultsResponse - stored results of a run
type RunResultsResponse struct {
	RunID   string                     `json:"run_id"`
	Results []domain.FeasibilityResult `json:"results"`
	Total   int                        `json:"total"`
}

// HealthResponse - dependency status
type HealthResponse struct {
	Status   string            `json:"status"`
	Services map[string]string `json:"services"`
}

// NullableFloat - nil for NaN and infinities, which JSON cannot carry
func NullableFloat(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

// NewReferenceResponse - converts an engine reference table
func NewReferenceResponse(t *proforma.ReferenceTable) *ReferenceResponse {
	entries := make([]ReferenceEntry, len(t.Entries))
	for i, e := range t.Entries {
		entries[i] = ReferenceEntry{
			Far:                NullableFloat(e.Far),
			ParcelSize:         NullableFloat(e.ParcelSize),
			BuildingSqft:       NullableFloat(e.BuildingSqft),
			Spaces:             NullableFloat(e.Spaces),
			ParkSqft:           NullableFloat(e.ParkSqft),
			TotalBuiltSqft:     NullableFloat(e.TotalBuiltSqft),
			ParkingSqftRatio:   NullableFloat(e.ParkingSqftRatio),
			Stories:            NullableFloat(e.Stories),
			Height:             NullableFloat(e.Height),
			BuildCostSqft:      NullableFloat(e.BuildCostSqft),
			BuildCost:          NullableFloat(e.BuildCost),
			ParkCost:           NullableFloat(e.ParkCost),
			Cost:               NullableFloat(e.Cost),
			AveCostSqft:        NullableFloat(e.AveCostSqft),
			ConstructionMonths: NullableFloat(e.ConstructionMonths),
		}
	}
	return &ReferenceResponse{
		Form:    t.Form,
		Parking: string(t.Parking),
		Entries: entries,
	}
}
