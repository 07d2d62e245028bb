package proforma

import (
	"fmt"
	"math"
	"slices"
	"sort"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/proforma-service/internal/domain"
)

const (
	sqftPerAcre = 43560.0

	// zoningTolerance absorbs rounding when a far or height sits exactly on a cap
	zoningTolerance = 0.01

	// WeightedRentColumn can be named in pass_through to echo the mix-weighted rent
	WeightedRentColumn = "weighted_rent"

	residentialColumn = "residential"
)

// Lookup finds, for every site, the most profitable far and parking
// configuration for the given form. Sites are copied before any
// adjustment; the caller's slice is never modified. Sites with no
// feasible building are left out, so the result may be empty.
func (p *ProForma) Lookup(formName string, sites []domain.Site, hooks *Hooks) ([]domain.FeasibilityResult, error) {
	f, ok := p.forms[formName]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownForm, formName)
	}

	order := make(map[string]int, len(sites))
	for i, s := range sites {
		if _, dup := order[s.ID]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateSite, s.ID)
		}
		order[s.ID] = i
	}

	var candidates []domain.FeasibilityResult
	for _, pc := range p.parkingConfigs {
		rows, err := p.evaluate(f, pc, p.copySites(formName, sites), hooks)
		if err != nil {
			return nil, fmt.Errorf("evaluate %s with %s parking: %w", formName, pc, err)
		}
		p.logger.Debug("Parking configuration evaluated",
			zap.String("form", formName),
			zap.String("parking_config", string(pc)),
			zap.Int("sites", len(sites)),
			zap.Int("feasible", len(rows)),
		)
		candidates = append(candidates, rows...)
	}

	results := selectMaxProfitParking(candidates, order)

	if p.cfg.ResidentialToYearly && slices.Contains(p.cfg.PassThrough, residentialColumn) {
		for i := range results {
			if v, ok := results[i].PassThrough[residentialColumn]; ok {
				results[i].PassThrough[residentialColumn] = v / p.cfg.CapRate
			}
		}
	}
	return results, nil
}

// selectMaxProfitParking keeps the most profitable candidate per site.
// Equal profits go to the configuration whose name sorts first.
// Output follows the order sites were supplied in.
func selectMaxProfitParking(candidates []domain.FeasibilityResult, order map[string]int) []domain.FeasibilityResult {
	best := make(map[string]int, len(order))
	results := make([]domain.FeasibilityResult, 0, len(order))
	for _, c := range candidates {
		idx, seen := best[c.SiteID]
		if !seen {
			best[c.SiteID] = len(results)
			results = append(results, c)
			continue
		}
		cur := results[idx]
		if c.MaxProfit > cur.MaxProfit ||
			(c.MaxProfit == cur.MaxProfit && c.ParkingConfig < cur.ParkingConfig) {
			results[idx] = c
		}
	}

	position := func(id string) int {
		if pos, ok := order[id]; ok {
			return pos
		}
		return len(order)
	}
	sort.SliceStable(results, func(a, b int) bool {
		return position(results[a].SiteID) < position(results[b].SiteID)
	})
	return results
}

// copySites deep-copies the caller's sites and applies simple zoning
func (p *ProForma) copySites(formName string, sites []domain.Site) []domain.Site {
	out := make([]domain.Site, len(sites))
	for i, s := range sites {
		c := s.Clone()
		if p.cfg.SimpleZoning {
			// residential is zoned by density alone, everything else by far alone
			if formName == residentialColumn {
				c.MaxFar = nil
			} else {
				c.MaxDua = nil
			}
			c.MaxHeight = nil
		}
		out[i] = c
	}
	return out
}

// evaluate scores every (far, site) cell for one parking configuration and
// keeps each site's best far.
func (p *ProForma) evaluate(f form, pc ParkingConfig, sites []domain.Site, hooks *Hooks) ([]domain.FeasibilityResult, error) {
	ref := p.reference[referenceKey{form: f.name, parking: pc}]

	working, err := p.weightRents(f, sites)
	if err != nil {
		return nil, err
	}
	working, err = p.applySitesHook(hooks, f.name, working)
	if err != nil {
		return nil, err
	}

	kept := make([]WorkingSite, 0, len(working))
	maxFars := make([]float64, 0, len(working))
	for _, s := range working {
		maxFar, err := p.effectiveMaxFar(f, s.Site)
		if err != nil {
			return nil, err
		}
		if p.cfg.OnlyBuilt && !(maxFar > 0 && s.ParcelSize > 0) {
			continue
		}
		kept = append(kept, s)
		maxFars = append(maxFars, maxFar)
	}
	if len(kept) == 0 {
		return nil, nil
	}

	entries := ref.Entries
	m, n := len(entries), len(kept)

	// far candidates, NaN where zoning forbids them
	fars := mat.NewDense(m, n, nil)
	for i, e := range entries {
		for j, s := range kept {
			far := e.Far
			if far > maxFars[j]+zoningTolerance {
				far = math.NaN()
			}
			if s.MaxHeight != nil && e.Height > *s.MaxHeight+zoningTolerance {
				far = math.NaN()
			}
			fars.Set(i, j, far)
		}
	}

	var bulks, buildingCosts, constructionCosts, financing, totalCosts, revenues mat.Dense
	bulks.Apply(func(_, j int, far float64) float64 {
		return far * kept[j].ParcelSize
	}, fars)
	buildingCosts.Apply(func(i, _ int, bulk float64) float64 {
		return bulk * entries[i].AveCostSqft
	}, &bulks)
	constructionCosts.Apply(func(_, j int, cost float64) float64 {
		return cost + kept[j].LandCost
	}, &buildingCosts)
	financing.Apply(func(i, _ int, cost float64) float64 {
		loan := cost * p.cfg.LoanToCostRatio
		interest := loan * p.cfg.DrawdownFactor * (p.cfg.InterestRate / 12 * entries[i].ConstructionMonths)
		return interest + loan*p.cfg.LoanFees
	}, &constructionCosts)
	totalCosts.Add(&constructionCosts, &financing)
	revenues.Apply(func(i, j int, bulk float64) float64 {
		return bulk * (1 - entries[i].ParkingSqftRatio) * p.cfg.BuildingEfficiency * kept[j].WeightedRent / p.cfg.CapRate
	}, &bulks)

	revenue, err := p.applyMatrixHook("modify_revenues", hooks.revenues(), f.name, kept, &revenues)
	if err != nil {
		return nil, err
	}
	cost, err := p.applyMatrixHook("modify_costs", hooks.costs(), f.name, kept, &totalCosts)
	if err != nil {
		return nil, err
	}
	var profits mat.Dense
	profits.Sub(revenue, cost)
	profit, err := p.applyMatrixHook("modify_profits", hooks.profits(), f.name, kept, &profits)
	if err != nil {
		return nil, err
	}

	results := make([]domain.FeasibilityResult, 0, n)
	for j, s := range kept {
		i, maxProfit := argmaxProfit(profit, j)

		passThrough, err := p.passThrough(s)
		if err != nil {
			return nil, err
		}

		if p.cfg.OnlyBuilt {
			if !(maxProfit > 0) {
				continue
			}
		} else if math.IsInf(maxProfit, -1) {
			continue
		}

		bulk := bulks.At(i, j)
		results = append(results, domain.FeasibilityResult{
			SiteID:             s.ID,
			Form:               f.name,
			ParkingConfig:      string(pc),
			MaxProfitFar:       fars.At(i, j),
			BuildingSqft:       bulk,
			ResidentialSqft:    bulk * p.cfg.BuildingEfficiency * f.resRatio,
			NonResidentialSqft: bulk * p.cfg.BuildingEfficiency * (1 - f.resRatio),
			BuildingCost:       buildingCosts.At(i, j),
			FinancingCost:      financing.At(i, j),
			TotalCost:          cost.At(i, j),
			BuildingRevenue:    revenue.At(i, j),
			MaxProfit:          maxProfit,
			Stories:            entries[i].Height / p.cfg.HeightPerStory,
			ConstructionTime:   entries[i].ConstructionMonths,
			ParkingRatio:       entries[i].ParkingSqftRatio,
			PassThrough:        passThrough,
		})
	}
	return results, nil
}

// argmaxProfit returns the first row holding the column maximum, treating
// NaN as -Inf. The grid is swept lowest far first, so ties go to the lower far.
func argmaxProfit(profit mat.Matrix, col int) (int, float64) {
	rows, _ := profit.Dims()
	best, bestProfit := 0, math.Inf(-1)
	for i := 0; i < rows; i++ {
		v := profit.At(i, col)
		if math.IsNaN(v) {
			v = math.Inf(-1)
		}
		if i == 0 || v > bestProfit {
			best, bestProfit = i, v
		}
	}
	return best, bestProfit
}

// weightRents dots each site's per-use rents with the form's use mix
func (p *ProForma) weightRents(f form, sites []domain.Site) ([]WorkingSite, error) {
	out := make([]WorkingSite, len(sites))
	if len(sites) == 0 {
		return out, nil
	}

	rents := mat.NewDense(len(sites), len(p.uses), nil)
	for i, s := range sites {
		for j, use := range p.uses {
			v, ok := s.Rents[use]
			if !ok {
				return nil, &MissingInputError{SiteID: s.ID, Field: "rent for use " + use}
			}
			rents.Set(i, j, v)
		}
	}

	var weighted mat.VecDense
	weighted.MulVec(rents, f.mix)
	for i, s := range sites {
		out[i] = WorkingSite{Site: s, WeightedRent: weighted.AtVec(i)}
	}
	return out, nil
}

// effectiveMaxFar is the tightest of the height, far and density caps.
// Missing caps are NaN and ignored; NaN comes back when no cap applies.
func (p *ProForma) effectiveMaxFar(f form, s domain.Site) (float64, error) {
	caps := []float64{
		optional(s.MaxHeight) / p.cfg.HeightPerStory * p.cfg.ParcelCoverage,
		optional(s.MaxFar),
	}

	if s.MaxDua != nil && f.resRatio > 0 {
		if s.AveUnitSize == nil {
			return 0, &MissingInputError{SiteID: s.ID, Field: domain.ColumnAveUnitSize}
		}
		units := *s.MaxDua * (s.ParcelSize / sqftPerAcre)
		floorArea := units * *s.AveUnitSize / p.cfg.BuildingEfficiency / f.resRatio
		caps = append(caps, floorArea/s.ParcelSize)
	}

	limit := math.NaN()
	for _, c := range caps {
		if math.IsNaN(c) {
			continue
		}
		if math.IsNaN(limit) || c < limit {
			limit = c
		}
	}
	return limit, nil
}

func (p *ProForma) passThrough(s WorkingSite) (map[string]float64, error) {
	if len(p.cfg.PassThrough) == 0 {
		return nil, nil
	}
	out := make(map[string]float64, len(p.cfg.PassThrough))
	for _, col := range p.cfg.PassThrough {
		if col == WeightedRentColumn {
			out[col] = s.WeightedRent
			continue
		}
		v, ok := s.Column(col)
		if !ok {
			if isZoningColumn(col) {
				continue
			}
			return nil, &MissingInputError{SiteID: s.ID, Field: col}
		}
		out[col] = v
	}
	return out, nil
}

func isZoningColumn(col string) bool {
	switch col {
	case domain.ColumnMaxFar, domain.ColumnMaxHeight, domain.ColumnMaxDua, domain.ColumnAveUnitSize:
		return true
	}
	return false
}

func optional(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
