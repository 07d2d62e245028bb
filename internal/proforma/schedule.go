package proforma

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// stepSchedule is a per-use step function: a value falls in the first
// bracket whose breakpoint is >= the value, and the bracket's per-use row
// is weighted by a use mix.
type stepSchedule struct {
	breakpoints []float64
	// rows are brackets, columns are uses
	table *mat.Dense
}

func newStepSchedule(breakpoints []float64, byUse map[string][]float64, uses []string) stepSchedule {
	table := mat.NewDense(len(breakpoints), len(uses), nil)
	for j, use := range uses {
		for i, v := range byUse[use] {
			table.Set(i, j, v)
		}
	}
	return stepSchedule{
		breakpoints: append([]float64(nil), breakpoints...),
		table:       table,
	}
}

// bracket returns the row index for v, or -1 when v is NaN or above the last breakpoint
func (s stepSchedule) bracket(v float64) int {
	if math.IsNaN(v) {
		return -1
	}
	i := sort.SearchFloat64s(s.breakpoints, v)
	if i == len(s.breakpoints) {
		return -1
	}
	return i
}

// eval returns the mix-weighted value of the bracket containing v
func (s stepSchedule) eval(v float64, mix mat.Vector) float64 {
	i := s.bracket(v)
	if i < 0 {
		return math.NaN()
	}
	return mat.Dot(s.table.RowView(i), mix)
}

// byUse undoes the transpose done at construction
func (s stepSchedule) byUse(uses []string) map[string][]float64 {
	out := make(map[string][]float64, len(uses))
	for j, use := range uses {
		out[use] = mat.Col(nil, j, s.table)
	}
	return out
}
