package domain

// Column names shared by site tables, pass-through lists and parcel filters
const (
	ColumnLandCost    = "land_cost"
	ColumnParcelSize  = "parcel_size"
	ColumnMaxFar      = "max_far"
	ColumnMaxHeight   = "max_height"
	ColumnMaxDua      = "max_dua"
	ColumnAveUnitSize = "ave_unit_size"
)

// Site is one candidate parcel handed to a feasibility lookup.
// Zoning caps are optional; a nil cap does not constrain the site.
type Site struct {
	ID          string             `json:"site_id" db:"site_id" validate:"required"`
	Rents       map[string]float64 `json:"rents" validate:"required"`
	LandCost    float64            `json:"land_cost" db:"land_cost"`
	ParcelSize  float64            `json:"parcel_size" db:"parcel_size"`
	MaxFar      *float64           `json:"max_far,omitempty" db:"max_far"`
	MaxHeight   *float64           `json:"max_height,omitempty" db:"max_height"`
	MaxDua      *float64           `json:"max_dua,omitempty" db:"max_dua"`
	AveUnitSize *float64           `json:"ave_unit_size,omitempty" db:"ave_unit_size"`
	Attributes  map[string]float64 `json:"attributes,omitempty"`
}

// Clone returns a deep copy so callers' sites are never modified
func (s Site) Clone() Site {
	c := s
	c.Rents = cloneMap(s.Rents)
	c.Attributes = cloneMap(s.Attributes)
	c.MaxFar = cloneFloat(s.MaxFar)
	c.MaxHeight = cloneFloat(s.MaxHeight)
	c.MaxDua = cloneFloat(s.MaxDua)
	c.AveUnitSize = cloneFloat(s.AveUnitSize)
	return c
}

// Column resolves a named column: the fixed site columns first, then
// per-use rents, then free-form attributes.
func (s Site) Column(name string) (float64, bool) {
	switch name {
	case ColumnLandCost:
		return s.LandCost, true
	case ColumnParcelSize:
		return s.ParcelSize, true
	case ColumnMaxFar:
		return deref(s.MaxFar)
	case ColumnMaxHeight:
		return deref(s.MaxHeight)
	case ColumnMaxDua:
		return deref(s.MaxDua)
	case ColumnAveUnitSize:
		return deref(s.AveUnitSize)
	}
	if v, ok := s.Rents[name]; ok {
		return v, true
	}
	v, ok := s.Attributes[name]
	return v, ok
}

func deref(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}
	return *v, true
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneMap(m map[string]float64) map[string]float64 {
	if m == nil {
		return nil
	}
	c := make(map[string]float64, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// Float returns a pointer to v, for optional site columns
func Float(v float64) *float64 {
	return &v
}
