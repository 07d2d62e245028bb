package dto

import "github.com/proforma-service/internal/domain"

// SiteInput - one candidate parcel in a feasibility request
type SiteInput struct {
	SiteID      string             `json:"site_id" validate:"required,max=128"`
	Rents       map[string]float64 `json:"rents" validate:"required,min=1,dive,gte=0"`
	LandCost    float64            `json:"land_cost" validate:"gte=0"`
	ParcelSize  float64            `json:"parcel_size" validate:"gte=0"`
	MaxFar      *float64           `json:"max_far,omitempty" validate:"omitempty,gte=0"`
	MaxHeight   *float64           `json:"max_height,omitempty" validate:"omitempty,gte=0"`
	MaxDua      *float64           `json:"max_dua,omitempty" validate:"omitempty,gte=0"`
	AveUnitSize *float64           `json:"ave_unit_size,omitempty" validate:"omitempty,gt=0"`
	Attributes  map[string]float64 `json:"attributes,omitempty"`
}

// ToDomain - converts to the engine's site type
func (s SiteInput) ToDomain() domain.Site {
	return domain.Site{
		ID:          s.SiteID,
		Rents:       s.Rents,
		LandCost:    s.LandCost,
		ParcelSize:  s.ParcelSize,
		MaxFar:      s.MaxFar,
		MaxHeight:   s.MaxHeight,
		MaxDua:      s.MaxDua,
		AveUnitSize: s.AveUnitSize,
		Attributes:  s.Attributes,
	}
}

// FeasibilityRequest - sites to evaluate for one or all forms
type FeasibilityRequest struct {
	Sites []SiteInput `json:"sites" validate:"required,min=1,max=10000,dive"`
	// Forms limits a multi-form request; empty means forms_to_test
	Forms []string `json:"forms,omitempty" validate:"omitempty,dive,required"`
}

// DomainSites - converts every input site
func (r FeasibilityRequest) DomainSites() []domain.Site {
	out := make([]domain.Site, len(r.Sites))
	for i, s := range r.Sites {
		out[i] = s.ToDomain()
	}
	return out
}

// RunRequest - starts an asynchronous run over the stored sites
type RunRequest struct {
	Forms []string `json:"forms,omitempty" validate:"omitempty,dive,required"`
}
