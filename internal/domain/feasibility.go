package domain

// FeasibilityResult is the most profitable building found for one site and form
type FeasibilityResult struct {
	SiteID             string             `json:"site_id" db:"site_id"`
	Form               string             `json:"form" db:"form"`
	ParkingConfig      string             `json:"parking_config" db:"parking_config"`
	MaxProfitFar       float64            `json:"max_profit_far" db:"max_profit_far"`
	BuildingSqft       float64            `json:"building_sqft" db:"building_sqft"`
	ResidentialSqft    float64            `json:"residential_sqft" db:"residential_sqft"`
	NonResidentialSqft float64            `json:"non_residential_sqft" db:"non_residential_sqft"`
	BuildingCost       float64            `json:"building_cost" db:"building_cost"`
	FinancingCost      float64            `json:"financing_cost" db:"financing_cost"`
	TotalCost          float64            `json:"total_cost" db:"total_cost"`
	BuildingRevenue    float64            `json:"building_revenue" db:"building_revenue"`
	MaxProfit          float64            `json:"max_profit" db:"max_profit"`
	Stories            float64            `json:"stories" db:"stories"`
	ConstructionTime   float64            `json:"construction_time" db:"construction_time"`
	ParkingRatio       float64            `json:"parking_ratio" db:"parking_ratio"`
	PassThrough        map[string]float64 `json:"pass_through,omitempty" db:"-"`
}
