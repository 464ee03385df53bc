package entity

type RegionRecommendation struct {
	Rank                   int      `json:"rank"`
	Region                 string   `json:"region"`
	Location               string   `json:"location"`
	RetailPrice            float64  `json:"retail_price"`
	SpotPrice              *float64 `json:"spot_price,omitempty"`
	UnitOfMeasure          string   `json:"unit_of_measure"`
	SavingsVsMostExpensive float64  `json:"savings_vs_most_expensive"`
}

type RegionSummary struct {
	CheapestRegion      string  `json:"cheapest_region"`
	CheapestLocation    string  `json:"cheapest_location"`
	CheapestPrice       float64 `json:"cheapest_price"`
	MostExpensiveRegion string  `json:"most_expensive_region"`
	MostExpensivePrice  float64 `json:"most_expensive_price"`
}

type RegionRecommendations struct {
	ServiceName       string                 `json:"service_name"`
	SkuName           string                 `json:"sku_name"`
	Currency          string                 `json:"currency"`
	TotalRegionsFound int                    `json:"total_regions_found"`
	ShowingTop        int                    `json:"showing_top"`
	Recommendations   []RegionRecommendation `json:"recommendations"`
	Summary           *RegionSummary         `json:"summary,omitempty"`
}
