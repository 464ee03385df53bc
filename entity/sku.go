package entity

type SkuSummary struct {
	SkuName     string   `json:"sku_name"`
	ProductName string   `json:"product_name"`
	MinPrice    float64  `json:"min_price"`
	SampleUnit  string   `json:"sample_unit"`
	Regions     []string `json:"regions"`
}

type SkuDiscovery struct {
	ServiceName string       `json:"service_name"`
	Skus        []SkuSummary `json:"skus"`
	TotalSkus   int          `json:"total_skus"`
}

const (
	MatchExact        = "exact"
	MatchExactMapping = "exact_mapping"
)

// ServiceDiscovery answers a free-text service lookup: either a resolved
// service with its SKUs or a list of suggestions.
type ServiceDiscovery struct {
	OriginalSearch string              `json:"original_search"`
	ServiceFound   string              `json:"service_found,omitempty"`
	MatchType      string              `json:"match_type,omitempty"`
	Skus           []SkuSummary        `json:"skus,omitempty"`
	TotalSkus      int                 `json:"total_skus"`
	Suggestions    []ServiceSuggestion `json:"suggestions,omitempty"`
}

type ServiceSuggestion struct {
	ServiceName string      `json:"service_name"`
	MatchReason string      `json:"match_reason"`
	SampleItems []PriceItem `json:"sample_items,omitempty"`
}
