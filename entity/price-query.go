package entity

import (
	"net/http"

	"azurepricing/internal/lib/validate"
)

type PriceQuery struct {
	ServiceName  string `json:"service_name" validate:"omitempty,max=128"`
	Region       string `json:"region" validate:"omitempty,max=64"`
	SkuName      string `json:"sku_name" validate:"omitempty,max=128"`
	PriceType    string `json:"price_type" validate:"omitempty,oneof=Consumption Reservation DevTestConsumption"`
	CurrencyCode string `json:"currency_code" validate:"required,currency"`
	Limit        int    `json:"limit" validate:"gte=1,lte=1000"`
}

func (q *PriceQuery) Bind(_ *http.Request) error {
	return validate.Struct(q)
}

// PriceItem is the condensed view of a RetailPrice returned by search.
type PriceItem struct {
	Service       string        `json:"service"`
	Product       string        `json:"product"`
	Sku           string        `json:"sku"`
	Region        string        `json:"region"`
	Location      string        `json:"location"`
	Price         float64       `json:"price"`
	Unit          string        `json:"unit"`
	Type          string        `json:"type"`
	SavingsPlans  []SavingsPlan `json:"savings_plans"`
	OriginalPrice *float64      `json:"original_price,omitempty"`
}

func NewPriceItem(p RetailPrice) PriceItem {
	plans := p.SavingsPlan
	if plans == nil {
		plans = []SavingsPlan{}
	}
	return PriceItem{
		Service:       p.ServiceName,
		Product:       p.ProductName,
		Sku:           p.SkuName,
		Region:        p.ArmRegionName,
		Location:      p.Location,
		Price:         p.RetailPrice,
		Unit:          p.UnitOfMeasure,
		Type:          p.Type,
		SavingsPlans:  plans,
		OriginalPrice: p.OriginalPrice,
	}
}

type SearchResult struct {
	Items          []PriceItem    `json:"items"`
	Count          int            `json:"count"`
	HasMore        bool           `json:"has_more"`
	Currency       string         `json:"currency"`
	FiltersApplied []string       `json:"filters_applied"`
	SkuValidation  *SkuValidation `json:"sku_validation,omitempty"`
}

// SkuValidation is attached when a requested SKU matched nothing.
type SkuValidation struct {
	OriginalSku string          `json:"original_sku"`
	Message     string          `json:"message"`
	Suggestions []SkuSuggestion `json:"suggestions"`
}

type SkuSuggestion struct {
	SkuName string  `json:"sku_name"`
	Price   float64 `json:"price"`
	Unit    string  `json:"unit"`
	Region  string  `json:"region"`
}
