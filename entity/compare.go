package entity

import (
	"net/http"

	"azurepricing/internal/lib/validate"
)

const (
	ComparisonRegions = "regions"
	ComparisonSkus    = "skus"
)

type CompareRequest struct {
	ServiceName  string   `json:"service_name" validate:"required,max=128"`
	SkuName      string   `json:"sku_name,omitempty" validate:"omitempty,max=128"`
	Regions      []string `json:"regions,omitempty" validate:"omitempty,max=60,dive,required,max=64"`
	CurrencyCode string   `json:"currency_code,omitempty" validate:"omitempty,currency"`
}

func (c *CompareRequest) Bind(_ *http.Request) error {
	return validate.Struct(c)
}

type Comparison struct {
	Region      string  `json:"region,omitempty"`
	SkuName     string  `json:"sku_name"`
	RetailPrice float64 `json:"retail_price"`
	ProductName string  `json:"product_name"`
	Unit        string  `json:"unit,omitempty"`
}

type CompareResult struct {
	Comparisons    []Comparison `json:"comparisons"`
	ServiceName    string       `json:"service_name"`
	Currency       string       `json:"currency"`
	ComparisonType string       `json:"comparison_type"`
}
