package entity

import (
	"net/http"

	"azurepricing/internal/lib/validate"
)

type CostEstimateRequest struct {
	ServiceName   string  `json:"service_name" validate:"required,max=128"`
	SkuName       string  `json:"sku_name" validate:"required,max=128"`
	Region        string  `json:"region" validate:"required,max=64"`
	HoursPerMonth float64 `json:"hours_per_month,omitempty" validate:"gte=0,lte=744"`
	CurrencyCode  string  `json:"currency_code,omitempty" validate:"omitempty,currency"`
}

func (c *CostEstimateRequest) Bind(_ *http.Request) error {
	return validate.Struct(c)
}

type UsageAssumptions struct {
	HoursPerMonth float64 `json:"hours_per_month"`
	HoursPerDay   float64 `json:"hours_per_day"`
}

type OnDemandPricing struct {
	HourlyRate  float64 `json:"hourly_rate"`
	DailyCost   float64 `json:"daily_cost"`
	MonthlyCost float64 `json:"monthly_cost"`
	YearlyCost  float64 `json:"yearly_cost"`
}

type SavingsPlanEstimate struct {
	Term           string  `json:"term"`
	HourlyRate     float64 `json:"hourly_rate"`
	MonthlyCost    float64 `json:"monthly_cost"`
	YearlyCost     float64 `json:"yearly_cost"`
	SavingsPercent float64 `json:"savings_percent"`
	AnnualSavings  float64 `json:"annual_savings"`
}

type CostEstimate struct {
	ServiceName      string                `json:"service_name"`
	SkuName          string                `json:"sku_name"`
	Region           string                `json:"region"`
	ProductName      string                `json:"product_name"`
	UnitOfMeasure    string                `json:"unit_of_measure"`
	Currency         string                `json:"currency"`
	UsageAssumptions UsageAssumptions      `json:"usage_assumptions"`
	OnDemandPricing  OnDemandPricing       `json:"on_demand_pricing"`
	SavingsPlans     []SavingsPlanEstimate `json:"savings_plans"`
}
