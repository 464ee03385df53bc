package core

import (
	"context"
	"fmt"

	"azurepricing/entity"
)

const (
	defaultHoursPerMonth = 730
	daysPerMonth         = 30
	monthsPerYear        = 12
)

// EstimateCosts projects on-demand and savings plan costs for a SKU in a region.
func (c *Core) EstimateCosts(ctx context.Context, req entity.CostEstimateRequest) (*entity.CostEstimate, error) {
	currency, err := NormalizeCurrency(req.CurrencyCode, c.currency)
	if err != nil {
		return nil, err
	}
	hours := req.HoursPerMonth
	if hours <= 0 {
		hours = defaultHoursPerMonth
	}

	found, err := c.searchSku(ctx, entity.PriceFilter{
		ServiceName:  req.ServiceName,
		Region:       req.Region,
		SkuName:      req.SkuName,
		PriceType:    entity.PriceTypeConsumption,
		CurrencyCode: currency,
		Limit:        5,
	})
	if err != nil {
		return nil, err
	}
	if len(found.Items) == 0 {
		return nil, fmt.Errorf("%w: %s %s in %s", ErrNotFound, req.ServiceName, req.SkuName, req.Region)
	}

	item := onDemandItem(found.Items)
	hourly := item.RetailPrice
	monthly := hourly * hours
	yearly := monthly * monthsPerYear
	hoursPerDay := hours / daysPerMonth

	estimate := &entity.CostEstimate{
		ServiceName:   req.ServiceName,
		SkuName:       item.SkuName,
		Region:        req.Region,
		ProductName:   item.ProductName,
		UnitOfMeasure: item.UnitOfMeasure,
		Currency:      currency,
		UsageAssumptions: entity.UsageAssumptions{
			HoursPerMonth: hours,
			HoursPerDay:   round2(hoursPerDay),
		},
		OnDemandPricing: entity.OnDemandPricing{
			HourlyRate:  round6(hourly),
			DailyCost:   round2(hourly * hoursPerDay),
			MonthlyCost: round2(monthly),
			YearlyCost:  round2(yearly),
		},
		SavingsPlans: []entity.SavingsPlanEstimate{},
	}

	for _, plan := range item.SavingsPlan {
		planMonthly := plan.RetailPrice * hours
		planYearly := planMonthly * monthsPerYear
		var savings float64
		if hourly > 0 {
			savings = (hourly - plan.RetailPrice) / hourly * 100
		}
		estimate.SavingsPlans = append(estimate.SavingsPlans, entity.SavingsPlanEstimate{
			Term:           plan.Term,
			HourlyRate:     round6(plan.RetailPrice),
			MonthlyCost:    round2(planMonthly),
			YearlyCost:     round2(planYearly),
			SavingsPercent: round2(savings),
			AnnualSavings:  round2(yearly - planYearly),
		})
	}

	return estimate, nil
}
