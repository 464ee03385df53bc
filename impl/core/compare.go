package core

import (
	"context"
	"log/slog"
	"sort"

	"azurepricing/entity"
	"azurepricing/internal/lib/sl"
)

// ComparePrices compares one SKU across regions when regions are given,
// otherwise the SKUs of a service. Results are sorted by price ascending.
func (c *Core) ComparePrices(ctx context.Context, req entity.CompareRequest) (*entity.CompareResult, error) {
	currency, err := NormalizeCurrency(req.CurrencyCode, c.currency)
	if err != nil {
		return nil, err
	}

	result := &entity.CompareResult{
		Comparisons: []entity.Comparison{},
		ServiceName: req.ServiceName,
		Currency:    currency,
	}

	if len(req.Regions) > 0 {
		result.ComparisonType = entity.ComparisonRegions
		for _, region := range req.Regions {
			found, err := c.searchSku(ctx, entity.PriceFilter{
				ServiceName:  req.ServiceName,
				Region:       region,
				SkuName:      req.SkuName,
				PriceType:    entity.PriceTypeConsumption,
				CurrencyCode: currency,
				Limit:        1,
			})
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				c.log.With(
					slog.String("region", region),
					sl.Err(err),
				).Warn("region skipped in comparison")
				continue
			}
			if len(found.Items) == 0 {
				continue
			}
			item := found.Items[0]
			result.Comparisons = append(result.Comparisons, entity.Comparison{
				Region:      region,
				SkuName:     item.SkuName,
				RetailPrice: item.RetailPrice,
				ProductName: item.ProductName,
				Unit:        item.UnitOfMeasure,
			})
		}
	} else {
		result.ComparisonType = entity.ComparisonSkus
		found, err := c.search(ctx, entity.PriceFilter{
			ServiceName:  req.ServiceName,
			PriceType:    entity.PriceTypeConsumption,
			CurrencyCode: currency,
			Limit:        100,
		})
		if err != nil {
			return nil, err
		}
		seen := make(map[string]bool)
		for _, item := range found.Items {
			if item.SkuName == "" || seen[item.SkuName] {
				continue
			}
			seen[item.SkuName] = true
			result.Comparisons = append(result.Comparisons, entity.Comparison{
				SkuName:     item.SkuName,
				RetailPrice: item.RetailPrice,
				ProductName: item.ProductName,
				Unit:        item.UnitOfMeasure,
			})
		}
	}

	sort.SliceStable(result.Comparisons, func(i, j int) bool {
		return result.Comparisons[i].RetailPrice < result.Comparisons[j].RetailPrice
	})
	return result, nil
}
