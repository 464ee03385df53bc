package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"azurepricing/entity"
)

const (
	defaultTopRegions = 10
	regionScanLimit   = 1000
)

// RecommendRegions ranks regions by the cheapest on-demand price of a SKU.
func (c *Core) RecommendRegions(ctx context.Context, serviceName, skuName string, topN int, currencyCode string) (*entity.RegionRecommendations, error) {
	currency, err := NormalizeCurrency(currencyCode, c.currency)
	if err != nil {
		return nil, err
	}
	if serviceName == "" || skuName == "" {
		return nil, fmt.Errorf("%w: service name and sku name are required", ErrInvalidInput)
	}
	if topN <= 0 {
		topN = defaultTopRegions
	}

	found, err := c.searchSku(ctx, entity.PriceFilter{
		ServiceName:  serviceName,
		SkuName:      skuName,
		PriceType:    entity.PriceTypeConsumption,
		CurrencyCode: currency,
		Limit:        regionScanLimit,
	})
	if err != nil {
		return nil, err
	}

	cheapest := make(map[string]entity.RetailPrice)
	spot := make(map[string]float64)
	for _, item := range found.Items {
		if item.ArmRegionName == "" || item.RetailPrice <= 0 {
			continue
		}
		switch {
		case isSpot(item.SkuName):
			if p, ok := spot[item.ArmRegionName]; !ok || item.RetailPrice < p {
				spot[item.ArmRegionName] = item.RetailPrice
			}
		case isLowPriority(item.SkuName):
		default:
			if p, ok := cheapest[item.ArmRegionName]; !ok || item.RetailPrice < p.RetailPrice {
				cheapest[item.ArmRegionName] = item
			}
		}
	}
	if len(cheapest) == 0 {
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, serviceName, skuName)
	}

	ranked := make([]entity.RetailPrice, 0, len(cheapest))
	for _, item := range cheapest {
		ranked = append(ranked, item)
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].RetailPrice != ranked[j].RetailPrice {
			return ranked[i].RetailPrice < ranked[j].RetailPrice
		}
		return ranked[i].ArmRegionName < ranked[j].ArmRegionName
	})

	maxPrice := ranked[len(ranked)-1].RetailPrice
	result := &entity.RegionRecommendations{
		ServiceName:       serviceName,
		SkuName:           skuName,
		Currency:          currency,
		TotalRegionsFound: len(ranked),
		Recommendations:   make([]entity.RegionRecommendation, 0, min(topN, len(ranked))),
	}
	for i, item := range ranked {
		if i == topN {
			break
		}
		rec := entity.RegionRecommendation{
			Rank:                   i + 1,
			Region:                 item.ArmRegionName,
			Location:               item.Location,
			RetailPrice:            item.RetailPrice,
			UnitOfMeasure:          item.UnitOfMeasure,
			SavingsVsMostExpensive: round2((maxPrice - item.RetailPrice) / maxPrice * 100),
		}
		if p, ok := spot[item.ArmRegionName]; ok {
			rec.SpotPrice = &p
		}
		result.Recommendations = append(result.Recommendations, rec)
	}
	result.ShowingTop = len(result.Recommendations)

	first, last := ranked[0], ranked[len(ranked)-1]
	result.Summary = &entity.RegionSummary{
		CheapestRegion:      first.ArmRegionName,
		CheapestLocation:    first.Location,
		CheapestPrice:       first.RetailPrice,
		MostExpensiveRegion: last.ArmRegionName,
		MostExpensivePrice:  last.RetailPrice,
	}
	return result, nil
}

func isSpot(sku string) bool {
	return strings.Contains(sku, "Spot")
}

func isLowPriority(sku string) bool {
	return strings.Contains(sku, "Low Priority")
}

// onDemandItem picks the first regular item, falling back to the first one.
func onDemandItem(items []entity.RetailPrice) entity.RetailPrice {
	for _, item := range items {
		if !isSpot(item.SkuName) && !isLowPriority(item.SkuName) {
			return item
		}
	}
	return items[0]
}
