package core

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strconv"

	"azurepricing/entity"
)

// ServicePricing reports the primary catalog service.
func (c *Core) ServicePricing(ctx context.Context) (*entity.ServicePricing, error) {
	price, err := c.catalogPrice(ctx, c.primary)
	if err != nil {
		return nil, err
	}
	return &entity.ServicePricing{
		Service: c.primary.Name,
		Pricing: entity.Pricing{RetailPrice: price},
	}, nil
}

// AdditionalServices reports every additional catalog service in configured order.
func (c *Core) AdditionalServices(ctx context.Context) (*entity.AdditionalServices, error) {
	result := &entity.AdditionalServices{
		Services: make([]entity.ServicePrice, 0, len(c.additional)),
	}
	for _, entry := range c.additional {
		price, err := c.catalogPrice(ctx, entry)
		if err != nil {
			return nil, err
		}
		result.Services = append(result.Services, entity.ServicePrice{
			Service:     entry.Name,
			RetailPrice: price,
		})
	}
	return result, nil
}

func (c *Core) catalogPrice(ctx context.Context, entry entity.CatalogEntry) (string, error) {
	if entry.IsStatic() {
		value, err := strconv.ParseFloat(entry.RetailPrice, 64)
		if err != nil {
			return "", fmt.Errorf("catalog %s: invalid retail price %q: %w", entry.Name, entry.RetailPrice, err)
		}
		return formatPrice(value, c.currency), nil
	}

	result, err := c.search(ctx, entity.PriceFilter{
		ServiceName:  entry.ServiceName,
		Region:       entry.Region,
		SkuName:      entry.SkuName,
		ArmSkuName:   entry.ArmSkuName,
		MeterName:    entry.MeterName,
		PriceType:    entry.PriceType,
		CurrencyCode: c.currency,
		Limit:        100,
	})
	if err != nil {
		return "", fmt.Errorf("catalog %s: %w", entry.Name, err)
	}

	quantity := entry.Quantity
	if quantity <= 0 {
		quantity = 1
	}

	cheapest := math.Inf(1)
	for _, tiers := range meterTiers(result.Items) {
		if cost := tiers.cost(quantity); cost > 0 && cost < cheapest {
			cheapest = cost
		}
	}
	if math.IsInf(cheapest, 1) {
		return "", fmt.Errorf("%w: catalog %s", ErrNotFound, entry.Name)
	}

	c.log.With(
		slog.String("service", entry.Name),
		slog.Float64("quantity", quantity),
		slog.Float64("cost", cheapest),
	).Debug("catalog price resolved")

	return formatPrice(cheapest, c.currency), nil
}

// tierPrices maps a tier's minimum units to its unit price.
type tierPrices map[float64]float64

// cost prices quantity across the tier bands: each band is charged from its
// minimum up to the next tier's minimum.
func (t tierPrices) cost(quantity float64) float64 {
	mins := make([]float64, 0, len(t))
	for m := range t {
		mins = append(mins, m)
	}
	sort.Float64s(mins)

	var total float64
	for i, lower := range mins {
		if lower >= quantity {
			break
		}
		upper := quantity
		if i+1 < len(mins) && mins[i+1] < quantity {
			upper = mins[i+1]
		}
		total += t[lower] * (upper - lower)
	}
	return total
}

// meterTiers groups items by meter. Duplicate tiers keep the cheapest
// positive price.
func meterTiers(items []entity.RetailPrice) map[string]tierPrices {
	meters := make(map[string]tierPrices)
	for _, item := range items {
		key := item.MeterID
		if key == "" {
			key = item.MeterName + "|" + item.SkuName + "|" + item.ProductName
		}
		key += "|" + item.ArmRegionName

		tiers, ok := meters[key]
		if !ok {
			tiers = make(tierPrices)
			meters[key] = tiers
		}
		price := item.RetailPrice
		if existing, ok := tiers[item.TierMinimumUnits]; ok {
			if price <= 0 || (existing > 0 && existing <= price) {
				continue
			}
		}
		tiers[item.TierMinimumUnits] = price
	}
	return meters
}
