package core

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"azurepricing/entity"
)

const hoursPerYear = 8760

// ReservationPricing lists reserved instance prices per term with the
// effective hourly rate and the savings against on-demand.
func (c *Core) ReservationPricing(ctx context.Context, serviceName, skuName, region, currencyCode string) (*entity.ReservationPricing, error) {
	currency, err := NormalizeCurrency(currencyCode, c.currency)
	if err != nil {
		return nil, err
	}
	if serviceName == "" || skuName == "" {
		return nil, fmt.Errorf("%w: service name and sku name are required", ErrInvalidInput)
	}

	reserved, err := c.searchSku(ctx, entity.PriceFilter{
		ServiceName:  serviceName,
		Region:       region,
		SkuName:      skuName,
		PriceType:    entity.PriceTypeReservation,
		CurrencyCode: currency,
		Limit:        100,
	})
	if err != nil {
		return nil, err
	}

	byTerm := make(map[string]entity.RetailPrice)
	for _, item := range reserved.Items {
		if item.ReservationTerm == "" {
			continue
		}
		if p, ok := byTerm[item.ReservationTerm]; !ok || item.RetailPrice < p.RetailPrice {
			byTerm[item.ReservationTerm] = item
		}
	}
	if len(byTerm) == 0 {
		return nil, fmt.Errorf("%w: no reservations for %s %s", ErrNotFound, serviceName, skuName)
	}

	var onDemand float64
	consumption, err := c.searchSku(ctx, entity.PriceFilter{
		ServiceName:  serviceName,
		Region:       region,
		SkuName:      skuName,
		PriceType:    entity.PriceTypeConsumption,
		CurrencyCode: currency,
		Limit:        20,
	})
	if err != nil {
		return nil, err
	}
	if len(consumption.Items) > 0 {
		onDemand = onDemandItem(consumption.Items).RetailPrice
	}

	result := &entity.ReservationPricing{
		ServiceName:  serviceName,
		SkuName:      skuName,
		Region:       region,
		Currency:     currency,
		Reservations: make([]entity.ReservationPrice, 0, len(byTerm)),
	}
	for term, item := range byTerm {
		price := entity.ReservationPrice{
			Term:               term,
			SkuName:            item.SkuName,
			ProductName:        item.ProductName,
			TotalPrice:         round2(item.RetailPrice),
			OnDemandHourlyRate: round6(onDemand),
		}
		if hours := termHours(term); hours > 0 {
			price.EffectiveHourlyRate = round6(item.RetailPrice / hours)
			if onDemand > 0 {
				price.SavingsPercent = round2((onDemand - item.RetailPrice/hours) / onDemand * 100)
			}
		}
		result.Reservations = append(result.Reservations, price)
	}
	sort.Slice(result.Reservations, func(i, j int) bool {
		hi, hj := termHours(result.Reservations[i].Term), termHours(result.Reservations[j].Term)
		if hi != hj {
			return hi < hj
		}
		return result.Reservations[i].Term < result.Reservations[j].Term
	})
	return result, nil
}

// termHours converts a reservation term like "1 Year" or "3 Years" to hours.
func termHours(term string) float64 {
	fields := strings.Fields(term)
	if len(fields) != 2 {
		return 0
	}
	n, err := strconv.ParseFloat(fields[0], 64)
	if err != nil || n <= 0 {
		return 0
	}
	switch strings.ToLower(strings.TrimSuffix(fields[1], "s")) {
	case "year":
		return n * hoursPerYear
	case "month":
		return n * hoursPerYear / 12
	default:
		return 0
	}
}
