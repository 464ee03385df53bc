package core

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"azurepricing/entity"
	"azurepricing/internal/lib/sl"
)

const maxSkuSuggestions = 5

// SearchPrices runs a filtered price search. When a SKU was requested and
// nothing matched, the result carries SKU suggestions from the same service.
func (c *Core) SearchPrices(ctx context.Context, q entity.PriceQuery) (*entity.SearchResult, error) {
	currency, err := NormalizeCurrency(q.CurrencyCode, c.currency)
	if err != nil {
		return nil, err
	}

	filter := entity.PriceFilter{
		ServiceName:  q.ServiceName,
		Region:       q.Region,
		SkuName:      q.SkuName,
		PriceType:    q.PriceType,
		CurrencyCode: currency,
		Limit:        q.Limit,
	}
	result, err := c.searchSku(ctx, filter)
	if err != nil {
		return nil, err
	}

	out := &entity.SearchResult{
		Items:          make([]entity.PriceItem, 0, len(result.Items)),
		HasMore:        result.HasMore,
		Currency:       result.Currency,
		FiltersApplied: result.Filters,
	}
	for _, item := range result.Items {
		out.Items = append(out.Items, entity.NewPriceItem(item))
	}
	out.Count = len(out.Items)
	if out.Currency == "" {
		out.Currency = currency
	}

	if out.Count == 0 && q.SkuName != "" && q.ServiceName != "" {
		validation, err := c.validateSku(ctx, q, currency)
		if err != nil {
			c.log.With(
				slog.String("sku", q.SkuName),
				sl.Err(err),
			).Warn("sku suggestions unavailable")
		} else {
			out.SkuValidation = validation
		}
	}

	return out, nil
}

func (c *Core) validateSku(ctx context.Context, q entity.PriceQuery, currency string) (*entity.SkuValidation, error) {
	result, err := c.search(ctx, entity.PriceFilter{
		ServiceName:  q.ServiceName,
		Region:       q.Region,
		PriceType:    q.PriceType,
		CurrencyCode: currency,
		Limit:        100,
	})
	if err != nil {
		return nil, err
	}

	suggestions := skuSuggestions(q.SkuName, result.Items, maxSkuSuggestions)
	validation := &entity.SkuValidation{
		OriginalSku: q.SkuName,
		Suggestions: suggestions,
	}
	if len(suggestions) > 0 {
		validation.Message = fmt.Sprintf("SKU '%s' not found in %s. Found %d similar SKUs.", q.SkuName, q.ServiceName, len(suggestions))
	} else {
		validation.Message = fmt.Sprintf("SKU '%s' not found in %s.", q.SkuName, q.ServiceName)
	}
	return validation, nil
}

// skuSuggestions picks distinct SKUs sharing a normalized term with sku.
func skuSuggestions(sku string, items []entity.RetailPrice, limit int) []entity.SkuSuggestion {
	words := skuWords(sku)
	suggestions := make([]entity.SkuSuggestion, 0, limit)
	seen := make(map[string]bool)

	for _, item := range items {
		if len(suggestions) == limit {
			break
		}
		if item.SkuName == "" || seen[item.SkuName] {
			continue
		}
		candidate := strings.ToLower(item.SkuName + " " + item.ArmSkuName)
		for _, w := range words {
			if strings.Contains(candidate, w) {
				seen[item.SkuName] = true
				suggestions = append(suggestions, entity.SkuSuggestion{
					SkuName: item.SkuName,
					Price:   item.RetailPrice,
					Unit:    item.UnitOfMeasure,
					Region:  item.ArmRegionName,
				})
				break
			}
		}
	}
	return suggestions
}

func skuWords(sku string) []string {
	bare, _, _ := NormalizeSkuName(sku)
	fields := strings.FieldsFunc(strings.ToLower(bare), func(r rune) bool {
		return r == '_' || r == ' ' || r == '-'
	})
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) > 1 {
			words = append(words, f)
		}
	}
	return words
}
