package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"azurepricing/entity"
)

const (
	defaultDiscoveryLimit = 100
	maxServiceSuggestions = 5
	maxSampleItems        = 3
)

// serviceMappings resolves common short names to Azure service names.
var serviceMappings = map[string]string{
	"app service":     "Azure App Service",
	"web app":         "Azure App Service",
	"vm":              "Virtual Machines",
	"virtual machine": "Virtual Machines",
	"storage":         "Storage",
	"blob":            "Storage",
	"sql":             "SQL Database",
	"database":        "SQL Database",
	"cosmos":          "Azure Cosmos DB",
	"functions":       "Functions",
	"kubernetes":      "Azure Kubernetes Service",
	"aks":             "Azure Kubernetes Service",
}

var mappingKeys = func() []string {
	keys := make([]string, 0, len(serviceMappings))
	for k := range serviceMappings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}()

// MapServiceName returns the Azure service name for a common short name.
// The earliest matching word in term wins, the longer one on a tie.
func MapServiceName(term string) (string, bool) {
	term = strings.ToLower(strings.Join(strings.Fields(term), " "))
	if service, ok := serviceMappings[term]; ok {
		return service, true
	}
	best, bestPos := "", -1
	for _, key := range mappingKeys {
		pos := wordIndex(term, key)
		if pos < 0 {
			continue
		}
		if bestPos < 0 || pos < bestPos || (pos == bestPos && len(key) > len(best)) {
			best, bestPos = key, pos
		}
	}
	if bestPos < 0 {
		return "", false
	}
	return serviceMappings[best], true
}

// wordIndex finds word in text on word boundaries, allowing a plural "s".
func wordIndex(text, word string) int {
	for offset := 0; offset < len(text); {
		idx := strings.Index(text[offset:], word)
		if idx < 0 {
			return -1
		}
		idx += offset
		end := idx + len(word)
		before := idx == 0 || text[idx-1] == ' '
		after := end == len(text) || text[end] == ' ' ||
			(text[end] == 's' && (end+1 == len(text) || text[end+1] == ' '))
		if before && after {
			return idx
		}
		offset = idx + 1
	}
	return -1
}

// DiscoverSkus lists the distinct SKUs of a service.
func (c *Core) DiscoverSkus(ctx context.Context, serviceName, region, currencyCode string, limit int) (*entity.SkuDiscovery, error) {
	currency, err := NormalizeCurrency(currencyCode, c.currency)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(serviceName) == "" {
		return nil, fmt.Errorf("%w: service name is required", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = defaultDiscoveryLimit
	}

	found, err := c.search(ctx, entity.PriceFilter{
		ServiceName:  serviceName,
		Region:       region,
		PriceType:    entity.PriceTypeConsumption,
		CurrencyCode: currency,
		Limit:        limit,
	})
	if err != nil {
		return nil, err
	}

	skus := summarizeSkus(found.Items)
	return &entity.SkuDiscovery{
		ServiceName: serviceName,
		Skus:        skus,
		TotalSkus:   len(skus),
	}, nil
}

// DiscoverServiceSkus resolves a free-text service name and lists its SKUs.
// Unresolved names produce service suggestions instead.
func (c *Core) DiscoverServiceSkus(ctx context.Context, term, currencyCode string, limit int) (*entity.ServiceDiscovery, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, fmt.Errorf("%w: service hint is required", ErrInvalidInput)
	}
	result := &entity.ServiceDiscovery{OriginalSearch: term}

	if service, ok := MapServiceName(term); ok {
		discovery, err := c.DiscoverSkus(ctx, service, "", currencyCode, limit)
		if err != nil {
			return nil, err
		}
		if discovery.TotalSkus > 0 {
			result.ServiceFound = service
			result.MatchType = entity.MatchExactMapping
			result.Skus = discovery.Skus
			result.TotalSkus = discovery.TotalSkus
			return result, nil
		}
	}

	discovery, err := c.DiscoverSkus(ctx, term, "", currencyCode, limit)
	if err != nil {
		return nil, err
	}
	if discovery.TotalSkus > 0 {
		result.ServiceFound = term
		result.MatchType = entity.MatchExact
		result.Skus = discovery.Skus
		result.TotalSkus = discovery.TotalSkus
		return result, nil
	}

	suggestions, err := c.suggestServices(ctx, term, currencyCode)
	if err != nil {
		return nil, err
	}
	result.Suggestions = suggestions
	return result, nil
}

func (c *Core) suggestServices(ctx context.Context, term, currencyCode string) ([]entity.ServiceSuggestion, error) {
	currency, err := NormalizeCurrency(currencyCode, c.currency)
	if err != nil {
		return nil, err
	}
	found, err := c.search(ctx, entity.PriceFilter{
		ProductName:  titleCase(term),
		CurrencyCode: currency,
		Limit:        defaultDiscoveryLimit,
	})
	if err != nil {
		return nil, err
	}

	needle := strings.ToLower(term)
	suggestions := make([]entity.ServiceSuggestion, 0, maxServiceSuggestions)
	index := make(map[string]int)
	for _, item := range found.Items {
		i, ok := index[item.ServiceName]
		if !ok {
			if len(suggestions) == maxServiceSuggestions {
				continue
			}
			var reason string
			switch {
			case strings.Contains(strings.ToLower(item.ServiceName), needle):
				reason = fmt.Sprintf("service name contains '%s'", term)
			case strings.Contains(strings.ToLower(item.ProductName), needle):
				reason = fmt.Sprintf("product name contains '%s'", term)
			default:
				continue
			}
			i = len(suggestions)
			index[item.ServiceName] = i
			suggestions = append(suggestions, entity.ServiceSuggestion{
				ServiceName: item.ServiceName,
				MatchReason: reason,
			})
		}
		if len(suggestions[i].SampleItems) < maxSampleItems {
			suggestions[i].SampleItems = append(suggestions[i].SampleItems, entity.NewPriceItem(item))
		}
	}
	return suggestions, nil
}

func summarizeSkus(items []entity.RetailPrice) []entity.SkuSummary {
	byName := make(map[string]*entity.SkuSummary)
	regions := make(map[string]map[string]bool)

	for _, item := range items {
		if item.SkuName == "" {
			continue
		}
		summary, ok := byName[item.SkuName]
		if !ok {
			summary = &entity.SkuSummary{
				SkuName:     item.SkuName,
				ProductName: item.ProductName,
				MinPrice:    item.RetailPrice,
				SampleUnit:  item.UnitOfMeasure,
				Regions:     []string{},
			}
			byName[item.SkuName] = summary
			regions[item.SkuName] = make(map[string]bool)
		}
		if item.RetailPrice < summary.MinPrice {
			summary.MinPrice = item.RetailPrice
		}
		if item.ArmRegionName != "" && !regions[item.SkuName][item.ArmRegionName] {
			regions[item.SkuName][item.ArmRegionName] = true
			summary.Regions = append(summary.Regions, item.ArmRegionName)
		}
	}

	skus := make([]entity.SkuSummary, 0, len(byName))
	for _, summary := range byName {
		sort.Strings(summary.Regions)
		skus = append(skus, *summary)
	}
	sort.Slice(skus, func(i, j int) bool {
		return skus[i].SkuName < skus[j].SkuName
	})
	return skus
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
