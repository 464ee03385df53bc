package pricing

import (
	"context"

	"azurepricing/entity"
)

type Core interface {
	ServicePricing(ctx context.Context) (*entity.ServicePricing, error)
	AdditionalServices(ctx context.Context) (*entity.AdditionalServices, error)
	SearchPrices(ctx context.Context, q entity.PriceQuery) (*entity.SearchResult, error)
	ComparePrices(ctx context.Context, req entity.CompareRequest) (*entity.CompareResult, error)
	EstimateCosts(ctx context.Context, req entity.CostEstimateRequest) (*entity.CostEstimate, error)
	DiscoverSkus(ctx context.Context, serviceName, region, currencyCode string, limit int) (*entity.SkuDiscovery, error)
	DiscoverServiceSkus(ctx context.Context, term, currencyCode string, limit int) (*entity.ServiceDiscovery, error)
	RecommendRegions(ctx context.Context, serviceName, skuName string, topN int, currencyCode string) (*entity.RegionRecommendations, error)
	ReservationPricing(ctx context.Context, serviceName, skuName, region, currencyCode string) (*entity.ReservationPricing, error)
	DefaultCurrency() string
	DefaultLimit() int
}
