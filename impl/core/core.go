package core

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"azurepricing/entity"
	"azurepricing/internal/cache"
	"azurepricing/internal/config"
	"azurepricing/internal/lib/sl"
	"azurepricing/internal/metrics"

	"golang.org/x/sync/singleflight"
)

const defaultUpstreamTimeout = 30 * time.Second

var (
	ErrNotFound     = errors.New("no pricing data found")
	ErrInvalidInput = errors.New("invalid input")
)

type Prices interface {
	Search(ctx context.Context, f entity.PriceFilter) (*entity.PriceResult, error)
}

type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
	Stats() cache.Stats
	HealthCheck(ctx context.Context) error
}

type Core struct {
	prices          Prices
	cache           Cache
	cacheTTL        time.Duration
	upstreamTimeout time.Duration
	group           singleflight.Group
	primary         entity.CatalogEntry
	additional      []entity.CatalogEntry
	currency        string
	defaultLimit    int
	log             *slog.Logger
}

func New(log *slog.Logger, conf *config.Config) *Core {
	c := &Core{
		cacheTTL:        conf.Cache.TTL,
		upstreamTimeout: conf.Listen.Timeout,
		primary:         conf.Catalog.Primary,
		additional:      conf.Catalog.Additional,
		currency:        strings.ToUpper(conf.Azure.Currency),
		defaultLimit:    conf.Azure.DefaultLimit,
		log:             log.With(sl.Module("core")),
	}
	if c.currency == "" {
		c.currency = "USD"
	}
	if c.defaultLimit <= 0 {
		c.defaultLimit = 50
	}
	if c.upstreamTimeout <= 0 {
		c.upstreamTimeout = defaultUpstreamTimeout
	}
	return c
}

func (c *Core) SetPrices(prices Prices) {
	c.prices = prices
}

func (c *Core) SetCache(cache Cache) {
	c.cache = cache
}

func (c *Core) DefaultCurrency() string {
	return c.currency
}

func (c *Core) DefaultLimit() int {
	return c.defaultLimit
}

// CacheStats reports the cache backend state, nil when no cache is set.
func (c *Core) CacheStats() *cache.Stats {
	if c.cache == nil {
		return nil
	}
	stats := c.cache.Stats()
	return &stats
}

// CacheHealth checks that the cache backend is reachable. No cache is healthy.
func (c *Core) CacheHealth(ctx context.Context) error {
	if c.cache == nil {
		return nil
	}
	return c.cache.HealthCheck(ctx)
}

// search runs f against the pricing API through the cache. Identical
// concurrent queries share one upstream call.
func (c *Core) search(ctx context.Context, f entity.PriceFilter) (*entity.PriceResult, error) {
	if c.prices == nil {
		return nil, fmt.Errorf("prices service not set")
	}
	if f.CurrencyCode == "" {
		f.CurrencyCode = c.currency
	}
	if f.Limit <= 0 {
		f.Limit = c.defaultLimit
	}

	key := filterKey(f)
	if result, ok := c.cached(ctx, key); ok {
		return result, nil
	}

	// The shared call outlives any single caller; each caller waits on its own ctx.
	ch := c.group.DoChan(key, func() (interface{}, error) {
		callCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.upstreamTimeout)
		defer cancel()
		result, err := c.prices.Search(callCtx, f)
		if err != nil {
			return nil, err
		}
		c.store(callCtx, key, result)
		return result, nil
	})

	var res singleflight.Result
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res = <-ch:
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Shared {
		c.log.Debug("shared upstream result", slog.String("key", key))
	}

	result := *res.Val.(*entity.PriceResult)
	result.Items = slices.Clone(result.Items)
	return &result, nil
}

// searchSku retries an empty SKU search with the normalized SKU variants.
func (c *Core) searchSku(ctx context.Context, f entity.PriceFilter) (*entity.PriceResult, error) {
	result, err := c.search(ctx, f)
	if err != nil || len(result.Items) > 0 || f.SkuName == "" {
		return result, err
	}

	original := f.SkuName
	_, _, terms := NormalizeSkuName(original)
	for _, term := range terms {
		if term == original {
			continue
		}
		f.SkuName = term
		alt, err := c.search(ctx, f)
		if err != nil {
			return nil, err
		}
		if len(alt.Items) > 0 {
			return alt, nil
		}
	}
	return result, nil
}

func (c *Core) cached(ctx context.Context, key string) (*entity.PriceResult, bool) {
	if c.cache == nil {
		return nil, false
	}
	data, found := c.cache.Get(ctx, key)
	metrics.CacheLookup(found)
	if !found {
		return nil, false
	}
	var result entity.PriceResult
	if err := json.Unmarshal(data, &result); err != nil {
		c.log.With(sl.Err(err)).Warn("drop unreadable cache entry")
		c.cache.Delete(ctx, key)
		return nil, false
	}
	return &result, true
}

func (c *Core) store(ctx context.Context, key string, result *entity.PriceResult) {
	if c.cache == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(result)
	if err != nil {
		c.log.With(sl.Err(err)).Warn("encode cache entry")
		return
	}
	c.cache.Set(ctx, key, data, c.cacheTTL)
}

func filterKey(f entity.PriceFilter) string {
	return "prices:" + strings.Join([]string{
		f.ServiceName,
		f.Region,
		f.SkuName,
		f.ArmSkuName,
		f.MeterName,
		f.PriceType,
		f.ProductName,
		f.CurrencyCode,
		strconv.Itoa(f.Limit),
	}, "|")
}
