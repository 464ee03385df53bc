package core

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"azurepricing/entity"
	"azurepricing/internal/cache"
	"azurepricing/internal/config"
)

// fakePrices answers searches through fn and records every filter it saw.
type fakePrices struct {
	mu      sync.Mutex
	filters []entity.PriceFilter
	calls   atomic.Int32
	fn      func(f entity.PriceFilter) (*entity.PriceResult, error)
}

func (f *fakePrices) Search(_ context.Context, filter entity.PriceFilter) (*entity.PriceResult, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.filters = append(f.filters, filter)
	f.mu.Unlock()
	return f.fn(filter)
}

func items(list ...entity.RetailPrice) func(entity.PriceFilter) (*entity.PriceResult, error) {
	return func(f entity.PriceFilter) (*entity.PriceResult, error) {
		return &entity.PriceResult{Items: list, Currency: f.CurrencyCode}, nil
	}
}

func testConfig() *config.Config {
	conf := &config.Config{}
	conf.Azure.Currency = "USD"
	conf.Azure.DefaultLimit = 50
	conf.Cache.TTL = time.Minute
	conf.Catalog.Primary, conf.Catalog.Additional = config.DefaultCatalog()
	return conf
}

func newTestCore(prices Prices) *Core {
	c := New(slog.New(slog.NewTextHandler(io.Discard, nil)), testConfig())
	c.SetPrices(prices)
	return c
}

func TestSearch_UsesCache(t *testing.T) {
	prices := &fakePrices{fn: items(entity.RetailPrice{SkuName: "D2 v3", RetailPrice: 0.1})}
	c := newTestCore(prices)
	mem := cache.NewMemoryCache(0)
	defer mem.Close()
	c.SetCache(mem)

	f := entity.PriceFilter{ServiceName: "Virtual Machines"}
	for i := 0; i < 3; i++ {
		result, err := c.search(context.Background(), f)
		if err != nil {
			t.Fatal(err)
		}
		if len(result.Items) != 1 {
			t.Fatalf("items = %d, want 1", len(result.Items))
		}
	}
	if n := prices.calls.Load(); n != 1 {
		t.Errorf("upstream calls = %d, want 1", n)
	}
	if stats := c.CacheStats(); stats == nil || stats.Hits != 2 {
		t.Errorf("CacheStats() = %+v", stats)
	}
}

func TestSearch_DefaultsApplied(t *testing.T) {
	prices := &fakePrices{fn: items()}
	c := newTestCore(prices)

	if _, err := c.search(context.Background(), entity.PriceFilter{ServiceName: "Storage"}); err != nil {
		t.Fatal(err)
	}
	got := prices.filters[0]
	if got.CurrencyCode != "USD" || got.Limit != 50 {
		t.Errorf("filter = %+v, want USD and limit 50", got)
	}
}

func TestSearch_CollapsesConcurrentCalls(t *testing.T) {
	release := make(chan struct{})
	prices := &fakePrices{fn: func(f entity.PriceFilter) (*entity.PriceResult, error) {
		<-release
		return &entity.PriceResult{Items: []entity.RetailPrice{{SkuName: "A"}}}, nil
	}}
	c := newTestCore(prices)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.search(context.Background(), entity.PriceFilter{ServiceName: "Storage"}); err != nil {
				t.Error(err)
			}
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := prices.calls.Load(); n != 1 {
		t.Errorf("upstream calls = %d, want 1", n)
	}
}

func TestSearch_NoPrices(t *testing.T) {
	c := New(slog.New(slog.NewTextHandler(io.Discard, nil)), testConfig())
	if _, err := c.search(context.Background(), entity.PriceFilter{}); err == nil {
		t.Error("search without prices service should fail")
	}
}

func TestSearch_ErrorNotCached(t *testing.T) {
	upstream := errors.New("boom")
	fail := true
	prices := &fakePrices{fn: func(f entity.PriceFilter) (*entity.PriceResult, error) {
		if fail {
			return nil, upstream
		}
		return &entity.PriceResult{}, nil
	}}
	c := newTestCore(prices)
	mem := cache.NewMemoryCache(0)
	defer mem.Close()
	c.SetCache(mem)

	if _, err := c.search(context.Background(), entity.PriceFilter{}); !errors.Is(err, upstream) {
		t.Fatalf("err = %v, want upstream error", err)
	}
	fail = false
	if _, err := c.search(context.Background(), entity.PriceFilter{}); err != nil {
		t.Fatalf("second search: %v", err)
	}
	if n := prices.calls.Load(); n != 2 {
		t.Errorf("upstream calls = %d, want 2", n)
	}
}

// blockingPrices holds every search until release is closed and reports
// whether the upstream context was still live at that point.
type blockingPrices struct {
	started chan struct{}
	release chan struct{}
	ctxErr  atomic.Value
	calls   atomic.Int32
}

func (b *blockingPrices) Search(ctx context.Context, f entity.PriceFilter) (*entity.PriceResult, error) {
	if b.calls.Add(1) == 1 {
		close(b.started)
	}
	<-b.release
	if err := ctx.Err(); err != nil {
		b.ctxErr.Store(err)
		return nil, err
	}
	return &entity.PriceResult{Items: []entity.RetailPrice{{SkuName: "D2s v3", RetailPrice: 0.096}}, Currency: f.CurrencyCode}, nil
}

func TestSearch_CanceledCallerDoesNotFailOthers(t *testing.T) {
	prices := &blockingPrices{started: make(chan struct{}), release: make(chan struct{})}
	c := New(slog.New(slog.NewTextHandler(io.Discard, nil)), testConfig())
	c.SetPrices(prices)
	mem := cache.NewMemoryCache(0)
	defer mem.Close()
	c.SetCache(mem)

	f := entity.PriceFilter{ServiceName: "Virtual Machines", Region: "eastus"}

	leaderCtx, cancelLeader := context.WithCancel(context.Background())
	leaderErr := make(chan error, 1)
	go func() {
		_, err := c.search(leaderCtx, f)
		leaderErr <- err
	}()
	<-prices.started

	type outcome struct {
		result *entity.PriceResult
		err    error
	}
	follower := make(chan outcome, 1)
	go func() {
		result, err := c.search(context.Background(), f)
		follower <- outcome{result, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelLeader()
	if err := <-leaderErr; !errors.Is(err, context.Canceled) {
		t.Errorf("leader err = %v, want context.Canceled", err)
	}
	close(prices.release)

	got := <-follower
	if got.err != nil {
		t.Fatalf("follower err = %v", got.err)
	}
	if len(got.result.Items) != 1 {
		t.Errorf("follower items = %d, want 1", len(got.result.Items))
	}
	if err := prices.ctxErr.Load(); err != nil {
		t.Errorf("upstream context was canceled: %v", err)
	}
	if n := prices.calls.Load(); n != 1 {
		t.Errorf("upstream calls = %d, want 1", n)
	}
	if _, found := mem.Get(context.Background(), filterKey(entity.PriceFilter{
		ServiceName: "Virtual Machines", Region: "eastus", CurrencyCode: "USD", Limit: 50,
	})); !found {
		t.Error("result of the shared call should be cached")
	}
}

func TestSearch_DropsUnreadableCacheEntry(t *testing.T) {
	prices := &fakePrices{fn: items(entity.RetailPrice{SkuName: "Hot LRS", RetailPrice: 0.0208})}
	c := newTestCore(prices)
	mem := cache.NewMemoryCache(0)
	defer mem.Close()
	c.SetCache(mem)

	f := entity.PriceFilter{ServiceName: "Storage", CurrencyCode: "USD", Limit: 50}
	key := filterKey(f)
	mem.Set(context.Background(), key, []byte("{not json"), time.Minute)

	result, err := c.search(context.Background(), f)
	if err != nil {
		t.Fatal(err)
	}
	if len(result.Items) != 1 {
		t.Errorf("items = %d, want 1", len(result.Items))
	}
	data, found := mem.Get(context.Background(), key)
	if !found || string(data) == "{not json" {
		t.Errorf("cache entry = %q, want a fresh result", data)
	}
}

func TestCacheHealth(t *testing.T) {
	c := newTestCore(&fakePrices{fn: items()})
	if err := c.CacheHealth(context.Background()); err != nil {
		t.Errorf("CacheHealth() without cache = %v", err)
	}
	mem := cache.NewMemoryCache(0)
	defer mem.Close()
	c.SetCache(mem)
	if err := c.CacheHealth(context.Background()); err != nil {
		t.Errorf("CacheHealth() = %v", err)
	}
}
