package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"azurepricing/entity"
	"azurepricing/internal/config"
	"azurepricing/internal/lib/sl"
	"azurepricing/internal/metrics"
)

const (
	// maxResultsPerRequest is the page size cap of the Retail Prices API.
	maxResultsPerRequest = 1000
	maxRetryAfter        = time.Minute
	maxErrorBody         = 512
)

var ErrUpstream = errors.New("azure retail prices request failed")

// StatusError is a non-200 response from the pricing API.
type StatusError struct {
	StatusCode int
	Body       string
	RetryAfter time.Duration
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

func (e *StatusError) retryable() bool {
	return e.StatusCode == http.StatusTooManyRequests || e.StatusCode >= http.StatusInternalServerError
}

type AzurePrices struct {
	baseUrl    string
	apiVersion string
	maxRetries int
	retryWait  time.Duration
	maxPages   int
	client     *http.Client
	limiter    *Limiter
	sleep      func(ctx context.Context, d time.Duration) error
	log        *slog.Logger
}

func NewAzurePrices(conf *config.Config, log *slog.Logger) (*AzurePrices, error) {
	u, err := url.Parse(conf.Azure.BaseUrl)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid azure base url %q", conf.Azure.BaseUrl)
	}

	service := &AzurePrices{
		baseUrl:    conf.Azure.BaseUrl,
		apiVersion: conf.Azure.ApiVersion,
		maxRetries: conf.Azure.MaxRetries,
		retryWait:  conf.Azure.RetryWait,
		maxPages:   conf.Azure.MaxPages,
		client:     &http.Client{Timeout: conf.Azure.Timeout},
		limiter:    NewLimiter(conf.Azure.RateLimit, conf.Azure.RateBurst),
		sleep:      sleepContext,
		log:        log.With(sl.Module("azure-prices")),
	}
	if service.maxPages < 1 {
		service.maxPages = 1
	}
	if service.maxRetries < 0 {
		service.maxRetries = 0
	}

	return service, nil
}

// Search queries the Retail Prices API, following NextPageLink until
// f.Limit items are collected or the page cap is reached.
func (s *AzurePrices) Search(ctx context.Context, f entity.PriceFilter) (*entity.PriceResult, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}

	filters := BuildFilter(f)
	params := url.Values{}
	params.Set("api-version", s.apiVersion)
	if f.CurrencyCode != "" {
		params.Set("currencyCode", f.CurrencyCode)
	}
	if len(filters) > 0 {
		params.Set("$filter", strings.Join(filters, " and "))
	}
	if limit < maxResultsPerRequest {
		params.Set("$top", strconv.Itoa(limit))
	}

	next := s.baseUrl + "?" + params.Encode()
	result := &entity.PriceResult{
		Items:    []entity.RetailPrice{},
		Currency: f.CurrencyCode,
		Filters:  filters,
	}

	for pages := 0; next != ""; pages++ {
		if pages == s.maxPages {
			result.HasMore = true
			break
		}

		page, err := s.get(ctx, next)
		if err != nil {
			return nil, err
		}
		result.Items = append(result.Items, page.Items...)
		next = page.NextPageLink

		if len(result.Items) >= limit {
			result.HasMore = next != "" || len(result.Items) > limit
			result.Items = result.Items[:limit]
			break
		}
	}

	if result.Currency == "" && len(result.Items) > 0 {
		result.Currency = result.Items[0].CurrencyCode
	}

	s.log.With(
		slog.Any("filters", filters),
		slog.Int("count", len(result.Items)),
		slog.Bool("has_more", result.HasMore),
	).Debug("price search")

	return result, nil
}

func (s *AzurePrices) get(ctx context.Context, fullURL string) (*entity.RetailPricePage, error) {
	var lastErr error

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			wait := s.retryWait * time.Duration(attempt)
			var statusErr *StatusError
			if errors.As(lastErr, &statusErr) && statusErr.RetryAfter > 0 {
				wait = statusErr.RetryAfter
			}
			s.log.With(
				slog.Int("attempt", attempt),
				slog.Duration("wait", wait),
				sl.Err(lastErr),
			).Warn("retrying azure prices request")
			if err := s.sleep(ctx, wait); err != nil {
				return nil, err
			}
		}

		if err := s.limiter.Acquire(ctx); err != nil {
			return nil, err
		}

		t := time.Now()
		page, err := s.fetch(ctx, fullURL)
		if err == nil {
			metrics.ObserveUpstream(metrics.OutcomeSuccess, time.Since(t))
			return page, nil
		}
		if ctx.Err() != nil {
			metrics.ObserveUpstream(metrics.OutcomeFailure, time.Since(t))
			return nil, ctx.Err()
		}

		lastErr = err
		var statusErr *StatusError
		if errors.As(err, &statusErr) && !statusErr.retryable() {
			metrics.ObserveUpstream(metrics.OutcomeFailure, time.Since(t))
			return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
		}
		if attempt < s.maxRetries {
			metrics.ObserveUpstream(metrics.OutcomeRetry, time.Since(t))
		} else {
			metrics.ObserveUpstream(metrics.OutcomeFailure, time.Since(t))
		}
	}

	s.log.With(
		slog.String("url", fullURL),
		sl.Err(lastErr),
	).Error("azure prices request failed")

	return nil, fmt.Errorf("%w after %d attempts: %w", ErrUpstream, s.maxRetries+1, lastErr)
}

func (s *AzurePrices) fetch(ctx context.Context, fullURL string) (*entity.RetailPricePage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
			RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"), time.Now()),
		}
	}

	var page entity.RetailPricePage
	if err = json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return &page, nil
}

// BuildFilter renders the OData conditions for f, in a stable order.
func BuildFilter(f entity.PriceFilter) []string {
	conditions := []string{}
	if f.ServiceName != "" {
		conditions = append(conditions, fmt.Sprintf("serviceName eq '%s'", quote(f.ServiceName)))
	}
	if f.Region != "" {
		conditions = append(conditions, fmt.Sprintf("armRegionName eq '%s'", quote(f.Region)))
	}
	if f.SkuName != "" {
		conditions = append(conditions, fmt.Sprintf("contains(skuName, '%s')", quote(f.SkuName)))
	}
	if f.ArmSkuName != "" {
		conditions = append(conditions, fmt.Sprintf("armSkuName eq '%s'", quote(f.ArmSkuName)))
	}
	if f.MeterName != "" {
		conditions = append(conditions, fmt.Sprintf("meterName eq '%s'", quote(f.MeterName)))
	}
	if f.ProductName != "" {
		conditions = append(conditions, fmt.Sprintf("contains(productName, '%s')", quote(f.ProductName)))
	}
	if f.PriceType != "" {
		conditions = append(conditions, fmt.Sprintf("priceType eq '%s'", quote(f.PriceType)))
	}
	return conditions
}

func quote(v string) string {
	return strings.ReplaceAll(v, "'", "''")
}

func parseRetryAfter(v string, now time.Time) time.Duration {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0
	}
	var d time.Duration
	if secs, err := strconv.Atoi(v); err == nil {
		d = time.Duration(secs) * time.Second
	} else if at, err := http.ParseTime(v); err == nil {
		d = at.Sub(now)
	}
	if d < 0 {
		return 0
	}
	if d > maxRetryAfter {
		return maxRetryAfter
	}
	return d
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
