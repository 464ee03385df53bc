package health

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"azurepricing/internal/cache"
)

type statsCore struct {
	stats     *cache.Stats
	healthErr error
}

func (s statsCore) CacheStats() *cache.Stats {
	return s.stats
}

func (s statsCore) CacheHealth(context.Context) error {
	return s.healthErr
}

func TestHealth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name       string
		core       statsCore
		wantStatus string
		wantCache  bool
	}{
		{"with cache", statsCore{stats: &cache.Stats{Backend: "memory", Hits: 3}}, StatusOk, true},
		{"without cache", statsCore{}, StatusOk, false},
		{"redis unreachable", statsCore{
			stats:     &cache.Stats{Backend: "redis"},
			healthErr: errors.New("dial tcp: connection refused"),
		}, StatusDegraded, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			Health(logger, tt.core)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rec.Code != http.StatusOK {
				t.Fatalf("Status = %d, want 200", rec.Code)
			}
			var body struct {
				Data    Status `json:"data"`
				Success bool   `json:"success"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatal(err)
			}
			if !body.Success || body.Data.Status != tt.wantStatus {
				t.Errorf("body = %+v, want status %q", body, tt.wantStatus)
			}
			if (body.Data.Cache != nil) != tt.wantCache {
				t.Errorf("cache present = %v, want %v", body.Data.Cache != nil, tt.wantCache)
			}
			if (tt.core.healthErr != nil) != (body.Data.CacheError != "") {
				t.Errorf("cache_error = %q", body.Data.CacheError)
			}
		})
	}
}
