package health

import (
	"context"
	"log/slog"
	"net/http"

	"azurepricing/internal/cache"
	"azurepricing/internal/lib/api/response"
	"azurepricing/internal/lib/sl"

	"github.com/go-chi/render"
)

type Core interface {
	CacheStats() *cache.Stats
	CacheHealth(ctx context.Context) error
}

const (
	StatusOk       = "ok"
	StatusDegraded = "degraded"
)

type Status struct {
	Status     string       `json:"status"`
	Cache      *cache.Stats `json:"cache,omitempty"`
	CacheError string       `json:"cache_error,omitempty"`
}

// Health reports the service state. An unreachable cache backend degrades
// the status but prices are still served from upstream.
func Health(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := Status{
			Status: StatusOk,
			Cache:  handler.CacheStats(),
		}
		if err := handler.CacheHealth(r.Context()); err != nil {
			logger.With(sl.Module("handlers.health"), sl.Err(err)).Warn("cache health check failed")
			status.Status = StatusDegraded
			status.CacheError = err.Error()
		}
		render.JSON(w, r, response.Ok(status))
	}
}
