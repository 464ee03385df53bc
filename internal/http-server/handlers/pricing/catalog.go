package pricing

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"
)

// AzureService serves the primary catalog service in its bare documented shape.
func AzureService(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.pricing.AzureService"
		log := requestLogger(logger, r, op)

		result, err := handler.ServicePricing(r.Context())
		if err != nil {
			fail(w, r, log, err)
			return
		}
		log.Debug("service pricing", slog.String("service", result.Service))
		render.JSON(w, r, result)
	}
}

// AdditionalServices serves the additional catalog services in their bare documented shape.
func AdditionalServices(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.pricing.AdditionalServices"
		log := requestLogger(logger, r, op)

		result, err := handler.AdditionalServices(r.Context())
		if err != nil {
			fail(w, r, log, err)
			return
		}
		log.Debug("additional services", slog.Int("count", len(result.Services)))
		render.JSON(w, r, result)
	}
}
