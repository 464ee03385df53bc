package pricing

import (
	"log/slog"
	"net/http"

	"azurepricing/internal/lib/api/request"
	"azurepricing/internal/lib/api/response"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func Skus(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.pricing.Skus"
		log := requestLogger(logger, r, op)

		limit, err := request.QueryInt(r, "limit", 0)
		if err != nil {
			response.RenderError(w, r, badQuery("limit", err))
			return
		}

		result, err := handler.DiscoverSkus(r.Context(),
			request.QueryString(r, "service_name", ""),
			request.QueryString(r, "region", ""),
			request.QueryString(r, "currency_code", ""),
			limit,
		)
		if err != nil {
			fail(w, r, log, err)
			return
		}
		render.JSON(w, r, response.Ok(result).WithRequestID(middleware.GetReqID(r.Context())))
	}
}

func Discover(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.pricing.Discover"
		log := requestLogger(logger, r, op)

		limit, err := request.QueryInt(r, "limit", 0)
		if err != nil {
			response.RenderError(w, r, badQuery("limit", err))
			return
		}

		result, err := handler.DiscoverServiceSkus(r.Context(),
			request.QueryString(r, "service_hint", ""),
			request.QueryString(r, "currency_code", ""),
			limit,
		)
		if err != nil {
			fail(w, r, log, err)
			return
		}
		log.Debug("service discovery",
			slog.String("search", result.OriginalSearch),
			slog.String("found", result.ServiceFound),
		)
		render.JSON(w, r, response.Ok(result).WithRequestID(middleware.GetReqID(r.Context())))
	}
}
