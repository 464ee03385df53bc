package pricing

import (
	"log/slog"
	"net/http"

	"azurepricing/internal/lib/api/request"
	"azurepricing/internal/lib/api/response"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func RecommendRegions(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.pricing.RecommendRegions"
		log := requestLogger(logger, r, op)

		topN, err := request.QueryInt(r, "top_n", 0)
		if err != nil {
			response.RenderError(w, r, badQuery("top_n", err))
			return
		}

		result, err := handler.RecommendRegions(r.Context(),
			request.QueryString(r, "service_name", ""),
			request.QueryString(r, "sku_name", ""),
			topN,
			request.QueryString(r, "currency_code", ""),
		)
		if err != nil {
			fail(w, r, log, err)
			return
		}
		render.JSON(w, r, response.Ok(result).WithRequestID(middleware.GetReqID(r.Context())))
	}
}

func Reservations(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.pricing.Reservations"
		log := requestLogger(logger, r, op)

		result, err := handler.ReservationPricing(r.Context(),
			request.QueryString(r, "service_name", ""),
			request.QueryString(r, "sku_name", ""),
			request.QueryString(r, "region", ""),
			request.QueryString(r, "currency_code", ""),
		)
		if err != nil {
			fail(w, r, log, err)
			return
		}
		render.JSON(w, r, response.Ok(result).WithRequestID(middleware.GetReqID(r.Context())))
	}
}
