package pricing

import (
	"fmt"
	"log/slog"
	"net/http"

	"azurepricing/entity"
	"azurepricing/internal/lib/api/request"
	"azurepricing/internal/lib/api/response"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func Search(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.pricing.Search"
		log := requestLogger(logger, r, op)

		limit, err := request.QueryInt(r, "limit", handler.DefaultLimit())
		if err != nil {
			response.RenderError(w, r, badQuery("limit", err))
			return
		}
		q := entity.PriceQuery{
			ServiceName:  request.QueryString(r, "service_name", ""),
			Region:       request.QueryString(r, "region", ""),
			SkuName:      request.QueryString(r, "sku_name", ""),
			PriceType:    request.QueryString(r, "price_type", ""),
			CurrencyCode: request.QueryString(r, "currency_code", handler.DefaultCurrency()),
			Limit:        limit,
		}
		if err = q.Bind(r); err != nil {
			fail(w, r, log, fmt.Errorf("%w: %w", request.ErrValidation, err))
			return
		}

		result, err := handler.SearchPrices(r.Context(), q)
		if err != nil {
			fail(w, r, log, err)
			return
		}
		log.Debug("price search", slog.Int("count", result.Count))
		render.JSON(w, r, response.Ok(result).WithRequestID(middleware.GetReqID(r.Context())))
	}
}
