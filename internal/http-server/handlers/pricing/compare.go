package pricing

import (
	"log/slog"
	"net/http"

	"azurepricing/entity"
	"azurepricing/internal/lib/api/request"
	"azurepricing/internal/lib/api/response"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
)

func Compare(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.pricing.Compare"
		log := requestLogger(logger, r, op)

		var req entity.CompareRequest
		if err := request.Decode(r, &req); err != nil {
			failDecode(w, r, log, err)
			return
		}

		result, err := handler.ComparePrices(r.Context(), req)
		if err != nil {
			fail(w, r, log, err)
			return
		}
		log.Debug("price comparison",
			slog.String("type", result.ComparisonType),
			slog.Int("count", len(result.Comparisons)),
		)
		render.JSON(w, r, response.Ok(result).WithRequestID(middleware.GetReqID(r.Context())))
	}
}
