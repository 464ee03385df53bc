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

func Estimate(logger *slog.Logger, handler Core) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.pricing.Estimate"
		log := requestLogger(logger, r, op)

		var req entity.CostEstimateRequest
		if err := request.Decode(r, &req); err != nil {
			failDecode(w, r, log, err)
			return
		}

		result, err := handler.EstimateCosts(r.Context(), req)
		if err != nil {
			fail(w, r, log, err)
			return
		}
		render.JSON(w, r, response.Ok(result).WithRequestID(middleware.GetReqID(r.Context())))
	}
}
