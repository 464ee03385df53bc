package pricing

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"azurepricing/impl/core"
	"azurepricing/internal/lib/api/request"
	"azurepricing/internal/lib/api/response"
	apierrors "azurepricing/internal/lib/errors"
	"azurepricing/internal/lib/sl"
	"azurepricing/internal/services"

	"github.com/go-chi/chi/v5/middleware"
)

const upstreamService = "azure-retail-prices"

func requestLogger(logger *slog.Logger, r *http.Request, op string) *slog.Logger {
	return logger.With(
		sl.Module("handlers.pricing"),
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
}

// toAPIError maps core, client and decode errors to API errors.
func toAPIError(err error) *apierrors.APIError {
	var apiErr *apierrors.APIError
	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, request.ErrEmptyBody):
		return apierrors.NewBadRequestError("Empty request body")
	case errors.Is(err, request.ErrValidation), errors.Is(err, core.ErrInvalidInput):
		return apierrors.NewValidationError(err.Error())
	case errors.Is(err, core.ErrNotFound):
		return apierrors.NewNotFoundError("Pricing data").WithDetail("reason", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return apierrors.NewTimeoutError("pricing lookup")
	case errors.Is(err, services.ErrUpstream):
		return apierrors.NewUpstreamError(upstreamService)
	default:
		return apierrors.NewInternalError("")
	}
}

func fail(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	apiErr := toAPIError(err)
	log = log.With(
		sl.Err(err),
		slog.String("error_code", string(apiErr.Code)),
	)
	if apiErr.HTTPStatus >= http.StatusInternalServerError {
		log.Error("pricing request failed")
	} else {
		log.Warn("pricing request rejected")
	}
	response.RenderError(w, r, apiErr)
}

// failDecode reports a request body that could not be decoded or validated.
func failDecode(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	if errors.Is(err, request.ErrEmptyBody) || errors.Is(err, request.ErrValidation) {
		fail(w, r, log, err)
		return
	}
	apiErr := apierrors.NewBadRequestError("Invalid request format")
	log.Warn("failed to decode request",
		sl.Err(err),
		slog.String("error_code", string(apiErr.Code)),
	)
	response.RenderError(w, r, apiErr)
}

func badQuery(name string, err error) *apierrors.APIError {
	return apierrors.NewInvalidInputError(name, err.Error())
}
