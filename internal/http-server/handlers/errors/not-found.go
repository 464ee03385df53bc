package errors

import (
	"log/slog"
	"net/http"

	"azurepricing/internal/lib/api/response"
	apierrors "azurepricing/internal/lib/errors"
)

func NotFound(_ *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.RenderError(w, r, apierrors.NewNotFoundError("Requested resource"))
	}
}
