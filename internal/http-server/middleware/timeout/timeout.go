package timeout

import (
	"context"
	"errors"
	"net/http"
	"time"

	"azurepricing/internal/lib/api/response"
	apierrors "azurepricing/internal/lib/errors"
)

// Timeout bounds the request context. A handler that returns after the
// deadline without writing a response gets a 504.
func Timeout(d time.Duration) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		fn := func(w http.ResponseWriter, r *http.Request) {
			if d <= 0 {
				next.ServeHTTP(w, r)
				return
			}
			ctx, cancel := context.WithTimeout(r.Context(), d)
			defer cancel()

			tw := &trackingWriter{ResponseWriter: w}
			r = r.WithContext(ctx)
			next.ServeHTTP(tw, r)

			if !tw.written && errors.Is(ctx.Err(), context.DeadlineExceeded) {
				response.RenderError(tw, r, apierrors.NewTimeoutError(r.URL.Path))
			}
		}
		return http.HandlerFunc(fn)
	}
}

type trackingWriter struct {
	http.ResponseWriter
	written bool
}

func (t *trackingWriter) WriteHeader(code int) {
	t.written = true
	t.ResponseWriter.WriteHeader(code)
}

func (t *trackingWriter) Write(b []byte) (int, error) {
	t.written = true
	return t.ResponseWriter.Write(b)
}
