package reqlog

import (
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"azurepricing/internal/lib/sl"
	"azurepricing/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func New(log *slog.Logger) func(next http.Handler) http.Handler {
	mod := sl.Module("middleware.reqlog")
	log.With(mod).Info("request log middleware initialized")

	return func(next http.Handler) http.Handler {

		fn := func(w http.ResponseWriter, r *http.Request) {
			id := middleware.GetReqID(r.Context())
			remote := ClientIP(r.RemoteAddr, r.Header.Get("X-Forwarded-For"))
			logger := log.With(
				mod,
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", remote),
				slog.String("request_id", id),
			)
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			if id != "" {
				ww.Header().Set("X-Request-ID", id)
			}

			t1 := time.Now()
			defer func() {
				duration := time.Since(t1)
				route := ""
				if rctx := chi.RouteContext(r.Context()); rctx != nil {
					route = rctx.RoutePattern()
				}
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				metrics.ObserveHTTP(r.Method, route, status, duration)

				logger.With(
					slog.Int("status", status),
					slog.Int("size", ww.BytesWritten()),
					slog.Float64("duration", duration.Seconds()),
				).Info("incoming request")
			}()

			next.ServeHTTP(ww, r)
		}

		return http.HandlerFunc(fn)
	}
}

// ClientIP returns the first X-Forwarded-For address when present,
// otherwise the remote address, without a port.
func ClientIP(remoteAddr string, xForwardedFor string) string {
	if xForwardedFor != "" {
		ip := strings.TrimSpace(strings.Split(xForwardedFor, ",")[0])
		if host, _, err := net.SplitHostPort(ip); err == nil {
			return host
		}
		if ip != "" {
			return ip
		}
	}

	if host, _, err := net.SplitHostPort(remoteAddr); err == nil {
		return host
	}
	return remoteAddr
}
