package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"azurepricing/internal/config"
	errhandlers "azurepricing/internal/http-server/handlers/errors"
	"azurepricing/internal/http-server/handlers/health"
	"azurepricing/internal/http-server/handlers/pricing"
	"azurepricing/internal/http-server/middleware/reqlog"
	"azurepricing/internal/http-server/middleware/timeout"
	"azurepricing/internal/lib/sl"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Server struct {
	conf       *config.Config
	httpServer *http.Server
	log        *slog.Logger
}

type Handler interface {
	pricing.Core
	health.Core
}

func New(conf *config.Config, log *slog.Logger, handler Handler) *Server {
	server := &Server{
		conf: conf,
		log:  log.With(sl.Module("api.server")),
	}

	httpLog := slog.NewLogLogger(log.Handler(), slog.LevelError)
	server.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%s", conf.Listen.BindIP, conf.Listen.Port),
		Handler:           NewRouter(conf, log, handler),
		ErrorLog:          httpLog,
		ReadHeaderTimeout: conf.Listen.Timeout,
	}

	return server
}

func NewRouter(conf *config.Config, log *slog.Logger, handler Handler) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recoverer)
	router.Use(reqlog.New(log))
	router.Use(timeout.Timeout(conf.Listen.Timeout))
	router.Use(render.SetContentType(render.ContentTypeJSON))

	router.NotFound(errhandlers.NotFound(log))
	router.MethodNotAllowed(errhandlers.NotAllowed(log))

	router.Get("/health", health.Health(log, handler))
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())

	router.Route("/api/pricing", func(r chi.Router) {
		r.Get("/azure-service", pricing.AzureService(log, handler))
		r.Get("/azure-additional-services", pricing.AdditionalServices(log, handler))
		r.Get("/search", pricing.Search(log, handler))
		r.Post("/compare", pricing.Compare(log, handler))
		r.Post("/estimate", pricing.Estimate(log, handler))
		r.Get("/skus", pricing.Skus(log, handler))
		r.Get("/discover", pricing.Discover(log, handler))
		r.Get("/regions/recommend", pricing.RecommendRegions(log, handler))
		r.Get("/reservations", pricing.Reservations(log, handler))
	})

	return router
}

// Start listens and serves until Shutdown is called.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.httpServer.Addr)
	if err != nil {
		return err
	}

	s.log.Info("starting api server", slog.String("address", s.httpServer.Addr))

	err = s.httpServer.Serve(listener)
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("stopping api server")
	return s.httpServer.Shutdown(ctx)
}
