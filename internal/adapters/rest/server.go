package rest

import (
	"context"
	"marketplace-service/internal/core/domain"
	"marketplace-service/internal/core/port"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// ServerConfig carries what the router needs beyond the handlers.
type ServerConfig struct {
	Port               string
	CORSAllowedOrigins []string
	MetricsHandler     http.Handler
}

type metricsRecorder interface {
	httpObserver
	rejectionCounter
}

type Server struct {
	httpServer *http.Server
	logger     port.LoggerPort
}

func NewServer(cfg ServerConfig,
	listingHandlers *ListingHandler,
	catalogHandlers *CatalogHandler,
	orderHandlers *OrderHandler,
	authMiddleware *AuthMiddleware,
	limiter port.RateLimiterPort,
	metrics metricsRecorder,
	baseLogger port.LoggerPort) *Server {

	r := chi.NewRouter()

	r.Use(middleware.RealIP)
	r.Use(LoggerMiddleware(baseLogger), middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Trace-ID"},
		ExposedHeaders:   []string{"X-Trace-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if metrics != nil {
		r.Use(MetricsMiddleware(metrics))
	}
	r.Use(authMiddleware.OptionalSession)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if cfg.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", cfg.MetricsHandler)
	}

	r.Route("/api/v1", func(r chi.Router) {
		// public search surface
		r.Group(func(r chi.Router) {
			if limiter != nil {
				r.Use(RateLimitMiddleware(limiter, metrics))
			}
			r.Get("/listings", listingHandlers.Search)
			r.Get("/listings/{listingID}", listingHandlers.GetListing)
			r.Get("/catalog", catalogHandlers.GetCatalog)
			r.Get("/catalog/brands/{brandID}/models", catalogHandlers.GetBrandModels)
		})

		r.Route("/admin/orders", func(r chi.Router) {
			r.Use(authMiddleware.RequireRole(domain.RoleAdmin))
			r.Get("/", orderHandlers.ListOrders)
			r.Get("/{orderID}", orderHandlers.GetOrder)
			r.Patch("/{orderID}/status", orderHandlers.UpdateOrderStatus)
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           r,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: baseLogger,
	}
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	s.logger.Info("Starting REST server", port.Fields{"address": s.httpServer.Addr})
	return s.httpServer.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	s.logger.Info("Stopping REST server...", nil)
	return s.httpServer.Shutdown(ctx)
}
