package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	v1 "github.com/dineflow/dineflow/internal/api/v1"
	"github.com/dineflow/dineflow/internal/config"
	"github.com/dineflow/dineflow/internal/server/middleware"
)

// Server is the HTTP server that wires all application routes and middleware.
type Server struct {
	router     chi.Router
	httpServer *http.Server
	store      v1.DataStore
	booking    v1.BookingService
	cfg        *config.Config
}

// New creates a Server with all routes wired. The account surface lives at
// /api/v1/tenants; everything a restaurant does day to day is scoped under
// /api/v1/tenants/{tenantID}.
func New(ctx context.Context, cfg *config.Config, store v1.DataStore, bookingSvc v1.BookingService, events EventStreamer) *Server {
	router := chi.NewRouter()

	// Global middleware stack.
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(chimw.Logger)
	router.Use(chimw.Recoverer)
	router.Use(cors.New(cors.Options{
		AllowedOrigins:   cfg.Server.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	s := &Server{
		router:  router,
		store:   store,
		booking: bookingSvc,
		cfg:     cfg,
		httpServer: &http.Server{
			Addr:         cfg.Server.Addr,
			Handler:      router,
			ReadTimeout:  cfg.Server.ReadTimeout,
			WriteTimeout: cfg.Server.WriteTimeout,
		},
	}

	router.Route("/api/v1", func(r chi.Router) {
		// Account surface: register and list restaurants.
		r.Group(func(r chi.Router) {
			r.Use(middleware.RateLimitByIP(ctx, cfg.Server.RatePerSec, cfg.Server.RateBurst))

			accountConfig := huma.DefaultConfig("DineFlow Account API", "1.0.0")
			accountConfig.Servers = []*huma.Server{
				{URL: "/api/v1"},
			}
			accountAPI := humachi.New(r, accountConfig)
			registerAccountRoutes(accountAPI, store)
		})

		// Tenant-scoped surface: orders, reservations, tables, promotions.
		r.Route("/tenants/{tenantID}", func(r chi.Router) {
			r.Use(middleware.ResolveTenant())
			r.Use(middleware.RateLimit(ctx, cfg.Server.RatePerSec, cfg.Server.RateBurst))

			apiConfig := huma.DefaultConfig("DineFlow API", "1.0.0")
			apiConfig.Servers = []*huma.Server{
				{URL: "/api/v1/tenants/{tenantID}"},
			}
			api := humachi.New(r, apiConfig)
			registerTenantRoutes(api, store, bookingSvc)

			// Live order/reservation feed; SSE sits outside huma.
			r.Get("/events", streamTenantEvents(events))
		})
	})

	// Health check (unauthenticated).
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	return s
}

// Start begins listening for HTTP requests.
func (s *Server) Start(_ context.Context) error {
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server.Start: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}
