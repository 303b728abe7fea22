package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ecpm-app/ecpm-backend/internal/api/handlers"
	"github.com/ecpm-app/ecpm-backend/internal/api/middleware"
	"github.com/ecpm-app/ecpm-backend/internal/application/service"
	"github.com/ecpm-app/ecpm-backend/internal/infrastructure/storage"
)

// Config holds API server configuration.
type Config struct {
	Port           int
	AllowedOrigins []string
}

// DefaultConfig returns sensible defaults for the API server.
func DefaultConfig() Config {
	return Config{
		Port:           8080,
		AllowedOrigins: []string{"http://localhost:3000", "http://localhost:5173"},
	}
}

// Server is the HTTP API server.
type Server struct {
	config     Config
	router     chi.Router
	httpServer *http.Server
	logger     *slog.Logger
	repo       storage.Repository
	dayService *service.DayService
}

// NewServer creates a new API server.
func NewServer(cfg Config, repo storage.Repository, dayService *service.DayService, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		config:     cfg,
		router:     chi.NewRouter(),
		logger:     logger,
		repo:       repo,
		dayService: dayService,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// setupMiddleware configures global middleware.
func (s *Server) setupMiddleware() {
	// CORS
	corsConfig := middleware.CORSConfig{
		AllowedOrigins: s.config.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}
	s.router.Use(middleware.CORS(corsConfig))

	// Request logging
	s.router.Use(middleware.Logging(s.logger))
}

// setupRoutes configures all API routes.
func (s *Server) setupRoutes() {
	// Health check (no /api prefix - for load balancers)
	healthHandler := handlers.NewHealthHandler()
	s.router.Get("/health", healthHandler.ServeHTTP)

	// API routes
	s.router.Route("/api", func(r chi.Router) {
		// Entry submission
		entriesHandler := handlers.NewEntriesHandler(s.dayService)
		r.Post("/entries", entriesHandler.Submit)

		// Daily records
		daysHandler := handlers.NewDaysHandler(s.dayService)
		r.Get("/days", daysHandler.List)
		r.Get("/days/{date}", daysHandler.Get)
		r.Put("/days/{date}", daysHandler.Replace)
		r.Delete("/days/{date}", daysHandler.Delete)
		r.Delete("/days/{date}/batches/{batchID}", daysHandler.DeleteBatch)

		// Page names
		pagesHandler := handlers.NewPagesHandler(s.repo)
		r.Get("/pages", pagesHandler.List)
		r.Post("/pages", pagesHandler.Add)
		r.Delete("/pages/{name}", pagesHandler.Delete)

		// Saved products
		productsHandler := handlers.NewProductsHandler(s.repo)
		r.Get("/products", productsHandler.List)
		r.Post("/products", productsHandler.Save)
		r.Delete("/products/{id}", productsHandler.Delete)

		// Reports
		reportsHandler := handlers.NewReportsHandler(s.dayService)
		r.Get("/reports/summary", reportsHandler.Summary)
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.config.Port)

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting API server", "addr", addr)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")

	if s.httpServer == nil {
		return nil
	}

	return s.httpServer.Shutdown(ctx)
}

// Router returns the chi router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}
