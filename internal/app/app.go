package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"golang.org/x/sync/errgroup"

	"sheetops/internal/config"
	apierrors "sheetops/internal/errors"
	"sheetops/internal/infrastructure"
	customMiddleware "sheetops/internal/middleware"
	"sheetops/internal/services"
	handlers "sheetops/internal/transport/http"
	"sheetops/pkg/contracts"
)

// Application represents the main application container
type Application struct {
	Config            *config.Config
	Paths             *config.Paths
	Router            *chi.Mux
	Server            *http.Server
	Logger            *slog.Logger
	OTelProviders     *infrastructure.OTelProviders
	Metrics           *infrastructure.ProcessingMetrics
	ErrorHandler      *apierrors.ErrorHandler
	ProcessingService *services.ProcessingService
	HealthService     *services.HealthService
}

// NewApplication loads configuration, initializes the global logger and
// builds the application
func NewApplication() (*Application, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	return New(cfg, logger)
}

// New wires services, handlers and the HTTP server from cfg
func New(cfg *config.Config, logger *slog.Logger) (*Application, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Application starting",
		slog.String("name", config.AppName),
		slog.String("version", contracts.Version))

	paths, err := config.ResolvePaths(cfg.Paths)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve paths: %w", err)
	}
	if err := paths.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("failed to ensure directories: %w", err)
	}
	paths.LogPathResolution(logger)

	otelProviders, err := infrastructure.InitializeOTel(infrastructure.NewOTelConfig(cfg.Telemetry), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize OpenTelemetry: %w", err)
	}

	metrics, err := infrastructure.CreateProcessingMetrics(otelProviders.Meter)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	a := &Application{
		Config:        cfg,
		Paths:         paths,
		Logger:        logger,
		OTelProviders: otelProviders,
		Metrics:       metrics,
		ErrorHandler:  apierrors.NewErrorHandler(logger, cfg.Logging.Development),
	}

	if err := a.initializeServices(); err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	a.setupRouter()
	a.createServer()

	return a, nil
}

// initializeServices initializes all application services
func (a *Application) initializeServices() error {
	processing, err := services.NewProcessingService(
		services.PolicyFromConfig(a.Config.Policy),
		a.OTelProviders.Tracer,
		a.Metrics,
		a.Logger,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize processing service: %w", err)
	}
	a.ProcessingService = processing
	a.HealthService = services.NewHealthService(a.Paths, a.Logger)
	return nil
}

// setupRouter configures the HTTP router with all routes.
// Ordering: RequestID, RealIP, OTel, Logger, Recoverer, then the rest.
func (a *Application) setupRouter() {
	r := chi.NewRouter()

	r.Use(customMiddleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(customMiddleware.NewOTelMiddleware(a.OTelProviders, a.Metrics).Handler)
	r.Use(customMiddleware.StructuredLogger(a.Logger))
	r.Use(apierrors.RecoveryMiddleware(a.ErrorHandler))
	r.Use(customMiddleware.SecurityHeaders)

	if a.Config.RateLimit.Enabled {
		r.Use(customMiddleware.NewRateLimiter(
			a.Config.RateLimit.RPS,
			a.Config.RateLimit.Burst,
			a.Logger,
			a.ErrorHandler,
		).Handler)
	}

	r.NotFound(a.ErrorHandler.NotFound)
	r.MethodNotAllowed(a.ErrorHandler.MethodNotAllowed)

	a.setupAPIRoutes(r)

	if a.OTelProviders.PrometheusHTTP != nil {
		r.Handle("/metrics", a.OTelProviders.PrometheusHTTP)
	}

	a.Router = r
}

// setupAPIRoutes configures API endpoints
func (a *Application) setupAPIRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))
		r.Use(customMiddleware.Timeout(a.Config.Server.WriteTimeout, a.Logger))

		healthHandler := handlers.NewHealthHandler(a.HealthService, a.Logger)
		r.Mount("/health", healthHandler.Routes())
		r.Get("/version", healthHandler.Version)

		r.Route("/v1", func(r chi.Router) {
			r.Use(customMiddleware.MaxBodySize(a.Config.Server.MaxUploadBytes))

			processingHandler := handlers.NewProcessingHandler(a.ProcessingService, a.ErrorHandler, a.Logger)
			r.Mount("/", processingHandler.Routes())
		})
	})
}

// createServer creates the HTTP server
func (a *Application) createServer() {
	a.Server = &http.Server{
		Addr:           a.Config.Server.Addr(),
		Handler:        a.Router,
		ReadTimeout:    a.Config.Server.ReadTimeout,
		WriteTimeout:   a.Config.Server.WriteTimeout,
		IdleTimeout:    a.Config.Server.IdleTimeout,
		MaxHeaderBytes: a.Config.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(a.Logger.Handler(), slog.LevelError),
	}
}

// Run serves HTTP until ctx is cancelled or SIGINT/SIGTERM arrives, then
// shuts down gracefully
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.Logger.InfoContext(gctx, "Server listening",
			slog.String("address", a.Server.Addr),
			slog.String("level", a.Config.Logging.Level))
		if err := a.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		a.Logger.Info("Shutdown signal received")
		return a.Stop(context.Background())
	})

	return g.Wait()
}

// Stop gracefully stops the application
func (a *Application) Stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.Config.Server.ShutdownTimeout)
	defer cancel()

	var errs []error
	if err := a.Server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, fmt.Errorf("server shutdown error: %w", err))
	}

	if a.OTelProviders != nil {
		if err := a.OTelProviders.Shutdown(shutdownCtx); err != nil {
			a.Logger.Error("Error shutting down OpenTelemetry", slog.String("error", err.Error()))
		}
	}

	a.Logger.Info("Application shutdown complete")
	return errors.Join(errs...)
}
