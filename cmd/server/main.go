package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/foxsrv/companyeconomy/internal/config"
	"github.com/foxsrv/companyeconomy/internal/database"
	"github.com/foxsrv/companyeconomy/internal/handler"
	"github.com/foxsrv/companyeconomy/internal/jobs"
	"github.com/foxsrv/companyeconomy/internal/middleware"
	"github.com/foxsrv/companyeconomy/internal/repository"
	"github.com/foxsrv/companyeconomy/internal/service"
	"github.com/foxsrv/companyeconomy/pkg/jwt"
)

func main() {
	// Initialize structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection
	db := database.NewSurrealDB(database.Config{
		Host:      cfg.Database.Host,
		Port:      cfg.Database.Port,
		User:      cfg.Database.User,
		Password:  cfg.Database.Password,
		Namespace: cfg.Database.Namespace,
		Database:  cfg.Database.Database,
	})

	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		slog.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() { _ = db.Close() }()

	slog.Info("connected to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Database),
	)

	// Initialize JWT service
	jwtService, err := jwt.NewService(jwt.Config{
		PrivateKeyPath: cfg.JWT.PrivateKeyPath,
		PublicKeyPath:  cfg.JWT.PublicKeyPath,
		Issuer:         cfg.JWT.Issuer,
		ExpirationMins: cfg.JWT.ExpirationMins,
	})
	if err != nil {
		slog.Error("failed to initialize JWT service", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize repositories
	companyRepo := repository.NewCompanyRepository(db)
	ledgerRepo := repository.NewLedgerRepository(db)

	// Initialize console command executor. Without a bridge URL commands
	// are logged instead of forwarded.
	var sink service.CommandSink
	if cfg.Executor.BridgeURL != "" {
		sink = service.NewHTTPSink(cfg.Executor.BridgeURL)
	} else {
		slog.Info("no bridge URL configured, console commands will be logged only")
		sink = service.LogSink{}
	}
	executor := service.NewAsyncExecutor(sink, cfg.Executor.QueueSize)
	executor.Start()
	defer executor.Stop()

	// Initialize presence registry and event hub
	presence := service.NewPresenceRegistry()
	eventHub := service.NewEventHub()
	defer eventHub.Close()

	// Initialize company store and service
	store := service.NewCompanyStore(companyRepo, executor)
	companyService := service.NewCompanyService(service.CompanyServiceConfig{
		Store:    store,
		Ledger:   ledgerRepo,
		Presence: presence,
		Notifier: eventHub,
	})

	// Load company state; an empty backend gets the default company
	if err := companyService.Reload(ctx); err != nil {
		slog.Error("failed to load companies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize payroll scheduler
	payrollScheduler := jobs.NewPayrollScheduler(companyService, cfg.Payroll.Interval)
	payrollScheduler.Start()
	defer payrollScheduler.Stop()

	// Initialize rate limiter
	rateLimiter := middleware.NewRateLimiter(middleware.RateLimitConfig{
		Rate:   60,
		Window: time.Minute,
		Burst:  20,
	})
	defer rateLimiter.Stop()

	// Initialize idempotency store
	idempotencyStore := middleware.NewIdempotencyStore(middleware.IdempotencyConfig{
		TTL:     24 * time.Hour,
		Cleanup: time.Hour,
	})
	defer idempotencyStore.Stop()

	// Initialize handlers
	companyHandler := handler.NewCompanyHandler(companyService)
	adminHandler := handler.NewAdminHandler(companyService)
	presenceHandler := handler.NewPresenceHandler(presence)
	eventsHandler := handler.NewEventsHandler(eventHub)

	// Create router and register routes
	mux := http.NewServeMux()

	// Health check endpoint
	mux.HandleFunc("GET /health", handler.Health)

	authMiddleware := middleware.Auth(jwtService)
	adminMiddleware := middleware.AdminOnly(jwtService)
	bridgeMiddleware := middleware.BridgeAuth(jwtService, cfg.Executor.KeyHash)

	// Company command endpoints
	mux.Handle("POST /v1/company/hire", authMiddleware(http.HandlerFunc(companyHandler.Hire)))
	mux.Handle("POST /v1/company/fire", authMiddleware(http.HandlerFunc(companyHandler.Fire)))
	mux.Handle("POST /v1/company/leave", authMiddleware(http.HandlerFunc(companyHandler.Leave)))
	mux.Handle("POST /v1/company/deposit", authMiddleware(http.HandlerFunc(companyHandler.Deposit)))
	mux.Handle("POST /v1/company/withdraw", authMiddleware(http.HandlerFunc(companyHandler.Withdraw)))
	mux.Handle("GET /v1/company/info", authMiddleware(http.HandlerFunc(companyHandler.Info)))
	mux.Handle("GET /v1/companies", authMiddleware(http.HandlerFunc(companyHandler.List)))
	mux.Handle("GET /v1/ledger", authMiddleware(http.HandlerFunc(companyHandler.Balance)))

	// SSE notification stream
	mux.Handle("GET /v1/events/stream", authMiddleware(http.HandlerFunc(eventsHandler.Stream)))

	// Presence endpoints - reported by the game server bridge
	mux.Handle("POST /v1/presence/{playerId}/connect", bridgeMiddleware(http.HandlerFunc(presenceHandler.Connect)))
	mux.Handle("POST /v1/presence/{playerId}/disconnect", bridgeMiddleware(http.HandlerFunc(presenceHandler.Disconnect)))
	mux.Handle("GET /v1/presence/{playerId}", authMiddleware(http.HandlerFunc(presenceHandler.Status)))

	// Admin endpoints - requires admin role
	mux.Handle("POST /v1/admin/reload", adminMiddleware(http.HandlerFunc(adminHandler.Reload)))
	mux.Handle("POST /v1/companies", adminMiddleware(http.HandlerFunc(adminHandler.CreateCompany)))
	mux.Handle("DELETE /v1/companies/{name}", adminMiddleware(http.HandlerFunc(adminHandler.DeleteCompany)))

	// Apply global middleware
	wrapped := middleware.Chain(
		mux,
		middleware.RequestID,
		middleware.Logger,
		middleware.Recovery,
		middleware.CORS(cfg.Server.AllowedOrigins),
		middleware.RateLimit(rateLimiter),
		middleware.Idempotency(idempotencyStore),
	)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      wrapped,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Server.Port),
			slog.String("env", cfg.Server.Env),
		)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server error", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", slog.String("error", err.Error()))
	}

	slog.Info("server exited")
}
