package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/dkazlouski/currency_exchange_app/cmd/docs"
	"github.com/dkazlouski/currency_exchange_app/internal/clients/nbrb"
	"github.com/dkazlouski/currency_exchange_app/internal/core/services"
	"github.com/dkazlouski/currency_exchange_app/internal/handlers"
	"github.com/dkazlouski/currency_exchange_app/internal/middleware"
	"github.com/dkazlouski/currency_exchange_app/internal/platform/config"
	"github.com/dkazlouski/currency_exchange_app/internal/repositories/database/pgsql"
	"github.com/dkazlouski/currency_exchange_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Currency Exchange App API
// @version 1.0
// @description Currency conversion deals over official daily rates.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Wire repositories, the rates feed client and services
	repos := pgsql.NewRepositoryProvider(dbPool)
	feedClient := nbrb.New(cfg.NBRBBaseURL, cfg.NBRBTimeout)
	serviceContainer := services.NewServiceContainer(repos, feedClient)

	// One-shot sync on startup. A failure here must not prevent the process
	// from serving requests; the scheduler or a manual sync can catch up.
	if cfg.SyncOnStartup {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
		today := time.Now().UTC().Truncate(24 * time.Hour)
		count, err := serviceContainer.RateSync.SyncForDate(ctx, &today)
		cancel()
		if err != nil {
			logger.Error("Startup rates sync failed", slog.String("error", err.Error()))
		} else {
			logger.Info("Startup rates sync completed", slog.Int64("rows_affected", count))
		}
	}

	// Daily scheduler
	scheduler := services.NewDailyRatesScheduler(
		serviceContainer.RateSync, cfg.RatesSyncHour, cfg.RatesSyncMinute, logger,
	)
	if cfg.SchedulerEnabled {
		scheduler.Start()
		defer scheduler.Stop()
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery, CORS)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.Default())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Serve until interrupted, then drain in-flight requests.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("Server starting", slog.String("port", cfg.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to run", slog.String("error", err.Error()))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown failed", slog.String("error", err.Error()))
	}
}

// runMigrations applies all pending "up" migrations from the migrations
// directory over a temporary database/sql connection.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")

	// Using the pgx/v5 stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()
	if err := migrationDB.Ping(); err != nil {
		return err
	}

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		return err
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return err
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		return sourceErr
	}
	if dbErr != nil {
		return dbErr
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}
