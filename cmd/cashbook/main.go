package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/cashbook-dev/cashbook/internal/adapters/database/memory"
	"github.com/cashbook-dev/cashbook/internal/adapters/database/pgsql"
	portsrepo "github.com/cashbook-dev/cashbook/internal/core/ports/repositories"
	portssvc "github.com/cashbook-dev/cashbook/internal/core/ports/services"
	"github.com/cashbook-dev/cashbook/internal/core/services"
	"github.com/cashbook-dev/cashbook/internal/handlers"
	"github.com/cashbook-dev/cashbook/internal/middleware"
	"github.com/cashbook-dev/cashbook/internal/platform/config"
	"github.com/cashbook-dev/cashbook/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	repo, cleanup, err := buildDocumentRepository(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize document store", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	serviceContainer := &portssvc.ServiceContainer{
		Accounting:   services.NewAccountingService(repo, services.WithInferConcurrency(cfg.InferConcurrency)),
		Ledger:       services.NewLedgerService(repo),
		TrialBalance: services.NewTrialBalanceService(repo),
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, serviceContainer, repo)

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// buildDocumentRepository connects the Postgres-backed store when PGSQL_URL is
// configured, falling back to the in-memory store for demo use. The returned
// cleanup releases the pool (a no-op for the memory store).
func buildDocumentRepository(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.DocumentRepository, func(), error) {
	if cfg.DatabaseURL == "" {
		logger.Warn("PGSQL_URL not set; using in-memory document store, data will not persist")
		return memory.NewDocumentRepository(), func() {}, nil
	}

	pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("Database connection pool established")

	if err := database.RunMigrations(cfg.DatabaseURL, "file://migrations"); err != nil {
		pool.Close()
		return nil, nil, err
	}
	logger.Info("Database migrations applied")

	return pgsql.NewPgxDocumentRepository(pool), pool.Close, nil
}
