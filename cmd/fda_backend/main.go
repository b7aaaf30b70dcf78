package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	portsrepo "github.com/findash/finance_dashboard_app/internal/core/ports/repositories"
	"github.com/findash/finance_dashboard_app/internal/core/services"
	"github.com/findash/finance_dashboard_app/internal/handlers"
	"github.com/findash/finance_dashboard_app/internal/middleware"
	"github.com/findash/finance_dashboard_app/internal/platform/events"
	"github.com/findash/finance_dashboard_app/internal/repositories/database/jsondb"
	"github.com/findash/finance_dashboard_app/internal/repositories/database/pgsql"
	"github.com/findash/finance_dashboard_app/pkg/config"
	"github.com/findash/finance_dashboard_app/pkg/database"
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

	repos, cleanup, err := openStorage(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to open storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer cleanup()

	bus := events.NewBus()
	serviceContainer := services.NewServiceContainer(cfg, repos, bus)

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.AllowedOrigins
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "X-Request-ID")
	r.Use(cors.New(corsConfig))

	rate, err := limiter.NewRateFromFormatted(cfg.RateLimit)
	if err != nil {
		logger.Error("Invalid RATE_LIMIT value", slog.String("rate_limit", cfg.RateLimit), slog.String("error", err.Error()))
		os.Exit(1)
	}
	r.Use(middleware.RateLimit(limiter.New(memory.NewStore(), rate)))

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	logger.Info("Server starting",
		slog.String("port", cfg.Port),
		slog.String("storage_driver", cfg.StorageDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// openStorage builds the repository provider for the configured driver.
// The returned cleanup releases whatever the driver holds open.
func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, func(), error) {
	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		store, err := pgsql.NewStore(ctx, pool)
		if err != nil {
			database.ClosePgxPool(pool)
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Using PostgreSQL document storage")
		return pgsql.NewRepositoryProvider(store), func() { database.ClosePgxPool(pool) }, nil
	default:
		store, err := jsondb.Open(cfg.DataFile)
		if err != nil {
			return portsrepo.RepositoryProvider{}, nil, err
		}
		logger.Info("Using JSON file storage", slog.String("data_file", cfg.DataFile))
		return jsondb.NewRepositoryProvider(store), func() {}, nil
	}
}
