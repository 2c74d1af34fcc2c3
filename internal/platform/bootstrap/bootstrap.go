// Package bootstrap wires storage, the notification queue and analytics into a service container.
// Both the HTTP server and the one-shot job runner start from here.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/staff_ledger_app/internal/adapters/database/inmemory"
	"github.com/SscSPs/staff_ledger_app/internal/adapters/database/pgsql"
	"github.com/SscSPs/staff_ledger_app/internal/adapters/queue/redisqueue"
	portsrepo "github.com/SscSPs/staff_ledger_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/staff_ledger_app/internal/core/ports/services"
	"github.com/SscSPs/staff_ledger_app/internal/core/services"
	"github.com/SscSPs/staff_ledger_app/internal/platform/config"
	"github.com/SscSPs/staff_ledger_app/internal/utils"
	"github.com/SscSPs/staff_ledger_app/pkg/database"
)

// App holds the wired services and everything that must be released on shutdown.
type App struct {
	Services *portssvc.ServiceContainer
	Posthog  *utils.PosthogClientWrapper

	closers []func()
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

// New builds the application for cfg. With the postgres driver it also applies migrations.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	app := &App{}

	repos, err := app.openStorage(ctx, cfg, logger)
	if err != nil {
		app.Close()
		return nil, err
	}

	app.Posthog = utils.InitializePosthogClient(cfg.PosthogAPIKey, logger)
	app.closers = append(app.closers, app.Posthog.Close)
	options := []services.Option{services.WithJobEventRecorder(app.Posthog)}

	if cfg.RedisURL != "" {
		rdb, err := redisqueue.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		app.closers = append(app.closers, func() {
			if cerr := rdb.Close(); cerr != nil {
				logger.Error("Error closing redis client", slog.String("error", cerr.Error()))
			}
		})
		publisher := redisqueue.NewPublisher(rdb, cfg.NotificationQueue)
		options = append(options, services.WithNotificationPublisher(publisher))
		logger.Info("Notification queue enabled", slog.String("queue", publisher.Queue()))
	} else {
		logger.Warn("REDIS_URL not set, notifications are stored but not published")
	}

	app.Services = services.NewServiceContainer(cfg, repos, options...)
	return app, nil
}

func (a *App) openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.RepositoryProvider, error) {
	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		logger.Warn("Using in-memory storage, data is lost on restart")
		return inmemory.NewRepositoryProvider(inmemory.NewStore()), nil
	case config.StorageDriverPostgres:
		dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return portsrepo.RepositoryProvider{}, fmt.Errorf("failed to initialize database pool: %w", err)
		}
		a.closers = append(a.closers, func() { database.ClosePgxPool(dbPool) })
		logger.Info("Database connection pool established.")

		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, logger); err != nil {
			return portsrepo.RepositoryProvider{}, err
		}
		return pgsql.NewRepositoryProvider(dbPool), nil
	default:
		return portsrepo.RepositoryProvider{}, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}
