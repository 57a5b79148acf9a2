package app

import (
	"context"
	"fmt"

	"tutorcenter/internal/config"
	"tutorcenter/internal/domain"
	"tutorcenter/internal/infrastructure/storage/postgres"
	allocator "tutorcenter/pkg/codealloc"
	"tutorcenter/pkg/logger"
)

// NewLogger builds the process logger from config and makes it the default.
func NewLogger(cfg *config.Config) (*logger.Logger, error) {
	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)
	return log, nil
}

// OpenPool connects to the database and pings it.
func OpenPool(ctx context.Context, cfg *config.Config) (*postgres.Pool, error) {
	poolCfg := postgres.DefaultPoolConfig(cfg.Database.URL)
	poolCfg.ApplicationName = cfg.AppName
	if cfg.Database.MaxConns > 0 {
		poolCfg.MaxConns = cfg.Database.MaxConns
	}
	if cfg.Database.MinConns > 0 {
		poolCfg.MinConns = cfg.Database.MinConns
	}

	pool, err := postgres.NewPool(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return pool, nil
}

// Open connects, optionally migrates, and builds the container. The caller
// closes the returned pool.
func Open(ctx context.Context, cfg *config.Config, observer allocator.Observer) (*Container, *postgres.Pool, error) {
	pool, err := OpenPool(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, pool.Pool, "up"); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info(ctx, "migrations applied")
	}

	c, err := NewContainer(Options{
		TxManager: postgres.NewTxManager(pool, postgres.WithStatementTimeout(cfg.Database.StatementTimeout)),
		Clock:     domain.NewClock(cfg.Location),
		AlertRule: cfg.AlertsRule,
		Observer:  observer,
	})
	if err != nil {
		pool.Close()
		return nil, nil, err
	}
	return c, pool, nil
}
