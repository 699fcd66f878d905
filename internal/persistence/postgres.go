package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/spec-kit/staff-portal/internal/config"
)

// ErrEmptyDSN is returned when the postgres storage driver has no DSN.
var ErrEmptyDSN = errors.New("postgres: empty DSN")

// Postgres holds the pool backing the client_storage table.
type Postgres struct {
	Pool *pgxpool.Pool
}

// NewPostgres connects the postgres storage driver and, when enabled,
// applies the client_storage migrations before returning.
func NewPostgres(ctx context.Context, cfg config.PostgresConfig, logger *zap.Logger) (*Postgres, error) {
	poolCfg, err := poolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("postgres: open pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres: ping: %w", err)
	}

	if cfg.RunMigrations {
		if err := RunMigrations(ctx, pool, MigrationsDir, logger); err != nil {
			pool.Close()
			return nil, err
		}
	}

	logger.Info("client storage connected to postgres",
		zap.Int32("max_conns", poolCfg.MaxConns),
		zap.Bool("migrated", cfg.RunMigrations))
	return &Postgres{Pool: pool}, nil
}

func poolConfig(cfg config.PostgresConfig) (*pgxpool.Config, error) {
	if cfg.DSN == "" {
		return nil, ErrEmptyDSN
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("postgres: parse DSN: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.ConnMaxIdleSec > 0 {
		poolCfg.MaxConnIdleTime = time.Duration(cfg.ConnMaxIdleSec) * time.Second
	}
	if cfg.ConnMaxLifeSec > 0 {
		poolCfg.MaxConnLifetime = time.Duration(cfg.ConnMaxLifeSec) * time.Second
	}
	return poolCfg, nil
}

// Close releases the pool.
func (p *Postgres) Close() {
	p.Pool.Close()
}
