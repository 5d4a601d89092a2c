// Package database owns the PostgreSQL pool and the embedded schema.
package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ErrEmptyDSN is returned when no connection string is configured.
var ErrEmptyDSN = errors.New("database DSN must not be empty")

type poolOptions struct {
	maxConns    int32
	pingTimeout time.Duration
	logger      *zap.Logger
}

// Option tunes the pool created by Connect.
type Option func(*poolOptions)

// WithMaxConns caps the pool size. Non-positive values keep the pgx default.
func WithMaxConns(n int) Option {
	return func(o *poolOptions) {
		if n > 0 {
			o.maxConns = int32(n)
		}
	}
}

// WithPingTimeout bounds the startup connectivity check.
func WithPingTimeout(d time.Duration) Option {
	return func(o *poolOptions) {
		if d > 0 {
			o.pingTimeout = d
		}
	}
}

// WithLogger reports the pool settings once connected.
func WithLogger(logger *zap.Logger) Option {
	return func(o *poolOptions) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Connect opens a pgx pool for the leads and competitor tables and pings it.
func Connect(ctx context.Context, dsn string, opts ...Option) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, ErrEmptyDSN
	}
	o := poolOptions{pingTimeout: 5 * time.Second, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	cfg, err := poolConfig(dsn, o)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pgx pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, o.pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	o.logger.Info("database connected",
		zap.String("host", cfg.ConnConfig.Host),
		zap.String("database", cfg.ConnConfig.Database),
		zap.Int32("max_conns", cfg.MaxConns),
	)
	return pool, nil
}

func poolConfig(dsn string, o poolOptions) (*pgxpool.Config, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse pgx config: %w", err)
	}
	if o.maxConns > 0 {
		cfg.MaxConns = o.maxConns
	}
	cfg.MaxConnLifetime = time.Hour
	cfg.MaxConnIdleTime = 10 * time.Minute
	cfg.HealthCheckPeriod = time.Minute
	return cfg, nil
}
