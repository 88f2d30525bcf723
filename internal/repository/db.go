package repository

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
	DialTimeout     time.Duration
}

// Open creates a pgx pool with the configured limits.
func Open(ctx context.Context, cfg Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	logger.Info("connecting to database")
	pc, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		logger.Error("failed to parse database config", "error", err)
		return nil, err
	}

	pc.MaxConns = cfg.MaxConns
	pc.MinConns = cfg.MinConns
	pc.MaxConnLifetime = cfg.MaxConnLifetime
	pc.MaxConnIdleTime = cfg.MaxConnIdleTime
	pc.ConnConfig.RuntimeParams["application_name"] = "facturescan"

	if cfg.DialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.DialTimeout)
		defer cancel()
	}
	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		return nil, err
	}

	logger.Info("successfully connected to database")
	return pool, nil
}

// HealthCheck pings the pool to catch DSN issues early.
func HealthCheck(ctx context.Context, pool *pgxpool.Pool, timeout time.Duration, logger *slog.Logger) error {
	logger.Debug("pinging database")
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	return pool.Ping(ctx)
}

// EnsureSchema creates the invoices table when it does not exist yet.
// Dates are stored as the verbatim matched text, amounts as normalized
// decimal strings; neither is guaranteed to be castable, so both stay text.
func EnsureSchema(ctx context.Context, pool *pgxpool.Pool) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS invoices (
	id              uuid PRIMARY KEY,
	supplier        text NOT NULL DEFAULT '',
	invoice_date    text NOT NULL DEFAULT '',
	invoice_number  text NOT NULL DEFAULT '',
	net_amount      text NOT NULL DEFAULT '',
	gross_amount    text NOT NULL DEFAULT '',
	tax_kind        text NOT NULL DEFAULT '',
	tax_value       text NOT NULL DEFAULT '',
	currency        text NOT NULL DEFAULT 'EUR',
	address         text NOT NULL DEFAULT '',
	full_text       text NOT NULL DEFAULT '',
	field_boxes     jsonb NOT NULL DEFAULT '{}',
	source_file     text NOT NULL DEFAULT '',
	annotated_file  text NOT NULL DEFAULT '',
	created_at      timestamptz NOT NULL DEFAULT now()
)`
	_, err := pool.Exec(ctx, ddl)
	return err
}
