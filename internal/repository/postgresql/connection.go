package postgresql

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/kurochkinivan/webpa_collector/internal/config"
)

const (
	pingAttempts = 5
	pingDelay    = 5 * time.Second
)

// NewConnection opens a pgx pool and waits for the database to answer.
// The ping retry is the only retry anywhere in the collector: device
// fetches fail fast, but the archive should survive the database coming
// up after the service.
func NewConnection(ctx context.Context, log *slog.Logger, cfg config.PostgreSQL) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, connString(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create pool: %w", err)
	}

	if err := pingWithRetry(ctx, log, pool); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping pool: %w", err)
	}

	return pool, nil
}

func connString(cfg config.PostgreSQL) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.Username, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, cfg.Port),
		Path:     cfg.DBName,
		RawQuery: "sslmode=disable",
	}

	return u.String()
}

func pingWithRetry(ctx context.Context, log *slog.Logger, pool *pgxpool.Pool) error {
	var err error

	for attempt := 1; attempt <= pingAttempts; attempt++ {
		if err = pool.Ping(ctx); err == nil {
			return nil
		}

		log.DebugContext(ctx, "database connection attempt failed, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", pingAttempts),
			slog.String("err", err.Error()))

		select {
		case <-time.After(pingDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	return err
}
