package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/kurochkinivan/webpa_collector/internal/collector"
	"github.com/kurochkinivan/webpa_collector/internal/config"
	v1 "github.com/kurochkinivan/webpa_collector/internal/controller/http/v1"
	"github.com/kurochkinivan/webpa_collector/internal/datamodel"
	"github.com/kurochkinivan/webpa_collector/internal/repository/postgresql"
	"github.com/kurochkinivan/webpa_collector/internal/twin"
	"github.com/kurochkinivan/webpa_collector/internal/webpa"
	"golang.org/x/sync/errgroup"
)

type App struct {
	log *slog.Logger
	cfg *config.Config
}

func New(log *slog.Logger, cfg *config.Config) *App {
	return &App{
		log: log,
		cfg: cfg,
	}
}

func (a *App) Run(ctx context.Context) error {
	a.log.InfoContext(ctx, "starting collector service",
		slog.String("base_url", a.cfg.WebPA.BaseURL),
		slog.Duration("twin_cache_ttl", a.cfg.WebPA.TwinCacheTTL),
	)

	var index *datamodel.Index
	if a.cfg.WebPA.DataModelFile != "" {
		var err error
		index, err = datamodel.IndexFromFile(a.cfg.WebPA.DataModelFile)
		if err != nil {
			return fmt.Errorf("failed to load data model: %w", err)
		}

		a.log.InfoContext(ctx, "data model loaded", slog.String("file", a.cfg.WebPA.DataModelFile))
	}

	a.log.InfoContext(ctx, "establishing postgresql connection",
		slog.String("postgresql_host", a.cfg.PostgreSQL.Host),
		slog.String("postgresql_port", a.cfg.PostgreSQL.Port),
		slog.String("postgresql_dbname", a.cfg.PostgreSQL.DBName),
	)

	pool, err := postgresql.NewConnection(ctx, a.log, a.cfg.PostgreSQL)
	if err != nil {
		return fmt.Errorf("failed to create db connection: %w", err)
	}
	defer pool.Close()

	snapshotsRepository := postgresql.NewSnapshotsRepository(pool)
	txManager := postgresql.NewTxManager(pool)

	client := webpa.NewClient(a.log, a.cfg.WebPA.BaseURL, a.cfg.WebPA.Token, a.cfg.WebPA.Timeout)
	twinService := twin.NewService(a.log, client, a.cfg.WebPA.TwinNames, index, a.cfg.WebPA.TwinCacheTTL)
	snapshotCollector := collector.New(a.log, client, snapshotsRepository, txManager)

	server := v1.NewServer(a.cfg.HTTP, twinService, snapshotCollector, snapshotsRepository)

	erg, ctx := errgroup.WithContext(ctx)

	erg.Go(func() error {
		a.log.InfoContext(ctx, "starting http server",
			slog.String("addr", net.JoinHostPort(a.cfg.HTTP.Host, a.cfg.HTTP.Port)),
		)

		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server error: %w", err)
		}

		return nil
	})

	erg.Go(func() error {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := erg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		a.log.ErrorContext(ctx, "service stopped with error", slog.String("err", err.Error()))

		return err
	}

	a.log.InfoContext(ctx, "service stopped gracefully")

	return nil
}
