package main

import (
	"context"
	"embed"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const (
	exitCodeOK = iota
	exitCodeInputErr
	exitCodeInternalErr
)

type flags struct {
	direction string
	steps     int
	username  string
	password  string
	host      string
	port      string
	db        string
}

func parseFlags() *flags {
	f := &flags{}
	flag.StringVar(&f.direction, "type", "up", "migration direction: up/down")
	flag.IntVar(&f.steps, "steps", 0, "number of migrations to apply, 0 means all")
	flag.StringVar(&f.username, "username", "", "database username")
	flag.StringVar(&f.password, "password", os.Getenv("POSTGRES_PASSWORD"), "database password")
	flag.StringVar(&f.host, "host", "127.0.0.1", "database host")
	flag.StringVar(&f.port, "port", "5432", "database port")
	flag.StringVar(&f.db, "db", "webpa_collector", "database name")
	flag.Parse()

	return f
}

func (f *flags) validate() error {
	if f.direction != "up" && f.direction != "down" {
		return fmt.Errorf(`type must be "up" or "down", got %q`, f.direction)
	}

	if f.steps < 0 {
		return fmt.Errorf("steps must be >= 0, got %d", f.steps)
	}

	switch "" {
	case f.username:
		return errors.New("username is required")
	case f.password:
		return errors.New("password is required")
	case f.port:
		return errors.New("port is required")
	case f.db:
		return errors.New("db is required")
	}

	return nil
}

func (f *flags) databaseURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(f.username, f.password),
		Host:     net.JoinHostPort(f.host, f.port),
		Path:     f.db,
		RawQuery: "sslmode=disable",
	}

	return u.String()
}

func (f *flags) apply(migrator *migrate.Migrate) error {
	switch {
	case f.steps > 0 && f.direction == "up":
		return migrator.Steps(f.steps)
	case f.steps > 0:
		return migrator.Steps(-f.steps)
	case f.direction == "up":
		return migrator.Up()
	default:
		return migrator.Down()
	}
}

func run(ctx context.Context, log *slog.Logger) (exitCode int, err error) {
	f := parseFlags()

	if err := f.validate(); err != nil {
		return exitCodeInputErr, fmt.Errorf("invalid flags: %w", err)
	}

	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return exitCodeInternalErr, fmt.Errorf("failed to create migrations source: %w", err)
	}

	migrator, err := migrate.NewWithSourceInstance("iofs", src, f.databaseURL())
	if err != nil {
		return exitCodeInternalErr, fmt.Errorf("failed to create migrator: %w", err)
	}
	defer func() {
		srcErr, dbErr := migrator.Close()
		if closeErr := errors.Join(srcErr, dbErr); closeErr != nil {
			if err == nil {
				exitCode = exitCodeInternalErr
			}
			err = errors.Join(err, closeErr)
		}
	}()

	if err := f.apply(migrator); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			log.InfoContext(ctx, "schema already up to date")
			return exitCodeOK, nil
		}

		return exitCodeInternalErr, fmt.Errorf("failed to apply migrations: %w", err)
	}

	log.InfoContext(ctx, "migrations applied",
		slog.String("type", f.direction),
		slog.Int("steps", f.steps))

	return exitCodeOK, nil
}

func main() {
	log := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGINT)

	exitCode, err := run(ctx, log)
	if err != nil {
		log.ErrorContext(ctx, "migration run failed", slog.String("err", err.Error()))
	}

	stop()
	os.Exit(exitCode)
}
