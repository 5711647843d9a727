package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"booklog/internal/app"
	"booklog/internal/config"
	"booklog/internal/platform/logging"
)

var errUsage = errors.New("usage")

func main() {
	var (
		command = flag.String("command", "up", "Migration command: up, down, status, create")
		name    = flag.String("name", "", "Name for 'create' command")
	)
	flag.Parse()

	config.LoadEnvFiles()
	logger := logging.New(config.LogConfig{Level: os.Getenv("LOG_LEVEL"), Format: "text"})

	if err := run(context.Background(), *command, *name, logger); err != nil {
		logger.Error("migrate failed", slog.String("command", *command), slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, command, name string, logger *slog.Logger) error {
	dir := migrationsDir()

	if command == "create" {
		if name == "" {
			return fmt.Errorf("%w: -name is required for 'create'", errUsage)
		}
		if err := goose.Create(nil, dir, name, "sql"); err != nil {
			return fmt.Errorf("create migration: %w", err)
		}
		logger.Info("migration created", slog.String("name", name), slog.String("dir", dir))
		return nil
	}

	apply, err := commandFunc(command)
	if err != nil {
		return err
	}

	dsn := databaseDSN()
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("connect to database (%s): %w", app.RedactDSN(dsn), err)
	}
	defer pool.Close()

	db := stdlib.OpenDBFromPool(pool)
	defer db.Close()

	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	if err := apply(ctx, db, dir); err != nil {
		return fmt.Errorf("%s: %w", command, err)
	}
	logger.Info("migrations done", slog.String("command", command))
	return nil
}

func commandFunc(command string) (func(context.Context, *sql.DB, string) error, error) {
	switch command {
	case "up":
		return func(ctx context.Context, db *sql.DB, dir string) error { return goose.UpContext(ctx, db, dir) }, nil
	case "down":
		return func(ctx context.Context, db *sql.DB, dir string) error { return goose.DownContext(ctx, db, dir) }, nil
	case "status":
		return func(ctx context.Context, db *sql.DB, dir string) error { return goose.StatusContext(ctx, db, dir) }, nil
	default:
		return nil, fmt.Errorf("%w: unknown command %q, use up, down, status or create", errUsage, command)
	}
}
