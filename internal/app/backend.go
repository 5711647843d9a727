// Package app wires configuration into the concrete data client.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"booklog/internal/book"
	"booklog/internal/config"
	"booklog/internal/platform/supabase"
)

const pingTimeout = 2 * time.Second

// OpenClient builds the data client selected by cfg.Backend. The returned
// cleanup releases whatever the backend holds and is never nil.
func OpenClient(ctx context.Context, cfg config.Config, logger *slog.Logger) (book.Client, func(), error) {
	switch cfg.Backend.Kind {
	case config.BackendSupabase:
		return openSupabase(cfg.Supabase, logger)
	case config.BackendPostgres:
		return openPostgres(ctx, cfg.Database, cfg.Supabase.Table, logger)
	case config.BackendMemory:
		repo, err := book.NewMemoryRepo()
		if err != nil {
			return nil, func() {}, err
		}
		logger.Info("using in-memory book storage")
		return repo, func() {}, nil
	default:
		return nil, func() {}, fmt.Errorf("unknown backend %q", cfg.Backend.Kind)
	}
}

func openSupabase(cfg config.SupabaseConfig, logger *slog.Logger) (book.Client, func(), error) {
	client, err := supabase.NewClient(supabase.Config{
		URL:       cfg.URL,
		APIKey:    cfg.AnonKey,
		Table:     cfg.Table,
		ReturnRow: cfg.ReturnRow,
		Timeout:   cfg.Timeout,
		RPS:       cfg.RPS,
	})
	if err != nil {
		return nil, func() {}, err
	}

	if info, err := supabase.InspectKey(cfg.AnonKey); err == nil && info.Role == supabase.RoleServiceRole {
		logger.Warn("SUPABASE_ANON_KEY is a service_role key; it bypasses row level security",
			slog.String("project_ref", info.Ref))
	}

	logger.Info("using supabase book storage", slog.String("url", cfg.URL), slog.String("table", cfg.Table))
	return client, func() {}, nil
}

func openPostgres(ctx context.Context, cfg config.DatabaseConfig, table string, logger *slog.Logger) (book.Client, func(), error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, func() {}, fmt.Errorf("parse database DSN: %w", err)
	}
	poolCfg.MaxConns = cfg.MaxConns

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, func() {}, fmt.Errorf("create db pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, func() {}, fmt.Errorf("ping database (%s): %w", RedactDSN(cfg.DSN), err)
	}

	logger.Info("database connection OK", slog.String("dsn", RedactDSN(cfg.DSN)))
	return book.NewPostgresRepo(pool, table, cfg.QueryTimeout), pool.Close, nil
}

// RedactDSN hides the credentials of a URL-style DSN.
func RedactDSN(dsn string) string {
	const marker = "://"
	start := strings.Index(dsn, marker)
	if start < 0 {
		return dsn
	}
	start += len(marker)
	end := strings.Index(dsn[start:], "@")
	if end < 0 {
		return dsn
	}
	return dsn[:start] + "***" + dsn[start+end:]
}
