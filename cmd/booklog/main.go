package main

import (
	"context"
	"fmt"
	"os"

	"booklog/internal/app"
	"booklog/internal/book"
	"booklog/internal/config"
	"booklog/internal/platform/logging"
)

func main() {
	cmd := RootCommand(openFromConfig, os.Stdout)
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openFromConfig builds the configured backend. Logs go to stderr so they
// never mix with command output.
func openFromConfig(ctx context.Context) (book.Client, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("config: %w", err)
	}
	logger := logging.New(cfg.Log)
	return app.OpenClient(ctx, *cfg, logger)
}
