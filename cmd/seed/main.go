package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"booklog/internal/app"
	"booklog/internal/book"
	"booklog/internal/config"
	"booklog/internal/platform/logging"
)

func main() {
	var (
		count       = flag.Int("count", 20, "Number of reading-log entries to insert")
		concurrency = flag.Int("concurrency", 4, "Parallel inserts")
	)
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Log)

	ctx := context.Background()
	client, cleanup, err := app.OpenClient(ctx, *cfg, logger)
	if err != nil {
		logger.Error("open backend", slog.Any("error", err))
		os.Exit(1)
	}
	defer cleanup()

	rng := rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0))
	drafts := generateDrafts(rng, *count, time.Now())

	logger.Info("seeding books", slog.Int("count", len(drafts)), slog.String("backend", cfg.Backend.Kind))
	stored, err := seed(ctx, book.NewService(client), drafts, *concurrency)
	if err != nil {
		logger.Error("seed failed", slog.Int("stored", stored), slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("seed done", slog.Int("stored", stored))
}

// seed inserts drafts with at most concurrency calls in flight. It returns
// how many inserts succeeded before the first failure stopped the rest.
func seed(ctx context.Context, svc *book.Service, drafts []book.Draft, concurrency int) (int, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))

	results := make(chan struct{}, len(drafts))
	for _, d := range drafts {
		g.Go(func() error {
			if _, err := svc.Add(gctx, d); err != nil {
				return fmt.Errorf("insert %q: %w", d.Title, err)
			}
			results <- struct{}{}
			return nil
		})
	}
	err := g.Wait()
	close(results)
	return len(results), err
}
