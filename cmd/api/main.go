package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"booklog/internal/app"
	"booklog/internal/book"
	"booklog/internal/config"
	apphttp "booklog/internal/http"
	"booklog/internal/httpx"
	"booklog/internal/platform/logging"
	"booklog/internal/platform/metrics"
	"booklog/internal/readinglog"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	loc, err := cfg.Server.Location()
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}

	m, err := metrics.New()
	if err != nil {
		return err
	}

	client, cleanup, err := app.OpenClient(ctx, *cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	instrumented := book.Instrument(client, m.Client, logger)
	sessions := readinglog.NewSessions(cfg.Session.TTL, func() *readinglog.View {
		return readinglog.NewView(instrumented,
			readinglog.WithLogger(logger),
			readinglog.WithClock(func() time.Time { return time.Now().In(loc) }),
		)
	})
	defer sessions.Close()

	handler, closeHandler := buildHandler(cfg, instrumented, sessions, m, logger)
	defer closeHandler()

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting server", slog.String("addr", cfg.Server.Addr), slog.String("backend", cfg.Backend.Kind))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

// buildHandler assembles routes and middleware. The returned func releases
// background resources owned by the middleware.
func buildHandler(cfg *config.Config, client book.Client, sessions *readinglog.Sessions, m *metrics.Metrics, logger *slog.Logger) (http.Handler, func()) {
	router := apphttp.NewRouter(apphttp.RouterDeps{
		Service:  book.NewService(client),
		Sessions: sessions,
		Cookie: apphttp.CookieConfig{
			Name:   cfg.Session.CookieName,
			TTL:    cfg.Session.TTL,
			Secure: cfg.Session.CookieSecure,
			Secret: []byte(cfg.Session.Secret),
		},
		Gatherer: m.Registry,
		Logger:   logger,
	})

	mws := []httpx.Middleware{
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(logger),
		httpx.RecoveryMiddleware(logger),
		httpx.SecurityHeadersMiddleware(cfg.Server.EnableHSTS),
		httpx.CORSMiddleware(cfg.CORS.Origins()),
		httpx.RequestSizeLimitMiddleware(cfg.Server.MaxBodyBytes),
	}

	closeFn := func() {}
	if cfg.RateLimit.RPS > 0 {
		rl := httpx.NewRateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst)
		mws = append(mws, rl.Middleware)
		closeFn = rl.Close
	}
	mws = append(mws, httpx.MetricsMiddleware(m.HTTP))

	return httpx.Chain(mws...)(router), closeFn
}
