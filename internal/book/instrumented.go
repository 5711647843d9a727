package book

import (
	"context"
	"log/slog"
	"time"

	"booklog/internal/platform/metrics"
)

// InstrumentedClient records Prometheus metrics around another Client.
type InstrumentedClient struct {
	next    Client
	metrics *metrics.ClientMetrics
	logger  *slog.Logger
}

// Instrument wraps next so every call is counted and timed.
func Instrument(next Client, m *metrics.ClientMetrics, logger *slog.Logger) *InstrumentedClient {
	return &InstrumentedClient{next: next, metrics: m, logger: logger}
}

func (c *InstrumentedClient) List(ctx context.Context) ([]Book, error) {
	start := time.Now()
	books, err := c.next.List(ctx)

	status := metrics.StatusOK
	if err != nil {
		status = metrics.StatusError
	}
	c.observe(ctx, metrics.OperationList, status, start, slog.Int("rows", len(books)))
	return books, err
}

func (c *InstrumentedClient) Insert(ctx context.Context, d Draft) (*Book, error) {
	start := time.Now()
	b, err := c.next.Insert(ctx, d)

	status := metrics.StatusOK
	switch {
	case err != nil:
		status = metrics.StatusError
	case b == nil:
		status = metrics.StatusNoRow
	}
	c.observe(ctx, metrics.OperationAdd, status, start)
	return b, err
}

// Ping forwards to the wrapped client when it supports it.
func (c *InstrumentedClient) Ping(ctx context.Context) error {
	p, ok := c.next.(Pinger)
	if !ok {
		return ErrPingUnsupported
	}
	return p.Ping(ctx)
}

func (c *InstrumentedClient) observe(ctx context.Context, op, status string, start time.Time, extra ...slog.Attr) {
	elapsed := time.Since(start)
	c.metrics.RequestsTotal.WithLabelValues(op, status).Inc()
	c.metrics.RequestDuration.WithLabelValues(op).Observe(elapsed.Seconds())

	attrs := append([]slog.Attr{
		slog.String("operation", op),
		slog.String("status", status),
		slog.Duration("duration", elapsed),
	}, extra...)
	c.logger.LogAttrs(ctx, slog.LevelDebug, "book.client", attrs...)
}
