package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"booklog/internal/book"
)

const readyTimeout = 2 * time.Second

// Healthz reports that the process is serving.
func Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// Readyz pings the backend. Backends without a ping are treated as ready.
func Readyz(service *book.Service, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := service.Ping(ctx); err != nil && !errors.Is(err, book.ErrPingUnsupported) {
			logger.WarnContext(r.Context(), "backend not ready", slog.Any("error", err))
			http.Error(w, "backend not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	}
}
