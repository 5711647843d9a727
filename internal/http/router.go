package http

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"booklog/internal/book"
	"booklog/internal/readinglog"
)

// RouterDeps holds everything the routes need.
type RouterDeps struct {
	Service  *book.Service
	Sessions *readinglog.Sessions
	Cookie   CookieConfig
	Gatherer prometheus.Gatherer
	Logger   *slog.Logger
}

// NewRouter registers every route on a fresh ServeMux. Middleware is applied
// by the caller.
func NewRouter(deps RouterDeps) *http.ServeMux {
	page := NewPageHandler(deps.Sessions, deps.Cookie, deps.Logger)
	books := NewBookHandler(deps.Service, deps.Logger)

	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", page.Show)
	mux.HandleFunc("POST /books", page.Submit)
	mux.Handle("GET /static/", StaticHandler())

	mux.HandleFunc("GET /v1/books", books.List)
	mux.HandleFunc("POST /v1/books", books.Create)

	mux.HandleFunc("GET /healthz", Healthz)
	mux.HandleFunc("GET /readyz", Readyz(deps.Service, deps.Logger))
	if deps.Gatherer != nil {
		mux.Handle("GET /metrics", promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{}))
	}

	return mux
}
