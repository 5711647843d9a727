package httpx

import (
	"net/http"
	"strconv"
	"time"

	"booklog/internal/platform/metrics"
)

// MetricsMiddleware counts requests by the ServeMux pattern that served
// them. It must sit inside any middleware that replaces the request.
func MetricsMiddleware(m *metrics.HTTPMetrics) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := wrap(w)

			next.ServeHTTP(rw, r)

			route := r.Pattern
			if route == "" {
				route = "unmatched"
			}
			m.RequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(rw.statusCode)).Inc()
			m.RequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		})
	}
}
