package middleware

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"medlink-backend/internal/infrastructure/observability"
)

// Metrics records request counts and latency per route pattern. The chi
// route pattern is used instead of the raw path so IDs don't explode label
// cardinality.
func Metrics(collector *observability.Collector) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			wrapper := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

			next.ServeHTTP(wrapper, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unmatched"
			}
			collector.ObserveHTTP(r.Method, route, wrapper.statusCode, time.Since(start))
		})
	}
}
