package middleware

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"medlink-backend/pkg/api"
)

// Timeout bounds each request with a deadline. Handlers observe the
// deadline through the request context; repository calls pass it through to
// the upstream HTTP clients.
func Timeout(timeout time.Duration, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			r = r.WithContext(ctx)

			done := make(chan struct{})
			go func() {
				defer func() {
					if err := recover(); err != nil {
						logger.Error("panic in request goroutine",
							zap.Any("panic", err),
							zap.String("request_id", GetRequestID(r.Context())),
						)
					}
				}()
				next.ServeHTTP(w, r)
				close(done)
			}()

			select {
			case <-done:
			case <-ctx.Done():
				logger.Warn("request timed out",
					zap.String("request_id", GetRequestID(r.Context())),
					zap.String("path", r.URL.Path),
				)
				if w.Header().Get("Content-Type") == "" {
					api.Error(w, http.StatusRequestTimeout, "Request timeout")
				}
			}
		})
	}
}
