package api

import (
	"context"
	"net/http"
	"time"

	"fjacquet/finanza/internal/logging"

	"github.com/google/uuid"
)

// contextKey is the private type for context keys set by this package.
type contextKey string

const requestIDKey contextKey = "request_id"

// RequestID returns the trace id assigned to the request, if any.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// traceMiddleware assigns a uuid to every request and logs method, path,
// and duration on completion.
func traceMiddleware(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			id := uuid.NewString()
			ctx := context.WithValue(r.Context(), requestIDKey, id)
			w.Header().Set("X-Request-ID", id)

			next.ServeHTTP(w, r.WithContext(ctx))

			logger.Debug("Request handled",
				logging.Field{Key: "request_id", Value: id},
				logging.Field{Key: "method", Value: r.Method},
				logging.Field{Key: "path", Value: r.URL.Path},
				logging.Field{Key: "duration_ms", Value: time.Since(start).Milliseconds()})
		})
	}
}
