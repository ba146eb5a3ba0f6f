// Package middleware provides HTTP middleware for the flashmath API.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/flashmath/internal/api/shared"
	"github.com/phrazzld/flashmath/internal/platform/logger"
)

// TraceMiddleware adds a trace ID and a trace-scoped logger to the request context.
// An incoming X-Trace-ID header is reused when it is a well-formed trace ID.
// The trace ID is echoed on the response so clients can quote it.
func TraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	if base == nil {
		base = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if incoming := r.Header.Get(shared.TraceIDHeader); shared.ValidTraceID(incoming) {
				ctx = shared.WithTraceID(ctx, incoming)
			} else {
				ctx = shared.SetTraceID(ctx)
			}

			traceID := shared.GetTraceID(ctx)
			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			w.Header().Set(shared.TraceIDHeader, traceID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
