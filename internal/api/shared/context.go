package shared

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// ContextKey is the type for values stored in a request context by this package.
type ContextKey string

const (
	// TraceIDKey is the key for the trace ID in the request context
	TraceIDKey ContextKey = "traceID"

	// TraceIDLength is the length of a trace ID in hex characters.
	TraceIDLength = 32

	// TraceIDHeader carries the trace ID on requests and responses.
	TraceIDHeader = "X-Trace-ID"
)

var fallbackCounter atomic.Uint64

// SetTraceID adds a freshly generated trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return WithTraceID(ctx, generateTraceID())
}

// WithTraceID stores the given trace ID in the context.
func WithTraceID(ctx context.Context, traceID string) context.Context {
	return context.WithValue(ctx, TraceIDKey, traceID)
}

// GetTraceID retrieves the trace ID from the context.
// If no trace ID exists, it returns an empty string.
func GetTraceID(ctx context.Context) string {
	traceID, ok := ctx.Value(TraceIDKey).(string)
	if !ok {
		return ""
	}
	return traceID
}

// ValidTraceID reports whether s looks like a trace ID this package issued:
// 32 lowercase or uppercase hex characters.
func ValidTraceID(s string) bool {
	if len(s) != TraceIDLength {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

// generateTraceID returns a random 32-character hex ID.
// If the random source fails it falls back to a time-based ID, never a static value.
func generateTraceID() string {
	id, err := uuid.NewRandom()
	if err != nil {
		slog.Error("failed to generate random trace ID",
			"error", err,
			"fallback", "time-based generation")
		return generateFallbackTraceID()
	}
	return strings.ReplaceAll(id.String(), "-", "")
}

// generateFallbackTraceID builds an ID from the clock, the process ID and a counter.
func generateFallbackTraceID() string {
	b := make([]byte, TraceIDLength/2)
	binary.BigEndian.PutUint64(b[:8], uint64(time.Now().UnixNano()))
	binary.BigEndian.PutUint32(b[8:12], uint32(os.Getpid()))
	binary.BigEndian.PutUint32(b[12:], uint32(fallbackCounter.Add(1)))
	return hex.EncodeToString(b)
}
