package logging

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type queryAnnotationKey struct{}

// queryAnnotation is filled in by the handlers once a lookup has been resolved
type queryAnnotation struct {
	operation string
	outcome   string
}

// AnnotateQuery attaches the lookup operation and its outcome to the access
// log line of the current request. It is a no-op outside LoggingMiddleware.
func AnnotateQuery(ctx context.Context, operation, outcome string) {
	if a, ok := ctx.Value(queryAnnotationKey{}).(*queryAnnotation); ok {
		a.operation = operation
		a.outcome = outcome
	}
}

var accessRecordPool = sync.Pool{
	New: func() any {
		return &accessRecord{}
	},
}

// accessRecord captures the status and size of a response along with the
// lookup annotation set by the handler
type accessRecord struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int
	query        queryAnnotation
}

func (a *accessRecord) reset(w http.ResponseWriter) {
	a.ResponseWriter = w
	a.statusCode = http.StatusOK
	a.bytesWritten = 0
	a.query = queryAnnotation{}
}

func (a *accessRecord) WriteHeader(statusCode int) {
	a.statusCode = statusCode
	a.ResponseWriter.WriteHeader(statusCode)
}

func (a *accessRecord) Write(data []byte) (int, error) {
	n, err := a.ResponseWriter.Write(data)
	a.bytesWritten += n
	return n, err
}

// LoggingMiddleware writes one access log line per API request. Lines carry
// the matched route and, for lookups, the operation and its outcome.
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/health" || r.URL.Path == "/metrics" {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()

			rec := accessRecordPool.Get().(*accessRecord)
			rec.reset(w)
			defer func() {
				rec.ResponseWriter = nil
				accessRecordPool.Put(rec)
			}()

			ctx := context.WithValue(r.Context(), queryAnnotationKey{}, &rec.query)
			next.ServeHTTP(rec, r.WithContext(ctx))

			logger.Log(r.Context(), accessLevel(rec.statusCode), "HTTP request", accessAttrs(r, rec, time.Since(start))...)
		})
	}
}

func accessAttrs(r *http.Request, rec *accessRecord, elapsed time.Duration) []any {
	requestID := middleware.GetReqID(r.Context())
	if requestID == "" {
		requestID = "unknown"
	}

	attrs := []any{
		"request_id", requestID,
		"method", r.Method,
		"path", r.URL.Path,
	}
	if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
		attrs = append(attrs, "route", rctx.RoutePattern())
	}
	if r.URL.RawQuery != "" {
		attrs = append(attrs, "query", r.URL.RawQuery)
	}
	if rec.query.operation != "" {
		attrs = append(attrs, "operation", rec.query.operation, "outcome", rec.query.outcome)
	}

	return append(attrs,
		"remote_addr", r.RemoteAddr,
		"status_code", rec.statusCode,
		"bytes_written", rec.bytesWritten,
		"duration_ms", elapsed.Milliseconds(),
	)
}

// accessLevel raises rejected and failed requests above the info noise
func accessLevel(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	}
	return slog.LevelInfo
}
