package middleware

import (
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Tracing starts a server span per request and counts requests by method and
// status. Providers come from the otel globals; with no exporter configured
// both are no-ops.
func Tracing(next http.Handler) http.Handler {
	tracer := otel.Tracer("paperbase/http")
	meter := otel.Meter("paperbase/http")
	counter, _ := meter.Int64Counter("http.server.requests",
		metric.WithDescription("Count of handled HTTP requests"))

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path,
			trace.WithSpanKind(trace.SpanKindServer))
		defer span.End()

		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r.WithContext(ctx))

		status := sw.status
		if status == 0 {
			status = http.StatusOK
		}
		span.SetAttributes(
			attribute.String("http.method", r.Method),
			attribute.Int("http.status_code", status),
		)
		counter.Add(ctx, 1,
			metric.WithAttributes(
				attribute.String("method", r.Method),
				attribute.Int("status", status),
			))
	})
}
