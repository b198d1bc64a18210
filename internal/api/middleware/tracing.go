package middleware

import (
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/trace"
)

// TracingMiddleware installs the span context carried by an inbound W3C
// traceparent header onto the request context, so downstream log lines
// carry the caller's trace and span ids. Requests without a parseable
// header pass through unchanged.
func TracingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if sc, ok := spanContextFromTraceparent(r.Header.Get("traceparent")); ok {
			r = r.WithContext(trace.ContextWithSpanContext(r.Context(), sc))
		}
		next.ServeHTTP(w, r)
	})
}

// spanContextFromTraceparent parses "version-traceid-spanid-flags" per the
// W3C Trace Context spec. Only version 00 is accepted.
func spanContextFromTraceparent(header string) (trace.SpanContext, bool) {
	parts := strings.Split(header, "-")
	if len(parts) != 4 || parts[0] != "00" {
		return trace.SpanContext{}, false
	}

	traceID, err := trace.TraceIDFromHex(parts[1])
	if err != nil {
		return trace.SpanContext{}, false
	}
	spanID, err := trace.SpanIDFromHex(parts[2])
	if err != nil {
		return trace.SpanContext{}, false
	}
	if len(parts[3]) != 2 {
		return trace.SpanContext{}, false
	}

	flags := trace.TraceFlags(0)
	if parts[3] == "01" {
		flags = trace.FlagsSampled
	}

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: flags,
		Remote:     true,
	})
	return sc, sc.IsValid()
}
