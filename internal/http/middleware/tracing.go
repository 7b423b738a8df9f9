package middleware

import (
	"context"
	"net/http"
	"strings"

	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/trace"
)

// TracingMiddleware adds OpenCensus tracing to HTTP requests
func TracingMiddleware(next http.Handler) http.Handler {
	// attributes are added inside the ochttp handler so the server span exists
	annotated := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if span := trace.FromContext(ctx); span != nil {
			span.AddAttributes(
				trace.StringAttribute("http.host", r.Host),
				trace.StringAttribute("http.user_agent", r.UserAgent()),
				trace.StringAttribute("http.method", r.Method),
				trace.StringAttribute("http.path", r.URL.Path),
			)

			if method := RPCMethod(r.URL.Path); method != "" {
				span.AddAttributes(trace.StringAttribute("rpc.method", method))
			}

			if requestID := r.Header.Get("X-Request-ID"); requestID != "" {
				span.AddAttributes(trace.StringAttribute("http.request_id", requestID))
			}

			if contentType := r.Header.Get("Content-Type"); contentType != "" {
				span.AddAttributes(trace.StringAttribute("http.content_type", contentType))
			}
		}

		next.ServeHTTP(&traceResponseWriter{ResponseWriter: w, ctx: ctx}, r)
	})

	return &ochttp.Handler{
		Handler: annotated,
		FormatSpanName: func(r *http.Request) string {
			if method := RPCMethod(r.URL.Path); method != "" {
				return method
			}
			return r.Method + " " + r.URL.Path
		},
		IsPublicEndpoint: true,
	}
}

// RPCMethod returns the dot-notation method of an /api/ path, such as
// "sections.add", or "" for other paths
func RPCMethod(path string) string {
	method, ok := strings.CutPrefix(path, "/api/")
	if !ok || !strings.Contains(method, ".") || strings.Contains(method, "/") {
		return ""
	}
	return method
}

// traceResponseWriter is a custom response writer that captures status code
// for tracing purposes
type traceResponseWriter struct {
	http.ResponseWriter
	ctx        context.Context
	statusCode int
}

// WriteHeader captures the status code for tracing
func (trw *traceResponseWriter) WriteHeader(code int) {
	trw.statusCode = code

	if span := trace.FromContext(trw.ctx); span != nil {
		span.AddAttributes(trace.Int64Attribute("http.status_code", int64(code)))

		// Mark error spans for 4xx and 5xx status codes
		if code >= 400 {
			span.SetStatus(trace.Status{
				Code:    trace.StatusCodeUnknown,
				Message: http.StatusText(code),
			})
		}
	}

	trw.ResponseWriter.WriteHeader(code)
}

var _ http.ResponseWriter = (*traceResponseWriter)(nil)
