package middleware

import (
	"context"
	"net/http"

	"go.opencensus.io/plugin/ochttp"
	"go.opencensus.io/trace"
)

// TracingMiddleware wraps requests in an OpenCensus span named after the
// RPC method, e.g. "POST /api/bulletins.preview".
func TracingMiddleware(next http.Handler) http.Handler {
	traced := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if span := trace.FromContext(ctx); span != nil {
			attrs := []trace.Attribute{
				trace.StringAttribute("http.host", r.Host),
				trace.StringAttribute("http.user_agent", r.UserAgent()),
				trace.StringAttribute("http.method", r.Method),
				trace.StringAttribute("http.path", r.URL.Path),
			}
			if r.URL.RawQuery != "" {
				attrs = append(attrs, trace.StringAttribute("http.query", r.URL.RawQuery))
			}
			if requestID := r.Header.Get("X-Request-ID"); requestID != "" {
				attrs = append(attrs, trace.StringAttribute("http.request_id", requestID))
			}
			if r.ContentLength > 0 {
				attrs = append(attrs, trace.Int64Attribute("http.request_content_length", r.ContentLength))
			}
			span.AddAttributes(attrs...)
		}

		next.ServeHTTP(&statusRecorder{ResponseWriter: w, ctx: ctx}, r)
	})

	return &ochttp.Handler{
		Handler: traced,
		FormatSpanName: func(r *http.Request) string {
			return r.Method + " " + r.URL.Path
		},
		IsPublicEndpoint: true,
	}
}

// statusRecorder copies the response status onto the request span
type statusRecorder struct {
	http.ResponseWriter
	ctx context.Context
}

func (s *statusRecorder) WriteHeader(code int) {
	if span := trace.FromContext(s.ctx); span != nil {
		span.AddAttributes(trace.Int64Attribute("http.status_code", int64(code)))
		if code >= 400 {
			span.SetStatus(trace.Status{
				Code:    trace.StatusCodeUnknown,
				Message: http.StatusText(code),
			})
		}
	}
	s.ResponseWriter.WriteHeader(code)
}

var _ http.ResponseWriter = (*statusRecorder)(nil)
