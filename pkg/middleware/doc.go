// Package middleware provides HTTP tracing and metrics middleware for the
// synthdom render server.
//
// Both middlewares have the standard func(http.Handler) http.Handler shape
// and can be used with chi or any net/http stack.
//
// # OpenTelemetry Middleware
//
// OpenTelemetry starts a server span for each request. The request context
// carries the span, so render spans started by handlers become its
// children.
//
//	r := chi.NewRouter()
//	r.Use(middleware.OpenTelemetry(
//	    middleware.WithTracerName("my-renderer"),
//	    middleware.WithRequestFilter(func(r *http.Request) bool {
//	        return r.URL.Path != "/healthz"
//	    }),
//	))
//
// The tracer comes from the global provider unless WithTracer is given.
//
// # Prometheus Metrics
//
// Prometheus records:
//   - synthdom_http_requests_total: requests by route, method and status
//   - synthdom_http_request_duration_seconds: request latency by route
//   - synthdom_http_response_bytes_total: bytes written by route
//
//	reg := prometheus.NewRegistry()
//	r.Use(middleware.Prometheus(middleware.WithRegistry(reg)))
//	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
//
// Routes are labelled with the chi route pattern, never the raw path, so
// label cardinality stays bounded.
package middleware
