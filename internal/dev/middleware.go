package dev

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// httpMetrics holds the Prometheus metrics for the dev server.
type httpMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	reloadsSent     prometheus.Counter
	reloadClients   prometheus.Gauge
}

var (
	globalHTTPMetrics     *httpMetrics
	globalHTTPMetricsOnce sync.Once
)

func initHTTPMetrics() *httpMetrics {
	factory := promauto.With(prometheus.DefaultRegisterer)

	return &httpMetrics{
		requestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "wayfind",
			Subsystem: "dev",
			Name:      "requests_total",
			Help:      "Total HTTP requests served by the dev server",
		}, []string{"method", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "wayfind",
			Subsystem: "dev",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),

		reloadsSent: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "wayfind",
			Subsystem: "dev",
			Name:      "reloads_sent_total",
			Help:      "Total reload messages broadcast to browsers",
		}),

		reloadClients: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "wayfind",
			Subsystem: "dev",
			Name:      "reload_clients",
			Help:      "Number of connected live reload clients",
		}),
	}
}

func devMetrics() *httpMetrics {
	globalHTTPMetricsOnce.Do(func() {
		globalHTTPMetrics = initHTTPMetrics()
	})
	return globalHTTPMetrics
}

// Metrics returns middleware that records request counts and latency.
func Metrics() func(http.Handler) http.Handler {
	m := devMetrics()

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			m.requestDuration.WithLabelValues(r.Method).Observe(time.Since(start).Seconds())
			m.requestsTotal.WithLabelValues(r.Method, fmt.Sprintf("%d", ww.Status())).Inc()
		})
	}
}

// Tracing returns middleware that creates a span per request using the
// global OpenTelemetry tracer provider.
func Tracing() func(http.Handler) http.Handler {
	tracer := otel.Tracer("wayfind.dev")

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, span := tracer.Start(r.Context(), r.Method+" "+r.URL.Path)
			defer span.End()

			span.SetAttributes(
				attribute.String("http.method", r.Method),
				attribute.String("http.target", r.URL.Path),
			)

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			span.SetAttributes(attribute.Int("http.status_code", ww.Status()))
			if ww.Status() >= 500 {
				span.SetStatus(codes.Error, http.StatusText(ww.Status()))
			}
		})
	}
}
