package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the http and route-query counters exposed on /metrics.
type Metrics struct {
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	routeQueriesTotal   *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "routeplanner",
			Name:      "http_requests_total",
			Help:      "Number of http requests served.",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "routeplanner",
			Name:      "http_request_duration_seconds",
			Help:      "Duration of http requests.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path"}),
		routeQueriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "routeplanner",
			Name:      "route_queries_total",
			Help:      "Number of route queries by kind and outcome.",
		}, []string{"kind", "outcome"}),
	}
	reg.MustRegister(m.httpRequestsTotal, m.httpRequestDuration, m.routeQueriesTotal)
	return m
}

func (m *Metrics) RouteQueryServed(kind string) {
	m.routeQueriesTotal.WithLabelValues(kind, "served").Inc()
}

func (m *Metrics) RouteQueryFailed(kind string) {
	m.routeQueriesTotal.WithLabelValues(kind, "failed").Inc()
}

// PromeHttpMiddleware records request counts and latencies per route.
func PromeHttpMiddleware(m *Metrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			m.httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(ww.Status())).Inc()
			m.httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
		})
	}
}
