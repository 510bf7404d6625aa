// Package metrics provides Prometheus instrumentation for the platform.
package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// LedgerOperations counts completed ledger operations by kind
	// (funding, investment, sale).
	LedgerOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "investlite_ledger_operations_total",
		Help: "Completed ledger operations by transaction kind",
	}, []string{"kind"})

	// SimulatorTicks counts completed price-simulation ticks.
	SimulatorTicks = promauto.NewCounter(prometheus.CounterOpts{
		Name: "investlite_simulator_ticks_total",
		Help: "Completed price simulation ticks",
	})

	// SimulatorTickErrors counts ticks that failed (logged and swallowed).
	SimulatorTickErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "investlite_simulator_tick_errors_total",
		Help: "Price simulation ticks that failed",
	})

	// SimulatorTickDuration tracks how long a full tick across all active
	// assets takes.
	SimulatorTickDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "investlite_simulator_tick_duration_seconds",
		Help:    "Duration of one price simulation tick",
		Buckets: prometheus.DefBuckets,
	})

	// HTTPRequestsTotal counts HTTP requests by method, route, and status.
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "investlite_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "route", "status"})

	// HTTPRequestDuration tracks request duration by method and route.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "investlite_http_request_duration_seconds",
		Help:    "HTTP request duration in seconds",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0},
	}, []string{"method", "route"})

	// StreamClients tracks connected asset-stream WebSocket clients.
	StreamClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "investlite_stream_clients",
		Help: "Connected asset price stream clients",
	})
)

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Middleware records request count and duration for every request.
// The chi route pattern (not the raw path) is used as the route label to
// keep cardinality bounded.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		wrapped := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(wrapped, r)

		route := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		HTTPRequestsTotal.WithLabelValues(r.Method, route, strconv.Itoa(wrapped.status)).Inc()
		HTTPRequestDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

// Hijack exposes the underlying connection so websocket upgrades work
// through the instrumentation wrapper.
func (w *statusWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := w.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	return h.Hijack()
}
