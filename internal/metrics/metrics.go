// Package metrics exposes Prometheus collectors for the HTTP layer and the
// rating subsystem.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Rating submission outcomes.
const (
	OutcomeCreated         = "created"
	OutcomeUpdated         = "updated"
	OutcomeValidation      = "validation"
	OutcomeNotFound        = "not_found"
	OutcomeUnauthenticated = "unauthenticated"
	OutcomeInternal        = "internal"
)

// Metrics owns a dedicated registry so tests can build many instances
// without duplicate-registration panics.
type Metrics struct {
	registry          *prometheus.Registry
	requestsTotal     *prometheus.CounterVec
	requestDuration   *prometheus.HistogramVec
	ratingSubmissions *prometheus.CounterVec
}

// New creates and registers all collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)
	return &Metrics{
		registry: reg,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scouting_http_requests_total",
				Help: "HTTP requests by route pattern, method and status.",
			},
			[]string{"route", "method", "status"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "scouting_http_request_duration_seconds",
				Help:    "HTTP request latency by route pattern and method.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route", "method"},
		),
		ratingSubmissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "scouting_rating_submissions_total",
				Help: "Rating submissions by outcome.",
			},
			[]string{"outcome"},
		),
	}
}

// ObserveRequest records one finished HTTP request.
func (m *Metrics) ObserveRequest(route, method string, status int, elapsed time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.requestsTotal.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.requestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// RatingSubmitted counts a rating submission outcome.
func (m *Metrics) RatingSubmitted(outcome string) {
	m.ratingSubmissions.WithLabelValues(outcome).Inc()
}

// RegisterPool exports connection pool gauges sampled at scrape time.
func (m *Metrics) RegisterPool(stats func() *pgxpool.Stat) {
	gauge := func(name, help string, read func(*pgxpool.Stat) float64) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{Name: name, Help: help}, func() float64 {
			st := stats()
			if st == nil {
				return 0
			}
			return read(st)
		})
	}
	m.registry.MustRegister(
		gauge("scouting_db_pool_total_conns", "Open connections in the pool.",
			func(s *pgxpool.Stat) float64 { return float64(s.TotalConns()) }),
		gauge("scouting_db_pool_idle_conns", "Idle connections in the pool.",
			func(s *pgxpool.Stat) float64 { return float64(s.IdleConns()) }),
		gauge("scouting_db_pool_acquired_conns", "Connections currently in use.",
			func(s *pgxpool.Stat) float64 { return float64(s.AcquiredConns()) }),
	)
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
