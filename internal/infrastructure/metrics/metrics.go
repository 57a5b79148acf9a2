// Package metrics holds the prometheus collectors of the service.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tutorcenter/pkg/codealloc"
)

// Metrics owns every collector and the registry they live in.
type Metrics struct {
	registerer prometheus.Registerer
	gatherer   prometheus.Gatherer

	requests        *prometheus.CounterVec
	requestDuration *prometheus.SummaryVec
	allocations     *prometheus.CounterVec
	fallbacks       *prometheus.CounterVec
}

var _ codealloc.Observer = (*Metrics)(nil)

// New registers the collectors on the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, prometheus.DefaultGatherer)
}

// NewWithRegistry registers the collectors on reg and serves them from g.
func NewWithRegistry(reg prometheus.Registerer, g prometheus.Gatherer) *Metrics {
	m := &Metrics{
		registerer: reg,
		gatherer:   g,
		requests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "HTTP requests by route, method and status.",
			},
			[]string{"route", "method", "status"},
		),
		requestDuration: prometheus.NewSummaryVec(
			prometheus.SummaryOpts{
				Name:       "http_request_duration_seconds",
				Help:       "HTTP request latency in seconds.",
				Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
				MaxAge:     5 * time.Minute,
			},
			[]string{"route", "method"},
		),
		allocations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "codealloc_allocations_total",
				Help: "Codes handed out per sequence.",
			},
			[]string{"sequence"},
		),
		fallbacks: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "codealloc_fallback_total",
				Help: "Allocations that restarted at 1 because the last code had no numeric suffix.",
			},
			[]string{"sequence"},
		),
	}

	reg.MustRegister(m.requests, m.requestDuration, m.allocations, m.fallbacks)
	return m
}

// ObserveAllocation counts one allocated code.
func (m *Metrics) ObserveAllocation(sequence string, fallback bool) {
	m.allocations.WithLabelValues(sequence).Inc()
	if fallback {
		m.fallbacks.WithLabelValues(sequence).Inc()
	}
}

// PoolStatter is satisfied by *pgxpool.Pool.
type PoolStatter interface {
	Stat() *pgxpool.Stat
}

// WatchPool exports connection pool gauges, read on every scrape.
func (m *Metrics) WatchPool(p PoolStatter) {
	gauge := func(name, help string, read func(*pgxpool.Stat) float64) prometheus.Collector {
		return prometheus.NewGaugeFunc(prometheus.GaugeOpts{Name: name, Help: help}, func() float64 {
			return read(p.Stat())
		})
	}
	m.registerer.MustRegister(
		gauge("db_pool_total_conns", "Open connections.", func(s *pgxpool.Stat) float64 { return float64(s.TotalConns()) }),
		gauge("db_pool_acquired_conns", "Connections checked out.", func(s *pgxpool.Stat) float64 { return float64(s.AcquiredConns()) }),
		gauge("db_pool_idle_conns", "Idle connections.", func(s *pgxpool.Stat) float64 { return float64(s.IdleConns()) }),
		gauge("db_pool_max_conns", "Configured connection limit.", func(s *pgxpool.Stat) float64 { return float64(s.MaxConns()) }),
	)
}

// Middleware records request count and latency. Unmatched routes share one
// label so scanners cannot blow up cardinality.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		m.requestDuration.WithLabelValues(route, c.Request.Method).Observe(time.Since(start).Seconds())
	}
}

// Handler serves the registry in the prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
