// Package obs holds the Prometheus metrics of the API on a dedicated
// registry.
package obs

import (
	"net/http"
	"strconv"
	"time"

	"go-fieldtrack/internal/state"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fieldtrack"

type Metrics struct {
	registry *prometheus.Registry

	mutationsTotal *prometheus.CounterVec
	saveDuration   prometheus.Histogram
	saveFailures   prometheus.Counter

	httpInFlight        prometheus.Gauge
	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec
	buildInfo           *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		mutationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "state_mutations_total",
			Help:      "State transitions by operation and outcome.",
		}, []string{"op", "outcome"}),
		saveDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "snapshot_save_duration_seconds",
			Help:      "Time spent persisting the state snapshot.",
			Buckets:   prometheus.DefBuckets,
		}),
		saveFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "snapshot_save_failures_total",
			Help:      "Snapshot saves that returned an error.",
		}),
		httpInFlight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_in_flight_requests",
			Help:      "In-flight HTTP requests.",
		}),
		httpRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"method", "path", "status"}),
		httpRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latencies in seconds.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		buildInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "build_info",
			Help:      "Build information.",
		}, []string{"version", "env"}),
	}

	m.registry.MustRegister(
		m.mutationsTotal,
		m.saveDuration,
		m.saveFailures,
		m.httpInFlight,
		m.httpRequestsTotal,
		m.httpRequestDuration,
		m.buildInfo,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

var _ state.Recorder = (*Metrics)(nil)

func (m *Metrics) ObserveMutation(op string, outcome state.Outcome) {
	m.mutationsTotal.WithLabelValues(op, string(outcome)).Inc()
}

func (m *Metrics) ObserveSave(d time.Duration, err error) {
	m.saveDuration.Observe(d.Seconds())
	if err != nil {
		m.saveFailures.Inc()
	}
}

// SetBuildInfo publishes build_info{version, env} 1.
func (m *Metrics) SetBuildInfo(version, env string) {
	m.buildInfo.WithLabelValues(version, env).Set(1)
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Instrument records request count and latency labeled by route template.
// Unmatched routes share the "unmatched" path label.
func (m *Metrics) Instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		m.httpInFlight.Inc()
		defer m.httpInFlight.Dec()

		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
		m.httpRequestsTotal.WithLabelValues(c.Request.Method, path, status).Inc()
	}
}
