// Package monitoring exposes Prometheus metrics for remote command
// execution and the HTTP surface.
package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus collectors.
type Metrics struct {
	// Remote command metrics
	CommandsTotal   *prometheus.CounterVec
	CommandDuration *prometheus.HistogramVec
	FallbackWalks   prometheus.Counter
	ToolsetEnhanced prometheus.Gauge

	// HTTP metrics
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
}

// NewMetrics creates and registers all collectors on the default registry.
func NewMetrics() *Metrics {
	return &Metrics{
		CommandsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shellfs_remote_commands_total",
				Help: "Total remote commands issued, by operation and status",
			},
			[]string{"operation", "status"},
		),
		CommandDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shellfs_remote_command_duration_seconds",
				Help:    "Remote command round-trip duration in seconds",
				Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"operation"},
		),
		FallbackWalks: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "shellfs_mkdir_fallback_walks_total",
				Help: "Directory creations that fell back to the segment walk",
			},
		),
		ToolsetEnhanced: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "shellfs_toolset_enhanced",
				Help: "1 when the enhanced toolset probe succeeded, else 0",
			},
		),
		RequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shellfs_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		RequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "shellfs_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: []float64{.001, .005, .01, .05, .1, .5, 1, 5},
			},
			[]string{"method", "path"},
		),
	}
}

// RecordCommand records one remote command execution. Nil-safe so wiring
// metrics stays optional in library use.
func (m *Metrics) RecordCommand(operation string, ok bool, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if !ok {
		status = "error"
	}
	m.CommandsTotal.WithLabelValues(operation, status).Inc()
	m.CommandDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordFallbackWalk counts a segment-walk directory creation.
func (m *Metrics) RecordFallbackWalk() {
	if m == nil {
		return
	}
	m.FallbackWalks.Inc()
}

// RecordToolset records the capability probe result.
func (m *Metrics) RecordToolset(enhanced bool) {
	if m == nil {
		return
	}
	if enhanced {
		m.ToolsetEnhanced.Set(1)
	} else {
		m.ToolsetEnhanced.Set(0)
	}
}
