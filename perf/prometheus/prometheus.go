// Package prometheus provides a Prometheus implementation of the perf.Sink
// interface.
package prometheus

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"walletprobe/perf"
)

// PrometheusSink exports request metrics to a Prometheus registry.
type PrometheusSink struct {
	requestTotal    *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	ceilingExceeded *prometheus.CounterVec
}

var _ perf.Sink = (*PrometheusSink)(nil)

// Config holds configuration for PrometheusSink.
type Config struct {
	// Namespace is the prefix for all metrics (e.g., "walletprobe")
	Namespace string
	// Subsystem is an optional subsystem name
	Subsystem string
	// Registry is the Prometheus registry to use. If nil, the default registry is used.
	Registry prometheus.Registerer
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Namespace: "walletprobe",
		Subsystem: "",
		Registry:  prometheus.DefaultRegisterer,
	}
}

// New creates a new PrometheusSink with the given configuration.
func New(cfg Config) *PrometheusSink {
	if cfg.Registry == nil {
		cfg.Registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(cfg.Registry)

	return &PrometheusSink{
		requestTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "request_total",
			Help:      "Total number of wallet API requests",
		}, []string{"endpoint", "status"}),

		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "request_duration_seconds",
			Help:      "Wallet API request duration in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 15), // 1ms to ~16s
		}, []string{"endpoint"}),

		ceilingExceeded: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: cfg.Namespace,
			Subsystem: cfg.Subsystem,
			Name:      "ceiling_exceeded_total",
			Help:      "Total number of requests slower than the performance ceiling",
		}, []string{"endpoint"}),
	}
}

// Record exports one metric. It never returns an error.
func (s *PrometheusSink) Record(ctx context.Context, m perf.Metric) error {
	status := statusLabel(m.Status)
	s.requestTotal.WithLabelValues(m.Label, status).Inc()
	s.requestDuration.WithLabelValues(m.Label).Observe(m.Duration.Seconds())
	if m.Exceeded {
		s.ceilingExceeded.WithLabelValues(m.Label).Inc()
	}
	return nil
}

func statusLabel(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500:
		return "5xx"
	default:
		return "other"
	}
}
