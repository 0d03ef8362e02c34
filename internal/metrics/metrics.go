// Package metrics records bridge activity as Prometheus metrics.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/xdg/appbridge/internal/bridge"
)

const namespace = "appbridge"

// Recorder is a bridge.Observer backed by its own Prometheus registry.
type Recorder struct {
	registry *prometheus.Registry

	// AttemptsTotal counts host invocations by identity and class.
	AttemptsTotal *prometheus.CounterVec
	// AttemptDuration tracks host invocation wall time by class.
	AttemptDuration *prometheus.HistogramVec
	// RequestsTotal counts finished requests by status.
	RequestsTotal *prometheus.CounterVec
	// RequestDuration tracks total request time, all identities included.
	RequestDuration prometheus.Histogram
	// InFlight is the number of host processes currently running.
	InFlight prometheus.Gauge
}

// NewRecorder creates a Recorder with a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		AttemptsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "attempts",
				Name:      "total",
				Help:      "Host invocations by target identity and classification",
			},
			[]string{"identity", "class"},
		),
		AttemptDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "attempts",
				Name:      "duration_seconds",
				Help:      "Duration of host invocations in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 13), // 10ms to ~41s
			},
			[]string{"class"},
		),
		RequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "requests",
				Name:      "total",
				Help:      "Script execution requests by final status",
			},
			[]string{"status"},
		),
		RequestDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "requests",
				Name:      "duration_seconds",
				Help:      "Duration of script execution requests in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.01, 2, 15),
			},
		),
		InFlight: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "attempts",
				Name:      "in_flight",
				Help:      "Host processes currently running",
			},
		),
	}
}

// Registry returns the registry holding the recorder's metrics.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// AttemptStarted implements bridge.Observer.
func (r *Recorder) AttemptStarted(string, string, int) {
	r.InFlight.Inc()
}

// AttemptFinished implements bridge.Observer.
func (r *Recorder) AttemptFinished(_ string, a bridge.Attempt) {
	r.InFlight.Dec()
	r.AttemptsTotal.WithLabelValues(a.Identity, a.Class.String()).Inc()
	r.AttemptDuration.WithLabelValues(a.Class.String()).Observe(a.Duration.Seconds())
}

// RequestFinished implements bridge.Observer.
func (r *Recorder) RequestFinished(_ string, res bridge.Result, d time.Duration) {
	r.RequestsTotal.WithLabelValues(res.Status()).Inc()
	r.RequestDuration.Observe(d.Seconds())
}

// WriteTextfile writes the current metrics in the text exposition format,
// for collection by node_exporter's textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
