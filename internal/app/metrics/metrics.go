package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors shared by the pipeline and the
// engine adapters. One instance is created at process start and injected
// wherever instrumentation happens.
type Metrics struct {
	StageDuration *prometheus.HistogramVec
	EngineCalls   *prometheus.CounterVec
	Requests      *prometheus.CounterVec
	AudioSeconds  prometheus.Counter
}

// New registers and returns the collector set on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		StageDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "voxi",
			Subsystem: "pipeline",
			Name:      "stage_duration_seconds",
			Help:      "Wall time spent in each pipeline stage.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
		}, []string{"stage", "outcome"}),
		EngineCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voxi",
			Subsystem: "engine",
			Name:      "calls_total",
			Help:      "Engine invocations by engine, operation and outcome.",
		}, []string{"engine", "operation", "outcome"}),
		Requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voxi",
			Name:      "requests_total",
			Help:      "Processed audio requests by outcome.",
		}, []string{"outcome"}),
		AudioSeconds: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "voxi",
			Name:      "audio_seconds_total",
			Help:      "Total seconds of audio accepted for processing.",
		}),
	}
}

// ObserveStage records one stage execution.
func (m *Metrics) ObserveStage(stage string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.StageDuration.WithLabelValues(stage, outcome).Observe(time.Since(start).Seconds())
}

// RecordEngineCall records one engine invocation.
func (m *Metrics) RecordEngineCall(engine, operation string, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.EngineCalls.WithLabelValues(engine, operation, outcome).Inc()
}

// RecordRequest records one end-to-end request outcome.
func (m *Metrics) RecordRequest(outcome string) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(outcome).Inc()
}
