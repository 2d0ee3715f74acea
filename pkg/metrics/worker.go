package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// WorkerMetrics records metadata for event consumer handlers.
type WorkerMetrics struct {
	duration *prometheus.HistogramVec
	success  *prometheus.CounterVec
	failure  *prometheus.CounterVec
	skipped  *prometheus.CounterVec
}

// NewWorkerMetrics registers the worker metrics on the provided registerer.
func NewWorkerMetrics(reg prometheus.Registerer) *WorkerMetrics {
	if reg == nil {
		return &WorkerMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "event_handle_duration_seconds",
		Help:    "Duration of event handler executions in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"event"})
	success := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "event_handle_success",
		Help: "Successful event handler executions.",
	}, []string{"event"})
	failure := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "event_handle_failure",
		Help: "Failed event handler executions.",
	}, []string{"event"})
	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "event_handle_skipped",
		Help: "Events skipped as duplicates.",
	}, []string{"event"})
	reg.MustRegister(duration, success, failure, skipped)
	return &WorkerMetrics{
		duration: duration,
		success:  success,
		failure:  failure,
		skipped:  skipped,
	}
}

// ObserveDuration records the duration for the named event handler.
func (w *WorkerMetrics) ObserveDuration(event string, duration time.Duration) {
	if w == nil || w.duration == nil {
		return
	}
	w.duration.WithLabelValues(normalizeLabel(event)).Observe(duration.Seconds())
}

// IncSuccess increments the success counter for the named event.
func (w *WorkerMetrics) IncSuccess(event string) {
	if w == nil || w.success == nil {
		return
	}
	w.success.WithLabelValues(normalizeLabel(event)).Inc()
}

// IncFailure increments the failure counter for the named event.
func (w *WorkerMetrics) IncFailure(event string) {
	if w == nil || w.failure == nil {
		return
	}
	w.failure.WithLabelValues(normalizeLabel(event)).Inc()
}

// IncSkipped increments the duplicate-skip counter for the named event.
func (w *WorkerMetrics) IncSkipped(event string) {
	if w == nil || w.skipped == nil {
		return
	}
	w.skipped.WithLabelValues(normalizeLabel(event)).Inc()
}
