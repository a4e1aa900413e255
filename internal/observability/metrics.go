package observability

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// OperationMetrics records per-operation outcomes for a module's service
// layer. Implementations must be safe for concurrent use.
type OperationMetrics interface {
	RecordOperationAttempt(ctx context.Context, operation, module string)
	RecordOperationSuccess(ctx context.Context, operation, module string)
	RecordOperationFailure(ctx context.Context, operation, module string)
	RecordOperationDuration(ctx context.Context, operation, module string, duration time.Duration)
}

// PrometheusMetrics implements OperationMetrics on a prometheus registry.
type PrometheusMetrics struct {
	attempts  *prometheus.CounterVec
	successes *prometheus.CounterVec
	failures  *prometheus.CounterVec
	durations *prometheus.HistogramVec
}

// NewPrometheusMetrics registers the operation metric vectors on reg.
func NewPrometheusMetrics(reg prometheus.Registerer) *PrometheusMetrics {
	m := &PrometheusMetrics{
		attempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "motosense_operation_attempts_total",
			Help: "Number of service operation attempts.",
		}, []string{"operation", "module"}),
		successes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "motosense_operation_successes_total",
			Help: "Number of service operations that succeeded.",
		}, []string{"operation", "module"}),
		failures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "motosense_operation_failures_total",
			Help: "Number of service operations that failed.",
		}, []string{"operation", "module"}),
		durations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "motosense_operation_duration_seconds",
			Help:    "Service operation duration in seconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation", "module"}),
	}
	reg.MustRegister(m.attempts, m.successes, m.failures, m.durations)
	return m
}

func (m *PrometheusMetrics) RecordOperationAttempt(_ context.Context, operation, module string) {
	m.attempts.WithLabelValues(operation, module).Inc()
}

func (m *PrometheusMetrics) RecordOperationSuccess(_ context.Context, operation, module string) {
	m.successes.WithLabelValues(operation, module).Inc()
}

func (m *PrometheusMetrics) RecordOperationFailure(_ context.Context, operation, module string) {
	m.failures.WithLabelValues(operation, module).Inc()
}

func (m *PrometheusMetrics) RecordOperationDuration(_ context.Context, operation, module string, duration time.Duration) {
	m.durations.WithLabelValues(operation, module).Observe(duration.Seconds())
}

// NoOpMetrics discards all recordings. Used in tests.
type NoOpMetrics struct{}

func (NoOpMetrics) RecordOperationAttempt(context.Context, string, string) {}

func (NoOpMetrics) RecordOperationSuccess(context.Context, string, string) {}

func (NoOpMetrics) RecordOperationFailure(context.Context, string, string) {}

func (NoOpMetrics) RecordOperationDuration(context.Context, string, string, time.Duration) {}

var (
	_ OperationMetrics = (*PrometheusMetrics)(nil)
	_ OperationMetrics = NoOpMetrics{}
)
