// SPDX-License-Identifier: MIT

package matrix

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Failure kinds, used as the "kind" label of the failures counter.
const (
	failDimension = "dimension_mismatch"
	failThreads   = "invalid_thread_count"
	failAlloc     = "allocation"
	failWorker    = "worker"
	failNil       = "nil_operand"
	failShape     = "bad_shape"
	failOther     = "other"
)

// Metrics holds the Prometheus collectors updated by Multiply when it is
// called with WithMetrics. A nil *Metrics records nothing.
type Metrics struct {
	Calls        *prometheus.CounterVec   // successful calls by path
	Failures     *prometheus.CounterVec   // failed calls by kind
	Duration     *prometheus.HistogramVec // wall time of successful calls by path
	Workers      prometheus.Histogram     // row blocks per successful call
	MultiplyAdds prometheus.Counter       // r*n*p summed over successful calls
}

// NewMetrics creates the collectors under namespace and registers them with
// reg. A nil reg creates unregistered collectors, useful in tests.
// Registering the same namespace twice on one registry panics, as with
// promauto.
func NewMetrics(reg prometheus.Registerer, namespace string) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Calls: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "matmul",
			Name:      "calls_total",
			Help:      "Successful matrix multiplications by execution path.",
		}, []string{"path"}),
		Failures: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "matmul",
			Name:      "failures_total",
			Help:      "Failed matrix multiplications by failure kind.",
		}, []string{"kind"}),
		Duration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "matmul",
			Name:      "duration_seconds",
			Help:      "Wall time of successful matrix multiplications.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 14),
		}, []string{"path"}),
		Workers: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "matmul",
			Name:      "workers",
			Help:      "Row blocks computed per multiplication.",
			Buckets:   prometheus.ExponentialBuckets(1, 2, 8),
		}),
		MultiplyAdds: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "matmul",
			Name:      "multiply_adds_total",
			Help:      "Scalar multiply-add operations performed.",
		}),
	}
}

func (m *Metrics) observe(path string, workers int, elapsed time.Duration, a, b Matrix) {
	if m == nil {
		return
	}
	m.Calls.WithLabelValues(path).Inc()
	m.Duration.WithLabelValues(path).Observe(elapsed.Seconds())
	m.Workers.Observe(float64(workers))
	m.MultiplyAdds.Add(float64(a.Rows()) * float64(a.Cols()) * float64(b.Cols()))
}

func (m *Metrics) observeFailure(err error) {
	if m == nil {
		return
	}
	m.Failures.WithLabelValues(failureKind(err)).Inc()
}

// failureKind maps an engine error to its metric label.
func failureKind(err error) string {
	switch {
	case errors.Is(err, ErrDimensionMismatch):
		return failDimension
	case errors.Is(err, ErrInvalidThreadCount):
		return failThreads
	case errors.Is(err, ErrAllocationFailure):
		return failAlloc
	case errors.Is(err, ErrWorkerFailure):
		return failWorker
	case errors.Is(err, ErrNilMatrix):
		return failNil
	case errors.Is(err, ErrBadShape):
		return failShape
	default:
		return failOther
	}
}
