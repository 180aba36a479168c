package api

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "todo",
			Subsystem: "api",
			Name:      "requests_total",
			Help:      "Dispatched requests by operation and status code.",
		}, []string{"operation", "code"}),
		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "todo",
			Subsystem: "api",
			Name:      "request_duration_seconds",
			Help:      "Time spent dispatching a request.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

// observe is a no-op on a nil receiver so callers may run without metrics.
func (m *Metrics) observe(operation string, code int, elapsed time.Duration) {
	if m == nil {
		return
	}

	m.requests.WithLabelValues(operation, strconv.Itoa(code)).Inc()
	m.duration.WithLabelValues(operation).Observe(elapsed.Seconds())
}
