package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "avatax"

// ClientCollector counts and times outbound API requests.
type ClientCollector struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewClientCollector registers the client collectors on reg.
func NewClientCollector(reg prometheus.Registerer) (*ClientCollector, error) {
	c := &ClientCollector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "requests_total",
			Help:      "API requests by method, outcome and HTTP status.",
		}, []string{"method", "outcome", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "client",
			Name:      "request_duration_seconds",
			Help:      "API request latency.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method"}),
	}

	for _, col := range []prometheus.Collector{c.requests, c.duration} {
		if err := reg.Register(col); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// ObserveRequest records one finished request.
func (c *ClientCollector) ObserveRequest(method, outcome string, status int, elapsed time.Duration) {
	c.requests.WithLabelValues(method, outcome, strconv.Itoa(status)).Inc()
	c.duration.WithLabelValues(method).Observe(elapsed.Seconds())
}
