package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes a registry to gather from.
type Metrics interface {
	Registry() *prometheus.Registry
}

var _ Metrics = (*Prometheus)(nil)
