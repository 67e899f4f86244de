package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Prometheus wraps a private registry.
type Prometheus struct {
	registry *prometheus.Registry
}

// New creates an empty registry.
func New() *Prometheus {
	return &Prometheus{
		registry: prometheus.NewRegistry(),
	}
}

// WithBuildInfoCollector adds go_build_info.
func (p *Prometheus) WithBuildInfoCollector() {
	p.registry.MustRegister(collectors.NewBuildInfoCollector())
}

func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}

// WriteTextfile writes every registered metric to path in the text
// exposition format, for node_exporter's textfile collector.
func (p *Prometheus) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, p.registry)
}
