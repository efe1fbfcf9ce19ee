package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Registry holds all metrics for a graphscene run
type Registry struct {
	// Build Metrics
	RowsReadTotal        prometheus.Counter
	PointsCreatedTotal   prometheus.Counter
	EdgesCreatedTotal    prometheus.Counter
	SelfLoopsTotal       prometheus.Counter
	DuplicateEdgesTotal  prometheus.Counter
	RendererErrorsTotal  *prometheus.CounterVec
	BuildDurationSeconds prometheus.Histogram

	// Sampler Metrics
	SamplerDrawsTotal    prometheus.Counter
	SamplerAcceptedTotal prometheus.Counter

	// Export Metrics
	ExportBytes           *prometheus.GaugeVec
	ExportDuration        *prometheus.HistogramVec
	UploadsTotal          *prometheus.CounterVec
	UploadDurationSeconds prometheus.Histogram

	registry *prometheus.Registry
}

// NewRegistry creates a new metrics registry with all metrics initialized.
// Each run owns its registry; nothing is registered globally.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		registry: reg,
	}

	r.initBuildMetrics()
	r.initSamplerMetrics()
	r.initExportMetrics()

	return r
}

// GetPrometheusRegistry returns the underlying Prometheus registry
func (r *Registry) GetPrometheusRegistry() *prometheus.Registry {
	return r.registry
}
