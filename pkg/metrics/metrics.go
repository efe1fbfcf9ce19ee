package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RecordRow counts a consumed edge list row
func (r *Registry) RecordRow() {
	r.RowsReadTotal.Inc()
}

// RecordPoint counts a created node point
func (r *Registry) RecordPoint() {
	r.PointsCreatedTotal.Inc()
}

// RecordEdge counts a created edge and classifies it
func (r *Registry) RecordEdge(selfLoop, duplicate bool) {
	r.EdgesCreatedTotal.Inc()
	if selfLoop {
		r.SelfLoopsTotal.Inc()
	}
	if duplicate {
		r.DuplicateEdgesTotal.Inc()
	}
}

// RecordRendererError counts a failed renderer call
func (r *Registry) RecordRendererError(operation string) {
	r.RendererErrorsTotal.WithLabelValues(operation).Inc()
}

// ObserveBuild records the duration of a finished build
func (r *Registry) ObserveBuild(d time.Duration) {
	r.BuildDurationSeconds.Observe(d.Seconds())
}

// RecordSampler adds the draw counters of a sampler run
func (r *Registry) RecordSampler(draws, accepted uint64) {
	r.SamplerDrawsTotal.Add(float64(draws))
	r.SamplerAcceptedTotal.Add(float64(accepted))
}

// RecordExport records the size and duration of a scene export
func (r *Registry) RecordExport(format string, bytes int64, d time.Duration) {
	r.ExportBytes.WithLabelValues(format).Set(float64(bytes))
	r.ExportDuration.WithLabelValues(format).Observe(d.Seconds())
}

// RecordUpload records an upload attempt
func (r *Registry) RecordUpload(status string, d time.Duration) {
	r.UploadsTotal.WithLabelValues(status).Inc()
	r.UploadDurationSeconds.Observe(d.Seconds())
}

// WriteTextfile writes every metric to path in the Prometheus text format,
// suitable for the node_exporter textfile collector.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
