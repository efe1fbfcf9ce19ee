package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initExportMetrics() {
	r.ExportBytes = promauto.With(r.registry).NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "graphscene_export_bytes",
			Help: "Size of the last scene export",
		},
		[]string{"format"},
	)

	r.ExportDuration = promauto.With(r.registry).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "graphscene_export_duration_seconds",
			Help:    "Scene export duration in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 30},
		},
		[]string{"format"},
	)

	r.UploadsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphscene_uploads_total",
			Help: "Scene uploads to object storage",
		},
		[]string{"status"},
	)

	r.UploadDurationSeconds = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graphscene_upload_duration_seconds",
			Help:    "Scene upload duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 5, 30, 120},
		},
	)
}
