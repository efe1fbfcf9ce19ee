package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initBuildMetrics() {
	r.RowsReadTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphscene_rows_read_total",
			Help: "Edge list data rows consumed by the builder",
		},
	)

	r.PointsCreatedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphscene_points_created_total",
			Help: "Node points created in the scene",
		},
	)

	r.EdgesCreatedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphscene_edges_created_total",
			Help: "Curved edges created in the scene",
		},
	)

	r.SelfLoopsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphscene_self_loops_total",
			Help: "Edges whose source and target are the same node",
		},
	)

	r.DuplicateEdgesTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphscene_duplicate_edges_total",
			Help: "Edges repeating an earlier source/target pair",
		},
	)

	r.RendererErrorsTotal = promauto.With(r.registry).NewCounterVec(
		prometheus.CounterOpts{
			Name: "graphscene_renderer_errors_total",
			Help: "Renderer calls that failed",
		},
		[]string{"operation"},
	)

	r.BuildDurationSeconds = promauto.With(r.registry).NewHistogram(
		prometheus.HistogramOpts{
			Name:    "graphscene_build_duration_seconds",
			Help:    "Wall time of a complete graph build",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)
}
