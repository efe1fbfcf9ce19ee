package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

func (r *Registry) initSamplerMetrics() {
	r.SamplerDrawsTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphscene_sampler_draws_total",
			Help: "Candidate points drawn from the bounding cube",
		},
	)

	r.SamplerAcceptedTotal = promauto.With(r.registry).NewCounter(
		prometheus.CounterOpts{
			Name: "graphscene_sampler_accepted_total",
			Help: "Candidate points accepted inside the ellipsoid",
		},
	)
}
