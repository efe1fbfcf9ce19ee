// Package layout assigns 3D positions to graph nodes.
package layout

import (
	"math"
	"math/rand/v2"

	"github.com/dd0wney/cluso-graphscene/pkg/geom"
)

// EllipsoidSampler draws points uniformly from the oblate ellipsoid
// 2x²+2y²+z² ≤ d² by rejection from the cube [-d,d]³.
//
// Positions are not checked against earlier samples; two nodes may land
// arbitrarily close together.
type EllipsoidSampler struct {
	maxDistance float64
	rng         *rand.Rand
	stats       SamplerStats
}

// NewEllipsoidSampler creates a sampler. A non-positive or non-finite
// MaxDistance falls back to DefaultMaxDistance.
func NewEllipsoidSampler(config SamplerConfig) *EllipsoidSampler {
	d := config.MaxDistance
	if d <= 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		d = DefaultMaxDistance
	}

	seed := config.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}

	return &EllipsoidSampler{
		maxDistance: d,
		rng:         rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
	}
}

// MaxDistance returns the configured bound
func (s *EllipsoidSampler) MaxDistance() float64 {
	return s.maxDistance
}

// Sample draws a point using the configured bound
func (s *EllipsoidSampler) Sample() geom.Vec3 {
	return s.SampleWithin(s.maxDistance)
}

// SampleWithin draws a point inside the ellipsoid of bound d. The sign of d
// is ignored; a zero or non-finite bound yields the origin.
func (s *EllipsoidSampler) SampleWithin(d float64) geom.Vec3 {
	d = math.Abs(d)
	if d == 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		s.stats.Draws++
		s.stats.Accepted++
		return geom.Vec3{}
	}

	for {
		p := geom.Vec3{
			X: s.uniform(d),
			Y: s.uniform(d),
			Z: s.uniform(d),
		}
		s.stats.Draws++
		if InEllipsoid(p, d) {
			s.stats.Accepted++
			return p
		}
	}
}

// Stats returns the draw counters accumulated so far
func (s *EllipsoidSampler) Stats() SamplerStats {
	return s.stats
}

func (s *EllipsoidSampler) uniform(d float64) float64 {
	return (2*s.rng.Float64() - 1) * d
}

// InEllipsoid reports whether p satisfies 2x²+2y²+z² ≤ d²
func InEllipsoid(p geom.Vec3, d float64) bool {
	return 2*p.X*p.X+2*p.Y*p.Y+p.Z*p.Z <= d*d
}

// AcceptanceProbability is the chance a single cube draw lands inside the
// ellipsoid: its semi-axes are d/√2, d/√2 and d, so the volume ratio is
// (2/3)πd³ / 8d³ = π/12.
func AcceptanceProbability() float64 {
	return math.Pi / 12
}

// ExpectedDraws is the mean number of cube draws per accepted sample
func ExpectedDraws() float64 {
	return 1 / AcceptanceProbability()
}
