package layout

import "github.com/dd0wney/cluso-graphscene/pkg/geom"

// DefaultMaxDistance bounds the sampling region when none is configured.
const DefaultMaxDistance = 300.0

// SamplerConfig configures coordinate sampling
type SamplerConfig struct {
	MaxDistance float64 // Half-extent of the sampling cube and equatorial bound of the ellipsoid
	Seed        uint64  // 0 picks a random seed
}

// SamplerStats counts the work done by a rejection sampler
type SamplerStats struct {
	Draws    uint64 `json:"draws"`
	Accepted uint64 `json:"accepted"`
}

// AcceptanceRate returns accepted/draws, or 0 before any draw
func (s SamplerStats) AcceptanceRate() float64 {
	if s.Draws == 0 {
		return 0
	}
	return float64(s.Accepted) / float64(s.Draws)
}

// Box is an axis-aligned bounding box
type Box struct {
	Min geom.Vec3 `json:"min"`
	Max geom.Vec3 `json:"max"`
}
