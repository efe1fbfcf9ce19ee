package layout

import (
	"math"

	"github.com/dd0wney/cluso-graphscene/pkg/geom"
)

// Bounds returns the bounding box of positions. An empty input yields the
// zero box.
func Bounds(positions []geom.Vec3) Box {
	if len(positions) == 0 {
		return Box{}
	}

	minX, maxX := math.MaxFloat64, -math.MaxFloat64
	minY, maxY := math.MaxFloat64, -math.MaxFloat64
	minZ, maxZ := math.MaxFloat64, -math.MaxFloat64

	for _, p := range positions {
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
		minZ = math.Min(minZ, p.Z)
		maxZ = math.Max(maxZ, p.Z)
	}

	return Box{
		Min: geom.Vec3{X: minX, Y: minY, Z: minZ},
		Max: geom.Vec3{X: maxX, Y: maxY, Z: maxZ},
	}
}

// Size returns the extent of the box along each axis
func (b Box) Size() geom.Vec3 {
	return b.Max.Sub(b.Min)
}
