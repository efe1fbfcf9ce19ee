package geom

// DefaultCurvatureDistance is how far the control point of a curved edge is
// pushed away from the segment midpoint.
const DefaultCurvatureDistance = 2.0

// ControlPoint returns the midpoint of p1 and p2 displaced by distance along
// the horizontal perpendicular (p1-p2)×ẑ. Segments that are vertical or have
// zero length have no perpendicular, so the midpoint is returned unchanged.
func ControlPoint(p1, p2 Vec3, distance float64) Vec3 {
	mid := p1.Add(p2).Scale(0.5)
	offset := p1.Sub(p2).Cross(UnitZ).Normalized().Scale(distance)
	return mid.Add(offset)
}

// Curve is a three-point curve passing through Start, Control and End.
type Curve struct {
	Start   Vec3 `json:"start"`
	Control Vec3 `json:"control"`
	End     Vec3 `json:"end"`
}

// NewCurvedEdge builds the curve connecting p1 and p2.
func NewCurvedEdge(p1, p2 Vec3, distance float64) Curve {
	return Curve{Start: p1, Control: ControlPoint(p1, p2, distance), End: p2}
}

// bezierHandle is the quadratic Bezier handle that makes the curve pass
// through Control at t=0.5.
func (c Curve) bezierHandle() Vec3 {
	return c.Control.Scale(2).Sub(c.Start.Add(c.End).Scale(0.5))
}

// Point evaluates the curve at t in [0,1].
func (c Curve) Point(t float64) Vec3 {
	h := c.bezierHandle()
	u := 1 - t
	return c.Start.Scale(u * u).Add(h.Scale(2 * u * t)).Add(c.End.Scale(t * t))
}

// Polyline samples the curve with resolution segments per span. The curve
// has two spans (Start→Control, Control→End), so 2*resolution+1 points are
// returned. A resolution below 1 is treated as 1.
func (c Curve) Polyline(resolution int) []Vec3 {
	if resolution < 1 {
		resolution = 1
	}
	n := 2 * resolution
	points := make([]Vec3, n+1)
	for i := 0; i <= n; i++ {
		points[i] = c.Point(float64(i) / float64(n))
	}
	// pin the exact endpoints and control point against rounding
	points[0] = c.Start
	points[resolution] = c.Control
	points[n] = c.End
	return points
}

// Length approximates the arc length using the given sampling resolution.
func (c Curve) Length(resolution int) float64 {
	pts := c.Polyline(resolution)
	total := 0.0
	for i := 1; i < len(pts); i++ {
		total += pts[i].Distance(pts[i-1])
	}
	return total
}
