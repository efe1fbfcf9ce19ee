package geom

import "math"

// Mesh is an indexed polygon mesh. Faces hold 0-based vertex indices.
type Mesh struct {
	Vertices []Vec3
	Faces    [][]int
}

// Empty reports whether the mesh has no faces
func (m Mesh) Empty() bool {
	return len(m.Faces) == 0
}

// UVSphere builds a latitude/longitude sphere. segments is the number of
// meridians and rings the number of latitude bands; the mesh has
// 2+segments*(rings-1) vertices and segments*rings faces.
func UVSphere(center Vec3, radius float64, segments, rings int) Mesh {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	m := Mesh{
		Vertices: make([]Vec3, 0, 2+segments*(rings-1)),
		Faces:    make([][]int, 0, segments*rings),
	}

	m.Vertices = append(m.Vertices, center.Add(Vec3{Z: radius}))
	for r := 1; r < rings; r++ {
		phi := math.Pi * float64(r) / float64(rings)
		z := radius * math.Cos(phi)
		rr := radius * math.Sin(phi)
		for s := 0; s < segments; s++ {
			theta := 2 * math.Pi * float64(s) / float64(segments)
			m.Vertices = append(m.Vertices, center.Add(Vec3{
				X: rr * math.Cos(theta),
				Y: rr * math.Sin(theta),
				Z: z,
			}))
		}
	}
	m.Vertices = append(m.Vertices, center.Add(Vec3{Z: -radius}))
	bottom := len(m.Vertices) - 1

	ring := func(r, s int) int {
		return 1 + (r-1)*segments + s%segments
	}

	for s := 0; s < segments; s++ {
		m.Faces = append(m.Faces, []int{0, ring(1, s), ring(1, s+1)})
	}
	for r := 1; r < rings-1; r++ {
		for s := 0; s < segments; s++ {
			m.Faces = append(m.Faces, []int{ring(r, s), ring(r+1, s), ring(r+1, s+1), ring(r, s+1)})
		}
	}
	for s := 0; s < segments; s++ {
		m.Faces = append(m.Faces, []int{ring(rings-1, s), bottom, ring(rings-1, s+1)})
	}

	return m
}

// Tube sweeps a circle of the given radius along path. Frames are carried
// from one sample to the next by projection, which keeps the tube from
// twisting. Consecutive duplicate samples are dropped; a path with fewer
// than two distinct samples yields an empty mesh.
func Tube(path []Vec3, radius float64, sides int) Mesh {
	if sides < 3 {
		sides = 3
	}

	pts := make([]Vec3, 0, len(path))
	for _, p := range path {
		if len(pts) > 0 && p.Distance(pts[len(pts)-1]) < 1e-12 {
			continue
		}
		pts = append(pts, p)
	}
	if len(pts) < 2 {
		return Mesh{}
	}

	m := Mesh{
		Vertices: make([]Vec3, 0, len(pts)*sides),
		Faces:    make([][]int, 0, (len(pts)-1)*sides),
	}

	var normal Vec3
	for i, p := range pts {
		var tangent Vec3
		switch {
		case i == 0:
			tangent = pts[1].Sub(p)
		case i == len(pts)-1:
			tangent = p.Sub(pts[i-1])
		default:
			tangent = pts[i+1].Sub(pts[i-1])
		}
		tangent = tangent.Normalized()

		if i == 0 {
			normal = perpendicular(tangent)
		} else {
			normal = normal.Sub(tangent.Scale(normal.Dot(tangent))).Normalized()
			if normal.Length() == 0 {
				normal = perpendicular(tangent)
			}
		}
		binormal := tangent.Cross(normal)

		for s := 0; s < sides; s++ {
			theta := 2 * math.Pi * float64(s) / float64(sides)
			offset := normal.Scale(math.Cos(theta)).Add(binormal.Scale(math.Sin(theta)))
			m.Vertices = append(m.Vertices, p.Add(offset.Scale(radius)))
		}
	}

	for i := 0; i < len(pts)-1; i++ {
		a := i * sides
		b := (i + 1) * sides
		for s := 0; s < sides; s++ {
			n := (s + 1) % sides
			m.Faces = append(m.Faces, []int{a + s, b + s, b + n, a + n})
		}
	}

	return m
}

// perpendicular returns a unit vector orthogonal to the unit vector t
func perpendicular(t Vec3) Vec3 {
	axis := Vec3{X: 1}
	if math.Abs(t.X) > 0.9 {
		axis = Vec3{Y: 1}
	}
	return t.Cross(axis).Normalized()
}
