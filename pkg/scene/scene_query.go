package scene

import (
	"github.com/dd0wney/cluso-graphscene/pkg/geom"
)

// Object returns a copy of the object with the given id
func (s *Scene) Object(id uint64) (Object, bool) {
	obj, ok := s.objects[id]
	if !ok {
		return Object{}, false
	}
	return *obj, true
}

// Objects returns all objects in creation order
func (s *Scene) Objects() []Object {
	out := make([]Object, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, *s.objects[id])
	}
	return out
}

// Points returns the point objects in creation order
func (s *Scene) Points() []Object {
	return s.ofKind(KindPoint)
}

// Edges returns the edge objects in creation order
func (s *Scene) Edges() []Object {
	return s.ofKind(KindEdge)
}

func (s *Scene) ofKind(kind ObjectKind) []Object {
	var out []Object
	for _, id := range s.order {
		if obj := s.objects[id]; obj.Kind == kind {
			out = append(out, *obj)
		}
	}
	return out
}

// Collections returns the root collection followed by the target collection
func (s *Scene) Collections() []Collection {
	return []Collection{s.root.clone(), s.target.clone()}
}

// Collection returns the named collection
func (s *Scene) Collection(name string) (Collection, bool) {
	switch name {
	case s.root.Name:
		return s.root.clone(), true
	case s.target.Name:
		return s.target.clone(), true
	}
	return Collection{}, false
}

func (c *Collection) clone() Collection {
	return Collection{Name: c.Name, Objects: append([]uint64(nil), c.Objects...)}
}

// Materials returns the shared materials
func (s *Scene) Materials() []Material {
	return append([]Material(nil), s.materials...)
}

// Material returns the named material
func (s *Scene) Material(name string) (Material, bool) {
	for _, m := range s.materials {
		if m.Name == name {
			return m, true
		}
	}
	return Material{}, false
}

// Stats summarizes the scene
func (s *Scene) Stats() Stats {
	st := Stats{SelfLoops: s.selfLoops, Grouped: len(s.target.Objects)}
	for _, obj := range s.objects {
		switch obj.Kind {
		case KindPoint:
			st.Points++
		case KindEdge:
			st.Edges++
		}
	}
	return st
}

// Mesh tessellates an object: a UV sphere for points, a tube along the
// sampled curve for edges. Degenerate edges yield an empty mesh.
func (s *Scene) Mesh(obj Object) geom.Mesh {
	switch obj.Kind {
	case KindPoint:
		return geom.UVSphere(obj.Position, s.settings.PointRadius, s.settings.PointSegments, s.settings.PointRings)
	case KindEdge:
		return geom.Tube(obj.Curve.Polyline(s.settings.CurveResolution), s.settings.BevelDepth, s.settings.BevelSides)
	}
	return geom.Mesh{}
}
