// Package scene is an in-memory 3D scene graph that renders a node-link
// graph: emissive sphere points, curved tube edges and named collections.
//
// A Scene implements graphbuild.Renderer. Objects are created in the root
// collection and moved into the target collection by Group. Object names
// are unique within a scene; a clashing name gets a numeric suffix
// (".001", ".002", ...).
package scene

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/dd0wney/cluso-graphscene/pkg/geom"
)

// Operations named in SceneError
const (
	OpCreatePoint = "create_point"
	OpCreateEdge  = "create_curved_edge"
	OpGroup       = "group"
)

// Scene holds the objects, collections and materials of one build.
// It is not safe for concurrent use.
type Scene struct {
	id       uuid.UUID
	settings Settings

	objects map[uint64]*Object
	order   []uint64
	nextID  uint64

	names    map[string]struct{}
	suffixes map[string]int // base name -> next suffix to try

	root      *Collection
	target    *Collection
	materials []Material

	selfLoops int
}

// New creates an empty scene with its collections and shared materials.
// Every point references the one EmissiveWhite material rather than a
// per-point copy. Zero-valued settings fields are taken from DefaultSettings.
func New(settings Settings) *Scene {
	settings = withDefaults(settings)

	s := &Scene{
		id:       uuid.New(),
		settings: settings,
		objects:  make(map[uint64]*Object),
		names:    make(map[string]struct{}),
		suffixes: make(map[string]int),
		root:     &Collection{Name: RootCollection},
		target:   &Collection{Name: settings.Collection},
	}
	s.materials = []Material{
		EmissiveMaterial(PointMaterialName, settings.EmissionStrength),
		GradientMaterial(EdgeMaterialName, EdgeRamp),
	}
	return s
}

func withDefaults(s Settings) Settings {
	d := DefaultSettings()
	if s.PointRadius <= 0 {
		s.PointRadius = d.PointRadius
	}
	if s.PointSegments < 3 {
		s.PointSegments = d.PointSegments
	}
	if s.PointRings < 2 {
		s.PointRings = d.PointRings
	}
	if s.EmissionStrength == 0 {
		s.EmissionStrength = d.EmissionStrength
	}
	if s.CurvatureDistance == 0 {
		s.CurvatureDistance = d.CurvatureDistance
	}
	if s.BevelDepth <= 0 {
		s.BevelDepth = d.BevelDepth
	}
	if s.CurveResolution < 1 {
		s.CurveResolution = d.CurveResolution
	}
	if s.BevelSides < 3 {
		s.BevelSides = d.BevelSides
	}
	if s.Collection == "" {
		s.Collection = d.Collection
	}
	return s
}

// ID returns the scene's unique identifier
func (s *Scene) ID() uuid.UUID {
	return s.id
}

// Settings returns the effective settings
func (s *Scene) Settings() Settings {
	return s.settings
}

// CreatePoint adds a sphere marker named after label at position. An empty
// label is a valid node id; its object is named after DefaultPointName.
func (s *Scene) CreatePoint(label string, position geom.Vec3) (uint64, error) {
	if !position.IsFinite() {
		return 0, &SceneError{Op: OpCreatePoint, Object: label,
			Cause: fmt.Errorf("%w: non-finite position %v", ErrInvalidGeometry, position)}
	}

	base := label
	if base == "" {
		base = DefaultPointName
	}
	obj := s.add(&Object{
		Name:     s.uniqueName(base),
		Kind:     KindPoint,
		Label:    label,
		Position: position,
		Material: PointMaterialName,
	})
	return obj.ID, nil
}

// CreateCurvedEdge adds a curved edge between two existing points. The
// curve bends away from the straight segment in the horizontal plane.
func (s *Scene) CreateCurvedEdge(from, to uint64) (uint64, error) {
	p1, err := s.point(OpCreateEdge, from)
	if err != nil {
		return 0, err
	}
	p2, err := s.point(OpCreateEdge, to)
	if err != nil {
		return 0, err
	}

	obj := s.add(&Object{
		Name:     s.uniqueName(EdgeObjectName),
		Kind:     KindEdge,
		Curve:    geom.NewCurvedEdge(p1.Position, p2.Position, s.settings.CurvatureDistance),
		From:     from,
		To:       to,
		Material: EdgeMaterialName,
	})
	if from == to {
		s.selfLoops++
	}
	return obj.ID, nil
}

// Group moves objects into the target collection. Objects already there
// are left alone. Nothing is moved unless every id is known.
func (s *Scene) Group(ids []uint64) error {
	for _, id := range ids {
		if _, ok := s.objects[id]; !ok {
			return &SceneError{Op: OpGroup, ID: id, Cause: ErrUnknownObject}
		}
	}
	for _, id := range ids {
		obj := s.objects[id]
		if obj.Collection == s.target.Name {
			continue
		}
		s.root.remove(id)
		s.target.Objects = append(s.target.Objects, id)
		obj.Collection = s.target.Name
	}
	return nil
}

func (s *Scene) add(obj *Object) *Object {
	s.nextID++
	obj.ID = s.nextID
	obj.Collection = s.root.Name
	s.objects[obj.ID] = obj
	s.order = append(s.order, obj.ID)
	s.root.Objects = append(s.root.Objects, obj.ID)
	return obj
}

func (s *Scene) point(op string, id uint64) (*Object, error) {
	obj, ok := s.objects[id]
	if !ok {
		return nil, &SceneError{Op: op, ID: id, Cause: ErrUnknownObject}
	}
	if obj.Kind != KindPoint {
		return nil, &SceneError{Op: op, ID: id, Object: obj.Name, Cause: ErrNotPoint}
	}
	return obj, nil
}

// uniqueName returns base, or base with the lowest free ".NNN" suffix
func (s *Scene) uniqueName(base string) string {
	name := base
	if _, taken := s.names[name]; taken {
		n := s.suffixes[base]
		for {
			n++
			name = fmt.Sprintf("%s.%03d", base, n)
			if _, taken := s.names[name]; !taken {
				break
			}
		}
		s.suffixes[base] = n
	}
	s.names[name] = struct{}{}
	return name
}

// remove drops id, searching from the end where recent objects live
func (c *Collection) remove(id uint64) {
	for i := len(c.Objects) - 1; i >= 0; i-- {
		if c.Objects[i] == id {
			c.Objects = append(c.Objects[:i], c.Objects[i+1:]...)
			return
		}
	}
}
