package scene

import (
	"github.com/dd0wney/cluso-graphscene/pkg/geom"
)

// Default scene settings
const (
	DefaultPointRadius      = 0.03
	DefaultPointSegments    = 16
	DefaultPointRings       = 8
	DefaultEmissionStrength = 10.0
	DefaultBevelDepth       = 0.03
	DefaultCurveResolution  = 40
	DefaultBevelSides       = 12
	DefaultCollection       = "Graph"
	RootCollection          = "Scene Collection"
	PointMaterialName       = "EmissiveWhite"
	EdgeMaterialName        = "EdgeShader"
	EdgeObjectName          = "curved_edge"
	DefaultPointName        = "Sphere" // object name for a point with an empty label
	DocumentVersion         = 1
)

// Settings controls the look of created objects
type Settings struct {
	PointRadius       float64 `json:"point_radius" yaml:"point_radius" validate:"gt=0"`
	PointSegments     int     `json:"point_segments" yaml:"point_segments" validate:"min=3"`
	PointRings        int     `json:"point_rings" yaml:"point_rings" validate:"min=2"`
	EmissionStrength  float64 `json:"emission_strength" yaml:"emission_strength" validate:"gt=0"`
	CurvatureDistance float64 `json:"curvature_distance" yaml:"curvature_distance" validate:"gt=0"`
	BevelDepth        float64 `json:"bevel_depth" yaml:"bevel_depth" validate:"gt=0"`
	CurveResolution   int     `json:"curve_resolution" yaml:"curve_resolution" validate:"min=1,max=1024"`
	BevelSides        int     `json:"bevel_sides" yaml:"bevel_sides" validate:"min=3"`
	Collection        string  `json:"collection" yaml:"collection" validate:"required"`
}

// DefaultSettings returns the settings of a stock graph scene
func DefaultSettings() Settings {
	return Settings{
		PointRadius:       DefaultPointRadius,
		PointSegments:     DefaultPointSegments,
		PointRings:        DefaultPointRings,
		EmissionStrength:  DefaultEmissionStrength,
		CurvatureDistance: geom.DefaultCurvatureDistance,
		BevelDepth:        DefaultBevelDepth,
		CurveResolution:   DefaultCurveResolution,
		BevelSides:        DefaultBevelSides,
		Collection:        DefaultCollection,
	}
}

// ObjectKind distinguishes points from edges
type ObjectKind string

const (
	KindPoint ObjectKind = "point"
	KindEdge  ObjectKind = "curved_edge"
)

// Object is a named scene object
type Object struct {
	ID         uint64
	Name       string
	Kind       ObjectKind
	Label      string     // node label, points only
	Position   geom.Vec3  // points only
	Curve      geom.Curve // edges only
	From       uint64     // edges only
	To         uint64     // edges only
	Material   string
	Collection string
}

// Collection groups objects by ID in insertion order
type Collection struct {
	Name    string
	Objects []uint64
}

// Stats summarizes a scene
type Stats struct {
	Points    int `json:"points"`
	Edges     int `json:"edges"`
	SelfLoops int `json:"self_loops"`
	Grouped   int `json:"grouped"`
}
