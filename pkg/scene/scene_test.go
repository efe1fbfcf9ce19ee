package scene

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-graphscene/pkg/edgelist"
	"github.com/dd0wney/cluso-graphscene/pkg/geom"
	"github.com/dd0wney/cluso-graphscene/pkg/graphbuild"
	"github.com/dd0wney/cluso-graphscene/pkg/layout"
)

var _ graphbuild.Renderer = (*Scene)(nil)

func TestNewScene(t *testing.T) {
	s := New(DefaultSettings())

	assert.NotEqual(t, uuid.Nil, s.ID())

	cols := s.Collections()
	require.Len(t, cols, 2)
	assert.Equal(t, RootCollection, cols[0].Name)
	assert.Equal(t, "Graph", cols[1].Name)
	assert.Empty(t, cols[0].Objects)

	emissive, ok := s.Material(PointMaterialName)
	require.True(t, ok)
	strength, ok := emissive.Emissive()
	require.True(t, ok)
	assert.Equal(t, 10.0, strength)

	edge, ok := s.Material(EdgeMaterialName)
	require.True(t, ok)
	ramp, ok := edge.Node(NodeColorRamp)
	require.True(t, ok)
	require.Len(t, ramp.Ramp, 3)
	assert.Equal(t, "#00B981", ramp.Ramp[0].Color.Hex())
	assert.Equal(t, "#74BC00", ramp.Ramp[1].Color.Hex())
	assert.Equal(t, "#FFFF00", ramp.Ramp[2].Color.Hex())
	assert.Len(t, edge.Links, 3)
}

func TestNewFillsZeroSettings(t *testing.T) {
	s := New(Settings{Collection: "Network", BevelDepth: 0.1})

	got := s.Settings()
	assert.Equal(t, "Network", got.Collection)
	assert.Equal(t, 0.1, got.BevelDepth)
	assert.Equal(t, DefaultPointRadius, got.PointRadius)
	assert.Equal(t, DefaultCurveResolution, got.CurveResolution)
	assert.Equal(t, geom.DefaultCurvatureDistance, got.CurvatureDistance)
}

func TestUniqueNames(t *testing.T) {
	s := New(DefaultSettings())

	var names []string
	for _, label := range []string{"A.001", "A", "A", "B", "A"} {
		id, err := s.CreatePoint(label, geom.Vec3{})
		require.NoError(t, err)
		obj, _ := s.Object(id)
		names = append(names, obj.Name)
		assert.Equal(t, label, obj.Label)
	}
	assert.Equal(t, []string{"A.001", "A", "A.002", "B", "A.003"}, names)

	a, _ := s.CreatePoint("x", geom.Vec3{})
	e1, err := s.CreateCurvedEdge(a, a)
	require.NoError(t, err)
	e2, err := s.CreateCurvedEdge(a, a)
	require.NoError(t, err)

	o1, _ := s.Object(e1)
	o2, _ := s.Object(e2)
	assert.Equal(t, EdgeObjectName, o1.Name)
	assert.Equal(t, EdgeObjectName+".001", o2.Name)
}

func TestCreatePointInvalidGeometry(t *testing.T) {
	s := New(DefaultSettings())

	tests := []struct {
		name  string
		label string
		pos   geom.Vec3
	}{
		{"NaN", "a", geom.Vec3{X: math.NaN()}},
		{"Inf", "a", geom.Vec3{Z: math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.CreatePoint(tt.label, tt.pos)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidGeometry)

			var se *SceneError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, OpCreatePoint, se.Op)
		})
	}
	assert.Empty(t, s.Objects())
}

func TestCreatePointEmptyLabel(t *testing.T) {
	s := New(DefaultSettings())

	id1, err := s.CreatePoint("", geom.Vec3{X: 1})
	require.NoError(t, err)
	id2, err := s.CreatePoint("", geom.Vec3{X: 2})
	require.NoError(t, err)

	o1, ok := s.Object(id1)
	require.True(t, ok)
	assert.Equal(t, DefaultPointName, o1.Name)
	assert.Equal(t, "", o1.Label)
	assert.Equal(t, KindPoint, o1.Kind)

	o2, ok := s.Object(id2)
	require.True(t, ok)
	assert.Equal(t, DefaultPointName+".001", o2.Name)

	// both points share the scene's single emissive material
	assert.Equal(t, PointMaterialName, o1.Material)
	assert.Equal(t, PointMaterialName, o2.Material)
	assert.Len(t, s.Materials(), 2)
}

func TestCreateCurvedEdge(t *testing.T) {
	s := New(DefaultSettings())
	a, _ := s.CreatePoint("a", geom.Vec3{})
	b, _ := s.CreatePoint("b", geom.Vec3{X: 2})

	id, err := s.CreateCurvedEdge(a, b)
	require.NoError(t, err)

	edge, ok := s.Object(id)
	require.True(t, ok)
	assert.Equal(t, KindEdge, edge.Kind)
	assert.Equal(t, EdgeMaterialName, edge.Material)
	assert.Equal(t, a, edge.From)
	assert.Equal(t, b, edge.To)
	assert.Equal(t, geom.Vec3{X: 1, Y: 2}, edge.Curve.Control)
	assert.Equal(t, geom.Vec3{X: 2}, edge.Curve.End)
}

func TestCreateCurvedEdgeErrors(t *testing.T) {
	s := New(DefaultSettings())
	a, _ := s.CreatePoint("a", geom.Vec3{})

	_, err := s.CreateCurvedEdge(a, 99)
	assert.ErrorIs(t, err, ErrUnknownObject)

	e, err := s.CreateCurvedEdge(a, a)
	require.NoError(t, err)

	_, err = s.CreateCurvedEdge(e, a)
	assert.ErrorIs(t, err, ErrNotPoint)

	var se *SceneError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, e, se.ID)
	assert.Contains(t, se.Error(), EdgeObjectName)
}

func TestGroup(t *testing.T) {
	s := New(DefaultSettings())
	a, _ := s.CreatePoint("a", geom.Vec3{})
	b, _ := s.CreatePoint("b", geom.Vec3{X: 1})
	e, _ := s.CreateCurvedEdge(a, b)

	require.NoError(t, s.Group([]uint64{a}))
	require.NoError(t, s.Group([]uint64{b, e}))
	require.NoError(t, s.Group([]uint64{a}), "regrouping is a no-op")

	root, _ := s.Collection(RootCollection)
	graph, _ := s.Collection("Graph")
	assert.Empty(t, root.Objects)
	assert.Equal(t, []uint64{a, b, e}, graph.Objects)

	obj, _ := s.Object(e)
	assert.Equal(t, "Graph", obj.Collection)
	assert.Equal(t, 3, s.Stats().Grouped)
}

func TestGroupUnknownMovesNothing(t *testing.T) {
	s := New(DefaultSettings())
	a, _ := s.CreatePoint("a", geom.Vec3{})

	err := s.Group([]uint64{a, 42})
	assert.ErrorIs(t, err, ErrUnknownObject)

	root, _ := s.Collection(RootCollection)
	assert.Equal(t, []uint64{a}, root.Objects)
	_, ok := s.Collection("missing")
	assert.False(t, ok)
}

func TestSelfLoopMeshIsEmpty(t *testing.T) {
	s := New(DefaultSettings())
	a, _ := s.CreatePoint("a", geom.Vec3{X: 1, Y: 2, Z: 3})
	e, err := s.CreateCurvedEdge(a, a)
	require.NoError(t, err)

	obj, _ := s.Object(e)
	assert.True(t, s.Mesh(obj).Empty())
	assert.Equal(t, 1, s.Stats().SelfLoops)

	point, _ := s.Object(a)
	sphere := s.Mesh(point)
	assert.Len(t, sphere.Vertices, 114)
	assert.Len(t, sphere.Faces, 128)
}

func TestEvalRamp(t *testing.T) {
	assert.Equal(t, EdgeRamp[0].Color, EvalRamp(EdgeRamp, -1))
	assert.Equal(t, EdgeRamp[1].Color, EvalRamp(EdgeRamp, 0.5))
	assert.Equal(t, EdgeRamp[2].Color, EvalRamp(EdgeRamp, 2))

	mid := EvalRamp(EdgeRamp, 0.75)
	assert.InDelta(t, (0.455+1)/2, mid.R, 1e-9)
	assert.InDelta(t, (0.737+1)/2, mid.G, 1e-9)
	assert.Equal(t, Color{}, EvalRamp(nil, 0.5))
}

func TestSceneAsBuildRenderer(t *testing.T) {
	s := New(DefaultSettings())
	sampler := layout.NewEllipsoidSampler(layout.SamplerConfig{MaxDistance: 50, Seed: 7})
	session := graphbuild.NewSession(s, sampler, graphbuild.Options{})

	for i, p := range [][2]string{{"A", "B"}, {"B", "C"}, {"A", "B"}, {"C", "C"}} {
		require.NoError(t, session.Add(recordOf(i+1, p[0], p[1])))
	}

	st := s.Stats()
	assert.Equal(t, 3, st.Points)
	assert.Equal(t, 4, st.Edges)
	assert.Equal(t, 1, st.SelfLoops)
	assert.Equal(t, 7, st.Grouped)

	root, _ := s.Collection(RootCollection)
	assert.Empty(t, root.Objects)

	for _, obj := range s.Points() {
		assert.True(t, layout.InEllipsoid(obj.Position, 50))
	}
}

func TestSceneBuildsEmptyNodeID(t *testing.T) {
	reader, err := edgelist.NewReader(strings.NewReader("id,source,target\n0,,X\n"))
	require.NoError(t, err)

	s := New(Settings{})
	sampler := layout.NewEllipsoidSampler(layout.SamplerConfig{MaxDistance: 10, Seed: 3})
	res, err := graphbuild.NewSession(s, sampler, graphbuild.Options{}).Build(reader)
	require.NoError(t, err)

	assert.Len(t, res.Nodes, 2)
	assert.Len(t, res.Edges, 1)

	doc := s.Document()
	p, ok := doc.Point(DefaultPointName)
	require.True(t, ok)
	assert.Equal(t, "", p.Label)
	assert.Equal(t, 1, doc.Degree(DefaultPointName))
}
