// Package scenequery exposes an exported scene document through a
// read-only GraphQL schema.
package scenequery

import (
	"fmt"
	"strconv"

	"github.com/graphql-go/graphql"

	"github.com/dd0wney/cluso-graphscene/pkg/geom"
	"github.com/dd0wney/cluso-graphscene/pkg/scene"
)

// SummaryQuery is the query run when none is given
const SummaryQuery = `{
	scene { id version pointCount edgeCount selfLoops grouped }
	collections { name size }
}`

// NewSchema builds the query schema over doc
func NewSchema(doc *scene.Document) (graphql.Schema, error) {
	if doc == nil {
		return graphql.Schema{}, fmt.Errorf("nil scene document")
	}

	degrees := make(map[string]int, len(doc.Points))
	for _, e := range doc.Edges {
		degrees[e.From]++
		degrees[e.To]++
	}

	vecType := newVecType()
	pointType := newPointType(vecType, degrees)
	resolution := doc.Settings.CurveResolution
	if resolution < 1 {
		resolution = scene.DefaultCurveResolution
	}
	edgeType := newEdgeType(vecType, resolution)
	materialType := newMaterialType()
	collectionType := newCollectionType()
	sceneType := newSceneType()

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"scene": &graphql.Field{
				Type: sceneType,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return doc, nil
				},
			},
			"points": &graphql.Field{
				Type: graphql.NewList(pointType),
				Args: graphql.FieldConfigArgument{
					"name":   &graphql.ArgumentConfig{Type: graphql.String},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int},
					"offset": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: resolvePoints(doc),
			},
			"point": &graphql.Field{
				Type: pointType,
				Args: graphql.FieldConfigArgument{
					"name": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (any, error) {
					name, _ := p.Args["name"].(string)
					if pt, ok := doc.Point(name); ok {
						return pt, nil
					}
					return nil, nil
				},
			},
			"edges": &graphql.Field{
				Type: graphql.NewList(edgeType),
				Args: graphql.FieldConfigArgument{
					"from":   &graphql.ArgumentConfig{Type: graphql.String},
					"to":     &graphql.ArgumentConfig{Type: graphql.String},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int},
					"offset": &graphql.ArgumentConfig{Type: graphql.Int},
				},
				Resolve: resolveEdges(doc),
			},
			"materials": &graphql.Field{
				Type: graphql.NewList(materialType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return doc.Materials, nil
				},
			},
			"collections": &graphql.Field{
				Type: graphql.NewList(collectionType),
				Resolve: func(p graphql.ResolveParams) (any, error) {
					return doc.Collections, nil
				},
			},
		},
	})

	schema, err := graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
	if err != nil {
		return graphql.Schema{}, fmt.Errorf("failed to create schema: %w", err)
	}
	return schema, nil
}

func newVecType() *graphql.Object {
	component := func(get func(geom.Vec3) float64) *graphql.Field {
		return &graphql.Field{
			Type: graphql.Float,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				if v, ok := p.Source.(geom.Vec3); ok {
					return get(v), nil
				}
				return nil, nil
			},
		}
	}
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Vec3",
		Fields: graphql.Fields{
			"x": component(func(v geom.Vec3) float64 { return v.X }),
			"y": component(func(v geom.Vec3) float64 { return v.Y }),
			"z": component(func(v geom.Vec3) float64 { return v.Z }),
		},
	})
}

func newSceneType() *graphql.Object {
	field := func(t graphql.Output, get func(*scene.Document) any) *graphql.Field {
		return &graphql.Field{
			Type: t,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				if d, ok := p.Source.(*scene.Document); ok {
					return get(d), nil
				}
				return nil, nil
			},
		}
	}
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Scene",
		Fields: graphql.Fields{
			"id":         field(graphql.NewNonNull(graphql.ID), func(d *scene.Document) any { return d.SceneID }),
			"version":    field(graphql.Int, func(d *scene.Document) any { return d.Version }),
			"pointCount": field(graphql.Int, func(d *scene.Document) any { return len(d.Points) }),
			"edgeCount":  field(graphql.Int, func(d *scene.Document) any { return len(d.Edges) }),
			"selfLoops":  field(graphql.Int, func(d *scene.Document) any { return d.Stats.SelfLoops }),
			"grouped":    field(graphql.Int, func(d *scene.Document) any { return d.Stats.Grouped }),
			"collection": field(graphql.String, func(d *scene.Document) any { return d.Settings.Collection }),
		},
	})
}

func newPointType(vecType *graphql.Object, degrees map[string]int) *graphql.Object {
	field := func(t graphql.Output, get func(scene.DocumentPoint) any) *graphql.Field {
		return &graphql.Field{
			Type: t,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				if pt, ok := p.Source.(scene.DocumentPoint); ok {
					return get(pt), nil
				}
				return nil, nil
			},
		}
	}
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Point",
		Fields: graphql.Fields{
			"id":         field(graphql.NewNonNull(graphql.ID), func(pt scene.DocumentPoint) any { return strconv.FormatUint(pt.ID, 10) }),
			"name":       field(graphql.String, func(pt scene.DocumentPoint) any { return pt.Name }),
			"label":      field(graphql.String, func(pt scene.DocumentPoint) any { return pt.Label }),
			"position":   field(vecType, func(pt scene.DocumentPoint) any { return pt.Position }),
			"material":   field(graphql.String, func(pt scene.DocumentPoint) any { return pt.Material }),
			"collection": field(graphql.String, func(pt scene.DocumentPoint) any { return pt.Collection }),
			"degree":     field(graphql.Int, func(pt scene.DocumentPoint) any { return degrees[pt.Name] }),
		},
	})
}

// newEdgeType measures edge length over the same polyline resolution the
// scene was exported with.
func newEdgeType(vecType *graphql.Object, resolution int) *graphql.Object {
	field := func(t graphql.Output, get func(scene.DocumentEdge) any) *graphql.Field {
		return &graphql.Field{
			Type: t,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				if e, ok := p.Source.(scene.DocumentEdge); ok {
					return get(e), nil
				}
				return nil, nil
			},
		}
	}
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Edge",
		Fields: graphql.Fields{
			"id":         field(graphql.NewNonNull(graphql.ID), func(e scene.DocumentEdge) any { return strconv.FormatUint(e.ID, 10) }),
			"name":       field(graphql.String, func(e scene.DocumentEdge) any { return e.Name }),
			"from":       field(graphql.String, func(e scene.DocumentEdge) any { return e.From }),
			"to":         field(graphql.String, func(e scene.DocumentEdge) any { return e.To }),
			"selfLoop":   field(graphql.Boolean, func(e scene.DocumentEdge) any { return e.From == e.To }),
			"start":      field(vecType, func(e scene.DocumentEdge) any { return e.Curve.Start }),
			"control":    field(vecType, func(e scene.DocumentEdge) any { return e.Curve.Control }),
			"end":        field(vecType, func(e scene.DocumentEdge) any { return e.Curve.End }),
			"length":     field(graphql.Float, func(e scene.DocumentEdge) any { return e.Curve.Length(resolution) }),
			"material":   field(graphql.String, func(e scene.DocumentEdge) any { return e.Material }),
			"collection": field(graphql.String, func(e scene.DocumentEdge) any { return e.Collection }),
		},
	})
}

func newMaterialType() *graphql.Object {
	nodeType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ShaderNode",
		Fields: graphql.Fields{
			"name": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if n, ok := p.Source.(scene.ShaderNode); ok {
						return n.Name, nil
					}
					return nil, nil
				},
			},
			"type": &graphql.Field{
				Type: graphql.String,
				Resolve: func(p graphql.ResolveParams) (any, error) {
					if n, ok := p.Source.(scene.ShaderNode); ok {
						return n.Type, nil
					}
					return nil, nil
				},
			},
		},
	})

	field := func(t graphql.Output, get func(scene.Material) any) *graphql.Field {
		return &graphql.Field{
			Type: t,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				if m, ok := p.Source.(scene.Material); ok {
					return get(m), nil
				}
				return nil, nil
			},
		}
	}
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Material",
		Fields: graphql.Fields{
			"name":      field(graphql.String, func(m scene.Material) any { return m.Name }),
			"nodes":     field(graphql.NewList(nodeType), func(m scene.Material) any { return m.Nodes }),
			"baseColor": field(graphql.String, func(m scene.Material) any { return m.BaseColor().Hex() }),
			"emissionStrength": field(graphql.Float, func(m scene.Material) any {
				if s, ok := m.Emissive(); ok {
					return s
				}
				return nil
			}),
			"ramp": field(graphql.NewList(graphql.String), func(m scene.Material) any {
				n, ok := m.Node(scene.NodeColorRamp)
				if !ok {
					return nil
				}
				stops := make([]string, 0, len(n.Ramp))
				for _, s := range n.Ramp {
					stops = append(stops, s.Color.Hex())
				}
				return stops
			}),
		},
	})
}

func newCollectionType() *graphql.Object {
	field := func(t graphql.Output, get func(scene.DocumentCollection) any) *graphql.Field {
		return &graphql.Field{
			Type: t,
			Resolve: func(p graphql.ResolveParams) (any, error) {
				if c, ok := p.Source.(scene.DocumentCollection); ok {
					return get(c), nil
				}
				return nil, nil
			},
		}
	}
	return graphql.NewObject(graphql.ObjectConfig{
		Name: "Collection",
		Fields: graphql.Fields{
			"name":    field(graphql.String, func(c scene.DocumentCollection) any { return c.Name }),
			"parent":  field(graphql.String, func(c scene.DocumentCollection) any { return c.Parent }),
			"size":    field(graphql.Int, func(c scene.DocumentCollection) any { return len(c.Objects) }),
			"objects": field(graphql.NewList(graphql.String), func(c scene.DocumentCollection) any { return c.Objects }),
		},
	})
}
