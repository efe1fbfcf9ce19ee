package scenequery

import (
	"github.com/graphql-go/graphql"

	"github.com/dd0wney/cluso-graphscene/pkg/scene"
)

// DefaultLimit caps list queries without an explicit limit
const DefaultLimit = 100

func resolvePoints(doc *scene.Document) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		name, hasName := p.Args["name"].(string)

		points := doc.Points
		if hasName {
			points = nil
			for _, pt := range doc.Points {
				if pt.Name == name || pt.Label == name {
					points = append(points, pt)
				}
			}
		}

		lo, hi := window(len(points), p.Args)
		return points[lo:hi], nil
	}
}

func resolveEdges(doc *scene.Document) graphql.FieldResolveFn {
	return func(p graphql.ResolveParams) (any, error) {
		from, hasFrom := p.Args["from"].(string)
		to, hasTo := p.Args["to"].(string)

		var edges []scene.DocumentEdge
		for _, e := range doc.Edges {
			if hasFrom && e.From != from {
				continue
			}
			if hasTo && e.To != to {
				continue
			}
			edges = append(edges, e)
		}

		lo, hi := window(len(edges), p.Args)
		return edges[lo:hi], nil
	}
}

// window applies limit and offset arguments to a list of n items
func window(n int, args map[string]any) (int, int) {
	offset, _ := args["offset"].(int)
	limit, ok := args["limit"].(int)
	if !ok {
		limit = DefaultLimit
	}
	if offset < 0 {
		offset = 0
	}
	if limit < 0 {
		limit = 0
	}
	if offset > n {
		offset = n
	}
	end := offset + limit
	if end > n {
		end = n
	}
	return offset, end
}
