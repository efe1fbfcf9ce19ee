package graphbuild

import (
	"time"

	"github.com/dd0wney/cluso-graphscene/pkg/edgelist"
	"github.com/dd0wney/cluso-graphscene/pkg/geom"
)

// Renderer materializes nodes and edges. Calls are issued in order and may
// depend on handles returned by earlier calls.
type Renderer interface {
	// CreatePoint creates a uniquely named marker at position
	CreatePoint(label string, position geom.Vec3) (uint64, error)
	// CreateCurvedEdge connects two handles returned by CreatePoint
	CreateCurvedEdge(from, to uint64) (uint64, error)
	// Group moves visuals into the graph collection
	Group(handles []uint64) error
}

// PositionSampler assigns a position to a node seen for the first time
type PositionSampler interface {
	Sample() geom.Vec3
}

// RecordSource yields edge list records until io.EOF
type RecordSource interface {
	Next() (edgelist.Record, error)
}

// ProgressReporter is told how far a build has got
type ProgressReporter interface {
	Progress(processed, total int)
}

// Node is a graph vertex. Its position is fixed on first sight.
type Node struct {
	Label    string    `json:"label"`
	Position geom.Vec3 `json:"position"`
	Handle   uint64    `json:"handle"`
	FirstRow int       `json:"first_row"`
}

// Edge is one edge list row as rendered
type Edge struct {
	Row       int    `json:"row"`
	Source    string `json:"source"`
	Target    string `json:"target"`
	Handle    uint64 `json:"handle"`
	SelfLoop  bool   `json:"self_loop,omitempty"`
	Duplicate bool   `json:"duplicate,omitempty"`
}

// Result summarizes a finished build
type Result struct {
	Nodes          []Node
	Edges          []Edge
	Coordinates    []geom.Vec3
	Rows           int
	SelfLoops      int
	DuplicateEdges int
	Duration       time.Duration
}
