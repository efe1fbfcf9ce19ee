// Package graphbuild turns an edge list into rendered points and curved
// edges.
//
// A Session owns all state of one run: the node map, the first-seen node
// order, the coordinate pool and the edge list. It is created at the start
// of a build and discarded afterwards. Sessions are not safe for concurrent
// use; the Renderer contract is strictly ordered.
package graphbuild

import (
	"errors"
	"io"
	"time"

	"github.com/dd0wney/cluso-graphscene/pkg/edgelist"
	"github.com/dd0wney/cluso-graphscene/pkg/geom"
	"github.com/dd0wney/cluso-graphscene/pkg/logging"
	"github.com/dd0wney/cluso-graphscene/pkg/metrics"
)

// Options configures a Session
type Options struct {
	Logger           logging.Logger
	Metrics          *metrics.Registry // optional
	Progress         ProgressReporter  // defaults to LogProgress on Logger
	Total            int               // expected row count, 0 if unknown
	ProgressInterval int               // records between reports, default 100
}

// Session holds the state of a single graph build
type Session struct {
	renderer Renderer
	sampler  PositionSampler
	logger   logging.Logger
	metrics  *metrics.Registry
	progress ProgressReporter
	total    int
	interval int

	nodes  map[string]int // label -> index into order
	order  []Node
	coords []geom.Vec3
	edges  []Edge
	pairs  map[[2]string]struct{}

	rows      int
	selfLoops int
	dupes     int
}

// NewSession creates a session rendering through r and positioning nodes
// with s.
func NewSession(r Renderer, s PositionSampler, opts Options) *Session {
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	logger = logger.With(logging.Component("graphbuild"))

	progress := opts.Progress
	if progress == nil {
		progress = LogProgress{Logger: logger}
	}

	interval := opts.ProgressInterval
	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	return &Session{
		renderer: r,
		sampler:  s,
		logger:   logger,
		metrics:  opts.Metrics,
		progress: progress,
		total:    opts.Total,
		interval: interval,
		nodes:    make(map[string]int),
		pairs:    make(map[[2]string]struct{}),
	}
}

// Build consumes src until io.EOF. The first error aborts the build; the
// session keeps everything rendered before it.
func (s *Session) Build(src RecordSource) (*Result, error) {
	start := time.Now()

	for {
		rec, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return s.result(time.Since(start)), &BuildError{Op: OpRead, Row: s.rows + 1, Cause: err}
		}
		if err := s.Add(rec); err != nil {
			return s.result(time.Since(start)), err
		}
	}

	elapsed := time.Since(start)
	if s.metrics != nil {
		s.metrics.ObserveBuild(elapsed)
	}
	s.logger.Info("build complete",
		logging.Int("rows", s.rows),
		logging.Int("nodes", len(s.order)),
		logging.Int("edges", len(s.edges)),
		logging.Latency(elapsed),
	)
	return s.result(elapsed), nil
}

// Add processes one record: render the source node if new, then the target
// node if new, then the edge between them. Duplicates and self-loops are
// rendered like any other edge.
func (s *Session) Add(rec edgelist.Record) error {
	row := rec.Row
	if row == 0 {
		row = s.rows + 1
	}

	if err := s.ensureNode(rec.Source, row); err != nil {
		return err
	}
	if err := s.ensureNode(rec.Target, row); err != nil {
		return err
	}
	if err := s.addEdge(rec.Source, rec.Target, row); err != nil {
		return err
	}

	s.rows++
	if s.metrics != nil {
		s.metrics.RecordRow()
	}
	if s.rows%s.interval == 0 {
		s.progress.Progress(s.rows, s.total)
	}
	return nil
}

func (s *Session) ensureNode(label string, row int) error {
	if _, ok := s.nodes[label]; ok {
		return nil
	}

	pos := s.sampler.Sample()
	s.coords = append(s.coords, pos)

	handle, err := s.renderer.CreatePoint(label, pos)
	if err != nil {
		s.recordError(OpCreatePoint)
		return &BuildError{Op: OpCreatePoint, Row: row, Label: label, Cause: err}
	}

	s.nodes[label] = len(s.order)
	s.order = append(s.order, Node{Label: label, Position: pos, Handle: handle, FirstRow: row})

	if err := s.renderer.Group([]uint64{handle}); err != nil {
		s.recordError(OpGroup)
		return &BuildError{Op: OpGroup, Row: row, Label: label, Cause: err}
	}

	if s.metrics != nil {
		s.metrics.RecordPoint()
	}
	s.logger.Debug("point created", logging.Label(label), logging.Handle(handle), logging.Row(row))
	return nil
}

func (s *Session) addEdge(source, target string, row int) error {
	from, ok := s.nodes[source]
	if !ok {
		return &BuildError{Op: OpCreateEdge, Row: row, Label: source, Cause: ErrMissingNode}
	}
	to, ok := s.nodes[target]
	if !ok {
		return &BuildError{Op: OpCreateEdge, Row: row, Label: target, Cause: ErrMissingNode}
	}

	handle, err := s.renderer.CreateCurvedEdge(s.order[from].Handle, s.order[to].Handle)
	if err != nil {
		s.recordError(OpCreateEdge)
		return &BuildError{Op: OpCreateEdge, Row: row, Cause: err}
	}

	pair := [2]string{source, target}
	_, dup := s.pairs[pair]
	s.pairs[pair] = struct{}{}

	edge := Edge{
		Row:       row,
		Source:    source,
		Target:    target,
		Handle:    handle,
		SelfLoop:  source == target,
		Duplicate: dup,
	}
	s.edges = append(s.edges, edge)
	if edge.SelfLoop {
		s.selfLoops++
	}
	if dup {
		s.dupes++
	}

	if err := s.renderer.Group([]uint64{handle}); err != nil {
		s.recordError(OpGroup)
		return &BuildError{Op: OpGroup, Row: row, Cause: err}
	}

	if s.metrics != nil {
		s.metrics.RecordEdge(edge.SelfLoop, dup)
	}
	return nil
}

func (s *Session) recordError(op string) {
	if s.metrics != nil {
		s.metrics.RecordRendererError(op)
	}
}

// Node returns the node registered under label
func (s *Session) Node(label string) (Node, bool) {
	i, ok := s.nodes[label]
	if !ok {
		return Node{}, false
	}
	return s.order[i], true
}

// Nodes returns the nodes in first-seen order
func (s *Session) Nodes() []Node {
	return append([]Node(nil), s.order...)
}

// Edges returns the rendered edges in row order
func (s *Session) Edges() []Edge {
	return append([]Edge(nil), s.edges...)
}

// Coordinates returns the coordinate pool: every sampled position in
// sampling order.
func (s *Session) Coordinates() []geom.Vec3 {
	return append([]geom.Vec3(nil), s.coords...)
}

// Rows returns the number of records fully processed
func (s *Session) Rows() int {
	return s.rows
}

func (s *Session) result(d time.Duration) *Result {
	return &Result{
		Nodes:          s.Nodes(),
		Edges:          s.Edges(),
		Coordinates:    s.Coordinates(),
		Rows:           s.rows,
		SelfLoops:      s.selfLoops,
		DuplicateEdges: s.dupes,
		Duration:       d,
	}
}
