package graphbuild

import (
	"errors"
	"fmt"
)

// Operations named in BuildError
const (
	OpRead        = "read"
	OpCreatePoint = "create_point"
	OpCreateEdge  = "create_curved_edge"
	OpGroup       = "group"
)

// ErrMissingNode means an edge referenced a node absent from the node map.
// Add creates endpoints before the edge, so seeing it indicates a bug.
var ErrMissingNode = errors.New("edge endpoint not in node map")

// BuildError reports the step that aborted a build
type BuildError struct {
	Op    string // One of the Op* constants
	Row   int    // Edge list row being processed, 0 if unknown
	Label string // Node label for point operations
	Cause error
}

// Error implements the error interface.
func (e *BuildError) Error() string {
	switch {
	case e.Row != 0 && e.Label != "":
		return fmt.Sprintf("%s row %d (node %q): %v", e.Op, e.Row, e.Label, e.Cause)
	case e.Row != 0:
		return fmt.Sprintf("%s row %d: %v", e.Op, e.Row, e.Cause)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
}

// Unwrap returns the underlying cause for error chain support.
func (e *BuildError) Unwrap() error {
	return e.Cause
}
