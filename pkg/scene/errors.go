package scene

import (
	"errors"
	"fmt"
)

// Common sentinel errors
var (
	ErrInvalidGeometry = errors.New("invalid geometry")
	ErrUnknownObject   = errors.New("unknown object")
	ErrNotPoint        = errors.New("object is not a point")
	ErrUnknownFormat   = errors.New("unknown export format")
	ErrBadDocument     = errors.New("malformed scene document")
)

// SceneError provides structured error information for scene operations.
type SceneError struct {
	Op     string // Operation that failed (e.g., "create_point", "group")
	Object string // Object name (if known)
	ID     uint64 // Object ID (if applicable)
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *SceneError) Error() string {
	switch {
	case e.ID != 0 && e.Object != "":
		return fmt.Sprintf("%s %q (id %d): %v", e.Op, e.Object, e.ID, e.Cause)
	case e.ID != 0:
		return fmt.Sprintf("%s id %d: %v", e.Op, e.ID, e.Cause)
	case e.Object != "":
		return fmt.Sprintf("%s %q: %v", e.Op, e.Object, e.Cause)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Cause)
	}
}

// Unwrap returns the underlying cause for error chain support.
func (e *SceneError) Unwrap() error {
	return e.Cause
}

// Is reports whether the target error matches this error or its cause.
func (e *SceneError) Is(target error) bool {
	if target == nil {
		return false
	}
	return errors.Is(e.Cause, target)
}
