package edgelist

import (
	"errors"
	"fmt"
)

// Sentinel errors. Every one of them is fatal to a read loop.
var (
	ErrMissingHeader = errors.New("missing header row")
	ErrShortRow      = errors.New("row has fewer than 3 fields")
	ErrInvalidUTF8   = errors.New("invalid UTF-8")
	ErrClosed        = errors.New("reader is closed")
)

// MinFields is the number of columns a data row must carry: id, source, target.
const MinFields = 3

// RowError reports a problem with a single CSV record.
type RowError struct {
	Row    int   // 1-based data row, 0 for the header
	Line   int   // line in the file where the record starts
	Fields int   // number of fields found
	Cause  error // underlying error
}

// Error implements the error interface.
func (e *RowError) Error() string {
	if e.Row == 0 {
		return fmt.Sprintf("header (line %d): %v", e.Line, e.Cause)
	}
	if errors.Is(e.Cause, ErrShortRow) {
		return fmt.Sprintf("row %d (line %d): %v: got %d", e.Row, e.Line, e.Cause, e.Fields)
	}
	return fmt.Sprintf("row %d (line %d): %v", e.Row, e.Line, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *RowError) Unwrap() error {
	return e.Cause
}
