// Package edgelist reads CSV edge lists of the form id,source,target.
//
// The first record is a header and is skipped. Only columns 1 and 2 are
// interpreted (source and target node ids, compared as opaque strings);
// column 0 is passed through untouched.
package edgelist

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"golang.org/x/exp/mmap"
)

// Record is one data row of an edge list.
type Record struct {
	Row    int    // 1-based data row index, header excluded
	ID     string // column 0
	Source string // column 1
	Target string // column 2
}

// Reader yields records lazily from a CSV edge list.
type Reader struct {
	mapped *mmap.ReaderAt
	csv    *csv.Reader
	header []string
	row    int
	closed bool
}

// Open memory-maps path and reads its header. The returned Reader must be
// closed by the caller.
func Open(path string) (*Reader, error) {
	mapped, err := mmap.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open edge list: %w", err)
	}

	r, err := newReader(io.NewSectionReader(mapped, 0, int64(mapped.Len())))
	if err != nil {
		_ = mapped.Close()
		return nil, fmt.Errorf("open edge list %s: %w", path, err)
	}
	r.mapped = mapped
	return r, nil
}

// NewReader reads an edge list from an arbitrary stream. Close is a no-op
// for the stream itself.
func NewReader(src io.Reader) (*Reader, error) {
	return newReader(src)
}

func newReader(src io.Reader) (*Reader, error) {
	cr := csv.NewReader(src)
	cr.Comma = ','
	cr.FieldsPerRecord = -1 // rows may carry extra columns
	cr.LazyQuotes = true     // a stray quote inside a name is literal

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrMissingHeader
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if err := checkUTF8(header); err != nil {
		line, _ := cr.FieldPos(0)
		return nil, &RowError{Row: 0, Line: line, Fields: len(header), Cause: err}
	}

	return &Reader{csv: cr, header: header}, nil
}

// Header returns the header record.
func (r *Reader) Header() []string {
	return r.header
}

// Next returns the next record, or io.EOF when the list is exhausted.
func (r *Reader) Next() (Record, error) {
	if r.closed {
		return Record{}, ErrClosed
	}

	fields, err := r.csv.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return Record{}, io.EOF
		}
		return Record{}, fmt.Errorf("read row %d: %w", r.row+1, err)
	}
	r.row++

	line, _ := r.csv.FieldPos(0)
	if len(fields) < MinFields {
		return Record{}, &RowError{Row: r.row, Line: line, Fields: len(fields), Cause: ErrShortRow}
	}
	if err := checkUTF8(fields); err != nil {
		return Record{}, &RowError{Row: r.row, Line: line, Fields: len(fields), Cause: err}
	}

	return Record{
		Row:    r.row,
		ID:     fields[0],
		Source: fields[1],
		Target: fields[2],
	}, nil
}

// Rows returns the number of data rows consumed so far.
func (r *Reader) Rows() int {
	return r.row
}

// Close releases the underlying file mapping. It is safe to call more than once.
func (r *Reader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.mapped != nil {
		return r.mapped.Close()
	}
	return nil
}

func checkUTF8(fields []string) error {
	for i, f := range fields {
		if !utf8.ValidString(f) {
			return fmt.Errorf("field %d: %w", i, ErrInvalidUTF8)
		}
	}
	return nil
}
