package edgelist

import (
	"errors"
	"fmt"
	"io"
)

// CountRows returns the number of data rows in the edge list at path. It
// applies the same parsing rules as Reader, so quoted newlines are not
// counted twice, but it does not validate row width.
func CountRows(path string) (int, error) {
	r, err := Open(path)
	if err != nil {
		return 0, err
	}
	defer r.Close()

	n := 0
	for {
		_, err := r.csv.Read()
		if errors.Is(err, io.EOF) {
			return n, nil
		}
		if err != nil {
			return n, fmt.Errorf("count rows: %w", err)
		}
		n++
	}
}

// ReadAll reads every record of the edge list at path.
func ReadAll(path string) ([]Record, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	var records []Record
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return records, err
		}
		records = append(records, rec)
	}
}
