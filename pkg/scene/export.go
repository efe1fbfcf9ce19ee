package scene

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash"
	"io"
	"strings"

	"github.com/golang/snappy"
	"golang.org/x/crypto/blake2b"
)

// Format selects the export encoding
type Format string

const (
	FormatJSON Format = "json"
	FormatOBJ  Format = "obj"
)

// ParseFormat accepts "json" or "obj", case-insensitively
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatOBJ:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// ExportOptions controls Export
type ExportOptions struct {
	Format          Format
	Compress        bool   // snappy framing around the encoded stream
	MaterialLibrary string // mtllib referenced from OBJ output
	Indent          bool   // pretty-print JSON
}

// ExportInfo describes what Export wrote
type ExportInfo struct {
	Format     Format `json:"format"`
	Compressed bool   `json:"compressed"`
	Bytes      int64  `json:"bytes"`
	Digest     string `json:"digest"` // hex BLAKE2b-256 of the bytes written
}

// Export encodes the scene to w. Bytes and Digest cover exactly what
// reached w, after compression.
func Export(w io.Writer, s *Scene, opts ExportOptions) (ExportInfo, error) {
	if opts.Format == "" {
		opts.Format = FormatJSON
	}
	if _, err := ParseFormat(string(opts.Format)); err != nil {
		return ExportInfo{}, err
	}

	h, err := blake2b.New256(nil)
	if err != nil {
		return ExportInfo{}, fmt.Errorf("init digest: %w", err)
	}
	counted := &digestWriter{w: w, h: h}

	var body io.Writer = counted
	var sw *snappy.Writer
	if opts.Compress {
		sw = snappy.NewBufferedWriter(counted)
		body = sw
	}

	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(body)
		if opts.Indent {
			enc.SetIndent("", "  ")
		}
		err = enc.Encode(s.Document())
	case FormatOBJ:
		err = writeOBJ(body, s, opts.MaterialLibrary)
	}
	if err != nil {
		return ExportInfo{}, fmt.Errorf("export %s: %w", opts.Format, err)
	}
	if sw != nil {
		if err := sw.Close(); err != nil {
			return ExportInfo{}, fmt.Errorf("flush compressed stream: %w", err)
		}
	}

	return ExportInfo{
		Format:     opts.Format,
		Compressed: opts.Compress,
		Bytes:      counted.n,
		Digest:     hex.EncodeToString(h.Sum(nil)),
	}, nil
}

// digestWriter counts and hashes everything written through it
type digestWriter struct {
	w io.Writer
	h hash.Hash
	n int64
}

func (d *digestWriter) Write(p []byte) (int, error) {
	n, err := d.w.Write(p)
	d.h.Write(p[:n])
	d.n += int64(n)
	return n, err
}
