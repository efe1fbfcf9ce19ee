package edgelist

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "edges.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReaderSkipsHeader(t *testing.T) {
	path := writeCSV(t, "id,source,target\n1,A,B\n2,B,C\n3,A,B\n")

	r, err := Open(path)
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, []string{"id", "source", "target"}, r.Header())

	var got []Record
	for {
		rec, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		got = append(got, rec)
	}

	assert.Equal(t, []Record{
		{Row: 1, ID: "1", Source: "A", Target: "B"},
		{Row: 2, ID: "2", Source: "B", Target: "C"},
		{Row: 3, ID: "3", Source: "A", Target: "B"},
	}, got)
	assert.Equal(t, 3, r.Rows())
}

func TestReaderHeaderOnly(t *testing.T) {
	path := writeCSV(t, "id,source,target\n")

	records, err := ReadAll(path)
	require.NoError(t, err)
	assert.Empty(t, records)

	n, err := CountRows(path)
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestReaderEmptyFile(t *testing.T) {
	path := writeCSV(t, "")

	_, err := Open(path)
	assert.ErrorIs(t, err, ErrMissingHeader)
}

func TestReaderMissingFile(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "nope.csv"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist), "got %v", err)
}

func TestReaderShortRowIsFatal(t *testing.T) {
	r, err := NewReader(strings.NewReader("id,source,target\n1,A,B\n2,C\n3,D,E\n"))
	require.NoError(t, err)

	_, err = r.Next()
	require.NoError(t, err)

	_, err = r.Next()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShortRow)

	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 2, rowErr.Row)
	assert.Equal(t, 3, rowErr.Line)
	assert.Equal(t, 2, rowErr.Fields)
	assert.Contains(t, rowErr.Error(), "row 2")
}

func TestReaderInvalidUTF8(t *testing.T) {
	tests := []struct {
		name    string
		content string
		row     int
	}{
		{name: "data row", content: "id,source,target\n1,A,\xff\xfe\n", row: 1},
		{name: "header", content: "id,\xc3\x28,target\n1,A,B\n", row: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, tt.content)
			_, err := ReadAll(path)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidUTF8)

			var rowErr *RowError
			require.ErrorAs(t, err, &rowErr)
			assert.Equal(t, tt.row, rowErr.Row)
		})
	}
}

func TestReaderExtraColumnsAndQuoting(t *testing.T) {
	content := "id,source,target,weight\n" +
		"1,\"Smith, J.\",\"multi\nline\",0.5\n" +
		"2, padded ,B\n"
	path := writeCSV(t, content)

	records, err := ReadAll(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Smith, J.", records[0].Source)
	assert.Equal(t, "multi\nline", records[0].Target)
	// ids are opaque: no trimming
	assert.Equal(t, " padded ", records[1].Source)

	n, err := CountRows(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestReaderCloseIsIdempotent(t *testing.T) {
	path := writeCSV(t, "id,source,target\n1,A,B\n")

	r, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, r.Close())
	require.NoError(t, r.Close())

	_, err = r.Next()
	assert.ErrorIs(t, err, ErrClosed)
}

func TestReaderBareQuoteIsLiteral(t *testing.T) {
	path := writeCSV(t, "id,source,target\n0,O\"Brien,X\n1,X,say \"hi\"\n")

	records, err := ReadAll(path)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, `O"Brien`, records[0].Source)
	assert.Equal(t, "X", records[0].Target)
	assert.Equal(t, `say "hi"`, records[1].Target)

	n, err := CountRows(path)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestReaderReadError(t *testing.T) {
	errDisk := errors.New("disk gone")
	src := io.MultiReader(strings.NewReader("id,source,target\n1,A,B\n"), iotest.ErrReader(errDisk))

	r, err := NewReader(src)
	require.NoError(t, err)

	rec, err := r.Next()
	require.NoError(t, err)
	assert.Equal(t, "B", rec.Target)

	_, err = r.Next()
	require.Error(t, err)
	assert.ErrorIs(t, err, errDisk)
	assert.Contains(t, err.Error(), "read row 2")
}
