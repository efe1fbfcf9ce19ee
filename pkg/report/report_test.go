package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dd0wney/cluso-graphscene/pkg/geom"
	"github.com/dd0wney/cluso-graphscene/pkg/graphbuild"
	"github.com/dd0wney/cluso-graphscene/pkg/layout"
)

var _ graphbuild.ProgressReporter = (*Bar)(nil)

func TestBar(t *testing.T) {
	var buf bytes.Buffer
	bar := NewBar(&buf, 20)

	bar.Progress(50, 200)
	bar.Progress(200, 200)
	bar.Progress(7, 0)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[0], "50/200"), lines[0])
	assert.Contains(t, lines[0], "25%")
	assert.Contains(t, lines[1], "100%")
	assert.Equal(t, "7 rows", lines[2])
}

func TestFraction(t *testing.T) {
	assert.Equal(t, 0.0, Fraction(5, 0))
	assert.Equal(t, 0.25, Fraction(25, 100))
	assert.Equal(t, 1.0, Fraction(150, 100))
	assert.Equal(t, 0.0, Fraction(-1, 100))
}

func TestRunInteractive(t *testing.T) {
	var buf bytes.Buffer
	calls := 0
	err := RunInteractive(&buf, "building", 20, func(p graphbuild.ProgressReporter) error {
		for i := 1; i <= 3; i++ {
			p.Progress(i*100, 300)
			calls++
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, buf.String(), "building")
}

func TestRunInteractivePropagatesError(t *testing.T) {
	boom := errors.New("renderer failed")
	err := RunInteractive(&bytes.Buffer{}, "", 0, func(p graphbuild.ProgressReporter) error {
		p.Progress(1, 10)
		return boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestModelQuitsOnDone(t *testing.T) {
	m := model{bar: newModel(10)}
	next, cmd := m.Update(progressMsg{processed: 5, total: 10})
	assert.Nil(t, cmd)
	assert.Contains(t, next.View(), "5/10")

	next, cmd = next.Update(doneMsg{})
	require.NotNil(t, cmd)
	assert.True(t, next.(model).done)
}

func TestSummary(t *testing.T) {
	s := Summary{
		Input:          "edges.csv",
		Output:         "edges.scene.json",
		Format:         "json",
		Compressed:     true,
		Bytes:          1536,
		Digest:         strings.Repeat("ab", 32),
		Rows:           3,
		Nodes:          3,
		Edges:          3,
		DuplicateEdges: 1,
		Bounds:         layout.Box{Min: geom.Vec3{X: -1, Y: -2, Z: -3}, Max: geom.Vec3{X: 5, Y: 5, Z: 6}},
		Duration:       1500 * time.Millisecond,
		UploadURI:      "s3://scenes/edges.json",
	}

	out := s.Render()
	assert.Contains(t, out, "graph scene built")
	assert.Contains(t, out, "edges.scene.json (json, snappy) 1.5 KiB")
	assert.Contains(t, out, "1.5s")
	assert.Contains(t, out, "6.0 x 7.0 x 9.0")
	assert.Contains(t, out, strings.Repeat("ab", 8))
	assert.NotContains(t, out, strings.Repeat("ab", 9))
	assert.Contains(t, out, "s3://scenes/edges.json")
	assert.Contains(t, out, "0 self-loops, 1 duplicate edges")

	var buf bytes.Buffer
	n, err := s.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
}

func TestHumanBytes(t *testing.T) {
	assert.Equal(t, "512 B", humanBytes(512))
	assert.Equal(t, "1.0 KiB", humanBytes(1024))
	assert.Equal(t, "2.0 MiB", humanBytes(2<<20))
}
