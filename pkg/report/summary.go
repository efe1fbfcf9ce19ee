package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/dd0wney/cluso-graphscene/pkg/layout"
)

// Summary is what a finished build prints
type Summary struct {
	Input          string
	Output         string
	Format         string
	Compressed     bool
	Bytes          int64
	Digest         string
	Rows           int
	Nodes          int
	Edges          int
	SelfLoops      int
	DuplicateEdges int
	AcceptanceRate float64
	Bounds         layout.Box // bounding box of the node positions
	Duration       time.Duration
	UploadURI      string
	MetricsFile    string
}

// Render formats the summary as a boxed table
func (s Summary) Render() string {
	rows := [][2]string{
		{"input", s.Input},
		{"output", s.outputLine()},
		{"rows", fmt.Sprint(s.Rows)},
		{"nodes", fmt.Sprint(s.Nodes)},
		{"edges", fmt.Sprint(s.Edges)},
	}
	if s.Nodes > 0 {
		size := s.Bounds.Size()
		rows = append(rows, [2]string{"extent", fmt.Sprintf("%.1f x %.1f x %.1f", size.X, size.Y, size.Z)})
	}
	if s.AcceptanceRate > 0 {
		rows = append(rows, [2]string{"acceptance", fmt.Sprintf("%.4f", s.AcceptanceRate)})
	}
	rows = append(rows, [2]string{"duration", s.Duration.Round(time.Millisecond).String()})
	if s.Digest != "" {
		rows = append(rows, [2]string{"blake2b", shortDigest(s.Digest)})
	}
	if s.MetricsFile != "" {
		rows = append(rows, [2]string{"metrics", s.MetricsFile})
	}
	if s.UploadURI != "" {
		rows = append(rows, [2]string{"uploaded", s.UploadURI})
	}

	lines := make([]string, 0, len(rows)+2)
	lines = append(lines, titleStyle.Render("graph scene built"))
	for _, r := range rows {
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			labelStyle.Render(r[0]), valueStyle.Render(r[1])))
	}
	if s.SelfLoops > 0 || s.DuplicateEdges > 0 {
		lines = append(lines, warnStyle.Render(fmt.Sprintf(
			"%d self-loops, %d duplicate edges rendered as-is", s.SelfLoops, s.DuplicateEdges)))
	}

	return boxStyle.Render(strings.Join(lines, "\n"))
}

// WriteTo writes the rendered summary and a trailing newline
func (s Summary) WriteTo(w io.Writer) (int64, error) {
	n, err := fmt.Fprintln(w, s.Render())
	return int64(n), err
}

func (s Summary) outputLine() string {
	out := s.Output
	if s.Format != "" {
		out += " (" + s.Format
		if s.Compressed {
			out += ", snappy"
		}
		out += ")"
	}
	if s.Bytes > 0 {
		out += fmt.Sprintf(" %s", humanBytes(s.Bytes))
	}
	return out
}

func shortDigest(d string) string {
	if len(d) > 16 {
		return d[:16]
	}
	return d
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
