package report

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
)

// DefaultWidth is the bar width in cells
const DefaultWidth = 40

// Bar writes one rendered progress line per report. It suits logs and
// other non-interactive outputs; use RunInteractive for a live bar.
type Bar struct {
	mu    sync.Mutex
	w     io.Writer
	model progress.Model
}

// NewBar creates a bar writing to w
func NewBar(w io.Writer, width int) *Bar {
	return &Bar{w: w, model: newModel(width)}
}

func newModel(width int) progress.Model {
	if width <= 0 {
		width = DefaultWidth
	}
	m := progress.New(progress.WithGradient("#00B981", "#FFFF00"))
	m.Width = width
	return m
}

// Progress implements graphbuild.ProgressReporter
func (b *Bar) Progress(processed, total int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fmt.Fprintln(b.w, render(b.model, processed, total))
}

func render(m progress.Model, processed, total int) string {
	if total <= 0 {
		return fmt.Sprintf("%d rows", processed)
	}
	return fmt.Sprintf("%s %d/%d", m.ViewAs(Fraction(processed, total)), processed, total)
}

// Fraction is processed/total clamped to [0, 1]
func Fraction(processed, total int) float64 {
	if total <= 0 {
		return 0
	}
	f := float64(processed) / float64(total)
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}
