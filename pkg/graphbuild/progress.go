package graphbuild

import (
	"github.com/dd0wney/cluso-graphscene/pkg/logging"
)

// DefaultProgressInterval is the number of records between progress reports
const DefaultProgressInterval = 100

// LogProgress reports progress as INFO log lines
type LogProgress struct {
	Logger logging.Logger
}

// Progress implements ProgressReporter
func (p LogProgress) Progress(processed, total int) {
	if total <= 0 {
		p.Logger.Info("build progress", logging.Int("processed", processed))
		return
	}
	p.Logger.Info("build progress",
		logging.Int("processed", processed),
		logging.Int("total", total),
		logging.Percent(Percent(processed, total)),
	)
}

// Percent returns 100*processed/total, or 0 when total is unknown
func Percent(processed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return 100 * float64(processed) / float64(total)
}

// MultiProgress fans a report out to several reporters
type MultiProgress []ProgressReporter

// Progress implements ProgressReporter
func (m MultiProgress) Progress(processed, total int) {
	for _, p := range m {
		p.Progress(processed, total)
	}
}
