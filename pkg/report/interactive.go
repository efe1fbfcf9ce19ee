package report

import (
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dd0wney/cluso-graphscene/pkg/graphbuild"
)

type progressMsg struct {
	processed int
	total     int
}

type doneMsg struct {
	err error
}

// model is the bubbletea model behind RunInteractive
type model struct {
	bar       progress.Model
	title     string
	processed int
	total     int
	done      bool
	err       error
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case progressMsg:
		m.processed, m.total = msg.processed, msg.total
		return m, nil
	case doneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	var s strings.Builder
	if m.title != "" {
		s.WriteString(titleStyle.Render(m.title))
		s.WriteString("\n")
	}
	s.WriteString(render(m.bar, m.processed, m.total))
	s.WriteString("\n")
	return s.String()
}

// programReporter forwards progress into a running program
type programReporter struct {
	p *tea.Program
}

func (r programReporter) Progress(processed, total int) {
	r.p.Send(progressMsg{processed: processed, total: total})
}

// RunInteractive runs work while a live progress bar renders to out.
// It returns work's error once the bar has been torn down.
func RunInteractive(out io.Writer, title string, width int, work func(graphbuild.ProgressReporter) error) error {
	p := tea.NewProgram(
		model{bar: newModel(width), title: title},
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)

	workErr := make(chan error, 1)
	go func() {
		err := work(programReporter{p: p})
		workErr <- err
		p.Send(doneMsg{err: err})
	}()

	if _, err := p.Run(); err != nil {
		// the program died first; still wait for work to finish
		if werr := <-workErr; werr != nil {
			return werr
		}
		return err
	}
	return <-workErr
}
