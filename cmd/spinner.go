package cmd

import (
	"context"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/xrsl/atscv/pkg/style"
)

type doneMsg struct{}

type spinnerModel struct {
	spinner spinner.Model
	label   string
	done    bool
}

func newSpinnerModel(label string) spinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("6"))),
	)
	return spinnerModel{spinner: s, label: label}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(doneMsg); ok {
		m.done = true
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)
	return m, cmd
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + m.label + "\n"
}

// withSpinner runs fn while a spinner animates on stderr. The spinner is
// skipped when stderr is not a terminal or output is quiet.
func withSpinner(ctx context.Context, label string, fn func(context.Context) (string, error)) (string, error) {
	if quiet || style.NoColor || !isTerminal(os.Stderr) {
		return fn(ctx)
	}

	p := tea.NewProgram(newSpinnerModel(label),
		tea.WithOutput(os.Stderr),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
	finished := make(chan struct{})
	go func() {
		defer close(finished)
		_, _ = p.Run()
	}()

	out, err := fn(ctx)
	p.Send(doneMsg{})
	<-finished
	return out, err
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
