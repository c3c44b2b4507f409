package main

import (
	"io"
	"os"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// Progress is the cosmetic indicator shown while a request is in flight
type Progress interface {
	Start()
	Success(message string)
	Fail(message string)
}

// stopSpinnerMsg ends the spinner program with a final line
type stopSpinnerMsg struct {
	final string
}

// spinnerModel is the bubbletea model behind Spinner
type spinnerModel struct {
	spinner spinner.Model
	styles  *Styles
	message string
	final   string
	done    bool
}

func newSpinnerModel(message string, styles *Styles) spinnerModel {
	s := spinner.New()
	s.Spinner = spinner.Spinner{
		Frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
		FPS:    spinner.Dot.FPS,
	}
	s.Style = styles.Info

	return spinnerModel{spinner: s, styles: styles, message: message}
}

func (m spinnerModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stopSpinnerMsg:
		m.done = true
		m.final = msg.final
		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return m.final + "\n"
	}
	return m.spinner.View() + " " + m.message
}

// Spinner displays an animated spinner with a message on a terminal
type Spinner struct {
	program *tea.Program
	styles  *Styles
	done    chan struct{}
	enabled bool
	started bool
}

// NewSpinner creates a spinner writing to out. It is inert when out is not
// a terminal.
func NewSpinner(message string, styles *Styles, out *os.File) *Spinner {
	s := &Spinner{
		styles:  styles,
		done:    make(chan struct{}),
		enabled: out != nil && (isatty.IsTerminal(out.Fd()) || isatty.IsCygwinTerminal(out.Fd())),
	}
	if s.enabled {
		s.program = newSpinnerProgram(newSpinnerModel(message, styles), out)
	}
	return s
}

func newSpinnerProgram(model tea.Model, out io.Writer) *tea.Program {
	// No input and no signal handler: Ctrl+C must still kill the process
	// while the request blocks.
	return tea.NewProgram(model,
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)
}

// Start begins the spinner animation
func (s *Spinner) Start() {
	if !s.enabled || s.started {
		return
	}
	s.started = true
	go func() {
		defer close(s.done)
		_, _ = s.program.Run()
	}()
}

// Success stops the spinner and shows a success message
func (s *Spinner) Success(message string) {
	s.finish(s.styles.Success.Render("✓") + " " + message)
}

// Fail stops the spinner and shows a failure message
func (s *Spinner) Fail(message string) {
	s.finish(s.styles.Error.Render("✗") + " " + message)
}

func (s *Spinner) finish(final string) {
	if !s.started {
		return
	}
	s.program.Send(stopSpinnerMsg{final: final})
	<-s.done
	s.started = false
}

// nopProgress is used when no terminal is attached and in tests
type nopProgress struct{}

func (nopProgress) Start()         {}
func (nopProgress) Success(string) {}
func (nopProgress) Fail(string)    {}
