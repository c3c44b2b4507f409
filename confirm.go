package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
)

// ErrInputClosed is returned when stdin ends before the question is answered
var ErrInputClosed = errors.New("input closed before an answer was given")

// inputClosedMsg tells the model that no key will ever arrive
type inputClosedMsg struct{}

// confirmModel is a single yes/no question
type confirmModel struct {
	prompt    string
	styles    *Styles
	answered  bool
	confirmed bool
	closed    bool
}

func newConfirmModel(prompt string, styles *Styles) confirmModel {
	return confirmModel{prompt: prompt, styles: styles}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(inputClosedMsg); ok {
		if m.answered {
			return m, nil
		}
		m.closed = true
		return m, tea.Quit
	}

	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "y", "Y":
		m.answered, m.confirmed = true, true
		return m, tea.Quit
	case "n", "N", "enter", "esc", "q", "ctrl+c":
		m.answered, m.confirmed = true, false
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	question := m.styles.Accent.Render("?") + " " + m.prompt
	if m.closed {
		return question + "\n"
	}
	if !m.answered {
		return question + " " + m.styles.Dim.Render("[y/N]") + " "
	}
	answer := "no"
	if m.confirmed {
		answer = "yes"
	}
	return question + " " + m.styles.Info.Render(answer) + "\n"
}

// eofNotifier calls onEOF the first time the wrapped reader is exhausted
type eofNotifier struct {
	r     io.Reader
	onEOF func()
	once  sync.Once
}

func (e *eofNotifier) Read(b []byte) (int, error) {
	n, err := e.r.Read(b)
	if errors.Is(err, io.EOF) {
		e.once.Do(e.onEOF)
	}
	return n, err
}

// Confirm asks a yes/no question on the terminal. Anything but an explicit
// yes is a decline. Closed input is an error.
func Confirm(prompt string, styles *Styles, in io.Reader, out io.Writer) (bool, error) {
	var p *tea.Program
	input := in
	// terminals stay unwrapped so bubbletea can put them in raw mode
	if !isTerminal(in) {
		input = &eofNotifier{r: in, onEOF: func() { p.Send(inputClosedMsg{}) }}
	}
	p = tea.NewProgram(newConfirmModel(prompt, styles), tea.WithInput(input), tea.WithOutput(out))

	final, err := p.Run()
	if err != nil {
		return false, fmt.Errorf("failed to read confirmation: %w", err)
	}

	m, ok := final.(confirmModel)
	if !ok {
		return false, nil
	}
	if m.closed {
		return false, fmt.Errorf("failed to read confirmation: %w", ErrInputClosed)
	}
	return m.confirmed, nil
}

// isTerminal reports whether r is a terminal *os.File
func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
