package app

import (
	"bytes"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/atomicstack/superspace/internal/ui"
)

// ErrNoTerminal is returned by RunTUI when stdin is not a terminal.
var ErrNoTerminal = errors.New("tui requires a terminal on stdin")

// RunTUI drives the engine from a Bubble Tea program. Cold-run reports are
// held back and printed once the program has left the alternate screen.
func RunTUI(cfg Config, width, height int) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return ErrNoTerminal
	}
	var cold bytes.Buffer
	e, err := Build(cfg, Environment{ColdOut: &cold})
	if err != nil {
		return err
	}
	model := ui.NewModel(e, width, height)
	program := tea.NewProgram(model, tea.WithAltScreen())
	_, err = program.Run()
	if cold.Len() > 0 {
		_, _ = os.Stdout.Write(cold.Bytes())
	}
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
