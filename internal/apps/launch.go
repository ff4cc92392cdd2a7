package apps

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/shlex"

	"github.com/atomicstack/superspace/internal/executor"
	"github.com/atomicstack/superspace/internal/logging/events"
)

// ErrNoTerminal is returned when a terminal application is launched without
// $TERMINAL set.
var ErrNoTerminal = errors.New("TERMINAL is not set")

// Launch starts the application behind handle through the runner.
func (d *Discovery) Launch(handle string) error {
	entry, ok := d.entries[handle]
	if !ok {
		return fmt.Errorf("unknown application %s", handle)
	}
	argv, err := entry.Argv()
	if err != nil {
		return err
	}
	if entry.Terminal {
		term := d.getenv("TERMINAL")
		if term == "" {
			return ErrNoTerminal
		}
		argv = append([]string{term, "-e"}, argv...)
	}
	events.Apps.Launch(entry.Path, argv)
	return d.runner.Spawn(executor.Command{Argv: argv, Dir: entry.WorkDir})
}

// Argv tokenises Exec and expands its field codes.
func (e *Entry) Argv() ([]string, error) {
	tokens, err := shlex.Split(e.Exec)
	if err != nil {
		return nil, fmt.Errorf("parse Exec of %s: %w", e.Path, err)
	}
	argv := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok == "%i" {
			if e.Icon != "" {
				argv = append(argv, "--icon", e.Icon)
			}
			continue
		}
		expanded, keep := e.expandField(tok)
		if keep {
			argv = append(argv, expanded)
		}
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("empty Exec in %s", e.Path)
	}
	return argv, nil
}

// expandField replaces field codes inside one token. A token made only of a
// dropped code is removed.
func (e *Entry) expandField(tok string) (string, bool) {
	if !strings.Contains(tok, "%") {
		return tok, true
	}
	var b strings.Builder
	dropped := false
	for i := 0; i < len(tok); i++ {
		if tok[i] != '%' || i+1 == len(tok) {
			b.WriteByte(tok[i])
			continue
		}
		i++
		switch tok[i] {
		case '%':
			b.WriteByte('%')
		case 'c':
			b.WriteString(e.Name)
		case 'k':
			b.WriteString(e.Path)
		case 'i':
			b.WriteString(e.Icon)
		default:
			dropped = true
		}
	}
	if dropped && b.Len() == 0 {
		return "", false
	}
	return b.String(), true
}
