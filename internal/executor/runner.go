package executor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/atomicstack/superspace/internal/logging/events"
)

// ErrColdRun is returned by ColdRunner.Capture; nothing runs in a cold run.
var ErrColdRun = errors.New("cold run: execution disabled")

// Command is a fully expanded invocation plus the variable state it was
// expanded against.
type Command struct {
	Argv     []string
	Template []string
	Dir      string
	Globals  map[string]string
	Overlay  map[string]string
}

// Runner executes commands for the engine.
type Runner interface {
	// Spawn starts the command detached and does not wait for it.
	Spawn(cmd Command) error
	// Capture runs the command to completion and returns its standard output
	// with trailing whitespace removed.
	Capture(cmd Command) (string, error)
	// Cold reports whether this runner only reports commands.
	Cold() bool
}

// OSRunner runs real processes.
type OSRunner struct{}

func (OSRunner) Cold() bool { return false }

// Spawn implements Runner. Standard streams go to the null device and the
// environment is inherited.
func (OSRunner) Spawn(cmd Command) error {
	if len(cmd.Argv) == 0 {
		return nil
	}
	c := exec.Command(cmd.Argv[0], cmd.Argv[1:]...)
	c.Dir = cmd.Dir
	c.SysProcAttr = detachedAttr()
	events.Exec.Spawn(cmd.Argv)
	if err := c.Start(); err != nil {
		events.Exec.SpawnFailed(cmd.Argv, err)
		return err
	}
	go func() {
		_ = c.Wait()
	}()
	return nil
}

// Capture implements Runner.
func (OSRunner) Capture(cmd Command) (string, error) {
	if len(cmd.Argv) == 0 {
		return "", errors.New("empty command")
	}
	c := exec.Command(cmd.Argv[0], cmd.Argv[1:]...)
	c.Dir = cmd.Dir
	out, err := c.Output()
	if err != nil {
		events.Exec.PreviewFailed(cmd.Argv, err)
		return "", err
	}
	events.Exec.Preview(cmd.Argv, len(out))
	return trimOutput(out), nil
}

func trimOutput(out []byte) string {
	s := strings.ToValidUTF8(string(out), "�")
	return strings.TrimRightFunc(s, unicode.IsSpace)
}

// ColdRunner never executes anything. Spawn writes a YAML report of the
// command and variables to W (stderr when nil).
type ColdRunner struct {
	W io.Writer
}

func (ColdRunner) Cold() bool { return true }

type coldReport struct {
	Command  []string      `yaml:"command"`
	Template []string      `yaml:"template,omitempty"`
	Dir      string        `yaml:"dir,omitempty"`
	Globals  []coldVarLine `yaml:"variables"`
	Overlay  []coldVarLine `yaml:"overlay"`
}

type coldVarLine struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

// Spawn implements Runner.
func (r ColdRunner) Spawn(cmd Command) error {
	w := r.W
	if w == nil {
		w = os.Stderr
	}
	events.Exec.Cold(cmd.Argv)
	report := coldReport{
		Command:  nonNil(cmd.Argv),
		Template: cmd.Template,
		Dir:      cmd.Dir,
		Globals:  sortedVars(cmd.Globals),
		Overlay:  sortedVars(cmd.Overlay),
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("cold run report: %w", err)
	}
	return enc.Close()
}

// Capture implements Runner.
func (ColdRunner) Capture(Command) (string, error) {
	return "", ErrColdRun
}

func sortedVars(m map[string]string) []coldVarLine {
	out := make([]coldVarLine, 0, len(m))
	for k, v := range m {
		out = append(out, coldVarLine{Name: k, Value: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
