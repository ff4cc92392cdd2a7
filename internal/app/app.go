package app

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atomicstack/superspace/internal/apps"
	"github.com/atomicstack/superspace/internal/engine"
	"github.com/atomicstack/superspace/internal/executor"
	"github.com/atomicstack/superspace/internal/logging"
	"github.com/atomicstack/superspace/internal/logging/events"
	"github.com/atomicstack/superspace/internal/match"
	"github.com/atomicstack/superspace/internal/menu"
	"github.com/atomicstack/superspace/internal/wire"
)

// Config describes user-provided application options.
type Config struct {
	ConfigPath string
	MenuDir    string
	Vars       map[string]string
	MaxItems   int
	ColdRun    bool
	Matcher    string
}

// StartupError marks a failure that happened before the engine existed. Its
// error line has already been written to the output.
type StartupError struct {
	Err error
}

func (e *StartupError) Error() string { return e.Err.Error() }

func (e *StartupError) Unwrap() error { return e.Err }

// Environment carries the process-level inputs Build needs, so tests can
// substitute them.
type Environment struct {
	Getenv  func(string) string
	AppDirs []string
	// ColdOut receives cold-run reports. Defaults to stderr.
	ColdOut io.Writer
}

func (env Environment) withDefaults() Environment {
	if env.Getenv == nil {
		env.Getenv = os.Getenv
	}
	if env.AppDirs == nil {
		env.AppDirs = apps.DataDirs(env.Getenv)
	}
	if env.ColdOut == nil {
		env.ColdOut = os.Stderr
	}
	return env
}

// Build loads the menu config and wires an engine for it.
func Build(cfg Config, env Environment) (*engine.Engine, error) {
	env = env.withDefaults()
	menuCfg, err := menu.Load(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}
	menuCfg.MergeVariables(cfg.Vars)

	scorer, err := match.NewScorer(cfg.Matcher)
	if err != nil {
		return nil, err
	}

	var runner executor.Runner = executor.OSRunner{}
	if cfg.ColdRun {
		runner = executor.ColdRunner{W: env.ColdOut}
	}

	opts := engine.Options{
		Config:   menuCfg,
		Apps:     apps.Absent{},
		Submenus: menu.DirLoader{Dir: cfg.MenuDir},
		Scorer:   scorer,
		Runner:   runner,
		MaxItems: cfg.MaxItems,
	}
	if menuCfg.General.SearchApps {
		discovery, err := apps.Discover(env.AppDirs, runner, env.Getenv)
		if err != nil {
			return nil, err
		}
		opts.Apps = discovery
		opts.Launcher = discovery
	}
	return engine.New(opts), nil
}

// Run serves the line protocol: it writes one message per state and reads
// one event per line until the session ends or the input is exhausted.
func Run(cfg Config, in io.Reader, out io.Writer) error {
	return RunWith(cfg, Environment{}, in, out)
}

// RunWith is Run with an explicit environment.
func RunWith(cfg Config, env Environment, in io.Reader, out io.Writer) error {
	e, err := Build(cfg, env)
	if err != nil {
		logging.Error(err)
		if _, werr := fmt.Fprintln(out, wire.RenderError(err)); werr != nil {
			return errors.Join(err, werr)
		}
		return &StartupError{Err: err}
	}
	return Loop(e, in, out)
}

// Loop drives e from in until it asks to exit or in reaches EOF.
func Loop(e *engine.Engine, in io.Reader, out io.Writer) error {
	reader := bufio.NewReader(in)
	for !e.ShouldExit() {
		if _, err := fmt.Fprintln(out, wire.Render(e.Snapshot())); err != nil {
			return fmt.Errorf("write state: %w", err)
		}
		line, err := reader.ReadString('\n')
		applied := false
		if ev, ok := wire.ParseEvent(line); ok {
			value := ""
			if ev.Kind == wire.EventCharacter {
				value = string(ev.Char)
			}
			events.App.Event(ev.Kind.String(), value)
			wire.Apply(e, ev)
			applied = true
		}
		if errors.Is(err, io.EOF) {
			// An unterminated last line still gets its state rendered.
			if applied && !e.ShouldExit() {
				if _, werr := fmt.Fprintln(out, wire.Render(e.Snapshot())); werr != nil {
					return fmt.Errorf("write state: %w", werr)
				}
			}
			events.App.Exit("eof")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read event: %w", err)
		}
	}
	events.App.Exit("exit")
	return nil
}
