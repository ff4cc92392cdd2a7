package engine

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/atomicstack/superspace/internal/executor"
	"github.com/atomicstack/superspace/internal/logging/events"
	"github.com/atomicstack/superspace/internal/match"
	"github.com/atomicstack/superspace/internal/menu"
)

// Delimiter commits a main menu prefix.
const Delimiter = ' '

// AppProvider supplies discovered applications. ok is false when discovery
// is disabled or unsupported.
type AppProvider interface {
	Applications() (items []menu.ListItem, ok bool)
}

// Launcher starts a discovered application from its handle.
type Launcher interface {
	Launch(handle string) error
}

// Options wires the engine to its collaborators. Config is required; nil
// collaborators fall back to safe defaults.
type Options struct {
	Config   *menu.Config
	Apps     AppProvider
	Launcher Launcher
	Submenus menu.SubmenuLoader
	Scorer   match.Scorer
	Runner   executor.Runner
	// MaxItems is accepted for compatibility and has no effect.
	MaxItems int
}

// Engine is the launcher state machine. It is not safe for concurrent use;
// one goroutine feeds it events and reads snapshots.
type Engine struct {
	cfg      *menu.Config
	prefixes []string
	apps     []menu.ListItem
	appsOK   bool
	launcher Launcher
	loader   menu.SubmenuLoader
	scorer   match.Scorer
	runner   executor.Runner
	maxItems int

	mode    Mode
	input   string
	prompt  *string
	exit    bool
	overlay *Overlay
	cache   *submenuCache
}

// New builds an engine in the main menu with no filter active.
func New(opts Options) *Engine {
	cfg := opts.Config
	if cfg == nil {
		cfg = &menu.Config{}
	}
	e := &Engine{
		cfg:      cfg,
		prefixes: cfg.Commands.Prefixes(),
		launcher: opts.Launcher,
		loader:   opts.Submenus,
		scorer:   opts.Scorer,
		runner:   opts.Runner,
		maxItems: opts.MaxItems,
		mode:     &MainMenu{},
		prompt:   cfg.General.Prompt,
		overlay:  NewOverlay(),
		cache:    newSubmenuCache(),
	}
	if opts.Apps != nil {
		e.apps, e.appsOK = opts.Apps.Applications()
	}
	if e.scorer == nil {
		e.scorer = match.Fuzzysearch{}
	}
	if e.runner == nil {
		e.runner = executor.OSRunner{}
	}
	return e
}

// Mode returns the active mode.
func (e *Engine) Mode() Mode { return e.mode }

// Input returns the whole input buffer.
func (e *Engine) Input() string { return e.input }

// Prompt returns the active prompt text, if any.
func (e *Engine) Prompt() *string { return e.prompt }

// ShouldExit reports whether the session is over.
func (e *Engine) ShouldExit() bool { return e.exit }

// Overlay exposes the variable overlay.
func (e *Engine) Overlay() *Overlay { return e.overlay }

// CachedSubmenus returns how many submenus have been loaded so far.
func (e *Engine) CachedSubmenus() int { return e.cache.len() }

// ProcessCharacter appends c to the input and updates the mode.
func (e *Engine) ProcessCharacter(c rune) {
	before := ModeName(e.mode)
	defer func() { events.Engine.Mode(before, ModeName(e.mode)) }()

	switch m := e.mode.(type) {
	case *MainMenu:
		e.input += string(c)
		e.mainMenuCharacter(m, c)
	case *ListMode:
		e.input += string(c)
		e.rankList(m)
	case *PromptMode:
		e.input += string(c)
	case *ErrorMode:
	default:
		panic(unknownMode(m))
	}
}

// ProcessDelete removes the last character of the input.
func (e *Engine) ProcessDelete() {
	before := ModeName(e.mode)
	defer func() { events.Engine.Mode(before, ModeName(e.mode)) }()

	if _, ok := e.mode.(*ErrorMode); ok {
		return
	}
	if e.input == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(e.input)
	e.input = e.input[:len(e.input)-size]

	switch m := e.mode.(type) {
	case *MainMenu:
		if e.input == "" {
			m.Filtering = false
			m.Filtered = nil
			events.Filter.Cleared(m.modeName())
			return
		}
		e.filterPrefix(m)
	case *ListMode:
		if len(e.input) <= m.PrefixLen {
			e.backToMainMenu()
			return
		}
		e.rankList(m)
	case *PromptMode:
		if len(e.input) <= m.PrefixLen {
			e.backToMainMenu()
		}
	default:
		panic(unknownMode(m))
	}
}

// ProcessCommit handles enter.
func (e *Engine) ProcessCommit() {
	before := ModeName(e.mode)
	defer func() { events.Engine.Mode(before, ModeName(e.mode)) }()

	switch m := e.mode.(type) {
	case *MainMenu:
		if !m.Filtering || len(m.Filtered) == 0 {
			return
		}
		entry := e.cfg.Commands.At(m.Filtered[0])
		if menu.Navigable(entry.Action) {
			e.input = entry.Prefix + string(Delimiter)
		}
		e.run(entry.Action, entry.Prefix)
	case *ListMode:
		var item menu.ListItem
		switch {
		case m.Filtering && len(m.Filtered) > 0:
			item = m.Items[m.Filtered[0].Index]
		case !m.Filtering && len(m.Items) > 0:
			item = m.Items[0]
		default:
			return
		}
		if menu.Navigable(item.Action) {
			e.input = throughFirstDelimiter(e.input) + item.Name + string(Delimiter)
		}
		e.run(item.Action, item.Name)
	case *PromptMode:
		prev, had := e.overlay.Set(InputVar, e.input[m.PrefixLen:])
		e.execute(m.Command)
		if had {
			e.overlay.Set(InputVar, prev)
		} else {
			e.overlay.Unset(InputVar)
		}
	case *ErrorMode:
		e.setExit()
	default:
		panic(unknownMode(m))
	}
}

func (e *Engine) mainMenuCharacter(m *MainMenu, c rune) {
	if c != Delimiter {
		// An exhausted filter cannot gain matches from a longer input.
		if m.Filtering && len(m.Filtered) == 0 {
			events.Filter.Sticky(e.input)
			return
		}
		e.filterPrefix(m)
		return
	}

	key := e.input[:len(e.input)-1]
	if entry, ok := e.cfg.Commands.Lookup(key); ok {
		e.run(entry.Action, entry.Prefix)
		return
	}
	if m.Filtering {
		if len(m.Filtered) == 0 {
			return
		}
		entry := e.cfg.Commands.At(m.Filtered[0])
		e.input = entry.Prefix + string(Delimiter)
		e.run(entry.Action, entry.Prefix)
		return
	}
	if def := e.cfg.General.DefaultCommand; def != nil {
		entry, ok := e.cfg.Commands.Lookup(*def)
		if !ok {
			e.fail("command '" + *def + "' doesn't exist.")
			return
		}
		e.input = entry.Prefix + string(Delimiter)
		e.run(entry.Action, entry.Prefix)
	}
}

// throughFirstDelimiter keeps the buffer up to and including its first
// delimiter, or nothing when there is none.
func throughFirstDelimiter(input string) string {
	if i := strings.IndexRune(input, Delimiter); i >= 0 {
		return input[:i+1]
	}
	return ""
}

func (e *Engine) filterPrefix(m *MainMenu) {
	m.Filtering = true
	m.Filtered = match.Prefix(e.prefixes, e.input)
	events.Filter.Prefix(e.input, len(m.Filtered))
}

func (e *Engine) rankList(m *ListMode) {
	query := e.input[m.PrefixLen:]
	m.Filtering = true
	m.Filtered = e.scorer.Rank(query, menu.Names(m.Items))
	events.Filter.Fuzzy(query, len(m.Filtered))
}

// backToMainMenu leaves a list or prompt whose committed prefix was deleted.
func (e *Engine) backToMainMenu() {
	mm := &MainMenu{}
	e.prompt = e.cfg.General.Prompt
	e.mode = mm
	e.filterPrefix(mm)
}

func (e *Engine) fail(message string) {
	events.Action.Error(errors.New(message))
	e.mode = &ErrorMode{Message: message}
}

func (e *Engine) setExit() {
	e.exit = true
	events.Engine.Exit(e.input)
}
