package ui

import (
	"reflect"

	"github.com/charmbracelet/bubbles/cursor"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/superspace/internal/engine"
	"github.com/atomicstack/superspace/internal/theme"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Model implements the Bubble Tea model around an engine.
type Model struct {
	engine      *engine.Engine
	snap        engine.Snapshot
	keys        keyMap
	cursor      cursor.Model
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	quitting    bool

	handlers map[reflect.Type]msgHandler
}

// NewModel wraps e. A positive width or height pins that dimension instead
// of following the terminal.
func NewModel(e *engine.Engine, width, height int) *Model {
	m := &Model{
		engine: e,
		keys:   defaultKeyMap(),
	}
	if width > 0 {
		m.width = width
		m.fixedWidth = true
	}
	if height > 0 {
		m.height = height
		m.fixedHeight = true
	}
	c := cursor.New()
	c.Style = styles.Cursor.Copy()
	c.TextStyle = styles.Filter.Copy()
	c.SetChar(" ")
	c.SetMode(cursor.CursorStatic)
	m.cursor = c
	m.refresh()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	return m.cursor.Focus()
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	var cmd tea.Cmd
	m.cursor, cmd = m.cursor.Update(msg)
	return m, cmd
}

// Snapshot returns the state the view currently renders.
func (m *Model) Snapshot() engine.Snapshot {
	return m.snap
}

// Quitting reports whether the program has been asked to stop.
func (m *Model) Quitting() bool {
	return m.quitting
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// refresh takes a new snapshot after the engine changed.
func (m *Model) refresh() {
	m.snap = m.engine.Snapshot()
}

func (m *Model) handleWindowSizeMsg(msg tea.Msg) tea.Cmd {
	resize, ok := msg.(tea.WindowSizeMsg)
	if !ok {
		return nil
	}
	if !m.fixedWidth {
		m.width = resize.Width
	}
	if !m.fixedHeight {
		m.height = resize.Height
	}
	return nil
}
