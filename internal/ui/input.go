package ui

import (
	"unicode"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/superspace/internal/logging/events"
)

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.quitting {
		return nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		events.App.Exit("quit")
		return tea.Quit
	case key.Matches(keyMsg, m.keys.Commit):
		events.App.Event("commit", "")
		m.engine.ProcessCommit()
	case key.Matches(keyMsg, m.keys.Delete):
		events.App.Event("delete", "")
		m.engine.ProcessDelete()
	case keyMsg.Type == tea.KeySpace:
		m.typeRune(' ')
	case keyMsg.Type == tea.KeyRunes && !keyMsg.Alt:
		for _, r := range keyMsg.Runes {
			if unicode.IsControl(r) {
				continue
			}
			m.typeRune(r)
			if m.engine.ShouldExit() {
				break
			}
		}
	default:
		return nil
	}
	m.refresh()
	if m.engine.ShouldExit() {
		m.quitting = true
		events.App.Exit("exit")
		return tea.Quit
	}
	return nil
}

func (m *Model) typeRune(r rune) {
	events.App.Event("character", string(r))
	m.engine.ProcessCharacter(r)
}
