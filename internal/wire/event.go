package wire

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/atomicstack/superspace/internal/engine"
)

// Tokens the front-end sends for the two non-character events.
const (
	TokenDelete = "backspace"
	TokenCommit = "enter"
)

// EventKind distinguishes input events.
type EventKind int

const (
	EventCharacter EventKind = iota
	EventDelete
	EventCommit
)

func (k EventKind) String() string {
	switch k {
	case EventDelete:
		return "delete"
	case EventCommit:
		return "commit"
	default:
		return "character"
	}
}

// Event is one decoded input line.
type Event struct {
	Kind EventKind
	Char rune
}

func (e Event) String() string {
	if e.Kind == EventCharacter {
		return fmt.Sprintf("%s(%q)", e.Kind, e.Char)
	}
	return e.Kind.String()
}

// ParseEvent decodes one line as read from the front-end, including its line
// terminator. Lines other than the delete and commit tokens type their first
// character, so a bare newline types '\n'. ok is false for an empty line,
// which only happens at end of input.
func ParseEvent(line string) (ev Event, ok bool) {
	switch strings.TrimSuffix(strings.TrimSuffix(line, "\n"), "\r") {
	case TokenDelete:
		return Event{Kind: EventDelete}, true
	case TokenCommit:
		return Event{Kind: EventCommit}, true
	}
	if line == "" {
		return Event{}, false
	}
	r, _ := utf8.DecodeRuneInString(line)
	return Event{Kind: EventCharacter, Char: r}, true
}

// Apply feeds ev to the engine.
func Apply(e *engine.Engine, ev Event) {
	switch ev.Kind {
	case EventDelete:
		e.ProcessDelete()
	case EventCommit:
		e.ProcessCommit()
	default:
		e.ProcessCharacter(ev.Char)
	}
}
