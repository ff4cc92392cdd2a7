package engine

import (
	"fmt"

	"github.com/atomicstack/superspace/internal/match"
	"github.com/atomicstack/superspace/internal/menu"
)

// Mode is the engine's current state. The four pointer types below are the
// only implementations; every event handler switches over all of them.
type Mode interface {
	modeName() string
}

// MainMenu narrows the top-level commands by prefix. Filtered holds command
// indices and is meaningful only when Filtering is set; an empty Filtered with
// Filtering set means nothing matched.
type MainMenu struct {
	Filtering bool
	Filtered  []int
}

// PromptMode captures free text after the first PrefixLen bytes of input.
type PromptMode struct {
	PrefixLen int
	Command   []string
	Output    menu.OutputMode
}

// ListMode fuzzy-narrows Items by the input after PrefixLen bytes.
type ListMode struct {
	PrefixLen int
	Items     []menu.ListItem
	Filtering bool
	Filtered  []match.Match
}

// ErrorMode shows Message until the next commit ends the session.
type ErrorMode struct {
	Message string
}

func (*MainMenu) modeName() string   { return "main_menu" }
func (*PromptMode) modeName() string { return "prompt" }
func (*ListMode) modeName() string   { return "list" }
func (*ErrorMode) modeName() string  { return "error" }

// ModeName returns the wire name of a mode.
func ModeName(m Mode) string {
	if m == nil {
		return "none"
	}
	return m.modeName()
}

// Visible returns the items a list currently shows, ranked when filtering.
func (l *ListMode) Visible() []menu.ListItem {
	if !l.Filtering {
		return l.Items
	}
	out := make([]menu.ListItem, len(l.Filtered))
	for i, m := range l.Filtered {
		out[i] = l.Items[m.Index]
	}
	return out
}

func unknownMode(m Mode) string {
	return fmt.Sprintf("engine: unhandled mode %T", m)
}
