package engine

import (
	"github.com/atomicstack/superspace/internal/menu"
)

// Kind discriminates snapshot shapes.
type Kind string

const (
	KindMainMenu Kind = "main_menu"
	KindPrompt   Kind = "prompt"
	KindList     Kind = "list"
	KindError    Kind = "error"
)

// CommandView is a main menu row.
type CommandView struct {
	Prefix      string
	Description string
}

// Snapshot is a render-ready copy of the engine state.
type Snapshot struct {
	Kind   Kind
	Input  string
	Prompt *string

	// main_menu
	Commands []CommandView

	// prompt
	Prefix string
	Output *string

	// list
	Items []string

	// error
	Message string
}

// Snapshot captures the current state. For a continuous prompt with text past
// its prefix this runs the prompt command synchronously and includes its
// output; a failing preview is left out.
func (e *Engine) Snapshot() Snapshot {
	snap := Snapshot{Input: e.input, Prompt: e.prompt}
	switch m := e.mode.(type) {
	case *MainMenu:
		snap.Kind = KindMainMenu
		snap.Commands = e.commandViews(m)
	case *PromptMode:
		snap.Kind = KindPrompt
		snap.Prefix = e.input[:m.PrefixLen]
		if m.Output == menu.OutputContinuous && len(e.input) > m.PrefixLen {
			snap.Output = e.preview(m)
		}
	case *ListMode:
		snap.Kind = KindList
		snap.Items = menu.Names(m.Visible())
	case *ErrorMode:
		snap.Kind = KindError
		snap.Message = m.Message
	default:
		panic(unknownMode(m))
	}
	return snap
}

func (e *Engine) commandViews(m *MainMenu) []CommandView {
	cmds := e.cfg.Commands
	if !m.Filtering {
		out := make([]CommandView, 0, cmds.Len())
		for i := 0; i < cmds.Len(); i++ {
			out = append(out, view(cmds.At(i)))
		}
		return out
	}
	out := make([]CommandView, 0, len(m.Filtered))
	for _, idx := range m.Filtered {
		out = append(out, view(cmds.At(idx)))
	}
	return out
}

func view(entry menu.CommandEntry) CommandView {
	return CommandView{Prefix: entry.Prefix, Description: entry.Description}
}

func (e *Engine) preview(m *PromptMode) *string {
	overlay := e.overlay.Clone()
	overlay.Set(InputVar, e.input[m.PrefixLen:])
	cmd := e.command(m.Command, overlay)
	if len(cmd.Argv) == 0 {
		return nil
	}
	out, err := e.runner.Capture(cmd)
	if err != nil {
		return nil
	}
	return &out
}
