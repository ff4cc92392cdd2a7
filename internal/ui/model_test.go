package ui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/superspace/internal/engine"
	"github.com/atomicstack/superspace/internal/executor"
	"github.com/atomicstack/superspace/internal/menu"
)

const uiConfig = `
[general]
prompt = "launch"

[[command]]
prefix = "apps"
description = "Pick an application"
[command.action]
type = "list"
[[command.action.items]]
name = "Firefox"
action = { type = "exec", command = ["firefox"] }
[[command.action.items]]
name = "Files"
action = { type = "exec", command = ["nautilus"] }
[[command.action.items]]
name = "Terminal"
action = { type = "exec", command = ["foot"] }

[[command]]
prefix = "calc"
description = "Calculator with a very long description that will not fit"
action = { type = "prompt", command = ["qalc", "{{INPUT}}"], output = "continuous" }

[[command]]
prefix = "broken"
description = "Fails"
action = { type = "list_applications" }
`

type stubRunner struct {
	spawned [][]string
	output  string
}

func (r *stubRunner) Spawn(cmd executor.Command) error {
	r.spawned = append(r.spawned, cmd.Argv)
	return nil
}

func (r *stubRunner) Capture(executor.Command) (string, error) { return r.output, nil }

func (r *stubRunner) Cold() bool { return false }

func newHarness(t *testing.T, runner *stubRunner, width int) *Harness {
	t.Helper()
	cfg, err := menu.Parse([]byte(uiConfig))
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	e := engine.New(engine.Options{Config: cfg, Runner: runner})
	return NewHarness(NewModel(e, width, 0))
}

func TestViewShowsMainMenu(t *testing.T) {
	h := newHarness(t, &stubRunner{}, 0)
	view := h.View()
	for _, want := range []string{"launch", filterPrompt, "apps", "Pick an application", "calc"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view, got:\n%s", want, view)
		}
	}
}

func TestTypingNarrowsAndAlignsCommands(t *testing.T) {
	h := newHarness(t, &stubRunner{}, 0)
	h.Type("ca")
	view := h.View()
	if strings.Contains(view, "Pick an application") {
		t.Fatalf("apps should be filtered out:\n%s", view)
	}
	if !strings.Contains(view, "calc  Calculator") {
		t.Fatalf("expected aligned calc row, got:\n%s", view)
	}
	if got := h.Model().Snapshot().Input; got != "ca" {
		t.Fatalf("input = %q", got)
	}
}

func TestListSelectionRunsCommandAndQuits(t *testing.T) {
	runner := &stubRunner{}
	h := newHarness(t, runner, 0)
	h.Type("apps ter")
	if items := h.Model().Snapshot().Items; len(items) != 1 || items[0] != "Terminal" {
		t.Fatalf("items = %v", items)
	}
	h.Press(tea.KeyEnter)
	if len(runner.spawned) != 1 || runner.spawned[0][0] != "foot" {
		t.Fatalf("spawned = %v", runner.spawned)
	}
	if !h.Model().Quitting() {
		t.Fatalf("expected model to quit after the engine exits")
	}
	if h.View() != "" {
		t.Fatalf("expected empty view after quitting")
	}
}

func TestBackspaceReturnsToMainMenu(t *testing.T) {
	h := newHarness(t, &stubRunner{}, 0)
	h.Type("apps ")
	if kind := h.Model().Snapshot().Kind; kind != engine.KindList {
		t.Fatalf("kind = %s", kind)
	}
	h.Press(tea.KeyBackspace)
	if kind := h.Model().Snapshot().Kind; kind != engine.KindMainMenu {
		t.Fatalf("kind after delete = %s", kind)
	}
}

func TestPreviewIsRendered(t *testing.T) {
	h := newHarness(t, &stubRunner{output: "42\nexact"}, 0)
	h.Type("calc 6*7")
	view := h.View()
	if !strings.Contains(view, "42") || !strings.Contains(view, "exact") {
		t.Fatalf("expected preview output in view, got:\n%s", view)
	}
	if !strings.Contains(view, "calc ") || !strings.Contains(view, "6*7") {
		t.Fatalf("expected input line in view, got:\n%s", view)
	}
}

func TestErrorView(t *testing.T) {
	h := newHarness(t, &stubRunner{}, 0)
	h.Type("broken ")
	view := h.View()
	if !strings.Contains(view, "applications are disabled in the config.") {
		t.Fatalf("expected error message, got:\n%s", view)
	}
	if !strings.Contains(view, errorHint) {
		t.Fatalf("expected exit hint, got:\n%s", view)
	}
	h.Press(tea.KeyEnter)
	if !h.Model().Quitting() {
		t.Fatalf("commit in error mode must quit")
	}
}

func TestEscapeQuits(t *testing.T) {
	h := newHarness(t, &stubRunner{}, 0)
	h.Press(tea.KeyEsc)
	if !h.Model().Quitting() {
		t.Fatalf("expected esc to quit")
	}
}

func TestViewTruncatesToWidth(t *testing.T) {
	h := newHarness(t, &stubRunner{}, 20)
	for _, line := range strings.Split(h.View(), "\n") {
		if w := ansi.StringWidth(line); w > 20 {
			t.Fatalf("line %q is %d cells wide", line, w)
		}
	}
}

func TestWindowSizeLimitsRows(t *testing.T) {
	h := newHarness(t, &stubRunner{}, 0)
	h.Send(tea.WindowSizeMsg{Width: 80, Height: 3})
	if got := len(strings.Split(h.View(), "\n")); got != 3 {
		t.Fatalf("expected 3 rows, got %d:\n%s", got, h.View())
	}
}
