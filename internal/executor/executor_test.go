package executor

import (
	"bytes"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

func TestExpandResolvesGlobals(t *testing.T) {
	globals := MapLookup(map[string]string{"browser": "firefox"})
	got := Expand([]string{"{{browser}}", "--new-window"}, globals)
	if diff := cmp.Diff([]string{"firefox", "--new-window"}, got); diff != "" {
		t.Fatalf("Expand mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandUnresolvedIsEmpty(t *testing.T) {
	got := Expand([]string{"{{missing}}", "a{{missing}}b"}, MapLookup(nil))
	if diff := cmp.Diff([]string{"", "ab"}, got); diff != "" {
		t.Fatalf("Expand mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandOverlayWins(t *testing.T) {
	lookup := Layered(
		MapLookup(map[string]string{"term": "foot"}),
		MapLookup(map[string]string{"term": "xterm", "shell": "zsh"}),
	)
	got := Expand([]string{"{{term}}", "-e", "{{shell}}"}, lookup)
	if diff := cmp.Diff([]string{"foot", "-e", "zsh"}, got); diff != "" {
		t.Fatalf("Expand mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandKeepsValuesAsSingleArguments(t *testing.T) {
	lookup := MapLookup(map[string]string{"INPUT": "x; rm -rf ~ {{browser}}", "browser": "firefox"})
	got := Expand([]string{"echo", "{{INPUT}}"}, lookup)
	if diff := cmp.Diff([]string{"echo", "x; rm -rf ~ {{browser}}"}, got); diff != "" {
		t.Fatalf("Expand mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandUnicodeNames(t *testing.T) {
	lookup := MapLookup(map[string]string{"café": "x", "名前": "y", "naïve_2": "z"})
	got := Expand([]string{"{{café}}", "{{名前}}-{{naïve_2}}"}, lookup)
	if diff := cmp.Diff([]string{"x", "y-z"}, got); diff != "" {
		t.Fatalf("Expand mismatch (-want +got):\n%s", diff)
	}
}

func TestExpandLeavesOtherBracesAlone(t *testing.T) {
	got := Expand([]string{"{{ spaced }}", "{single}", "{{a-b}}"}, MapLookup(map[string]string{"spaced": "x"}))
	if diff := cmp.Diff([]string{"{{ spaced }}", "{single}", "{{a-b}}"}, got); diff != "" {
		t.Fatalf("Expand mismatch (-want +got):\n%s", diff)
	}
}

func TestTrimOutput(t *testing.T) {
	if got := trimOutput([]byte("  42 \n\n")); got != "  42" {
		t.Fatalf("trimOutput = %q", got)
	}
}

func TestColdRunnerReport(t *testing.T) {
	var buf bytes.Buffer
	r := ColdRunner{W: &buf}
	if !r.Cold() {
		t.Fatalf("ColdRunner must report cold")
	}
	err := r.Spawn(Command{
		Argv:     []string{"firefox", "--new-window"},
		Template: []string{"{{browser}}", "--new-window"},
		Globals:  map[string]string{"term": "foot", "browser": "firefox"},
		Overlay:  map[string]string{"INPUT": "hi"},
	})
	if err != nil {
		t.Fatalf("Spawn: %v", err)
	}
	var report coldReport
	if err := yaml.Unmarshal(buf.Bytes(), &report); err != nil {
		t.Fatalf("report is not YAML: %v\n%s", err, buf.String())
	}
	want := coldReport{
		Command:  []string{"firefox", "--new-window"},
		Template: []string{"{{browser}}", "--new-window"},
		Globals:  []coldVarLine{{Name: "browser", Value: "firefox"}, {Name: "term", Value: "foot"}},
		Overlay:  []coldVarLine{{Name: "INPUT", Value: "hi"}},
	}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}
	if _, err := r.Capture(Command{Argv: []string{"date"}}); !errors.Is(err, ErrColdRun) {
		t.Fatalf("Capture error = %v, want ErrColdRun", err)
	}
}

func TestOSRunnerCapture(t *testing.T) {
	out, err := OSRunner{}.Capture(Command{Argv: []string{"sh", "-c", "printf 'hello  \\n\\n'"}})
	if err != nil {
		t.Skipf("sh unavailable: %v", err)
	}
	if out != "hello" {
		t.Fatalf("Capture = %q, want %q", out, "hello")
	}
}

func TestOSRunnerSpawnMissingBinary(t *testing.T) {
	err := OSRunner{}.Spawn(Command{Argv: []string{"/nonexistent/superspace-test-binary"}})
	if err == nil {
		t.Fatalf("expected spawn error")
	}
}
