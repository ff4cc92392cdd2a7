package menu

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const sampleConfig = `
[general]
default_command = "apps"
prompt = "go"

[variables]
terminal = "foot"

[[command]]
prefix = "apps"
description = "Applications"
action = { type = "list_applications" }

[[command]]
prefix = "ssh"
description = "Connect"
action = { type = "submenu", name = "hosts", variables = { user = "root" } }

[[command]]
prefix = "calc"
description = "Calculator"
action = { type = "prompt", command = ["qalc", "{{INPUT}}"], output = "continuous" }

[[command]]
prefix = "quit"
description = "Leave"
action = { type = "exit" }
`

func TestParseConfig(t *testing.T) {
	cfg, err := Parse([]byte(sampleConfig))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.General.DefaultCommand == nil || *cfg.General.DefaultCommand != "apps" {
		t.Fatalf("default command not decoded: %#v", cfg.General)
	}
	if cfg.General.Prompt == nil || *cfg.General.Prompt != "go" {
		t.Fatalf("prompt not decoded: %#v", cfg.General)
	}
	if !cfg.General.SearchApps {
		t.Fatalf("search_apps should default to true")
	}
	if v, ok := cfg.Variable("terminal"); !ok || v != "foot" {
		t.Fatalf("Variable(terminal) = %q, %v", v, ok)
	}
	if diff := cmp.Diff([]string{"apps", "ssh", "calc", "quit"}, cfg.Commands.Prefixes()); diff != "" {
		t.Fatalf("prefix order mismatch (-want +got):\n%s", diff)
	}
	for i, entry := range cfg.Commands.Entries() {
		if entry.Index != i {
			t.Fatalf("entry %s has index %d, want %d", entry.Prefix, entry.Index, i)
		}
	}

	ssh, ok := cfg.Commands.Lookup("ssh")
	if !ok {
		t.Fatalf("ssh command missing")
	}
	want := Submenu{Name: "hosts", Variables: map[string]string{"user": "root"}}
	if diff := cmp.Diff(Action(want), ssh.Action); diff != "" {
		t.Fatalf("ssh action mismatch (-want +got):\n%s", diff)
	}
	calc, _ := cfg.Commands.Lookup("calc")
	prompt, ok := calc.Action.(Prompt)
	if !ok || prompt.Output != OutputContinuous {
		t.Fatalf("calc action = %#v", calc.Action)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "no commands",
			doc:  "[general]\nprompt = \"x\"\n",
			want: `missing field "command"`,
		},
		{
			name: "duplicate prefix",
			doc: `
[[command]]
prefix = "a"
description = "one"
action = { type = "exit" }
[[command]]
prefix = "a"
description = "two"
action = { type = "exit" }
`,
			want: "duplicate command a",
		},
		{
			name: "unknown action",
			doc: `
[[command]]
prefix = "a"
description = "one"
action = { type = "teleport" }
`,
			want: `unknown action type "teleport"`,
		},
		{
			name: "missing description",
			doc: `
[[command]]
prefix = "a"
action = { type = "exit" }
`,
			want: `missing field "description"`,
		},
		{
			name: "prompt without command",
			doc: `
[[command]]
prefix = "a"
description = "one"
action = { type = "prompt" }
`,
			want: `missing field "command"`,
		},
		{
			name: "bad output mode",
			doc: `
[[command]]
prefix = "a"
description = "one"
action = { type = "prompt", command = ["x"], output = "loud" }
`,
			want: `unknown output mode "loud"`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			if err == nil {
				t.Fatalf("expected error containing %q", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not contain %q", err, tc.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil || !strings.HasPrefix(err.Error(), "failed to find config file") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseSubmenu(t *testing.T) {
	def, err := ParseSubmenu([]byte(`
prompt = "host"
type = "list"
items = [
  { name = "alpha", action = { type = "exec", command = ["ssh", "{{user}}@alpha"] } },
  { name = "beta", action = { type = "exec", command = ["ssh", "{{user}}@beta"] } },
]
`))
	if err != nil {
		t.Fatalf("ParseSubmenu: %v", err)
	}
	if def.Prompt == nil || *def.Prompt != "host" {
		t.Fatalf("prompt = %v", def.Prompt)
	}
	list, ok := def.Action.(List)
	if !ok {
		t.Fatalf("action = %#v", def.Action)
	}
	if diff := cmp.Diff([]string{"alpha", "beta"}, Names(list.Items)); diff != "" {
		t.Fatalf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestDirLoader(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "tools.toml"), []byte("type = \"prompt\"\ncommand = [\"man\", \"{{INPUT}}\"]\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.toml"), []byte("type = \n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	loader := DirLoader{Dir: dir}

	def, err := loader.Load("tools")
	if err != nil {
		t.Fatalf("Load(tools): %v", err)
	}
	if _, ok := def.Action.(Prompt); !ok {
		t.Fatalf("tools action = %#v", def.Action)
	}

	_, err = loader.Load("absent")
	if !errors.Is(err, ErrSubmenuNotFound) {
		t.Fatalf("Load(absent) error = %v, want ErrSubmenuNotFound", err)
	}
	if err.Error() != "file not found: "+filepath.Join(dir, "absent.toml") {
		t.Fatalf("Load(absent) message = %q", err)
	}

	if _, err := loader.Load("broken"); err == nil || errors.Is(err, ErrSubmenuNotFound) {
		t.Fatalf("Load(broken) error = %v, want a parse error", err)
	}
}

func TestNavigable(t *testing.T) {
	cases := map[string]struct {
		action Action
		want   bool
	}{
		"list":    {List{}, true},
		"prompt":  {Prompt{}, true},
		"apps":    {ListApplications{}, true},
		"exec":    {Exec{}, false},
		"exit":    {Exit{}, false},
		"submenu": {Submenu{}, false},
		"launch":  {LaunchApp{}, false},
	}
	for name, tc := range cases {
		if got := Navigable(tc.action); got != tc.want {
			t.Fatalf("Navigable(%s) = %v, want %v", name, got, tc.want)
		}
	}
}

func TestMergeVariables(t *testing.T) {
	cfg := &Config{Variables: map[string]string{"a": "1", "b": "2"}}
	cfg.MergeVariables(map[string]string{"b": "3", "c": "4"})
	if diff := cmp.Diff(map[string]string{"a": "1", "b": "3", "c": "4"}, cfg.Variables); diff != "" {
		t.Fatalf("variables mismatch (-want +got):\n%s", diff)
	}
}
