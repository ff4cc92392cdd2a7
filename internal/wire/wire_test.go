package wire

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/atomicstack/superspace/internal/engine"
	"github.com/atomicstack/superspace/internal/menu"
)

func strPtr(s string) *string { return &s }

func TestRenderShapes(t *testing.T) {
	cases := []struct {
		name string
		snap engine.Snapshot
		want string
	}{
		{
			name: "main menu",
			snap: engine.Snapshot{
				Kind:     engine.KindMainMenu,
				Input:    "o",
				Prompt:   strPtr("search"),
				Commands: []engine.CommandView{{Prefix: "open", Description: "Open <browser>"}},
			},
			want: `{"type":"main_menu","input":"o","items":[{"prefix":"open","description":"Open <browser>"}],"prompt":"search"}`,
		},
		{
			name: "main menu without commands or prompt",
			snap: engine.Snapshot{Kind: engine.KindMainMenu, Input: "zz"},
			want: `{"type":"main_menu","input":"zz","items":[]}`,
		},
		{
			name: "prompt with preview",
			snap: engine.Snapshot{Kind: engine.KindPrompt, Input: "calc 1+1", Prefix: "calc ", Output: strPtr("2")},
			want: `{"type":"prompt","input":"calc 1+1","prefix":"calc ","output":"2"}`,
		},
		{
			name: "list",
			snap: engine.Snapshot{Kind: engine.KindList, Input: "apps fi", Items: []string{"Files", "Firefox"}},
			want: `{"type":"list","input":"apps fi","items":["Files","Firefox"]}`,
		},
		{
			name: "empty list",
			snap: engine.Snapshot{Kind: engine.KindList, Input: "apps zz"},
			want: `{"type":"list","input":"apps zz","items":[]}`,
		},
		{
			name: "error",
			snap: engine.Snapshot{Kind: engine.KindError, Input: "ignored", Message: "command 'x' doesn't exist."},
			want: `{"type":"error","message":"command 'x' doesn't exist."}`,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Render(tc.snap); got != tc.want {
				t.Fatalf("Render mismatch\nwant: %s\ngot:  %s", tc.want, got)
			}
		})
	}
}

func TestRenderEscapingRoundTrip(t *testing.T) {
	inputs := []string{
		`say "hi"`,
		`C:\Users\me`,
		`\"`,
		"multi\nline\ttext",
		`ends with \`,
	}
	for _, in := range inputs {
		line := Render(engine.Snapshot{Kind: engine.KindList, Input: in, Prompt: strPtr(in), Items: []string{in}})
		if strings.Contains(line, "\n") {
			t.Fatalf("rendered line contains a newline: %q", line)
		}
		msg, err := Decode(line)
		if err != nil {
			t.Fatalf("Decode(%q): %v", line, err)
		}
		if msg.Input != in || *msg.Prompt != in {
			t.Fatalf("round trip mismatch: got input %q prompt %q, want %q", msg.Input, *msg.Prompt, in)
		}
		if diff := cmp.Diff([]string{in}, msg.ListEntries); diff != "" {
			t.Fatalf("items mismatch (-want +got):\n%s", diff)
		}
	}
}

func TestUnescapeInvertsFieldEscaping(t *testing.T) {
	in := `a "quoted" \ path`
	line := Render(engine.Snapshot{Kind: engine.KindError, Message: in})
	body := strings.TrimSuffix(strings.TrimPrefix(line, `{"type":"error","message":"`), `"}`)
	got, err := Unescape(body)
	if err != nil {
		t.Fatalf("Unescape: %v", err)
	}
	if got != in {
		t.Fatalf("Unescape = %q, want %q", got, in)
	}
}

func TestDecodeMainMenu(t *testing.T) {
	line := Render(engine.Snapshot{
		Kind:     engine.KindMainMenu,
		Commands: []engine.CommandView{{Prefix: "a", Description: "b"}},
	})
	msg, err := Decode(line)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff([]engine.CommandView{{Prefix: "a", Description: "b"}}, msg.Commands); diff != "" {
		t.Fatalf("commands mismatch (-want +got):\n%s", diff)
	}
	if msg.Prompt != nil {
		t.Fatalf("expected no prompt, got %q", *msg.Prompt)
	}
}

func TestRenderErrorLine(t *testing.T) {
	got := RenderError(menu.ErrSubmenuNotFound)
	want := `{"type":"error","message":"submenu not found"}`
	if got != want {
		t.Fatalf("RenderError = %s, want %s", got, want)
	}
}

func TestParseEvent(t *testing.T) {
	cases := []struct {
		line string
		want Event
		ok   bool
	}{
		{"backspace\n", Event{Kind: EventDelete}, true},
		{"enter\n", Event{Kind: EventCommit}, true},
		{"enter\r\n", Event{Kind: EventCommit}, true},
		{"enter", Event{Kind: EventCommit}, true},
		{"a\n", Event{Kind: EventCharacter, Char: 'a'}, true},
		{" \n", Event{Kind: EventCharacter, Char: ' '}, true},
		{"ébc\n", Event{Kind: EventCharacter, Char: 'é'}, true},
		{"entered\n", Event{Kind: EventCharacter, Char: 'e'}, true},
		{"\n", Event{Kind: EventCharacter, Char: '\n'}, true},
		{"", Event{}, false},
	}
	for _, tc := range cases {
		got, ok := ParseEvent(tc.line)
		if ok != tc.ok || got != tc.want {
			t.Fatalf("ParseEvent(%q) = %v, %v; want %v, %v", tc.line, got, ok, tc.want, tc.ok)
		}
	}
}
