// Package wire encodes engine snapshots as single-line JSON messages and
// decodes the front-end's input tokens.
package wire

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atomicstack/superspace/internal/engine"
)

type commandJSON struct {
	Prefix      string `json:"prefix"`
	Description string `json:"description"`
}

type mainMenuJSON struct {
	Type   string        `json:"type"`
	Input  string        `json:"input"`
	Items  []commandJSON `json:"items"`
	Prompt *string       `json:"prompt,omitempty"`
}

type promptJSON struct {
	Type   string  `json:"type"`
	Input  string  `json:"input"`
	Prefix string  `json:"prefix"`
	Output *string `json:"output,omitempty"`
	Prompt *string `json:"prompt,omitempty"`
}

type listJSON struct {
	Type   string   `json:"type"`
	Input  string   `json:"input"`
	Items  []string `json:"items"`
	Prompt *string  `json:"prompt,omitempty"`
}

type errorJSON struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// Render returns the one-line message for snap, without a trailing newline.
func Render(snap engine.Snapshot) string {
	var msg interface{}
	switch snap.Kind {
	case engine.KindMainMenu:
		items := make([]commandJSON, len(snap.Commands))
		for i, c := range snap.Commands {
			items[i] = commandJSON{Prefix: c.Prefix, Description: c.Description}
		}
		msg = mainMenuJSON{Type: string(snap.Kind), Input: snap.Input, Items: items, Prompt: snap.Prompt}
	case engine.KindPrompt:
		msg = promptJSON{Type: string(snap.Kind), Input: snap.Input, Prefix: snap.Prefix, Output: snap.Output, Prompt: snap.Prompt}
	case engine.KindList:
		items := snap.Items
		if items == nil {
			items = []string{}
		}
		msg = listJSON{Type: string(snap.Kind), Input: snap.Input, Items: items, Prompt: snap.Prompt}
	case engine.KindError:
		msg = errorJSON{Type: string(snap.Kind), Message: snap.Message}
	default:
		panic(fmt.Sprintf("wire: unhandled snapshot kind %q", snap.Kind))
	}
	return encode(msg)
}

// RenderError returns an error message line for failures that happen before
// an engine exists.
func RenderError(err error) string {
	return encode(errorJSON{Type: string(engine.KindError), Message: err.Error()})
}

func encode(msg interface{}) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(msg); err != nil {
		// Only strings, slices and pointers to strings are encoded.
		panic(fmt.Sprintf("wire: encode %T: %v", msg, err))
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

// Message is the decoded form of any rendered line.
type Message struct {
	Type        string               `json:"type"`
	Input       string               `json:"input"`
	Prefix      string               `json:"prefix"`
	Output      *string              `json:"output"`
	Prompt      *string              `json:"prompt"`
	Message     string               `json:"message"`
	RawItems    json.RawMessage      `json:"items"`
	Commands    []engine.CommandView `json:"-"`
	ListEntries []string             `json:"-"`
}

// Decode parses a rendered line back into its fields.
func Decode(line string) (Message, error) {
	var m Message
	if err := json.Unmarshal([]byte(line), &m); err != nil {
		return Message{}, fmt.Errorf("decode message: %w", err)
	}
	if len(m.RawItems) == 0 {
		return m, nil
	}
	switch m.Type {
	case string(engine.KindMainMenu):
		var items []commandJSON
		if err := json.Unmarshal(m.RawItems, &items); err != nil {
			return Message{}, fmt.Errorf("decode main menu items: %w", err)
		}
		m.Commands = make([]engine.CommandView, len(items))
		for i, it := range items {
			m.Commands[i] = engine.CommandView{Prefix: it.Prefix, Description: it.Description}
		}
	case string(engine.KindList):
		if err := json.Unmarshal(m.RawItems, &m.ListEntries); err != nil {
			return Message{}, fmt.Errorf("decode list items: %w", err)
		}
	}
	return m, nil
}

// Unescape reverses the escaping applied to a single string field body (the
// text between the quotes).
func Unescape(field string) (string, error) {
	var s string
	if err := json.Unmarshal([]byte(`"`+field+`"`), &s); err != nil {
		return "", fmt.Errorf("unescape: %w", err)
	}
	return s, nil
}
