package menu

import (
	"errors"
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/atomicstack/superspace/internal/logging/events"
)

type rawAction struct {
	Type      string            `toml:"type"`
	Items     []rawItem         `toml:"items"`
	Command   []string          `toml:"command"`
	Output    string            `toml:"output"`
	Name      string            `toml:"name"`
	Variables map[string]string `toml:"variables"`
}

type rawItem struct {
	Name   string     `toml:"name"`
	Action *rawAction `toml:"action"`
}

type rawCommand struct {
	Prefix      *string    `toml:"prefix"`
	Description *string    `toml:"description"`
	Action      *rawAction `toml:"action"`
}

type rawGeneral struct {
	DefaultCommand *string `toml:"default_command"`
	Prompt         *string `toml:"prompt"`
	SearchApps     *bool   `toml:"search_apps"`
}

type rawConfig struct {
	General   rawGeneral        `toml:"general"`
	Variables map[string]string `toml:"variables"`
	Command   []rawCommand      `toml:"command"`
}

type rawSubmenu struct {
	Prompt *string `toml:"prompt"`
	rawAction
}

// Load reads and decodes the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes a config document.
func Parse(data []byte) (*Config, error) {
	var raw rawConfig
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, err
	}
	reportUndecoded("config", md)
	if !md.IsDefined("command") {
		return nil, errors.New(`missing field "command"`)
	}

	entries := make([]CommandEntry, 0, len(raw.Command))
	for i, rc := range raw.Command {
		if rc.Prefix == nil {
			return nil, fmt.Errorf("command %d: missing field \"prefix\"", i)
		}
		if rc.Description == nil {
			return nil, fmt.Errorf("command %q: missing field \"description\"", *rc.Prefix)
		}
		if rc.Action == nil {
			return nil, fmt.Errorf("command %q: missing field \"action\"", *rc.Prefix)
		}
		action, err := rc.Action.decode()
		if err != nil {
			return nil, fmt.Errorf("command %q: %w", *rc.Prefix, err)
		}
		entries = append(entries, CommandEntry{
			Prefix:      *rc.Prefix,
			Description: *rc.Description,
			Action:      action,
		})
	}
	commands, err := NewCommandSet(entries)
	if err != nil {
		return nil, err
	}

	searchApps := true
	if raw.General.SearchApps != nil {
		searchApps = *raw.General.SearchApps
	}
	vars := raw.Variables
	if vars == nil {
		vars = map[string]string{}
	}
	return &Config{
		General: GeneralSettings{
			DefaultCommand: raw.General.DefaultCommand,
			Prompt:         raw.General.Prompt,
			SearchApps:     searchApps,
		},
		Variables: vars,
		Commands:  commands,
	}, nil
}

// ParseSubmenu decodes a submenu document: an optional prompt plus the fields
// of a single action at the top level.
func ParseSubmenu(data []byte) (*SubmenuDef, error) {
	var raw rawSubmenu
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, err
	}
	reportUndecoded("submenu", md)
	action, err := raw.rawAction.decode()
	if err != nil {
		return nil, err
	}
	return &SubmenuDef{Prompt: raw.Prompt, Action: action}, nil
}

func (r *rawAction) decode() (Action, error) {
	switch r.Type {
	case "":
		return nil, errors.New(`missing field "type"`)
	case "list_applications":
		return ListApplications{}, nil
	case "list":
		if r.Items == nil {
			return nil, errors.New(`missing field "items"`)
		}
		items := make([]ListItem, 0, len(r.Items))
		for i, ri := range r.Items {
			if ri.Action == nil {
				return nil, fmt.Errorf("item %d (%q): missing field \"action\"", i, ri.Name)
			}
			action, err := ri.Action.decode()
			if err != nil {
				return nil, fmt.Errorf("item %q: %w", ri.Name, err)
			}
			items = append(items, ListItem{Name: ri.Name, Action: action})
		}
		return List{Items: items}, nil
	case "prompt":
		if r.Command == nil {
			return nil, errors.New(`missing field "command"`)
		}
		mode, err := ParseOutputMode(r.Output)
		if err != nil {
			return nil, err
		}
		return Prompt{Command: r.Command, Output: mode}, nil
	case "exec":
		if r.Command == nil {
			return nil, errors.New(`missing field "command"`)
		}
		return Exec{Command: r.Command}, nil
	case "exit":
		return Exit{}, nil
	case "submenu":
		if r.Name == "" {
			return nil, errors.New(`missing field "name"`)
		}
		vars := r.Variables
		if vars == nil {
			vars = map[string]string{}
		}
		return Submenu{Name: r.Name, Variables: vars}, nil
	default:
		return nil, fmt.Errorf("unknown action type %q", r.Type)
	}
}

func reportUndecoded(source string, md toml.MetaData) {
	undecoded := md.Undecoded()
	if len(undecoded) == 0 {
		return
	}
	keys := make([]string, len(undecoded))
	for i, key := range undecoded {
		keys[i] = key.String()
	}
	events.Config.Undecoded(source, keys)
}
