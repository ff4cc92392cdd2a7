package menu

import (
	"fmt"
	"strings"
)

// Action is the behaviour attached to a command or list item. The concrete
// types below are the only implementations.
type Action interface {
	isAction()
}

// ListApplications lists the applications found by discovery.
type ListApplications struct{}

// List narrows a fixed set of named items.
type List struct {
	Items []ListItem
}

// Prompt captures free text and feeds it to Command as {{INPUT}}.
type Prompt struct {
	Command []string
	Output  OutputMode
}

// Exec runs Command detached.
type Exec struct {
	Command []string
}

// Exit ends the session without running anything.
type Exit struct{}

// Submenu loads the menu file Name and enters it with Variables applied.
type Submenu struct {
	Name      string
	Variables map[string]string
}

// LaunchApp starts a discovered application. Handle is opaque to everything
// except the launcher that produced it.
type LaunchApp struct {
	Handle string
}

func (ListApplications) isAction() {}
func (List) isAction()             {}
func (Prompt) isAction()           {}
func (Exec) isAction()             {}
func (Exit) isAction()             {}
func (Submenu) isAction()          {}
func (LaunchApp) isAction()        {}

// Navigable reports whether selecting the action leads to another narrowing
// step rather than running something.
func Navigable(a Action) bool {
	switch a.(type) {
	case List, Prompt, ListApplications:
		return true
	default:
		return false
	}
}

// Kind returns the config type name for an action, used in diagnostics.
func Kind(a Action) string {
	switch a.(type) {
	case ListApplications:
		return "list_applications"
	case List:
		return "list"
	case Prompt:
		return "prompt"
	case Exec:
		return "exec"
	case Exit:
		return "exit"
	case Submenu:
		return "submenu"
	case LaunchApp:
		return "launch_app"
	case nil:
		return "none"
	default:
		return fmt.Sprintf("%T", a)
	}
}

// OutputMode selects how a prompt's command output is surfaced.
type OutputMode int

const (
	OutputHidden OutputMode = iota
	OutputDisplay
	OutputContinuous
)

func (o OutputMode) String() string {
	switch o {
	case OutputDisplay:
		return "display"
	case OutputContinuous:
		return "continuous"
	default:
		return "hidden"
	}
}

// ParseOutputMode accepts the config spelling of an output mode. The empty
// string selects the default.
func ParseOutputMode(s string) (OutputMode, error) {
	switch strings.TrimSpace(s) {
	case "", "hidden":
		return OutputHidden, nil
	case "display":
		return OutputDisplay, nil
	case "continuous":
		return OutputContinuous, nil
	default:
		return OutputHidden, fmt.Errorf("unknown output mode %q", s)
	}
}

// ListItem is one selectable entry of a list.
type ListItem struct {
	Name   string
	Action Action
}

// Names returns the item names in order.
func Names(items []ListItem) []string {
	names := make([]string, len(items))
	for i, item := range items {
		names[i] = item.Name
	}
	return names
}

// SubmenuDef is a separately stored menu entered through a Submenu action.
type SubmenuDef struct {
	Prompt *string
	Action Action
}

// GeneralSettings holds the [general] table of the config.
type GeneralSettings struct {
	DefaultCommand *string
	Prompt         *string
	SearchApps     bool
}

// Config is the decoded top-level configuration. It is immutable after Load.
type Config struct {
	General   GeneralSettings
	Variables map[string]string
	Commands  *CommandSet
}

// Variable resolves a global variable.
func (c *Config) Variable(name string) (string, bool) {
	if c == nil || c.Variables == nil {
		return "", false
	}
	v, ok := c.Variables[name]
	return v, ok
}

// MergeVariables overlays extra onto the global variables. Later values win.
func (c *Config) MergeVariables(extra map[string]string) {
	if len(extra) == 0 {
		return
	}
	if c.Variables == nil {
		c.Variables = make(map[string]string, len(extra))
	}
	for k, v := range extra {
		c.Variables[k] = v
	}
}
