package engine

import (
	"fmt"

	"github.com/atomicstack/superspace/internal/executor"
	"github.com/atomicstack/superspace/internal/logging/events"
	"github.com/atomicstack/superspace/internal/menu"
)

// run resolves an action selected from source (a prefix or item name).
func (e *Engine) run(action menu.Action, source string) {
	events.Action.Run(menu.Kind(action), source)
	switch a := action.(type) {
	case menu.ListApplications:
		if !e.appsOK {
			e.fail("applications are disabled in the config.")
			return
		}
		e.mode = &ListMode{PrefixLen: len(e.input), Items: e.apps}
	case menu.List:
		e.mode = &ListMode{PrefixLen: len(e.input), Items: a.Items}
	case menu.Prompt:
		e.mode = &PromptMode{PrefixLen: len(e.input), Command: a.Command, Output: a.Output}
	case menu.Exec:
		e.execute(a.Command)
	case menu.Exit:
		e.setExit()
	case menu.Submenu:
		e.enterSubmenu(a)
	case menu.LaunchApp:
		e.launch(a)
	default:
		panic(fmt.Sprintf("engine: unhandled action %T", action))
	}
}

// lookup resolves template variables: overlay first, then globals.
func (e *Engine) lookup(overlay *Overlay) executor.Lookup {
	return executor.Layered(overlay.Get, e.cfg.Variable)
}

func (e *Engine) command(template []string, overlay *Overlay) executor.Command {
	return executor.Command{
		Argv:     executor.Expand(template, e.lookup(overlay)),
		Template: template,
		Globals:  e.cfg.Variables,
		Overlay:  overlay.Map(),
	}
}

// execute spawns template detached. Success ends the session; a spawn
// failure is shown as an error instead.
func (e *Engine) execute(template []string) {
	cmd := e.command(template, e.overlay)
	if len(cmd.Argv) == 0 && !e.runner.Cold() {
		e.setExit()
		return
	}
	if err := e.runner.Spawn(cmd); err != nil {
		e.fail(err.Error())
		return
	}
	e.setExit()
}

// enterSubmenu applies the submenu's variables, then enters its list or
// prompt. Variables that replaced an existing overlay binding are put back
// once the submenu is set up; only newly introduced names remain.
func (e *Engine) enterSubmenu(s menu.Submenu) {
	displaced, added := e.overlay.apply(s.Variables)
	defer func() {
		e.overlay.restore(displaced)
		reverted := make([]string, len(displaced))
		for i, b := range displaced {
			reverted[i] = b.name
		}
		events.Submenu.Overrides(s.Name, added, reverted)
	}()

	def, err := e.cache.get(s.Name, e.loader)
	if err != nil {
		e.fail(err.Error())
		return
	}
	e.prompt = def.Prompt
	e.input = ""
	switch a := def.Action.(type) {
	case menu.List:
		e.mode = &ListMode{PrefixLen: 0, Items: a.Items}
	case menu.Prompt:
		e.mode = &PromptMode{PrefixLen: 0, Command: a.Command, Output: a.Output}
	default:
		e.fail(fmt.Sprintf("submenus must be a list or a prompt. (encountered in submenu '%s')", s.Name))
	}
}

func (e *Engine) launch(a menu.LaunchApp) {
	if e.launcher == nil {
		e.fail("application launching is unavailable.")
		return
	}
	if err := e.launcher.Launch(a.Handle); err != nil {
		e.fail(fmt.Sprintf("failed to launch app: %v", err))
		return
	}
	e.setExit()
}
