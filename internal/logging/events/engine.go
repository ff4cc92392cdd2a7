package events

import "github.com/atomicstack/superspace/internal/logging"

type EngineTracer struct{}

type FilterTracer struct{}

type ActionTracer struct{}

type SubmenuTracer struct{}

var (
	Engine  = EngineTracer{}
	Filter  = FilterTracer{}
	Action  = ActionTracer{}
	Submenu = SubmenuTracer{}
)

func (EngineTracer) Mode(from, to string) {
	if from == to {
		return
	}
	logging.Trace("engine.mode", map[string]interface{}{"from": from, "to": to})
}

func (EngineTracer) Exit(input string) {
	logging.Trace("engine.exit", map[string]interface{}{"input": input})
}

func (FilterTracer) Prefix(input string, matches int) {
	logging.Trace("filter.prefix", map[string]interface{}{"input": input, "matches": matches})
}

func (FilterTracer) Sticky(input string) {
	logging.Trace("filter.sticky-empty", map[string]interface{}{"input": input})
}

func (FilterTracer) Fuzzy(query string, matches int) {
	logging.Trace("filter.fuzzy", map[string]interface{}{"query": query, "matches": matches})
}

func (FilterTracer) Cleared(mode string) {
	logging.Trace("filter.clear", map[string]interface{}{"mode": mode})
}

func (ActionTracer) Run(kind, source string) {
	logging.Trace("action.run", map[string]interface{}{"kind": kind, "source": source})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (SubmenuTracer) Load(name string, cached bool) {
	logging.Trace("submenu.load", map[string]interface{}{"name": name, "cached": cached})
}

func (SubmenuTracer) Overrides(name string, applied, reverted []string) {
	logging.Trace("submenu.overrides", map[string]interface{}{"name": name, "applied": applied, "reverted": reverted})
}
