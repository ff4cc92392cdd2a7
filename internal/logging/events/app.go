package events

import "github.com/atomicstack/superspace/internal/logging"

type AppTracer struct{}

type ConfigTracer struct{}

var (
	App    = AppTracer{}
	Config = ConfigTracer{}
)

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Event(kind, value string) {
	logging.Trace("app.event", map[string]interface{}{"kind": kind, "value": value})
}

func (AppTracer) Exit(reason string) {
	logging.Trace("app.exit", map[string]interface{}{"reason": reason})
}

func (ConfigTracer) Undecoded(source string, keys []string) {
	logging.Trace("config.undecoded", map[string]interface{}{"source": source, "keys": keys})
}

func (ConfigTracer) MalformedVar(arg string) {
	logging.Trace("config.var.malformed", map[string]interface{}{"arg": arg})
}
