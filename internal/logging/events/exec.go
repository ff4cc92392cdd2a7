package events

import "github.com/atomicstack/superspace/internal/logging"

type ExecTracer struct{}

type AppsTracer struct{}

var (
	Exec = ExecTracer{}
	Apps = AppsTracer{}
)

func (ExecTracer) Spawn(argv []string) {
	logging.Trace("exec.spawn", map[string]interface{}{"argv": argv})
}

func (ExecTracer) SpawnFailed(argv []string, err error) {
	logging.Trace("exec.spawn.error", map[string]interface{}{"argv": argv, "error": err.Error()})
}

func (ExecTracer) Preview(argv []string, bytes int) {
	logging.Trace("exec.preview", map[string]interface{}{"argv": argv, "bytes": bytes})
}

func (ExecTracer) PreviewFailed(argv []string, err error) {
	logging.Trace("exec.preview.error", map[string]interface{}{"argv": argv, "error": err.Error()})
}

func (ExecTracer) Cold(argv []string) {
	logging.Trace("exec.cold", map[string]interface{}{"argv": argv})
}

func (AppsTracer) Discovered(dirs []string, count int) {
	logging.Trace("apps.discovered", map[string]interface{}{"dirs": dirs, "count": count})
}

func (AppsTracer) Launch(path string, argv []string) {
	logging.Trace("apps.launch", map[string]interface{}{"path": path, "argv": argv})
}
