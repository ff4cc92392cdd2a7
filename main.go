package main

import (
	"fmt"
	"os"
	"sort"

	"golang.org/x/term"

	"github.com/atomicstack/superspace/internal/cmd"
	"github.com/atomicstack/superspace/internal/config"
	"github.com/atomicstack/superspace/internal/logging"
	"github.com/atomicstack/superspace/internal/logging/events"
)

func main() {
	root := cmd.NewRootCmd(traceStartup)
	if err := root.Execute(); err != nil {
		if !cmd.IsReported(err) {
			logging.Error(err)
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		logging.Sync()
		os.Exit(cmd.ExitCode(err))
	}
	logging.Sync()
}

func traceStartup(cfg config.Config) {
	events.App.Start(startupTracePayload(cfg))
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	payload := map[string]interface{}{
		"argv":     cfg.Args,
		"flags":    flags,
		"launcher": describeLauncher(cfg),
		"run":      logging.RunID(),
		"tty":      collectTTYDetails(),
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	return payload
}

// launcherDetails is the resolved engine setup. Override values are left
// out because they may carry secrets.
type launcherDetails struct {
	ConfigPath   string   `json:"config_path"`
	MenuDir      string   `json:"menu_dir"`
	Matcher      string   `json:"matcher"`
	ColdRun      bool     `json:"cold_run"`
	MaxItems     int      `json:"max_items"`
	VarOverrides []string `json:"var_overrides"`
	LogFile      string   `json:"log_file"`
	Trace        bool     `json:"trace"`
}

func describeLauncher(cfg config.Config) launcherDetails {
	names := make([]string, 0, len(cfg.App.Vars))
	for name := range cfg.App.Vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return launcherDetails{
		ConfigPath:   cfg.App.ConfigPath,
		MenuDir:      cfg.App.MenuDir,
		Matcher:      cfg.App.Matcher,
		ColdRun:      cfg.App.ColdRun,
		MaxItems:     cfg.App.MaxItems,
		VarOverrides: names,
		LogFile:      cfg.Logging.FilePath,
		Trace:        cfg.Logging.Trace,
	}
}

// ttyDetails records which standard streams are terminals. The wire loop
// expects pipes; the tui subcommand needs stdin and stdout to be terminals.
type ttyDetails struct {
	Detected   *ttyDetected     `json:"detected,omitempty"`
	TUICapable bool             `json:"tui_capable"`
	Probes     []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

func collectTTYDetails() ttyDetails {
	streams := []*os.File{os.Stdin, os.Stdout, os.Stderr}
	names := []string{"stdin", "stdout", "stderr"}
	details := ttyDetails{Probes: make([]ttyProbeResult, 0, len(streams))}
	for i, f := range streams {
		probe := probeStream(names[i], f)
		if probe.IsTerminal && probe.Error == "" && details.Detected == nil {
			details.Detected = &ttyDetected{Source: probe.Name, Width: probe.Width, Height: probe.Height}
		}
		details.Probes = append(details.Probes, probe)
	}
	details.TUICapable = details.Probes[0].IsTerminal && details.Probes[1].IsTerminal
	return details
}

func probeStream(name string, f *os.File) ttyProbeResult {
	probe := ttyProbeResult{Name: name}
	if f == nil {
		return probe
	}
	fd := int(f.Fd())
	if fd < 0 || !term.IsTerminal(fd) {
		return probe
	}
	probe.IsTerminal = true
	width, height, err := term.GetSize(fd)
	if err != nil {
		probe.Error = err.Error()
		return probe
	}
	probe.Width, probe.Height = width, height
	return probe
}
