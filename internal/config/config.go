package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/atomicstack/superspace/internal/app"
	"github.com/atomicstack/superspace/internal/logging/events"
	"github.com/atomicstack/superspace/internal/match"
)

// Config captures runtime configuration for the application.
type Config struct {
	App     app.Config
	Logging Logging
	Flags   map[string]string
	Args    []string
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envPrefix = "SUPERSPACE"

	flagConfig   = "config"
	flagMenuDir  = "menu-dir"
	flagVar      = "var"
	flagMaxItems = "max-items"
	flagColdRun  = "cold-run"
	flagMatcher  = "matcher"
	flagLogFile  = "log-file"
	flagTrace    = "trace"

	appName = "superspace"
)

// RegisterFlags adds the runtime flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(flagConfig, "c", "", "path to the menu config (default $XDG_CONFIG_HOME/superspace/config.toml)")
	fs.String(flagMenuDir, "", "directory holding submenu files (default: the config file's directory)")
	fs.StringArrayP(flagVar, "v", nil, "extra global variable as key=value (repeatable)")
	fs.IntP(flagMaxItems, "n", 0, "maximum number of items to show (currently unused)")
	fs.Bool(flagColdRun, false, "report commands instead of running them")
	fs.String(flagMatcher, match.MatcherFuzzysearch, "list matcher: "+strings.Join(match.Matchers(), " or "))
	fs.String(flagLogFile, "", "path to the log file (default $XDG_STATE_HOME/superspace/superspace.log)")
	fs.Bool(flagTrace, false, "enable verbose JSON trace logging")
}

// LoadArgs parses args and reads SUPERSPACE_* values from environ. Flags
// win over the environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	fs := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))
	RegisterFlags(fs)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	cfg, err := FromFlags(fs, environ)
	if err != nil {
		return Config{}, err
	}
	cfg.Args = append([]string(nil), args...)
	return cfg, nil
}

// FromFlags builds the configuration from an already parsed flag set.
func FromFlags(fs *pflag.FlagSet, environ []string) (Config, error) {
	env := parseEnv(environ)

	v := viper.New()
	if err := v.BindPFlags(fs); err != nil {
		return Config{}, fmt.Errorf("bind flags: %w", err)
	}
	// The environment is supplied explicitly rather than through
	// AutomaticEnv so callers control exactly what is visible.
	for _, name := range []string{flagConfig, flagMenuDir, flagMaxItems, flagColdRun, flagMatcher, flagLogFile, flagTrace} {
		if value, ok := env[envName(name)]; ok && value != "" {
			v.SetDefault(name, value)
		}
	}

	configPath := v.GetString(flagConfig)
	if configPath == "" {
		configPath = filepath.Join(xdgDir(env, "XDG_CONFIG_HOME", ".config"), appName, "config.toml")
	}
	menuDir := v.GetString(flagMenuDir)
	if menuDir == "" {
		menuDir = filepath.Dir(configPath)
	}
	logFile := v.GetString(flagLogFile)
	if logFile == "" {
		if state := xdgDir(env, "XDG_STATE_HOME", filepath.Join(".local", "state")); state != "" {
			logFile = filepath.Join(state, appName, appName+".log")
		}
	}

	rawVars, err := fs.GetStringArray(flagVar)
	if err != nil {
		return Config{}, err
	}
	vars := parseVars(rawVars)

	cfg := Config{
		App: app.Config{
			ConfigPath: configPath,
			MenuDir:    menuDir,
			Vars:       vars,
			MaxItems:   v.GetInt(flagMaxItems),
			ColdRun:    v.GetBool(flagColdRun),
			Matcher:    v.GetString(flagMatcher),
		},
		Logging: Logging{
			FilePath: logFile,
			Trace:    v.GetBool(flagTrace),
		},
		Args: append([]string(nil), fs.Args()...),
	}
	cfg.Flags = map[string]string{
		flagConfig:   cfg.App.ConfigPath,
		flagMenuDir:  cfg.App.MenuDir,
		flagVar:      strings.Join(rawVars, ","),
		flagMaxItems: strconv.Itoa(cfg.App.MaxItems),
		flagColdRun:  strconv.FormatBool(cfg.App.ColdRun),
		flagMatcher:  cfg.App.Matcher,
		flagLogFile:  cfg.Logging.FilePath,
		flagTrace:    strconv.FormatBool(cfg.Logging.Trace),
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate ensures required minimum configuration is present.
func Validate(cfg Config) error {
	if cfg.App.MaxItems < 0 {
		return fmt.Errorf("max-items must be >= 0 (got %d)", cfg.App.MaxItems)
	}
	if !slices.Contains(match.Matchers(), cfg.App.Matcher) {
		return fmt.Errorf("unknown matcher %q (want one of %s)", cfg.App.Matcher, strings.Join(match.Matchers(), ", "))
	}
	if strings.TrimSpace(cfg.App.ConfigPath) == "" {
		return fmt.Errorf("config path is empty")
	}
	return nil
}

// parseVars turns key=value arguments into a map. Entries without '=' are
// skipped.
func parseVars(args []string) map[string]string {
	vars := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			events.Config.MalformedVar(arg)
			continue
		}
		vars[key] = value
	}
	return vars
}

func envName(flag string) string {
	return envPrefix + "_" + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// xdgDir returns $key when it is absolute, else $HOME/fallback, else "".
func xdgDir(env map[string]string, key, fallback string) string {
	if dir := env[key]; filepath.IsAbs(dir) {
		return dir
	}
	if home := env["HOME"]; home != "" {
		return filepath.Join(home, fallback)
	}
	return ""
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}
