package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sessionConfig = `
[variables]
browser = "firefox"

[[command]]
prefix = "open"
description = "Open the browser"
action = { type = "exec", command = ["{{browser}}", "--new-window"] }

[[command]]
prefix = "close"
description = "Close everything"
action = { type = "exit" }
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(sessionConfig), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestColdRunSession(t *testing.T) {
	bin := BuildBinary(t)
	cfg := writeConfig(t)
	logFile := filepath.Join(t.TempDir(), "superspace.log")

	session := RunSession(t, bin, "o\nenter\n", "--cold-run", "-c", cfg, "--log-file", logFile)
	if session.ExitCode != 0 {
		t.Fatalf("exit code %d, stderr:\n%s", session.ExitCode, session.Stderr)
	}
	AssertGolden(t, filepath.Join("coldrun", "open.golden"), session.Stdout)
	for _, want := range []string{"- firefox", "- --new-window", "name: browser"} {
		if !strings.Contains(session.Stderr, want) {
			t.Fatalf("expected %q in cold run report:\n%s", want, session.Stderr)
		}
	}
}

func TestVariableOverrideSession(t *testing.T) {
	bin := BuildBinary(t)
	cfg := writeConfig(t)

	session := RunSession(t, bin, "o\nenter\n", "--cold-run", "-c", cfg, "--log-file", "", "-v", "browser=chromium")
	if session.ExitCode != 0 {
		t.Fatalf("exit code %d, stderr:\n%s", session.ExitCode, session.Stderr)
	}
	if !strings.Contains(session.Stderr, "- chromium") {
		t.Fatalf("expected overridden browser in report:\n%s", session.Stderr)
	}
}

func TestMissingConfigReportsError(t *testing.T) {
	bin := BuildBinary(t)
	missing := filepath.Join(t.TempDir(), "absent.toml")

	session := RunSession(t, bin, "", "-c", missing, "--log-file", "")
	if session.ExitCode != 1 {
		t.Fatalf("exit code %d, want 1", session.ExitCode)
	}
	if !strings.HasPrefix(session.Stdout, `{"type":"error","message":`) {
		t.Fatalf("expected an error line on stdout, got %q", session.Stdout)
	}
	if strings.Contains(session.Stderr, "Error:") {
		t.Fatalf("startup error repeated on stderr: %q", session.Stderr)
	}
}

func TestUnknownFlagIsUsageError(t *testing.T) {
	bin := BuildBinary(t)
	session := RunSession(t, bin, "", "--bogus")
	if session.ExitCode != 2 {
		t.Fatalf("exit code %d, want 2", session.ExitCode)
	}
	if !strings.Contains(session.Stderr, "unknown flag") {
		t.Fatalf("expected usage error on stderr, got %q", session.Stderr)
	}
}
