package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu           sync.Mutex
	logger       = zap.NewNop()
	level        = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	traceEnabled bool
	runID        = uuid.NewString()
)

// Configure points the shared logger at path. An empty path keeps logging
// disabled; stdout is never used because it carries the wire protocol.
// Directories are created automatically when missing.
func Configure(path string) {
	mu.Lock()
	defer mu.Unlock()
	path = strings.TrimSpace(path)
	if path == "" {
		logger = zap.NewNop()
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logger = zap.NewNop()
		return
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = level
	cfg.Sampling = nil
	cfg.Encoding = "json"
	cfg.EncoderConfig.TimeKey = "time"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.OutputPaths = []string{path}
	cfg.ErrorOutputPaths = []string{"stderr"}
	built, err := cfg.Build(zap.Fields(zap.String("run", runID)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging setup failed: %v\n", err)
		logger = zap.NewNop()
		return
	}
	logger = built
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	mu.Lock()
	traceEnabled = enabled
	if enabled {
		level.SetLevel(zapcore.DebugLevel)
	} else {
		level.SetLevel(zapcore.InfoLevel)
	}
	mu.Unlock()
}

// TraceEnabled reports whether trace entries are currently emitted.
func TraceEnabled() bool {
	mu.Lock()
	defer mu.Unlock()
	return traceEnabled
}

// RunID identifies this process in every log entry.
func RunID() string {
	return runID
}

// Logger returns the shared zap logger.
func Logger() *zap.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Error records err at error level.
func Error(err error) {
	if err == nil {
		return
	}
	Logger().Error(err.Error(), zap.Error(err))
}

// Warn records a diagnostic that does not stop the program.
func Warn(msg string, fields ...zap.Field) {
	Logger().Warn(msg, fields...)
}

// Trace records a structured event when tracing is enabled.
func Trace(event string, payload interface{}) {
	if !TraceEnabled() {
		return
	}
	if payload == nil {
		Logger().Debug(event)
		return
	}
	Logger().Debug(event, zap.Any("payload", payload))
}

// Sync flushes buffered entries.
func Sync() {
	_ = Logger().Sync()
}
