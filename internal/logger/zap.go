package logger

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap's SugaredLogger.
type Logger struct {
	*zap.SugaredLogger
}

// defaultZapLevel is used when an unknown level string is provided.
const defaultZapLevel = zapcore.InfoLevel

func toZapLevel(levelStr string) zapcore.Level {
	switch levelStr {
	case DebugLevel:
		return zapcore.DebugLevel
	case WarnLevel:
		return zapcore.WarnLevel
	case ErrorLevel:
		return zapcore.ErrorLevel
	default:
		return defaultZapLevel
	}
}

func newConsoleCore(w io.Writer, level zapcore.Level, timestamps bool) zapcore.Core {
	cfg := zap.NewProductionEncoderConfig()
	if !timestamps {
		// journald stamps lines itself
		cfg.TimeKey = ""
	}
	cfg.EncodeTime = zapcore.RFC3339TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder

	encoder := zapcore.NewConsoleEncoder(cfg)
	return zapcore.NewCore(encoder, zapcore.Lock(zapcore.AddSync(w)), zap.NewAtomicLevelAt(level))
}

// New builds a console logger writing to stderr. Timestamps are omitted when
// running under systemd (INVOCATION_ID set).
func New(level string) *Logger {
	return NewWithWriter(os.Stderr, level, os.Getenv("INVOCATION_ID") == "")
}

// NewWithWriter builds a console logger writing to w.
func NewWithWriter(w io.Writer, level string, timestamps bool) *Logger {
	core := newConsoleCore(w, toZapLevel(level), timestamps)
	return &Logger{SugaredLogger: zap.New(core).Sugar()}
}

// Nop returns a logger that discards everything. Used by tests.
func Nop() *Logger {
	return &Logger{SugaredLogger: zap.NewNop().Sugar()}
}

// Named returns a child logger tagged with the component name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{SugaredLogger: l.SugaredLogger.Named(name)}
}
