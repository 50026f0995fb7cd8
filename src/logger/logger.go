package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// -----------------------------------------------------------------------------

// Logger is a named printf-style facade over a zap sugared logger.
// A nil *Logger discards everything.
type Logger struct {
	name  string
	sugar *zap.SugaredLogger
	base  *zap.Logger
}

// -----------------------------------------------------------------------------

// NewLogger creates a console logger at the given level (DEBUG, INFO, WARNING, ERROR)
func NewLogger(level string, name string) *Logger {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.Level = zap.NewAtomicLevelAt(ParseLevel(level))
	cfg.DisableStacktrace = true

	base, err := cfg.Build()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: falling back to development logger: %v\n", err)
		base = zap.NewExample()
	}
	return wrap(base, name)
}

// -----------------------------------------------------------------------------

// NewLoggerFromCore builds a Logger on top of an existing zap core
func NewLoggerFromCore(core zapcore.Core, name string) *Logger {
	return wrap(zap.New(core), name)
}

// -----------------------------------------------------------------------------

// Nop returns a Logger that writes nowhere
func Nop() *Logger {
	return wrap(zap.NewNop(), "nop")
}

// -----------------------------------------------------------------------------

func wrap(base *zap.Logger, name string) *Logger {
	if name != "" {
		base = base.Named(name)
	}
	return &Logger{name: name, sugar: base.Sugar(), base: base}
}

// -----------------------------------------------------------------------------

// ParseLevel maps the config level names onto zap levels
func ParseLevel(level string) zapcore.Level {
	switch strings.ToUpper(strings.TrimSpace(level)) {
	case "DEBUG":
		return zapcore.DebugLevel
	case "WARNING", "WARN":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// -----------------------------------------------------------------------------

// Named returns a child logger, e.g. "dashboard.price"
func (l *Logger) Named(name string) *Logger {
	if l == nil {
		return nil
	}
	full := name
	if l.name != "" {
		full = l.name + "." + name
	}
	child := l.base.Named(name)
	return &Logger{name: full, sugar: child.Sugar(), base: child}
}

// -----------------------------------------------------------------------------

// Name returns the logger name
func (l *Logger) Name() string {
	if l == nil {
		return ""
	}
	return l.name
}

// -----------------------------------------------------------------------------

// Zap exposes the underlying zap logger for libraries that want one
func (l *Logger) Zap() *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l.base
}

// -----------------------------------------------------------------------------

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.sugar.Debugf(format, args...)
}

// -----------------------------------------------------------------------------

// Warning logs warning messages
func (l *Logger) Warning(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.sugar.Warnf(format, args...)
}

// -----------------------------------------------------------------------------

// Info logs informational messages
func (l *Logger) Info(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.sugar.Infof(format, args...)
}

// -----------------------------------------------------------------------------

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.sugar.Errorf(format, args...)
}

// -----------------------------------------------------------------------------

// Critical logs critical errors and exits the application
func (l *Logger) Critical(format string, args ...interface{}) {
	if l != nil {
		l.sugar.Errorf(format, args...)
		_ = l.base.Sync()
	}
	os.Exit(1)
}

// -----------------------------------------------------------------------------

// Sync flushes buffered entries
func (l *Logger) Sync() error {
	if l == nil {
		return nil
	}
	return l.base.Sync()
}
