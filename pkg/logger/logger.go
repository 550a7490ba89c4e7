package logger

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger is the logging interface used by the library.
type Logger interface {
	Info(msg string, obj any)
	Warn(msg string, obj any)
	Debug(msg string, obj any)
	Error(msg string, obj any)
}

// NopLogger discards all log messages.
type NopLogger struct{}

func (NopLogger) Info(string, any)  {}
func (NopLogger) Warn(string, any)  {}
func (NopLogger) Debug(string, any) {}
func (NopLogger) Error(string, any) {}

type zeroLogger struct {
	zl zerolog.Logger
}

func (l zeroLogger) write(e *zerolog.Event, msg string, obj any) {
	switch v := obj.(type) {
	case nil:
	case map[string]any:
		e = e.Fields(v)
	case error:
		e = e.Err(v)
	default:
		e = e.Interface("obj", v)
	}
	e.Msg(msg)
}

// NewWriterLogger builds a debug-level logger that writes console lines to w.
func NewWriterLogger(w io.Writer) Logger {
	return NewLeveledLogger(w, zerolog.DebugLevel)
}

// NewLeveledLogger builds a console logger that drops events below level.
func NewLeveledLogger(w io.Writer, level zerolog.Level) Logger {
	if w == nil {
		return NopLogger{}
	}
	zl := zerolog.New(zerolog.ConsoleWriter{
		Out:        w,
		NoColor:    true,
		TimeFormat: time.RFC3339,
	}).Level(level).With().Timestamp().Logger()
	return zeroLogger{zl: zl}
}

// ParseLevel maps a level name to a zerolog level. Unknown or empty names yield warn.
func ParseLevel(name string) zerolog.Level {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return zerolog.WarnLevel
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.WarnLevel
	}
	return level
}

func (l zeroLogger) Info(msg string, obj any)  { l.write(l.zl.Info(), msg, obj) }
func (l zeroLogger) Warn(msg string, obj any)  { l.write(l.zl.Warn(), msg, obj) }
func (l zeroLogger) Debug(msg string, obj any) { l.write(l.zl.Debug(), msg, obj) }
func (l zeroLogger) Error(msg string, obj any) { l.write(l.zl.Error(), msg, obj) }

// Debug writes a debug log when enabled and logger is non-nil.
func Debug(enabled bool, logger Logger, msg string, obj any) {
	if !enabled || logger == nil {
		return
	}
	logger.Debug(msg, obj)
}

// Debugf is a compatibility helper for format-style debug logging.
func Debugf(enabled bool, logger Logger, format string, args ...any) {
	Debug(enabled, logger, fmt.Sprintf(format, args...), nil)
}

// Info writes an info log when logger is non-nil.
func Info(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Info(msg, obj)
}

// Warn writes a warning log when logger is non-nil.
func Warn(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Warn(msg, obj)
}

// Error writes an error log when logger is non-nil.
func Error(logger Logger, msg string, obj any) {
	if logger == nil {
		return
	}
	logger.Error(msg, obj)
}
