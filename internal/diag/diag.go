package diag

import (
	"fmt"
	"io"
	"os"
)

// Level represents diagnostic severity
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

var prefixes = map[Level]string{
	LevelDebug: "debug",
	LevelInfo:  "info",
	LevelWarn:  "warn",
	LevelError: "error",
}

// Logger writes prefixed single-line diagnostics
type Logger struct {
	minLevel Level
	out      io.Writer
}

var defaultLogger *Logger

func init() {
	defaultLogger = New(LevelInfo, os.Stderr)
}

// New creates a new logger with the specified minimum level and output destination.
// Messages below the minimum level are discarded.
func New(level Level, out io.Writer) *Logger {
	return &Logger{
		minLevel: level,
		out:      out,
	}
}

// SetDefault sets the default package-level logger used by the convenience
// functions (Debugf, Infof, Warnf, Errorf). This allows centralizing logger
// configuration.
func SetDefault(logger *Logger) {
	defaultLogger = logger
}

// logf writes a single prefixed diagnostic line
func (l *Logger) logf(level Level, format string, args ...interface{}) {
	if level < l.minLevel {
		return
	}
	fmt.Fprintf(l.out, "[%s] %s\n", prefixes[level], fmt.Sprintf(format, args...))
}

// Debugf logs a debug message. Debug messages are typically used for
// detailed diagnostic information.
func (l *Logger) Debugf(format string, args ...interface{}) {
	l.logf(LevelDebug, format, args...)
}

// Infof logs an informational message.
func (l *Logger) Infof(format string, args ...interface{}) {
	l.logf(LevelInfo, format, args...)
}

// Warnf logs a warning message. Warnings indicate recovered issues that
// don't prevent operation.
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.logf(LevelWarn, format, args...)
}

// Errorf logs an error message. Errors indicate failures that prevent
// normal operation.
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.logf(LevelError, format, args...)
}

// Package-level convenience functions using the default logger

// Debugf logs a debug message with the default logger
func Debugf(format string, args ...interface{}) {
	defaultLogger.Debugf(format, args...)
}

// Infof logs an info message with the default logger
func Infof(format string, args ...interface{}) {
	defaultLogger.Infof(format, args...)
}

// Warnf logs a warning message with the default logger
func Warnf(format string, args ...interface{}) {
	defaultLogger.Warnf(format, args...)
}

// Errorf logs an error message with the default logger
func Errorf(format string, args ...interface{}) {
	defaultLogger.Errorf(format, args...)
}
