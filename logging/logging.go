// Package logging provides the leveled diagnostic channel used by the
// renderer. Loggers are plain values handed to components at construction;
// there is no package-global instance.
package logging

import (
	"fmt"
	"io"
	"log"
)

// Level filters which messages are emitted.
type Level int

const (
	TRACE Level = iota
	DEBUG
	INFO
	WARN
	ERROR
)

func (l Level) String() string {
	switch l {
	case TRACE:
		return "TRACE"
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel maps a level name to its Level; unknown names default to INFO.
func ParseLevel(name string) Level {
	switch name {
	case "trace":
		return TRACE
	case "debug":
		return DEBUG
	case "warn":
		return WARN
	case "error":
		return ERROR
	default:
		return INFO
	}
}

// Logger writes leveled messages to a single destination.
type Logger struct {
	out   *log.Logger
	level Level
}

// New creates a logger writing to w, dropping messages below level.
func New(w io.Writer, level Level) *Logger {
	return &Logger{
		out:   log.New(w, "", log.LstdFlags|log.Lmicroseconds),
		level: level,
	}
}

// Discard returns a logger that drops everything; handy default for tests.
func Discard() *Logger {
	return New(io.Discard, ERROR+1)
}

func (l *Logger) logf(level Level, format string, args ...any) {
	if l == nil || level < l.level {
		return
	}
	l.out.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
}

func (l *Logger) Tracef(format string, args ...any) { l.logf(TRACE, format, args...) }
func (l *Logger) Debugf(format string, args ...any) { l.logf(DEBUG, format, args...) }
func (l *Logger) Infof(format string, args ...any)  { l.logf(INFO, format, args...) }
func (l *Logger) Warnf(format string, args ...any)  { l.logf(WARN, format, args...) }
func (l *Logger) Errorf(format string, args ...any) { l.logf(ERROR, format, args...) }
