package logging

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/fatih/color"
)

// Level selects how chatty a Logger is.
type Level int

const (
	LevelInfo Level = iota
	LevelVerbose
	LevelDebug
)

var (
	colorDebug   = color.New(color.FgCyan).SprintFunc()
	colorVerbose = color.New(color.FgBlue).SprintFunc()
	colorInfo    = color.New(color.FgGreen).SprintFunc()
	colorError   = color.New(color.FgRed, color.Bold).SprintFunc()
	colorWarning = color.New(color.FgYellow).SprintFunc()
	colorSuccess = color.New(color.FgGreen, color.Bold).SprintFunc()
)

// Logger writes leveled, coloured log lines.
type Logger struct {
	out   *log.Logger
	level Level
}

// New creates a Logger writing to w.
func New(w io.Writer, level Level) *Logger {
	return &Logger{
		out:   log.New(w, "tilewm ", log.LstdFlags),
		level: level,
	}
}

// Default logs to stderr at info level.
func Default() *Logger {
	return New(os.Stderr, LevelInfo)
}

// Discard drops everything; used by tests.
func Discard() *Logger {
	return New(io.Discard, LevelInfo)
}

// SetLevel changes the verbosity.
func (l *Logger) SetLevel(level Level) {
	l.level = level
}

// Level returns the current verbosity.
func (l *Logger) Level() Level {
	return l.level
}

// Debugf prints debug messages if debug mode is enabled
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l.level >= LevelDebug {
		l.print(colorDebug, "[DEBUG] ", format, args...)
	}
}

// Verbosef prints verbose messages in verbose or debug mode
func (l *Logger) Verbosef(format string, args ...interface{}) {
	if l.level >= LevelVerbose {
		l.print(colorVerbose, "[VERBOSE] ", format, args...)
	}
}

// Infof prints info messages (always shown)
func (l *Logger) Infof(format string, args ...interface{}) {
	l.print(colorInfo, "[INFO] ", format, args...)
}

// Warnf prints warning messages (always shown)
func (l *Logger) Warnf(format string, args ...interface{}) {
	l.print(colorWarning, "[WARNING] ", format, args...)
}

// Errorf prints error messages (always shown)
func (l *Logger) Errorf(format string, args ...interface{}) {
	l.print(colorError, "[ERROR] ", format, args...)
}

// Successf prints success messages (always shown)
func (l *Logger) Successf(format string, args ...interface{}) {
	l.print(colorSuccess, "[SUCCESS] ", format, args...)
}

func (l *Logger) print(paint func(a ...interface{}) string, prefix, format string, args ...interface{}) {
	l.out.Print(paint(prefix + fmt.Sprintf(format, args...)))
}
