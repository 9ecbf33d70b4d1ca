// Package logger provides leveled console logging for cleanall.
//
// Messages are written as "[HH:MM:SS] [LEVEL] message". Levels are colored
// when the destination is a terminal and NO_COLOR is not set.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Level is a log severity.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ParseLevel converts a level name; unknown names yield LevelInfo.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug", "trace":
		return LevelDebug
	case "warn", "warning":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelInfo
	}
}

// ConsoleLogger writes leveled messages to a writer. It is safe for
// concurrent use. A nil writer discards everything.
type ConsoleLogger struct {
	writer      io.Writer
	level       Level
	mutex       sync.Mutex
	colorOutput bool
	now         func() time.Time
}

// NewConsoleLogger creates a ConsoleLogger writing messages at or above level.
func NewConsoleLogger(writer io.Writer, level Level) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		level:       level,
		colorOutput: IsTerminal(writer),
		now:         time.Now,
	}
}

// IsTerminal reports whether w is a terminal that should receive colors.
func IsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// SetColor forces colored output on or off.
func (cl *ConsoleLogger) SetColor(enabled bool) {
	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	cl.colorOutput = enabled
}

// Debugf logs a debug message.
func (cl *ConsoleLogger) Debugf(format string, args ...any) {
	cl.log(LevelDebug, format, args...)
}

// Infof logs an informational message.
func (cl *ConsoleLogger) Infof(format string, args ...any) {
	cl.log(LevelInfo, format, args...)
}

// Warnf logs a warning.
func (cl *ConsoleLogger) Warnf(format string, args ...any) {
	cl.log(LevelWarn, format, args...)
}

// Errorf logs an error.
func (cl *ConsoleLogger) Errorf(format string, args ...any) {
	cl.log(LevelError, format, args...)
}

func (cl *ConsoleLogger) log(level Level, format string, args ...any) {
	if cl == nil || cl.writer == nil || level < cl.level {
		return
	}

	message := fmt.Sprintf(format, args...)

	cl.mutex.Lock()
	defer cl.mutex.Unlock()

	ts := cl.now().Format("15:04:05")
	label := level.String()
	if cl.colorOutput {
		label = levelColor(level).Sprint(label)
	}

	fmt.Fprintf(cl.writer, "[%s] [%s] %s\n", ts, label, message)
}

func levelColor(level Level) *color.Color {
	var c *color.Color
	switch level {
	case LevelDebug:
		c = color.New(color.FgCyan)
	case LevelWarn:
		c = color.New(color.FgYellow)
	case LevelError:
		c = color.New(color.FgRed)
	default:
		c = color.New(color.FgBlue)
	}
	c.EnableColor()
	return c
}
