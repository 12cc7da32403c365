// Package logger provides the diagnostic logging used across seeker.
//
// Diagnostics — per-file read failures, malformed ignore rules, worker task
// faults — are separate from search output: they go to stderr (or a per-run
// log file), never to the result stream. Implementations are thread-safe
// and filter by level.
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

// Log level constants for filtering
const (
	levelTrace int = 0
	levelDebug int = 1
	levelInfo  int = 2
	levelWarn  int = 3
	levelError int = 4
)

// Logger is the leveled diagnostic interface shared by the console and file
// loggers and consumed by the walker, the worker pool, and the grep command.
type Logger interface {
	Tracef(format string, args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// ConsoleLogger writes leveled diagnostics to a writer with [HH:MM:SS]
// timestamps and thread safety. Color output is enabled automatically when
// the writer is a terminal.
type ConsoleLogger struct {
	writer      io.Writer
	logLevel    string
	mutex       sync.Mutex
	colorOutput bool
}

// NewConsoleLogger creates a ConsoleLogger that writes to the provided
// io.Writer. If writer is nil, messages are silently discarded.
// Valid levels: trace, debug, info, warn, error (case-insensitive).
// An empty or invalid level defaults to "info".
func NewConsoleLogger(writer io.Writer, logLevel string) *ConsoleLogger {
	return &ConsoleLogger{
		writer:      writer,
		logLevel:    normalizeLogLevel(logLevel),
		colorOutput: isTerminal(writer),
	}
}

// isTerminal checks if the writer is a terminal that supports colors.
// Returns true for os.Stdout and os.Stderr when they are TTYs and color is
// not globally disabled (NO_COLOR, --no-color).
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || (f != os.Stdout && f != os.Stderr) {
		return false
	}
	return isatty.IsTerminal(f.Fd()) && !color.NoColor
}

// normalizeLogLevel converts a log level string to lowercase and validates
// it, defaulting to "info".
func normalizeLogLevel(level string) string {
	normalized := strings.ToLower(strings.TrimSpace(level))
	if _, ok := logLevelValue(normalized); ok {
		return normalized
	}
	return "info"
}

// logLevelValue maps a level name to its numeric value.
func logLevelValue(level string) (int, bool) {
	switch level {
	case "trace":
		return levelTrace, true
	case "debug":
		return levelDebug, true
	case "info":
		return levelInfo, true
	case "warn":
		return levelWarn, true
	case "error":
		return levelError, true
	default:
		return 0, false
	}
}

// ValidLogLevel reports whether level names a supported log level.
func ValidLogLevel(level string) bool {
	_, ok := logLevelValue(strings.ToLower(strings.TrimSpace(level)))
	return ok
}

// shouldLog checks if a message at the given level passes the filter.
func (cl *ConsoleLogger) shouldLog(messageLevel int) bool {
	configured, _ := logLevelValue(cl.logLevel)
	return messageLevel >= configured
}

var (
	warnColor  = color.New(color.FgYellow)
	errorColor = color.New(color.FgRed, color.Bold)
)

// logf formats and writes one diagnostic line under the mutex.
func (cl *ConsoleLogger) logf(level int, label string, c *color.Color, format string, args ...any) {
	if cl.writer == nil || !cl.shouldLog(level) {
		return
	}

	timestamp := time.Now().Format("15:04:05")
	message := fmt.Sprintf(format, args...)
	if cl.colorOutput && c != nil {
		label = c.Sprint(label)
	}

	cl.mutex.Lock()
	defer cl.mutex.Unlock()
	fmt.Fprintf(cl.writer, "[%s] %s %s\n", timestamp, label, message)
}

// Tracef logs a trace-level message.
func (cl *ConsoleLogger) Tracef(format string, args ...any) {
	cl.logf(levelTrace, "TRACE", nil, format, args...)
}

// Debugf logs a debug-level message.
func (cl *ConsoleLogger) Debugf(format string, args ...any) {
	cl.logf(levelDebug, "DEBUG", nil, format, args...)
}

// Infof logs an info-level message.
func (cl *ConsoleLogger) Infof(format string, args ...any) {
	cl.logf(levelInfo, "INFO", nil, format, args...)
}

// Warnf logs a warning.
func (cl *ConsoleLogger) Warnf(format string, args ...any) {
	cl.logf(levelWarn, "WARN", warnColor, format, args...)
}

// Errorf logs an error.
func (cl *ConsoleLogger) Errorf(format string, args ...any) {
	cl.logf(levelError, "ERROR", errorColor, format, args...)
}
