package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
)

// FileLogger writes leveled diagnostics to a per-run log file. Each run
// gets a timestamped file tagged with a short run ID, and a latest.log
// symlink points at the most recent run. It is thread-safe.
type FileLogger struct {
	file     *os.File
	path     string
	runID    string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates a FileLogger writing to
// <logDir>/run-<timestamp>-<id>.log, creating the directory if needed and
// updating the latest.log symlink. The run ID is the first segment of a
// fresh UUID.
func NewFileLogger(logDir, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	runID := uuid.NewString()[:8]
	timestamp := time.Now().Format("20060102-150405")
	path := filepath.Join(logDir, fmt.Sprintf("run-%s-%s.log", timestamp, runID))

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	// Re-point latest.log at this run. Symlinks are best effort: some
	// filesystems refuse them and the log itself still works.
	symlinkPath := filepath.Join(logDir, "latest.log")
	if _, err := os.Lstat(symlinkPath); err == nil {
		_ = os.Remove(symlinkPath)
	}
	_ = os.Symlink(filepath.Base(path), symlinkPath)

	return &FileLogger{
		file:     file,
		path:     path,
		runID:    runID,
		logLevel: normalizeLogLevel(logLevel),
	}, nil
}

// Path returns the run log file path.
func (fl *FileLogger) Path() string { return fl.path }

// RunID returns the short identifier of this run.
func (fl *FileLogger) RunID() string { return fl.runID }

// Close flushes and closes the underlying log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()
	if fl.file == nil {
		return nil
	}
	err := fl.file.Close()
	fl.file = nil
	return err
}

func (fl *FileLogger) logf(level int, label string, format string, args ...any) {
	configured, _ := logLevelValue(fl.logLevel)
	if level < configured {
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := fmt.Sprintf(format, args...)

	fl.mu.Lock()
	defer fl.mu.Unlock()
	if fl.file == nil {
		return
	}
	fmt.Fprintf(fl.file, "[%s] %s %s\n", timestamp, label, message)
}

// Tracef logs a trace-level message.
func (fl *FileLogger) Tracef(format string, args ...any) {
	fl.logf(levelTrace, "TRACE", format, args...)
}

// Debugf logs a debug-level message.
func (fl *FileLogger) Debugf(format string, args ...any) {
	fl.logf(levelDebug, "DEBUG", format, args...)
}

// Infof logs an info-level message.
func (fl *FileLogger) Infof(format string, args ...any) {
	fl.logf(levelInfo, "INFO", format, args...)
}

// Warnf logs a warning.
func (fl *FileLogger) Warnf(format string, args ...any) {
	fl.logf(levelWarn, "WARN", format, args...)
}

// Errorf logs an error.
func (fl *FileLogger) Errorf(format string, args ...any) {
	fl.logf(levelError, "ERROR", format, args...)
}
