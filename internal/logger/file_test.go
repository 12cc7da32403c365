package logger

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileLoggerCreatesRunLog(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	log, err := NewFileLogger(dir, "debug")
	if err != nil {
		t.Fatal(err)
	}
	defer log.Close()

	if len(log.RunID()) != 8 {
		t.Errorf("run ID %q should be 8 characters", log.RunID())
	}
	base := filepath.Base(log.Path())
	if !strings.HasPrefix(base, "run-") || !strings.HasSuffix(base, log.RunID()+".log") {
		t.Errorf("unexpected run log name %q", base)
	}

	log.Debugf("probe %s", "value")
	log.Warnf("warned")
	if err := log.Close(); err != nil {
		t.Fatal(err)
	}

	content, err := os.ReadFile(log.Path())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(content), "DEBUG probe value") {
		t.Errorf("missing debug line in %q", content)
	}
	if !strings.Contains(string(content), "WARN warned") {
		t.Errorf("missing warn line in %q", content)
	}
}

func TestFileLoggerLevelFiltering(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	log, err := NewFileLogger(dir, "error")
	if err != nil {
		t.Fatal(err)
	}
	log.Infof("hidden")
	log.Errorf("shown")
	if err := log.Close(); err != nil {
		t.Fatal(err)
	}

	content, _ := os.ReadFile(log.Path())
	if strings.Contains(string(content), "hidden") {
		t.Errorf("info message should be filtered: %q", content)
	}
	if !strings.Contains(string(content), "ERROR shown") {
		t.Errorf("error message missing: %q", content)
	}
}

func TestFileLoggerLatestSymlink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	first, err := NewFileLogger(dir, "info")
	if err != nil {
		t.Fatal(err)
	}
	first.Close()

	second, err := NewFileLogger(dir, "info")
	if err != nil {
		t.Fatal(err)
	}
	second.Close()

	target, err := os.Readlink(filepath.Join(dir, "latest.log"))
	if err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	if target != filepath.Base(second.Path()) {
		t.Errorf("latest.log points at %q, want %q", target, filepath.Base(second.Path()))
	}
}

func TestFileLoggerLogAfterClose(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	log, err := NewFileLogger(dir, "info")
	if err != nil {
		t.Fatal(err)
	}
	log.Close()

	// Must not panic, and a second Close stays nil.
	log.Infof("dropped")
	if err := log.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}
}

func TestMultiFansOut(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	fileLog, err := NewFileLogger(dir, "info")
	if err != nil {
		t.Fatal(err)
	}

	multi := NewMulti(nil, fileLog)
	multi.Infof("fan out")
	fileLog.Close()

	content, _ := os.ReadFile(fileLog.Path())
	if !strings.Contains(string(content), "INFO fan out") {
		t.Errorf("message did not reach the file logger: %q", content)
	}
}
