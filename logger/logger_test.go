package logger

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitWritesRelativeFileUnderConfigDir(t *testing.T) {
	dir := t.TempDir()
	if err := Init(Config{Enabled: true, Level: "info", File: "logs/hal.log"}, dir); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { _ = Close() })

	Info("agent relocated", "location", "kitchen")
	Debug("below level")

	data, err := os.ReadFile(filepath.Join(dir, "logs", "hal.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "agent relocated") || !strings.Contains(out, "location=kitchen") {
		t.Fatalf("log file missing info record: %q", out)
	}
	if strings.Contains(out, "below level") {
		t.Fatalf("debug record should be filtered at info level: %q", out)
	}
}

func TestInterceptAndRestore(t *testing.T) {
	if err := Init(Config{Enabled: true, Level: "debug"}, ""); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { _ = Close() })

	var buf bytes.Buffer
	restore := Intercept(&buf)
	Warn("tick dropped", "error", errors.New("buffer full"))
	restore()
	Warn("after restore")

	out := buf.String()
	if !strings.Contains(out, "tick dropped") {
		t.Fatalf("intercepted writer missing record: %q", out)
	}
	if !strings.Contains(out, "err=\"buffer full\"") {
		t.Fatalf("error key should be rewritten to err: %q", out)
	}
	if strings.Contains(out, "after restore") {
		t.Fatalf("records after restore should not reach the intercept writer: %q", out)
	}
}

func TestNestedInterceptsRestoreInAnyOrder(t *testing.T) {
	if err := Init(Config{Enabled: true, Level: "info"}, ""); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { _ = Close() })

	var outer, inner bytes.Buffer
	restoreOuter := Intercept(&outer)
	restoreInner := Intercept(&inner)

	Info("to inner")
	restoreOuter()
	Info("still inner")
	restoreInner()
	restoreInner()
	Info("nobody")

	if !strings.Contains(inner.String(), "to inner") || !strings.Contains(inner.String(), "still inner") {
		t.Fatalf("inner writer = %q", inner.String())
	}
	if outer.Len() != 0 {
		t.Fatalf("outer writer should be shadowed, got %q", outer.String())
	}
}

func TestCloseStopsFileLogging(t *testing.T) {
	dir := t.TempDir()
	if err := Init(Config{Enabled: true, Level: "info", File: "hal.log"}, dir); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	Info("before close")
	if err := Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	Info("after close")

	data, err := os.ReadFile(filepath.Join(dir, "hal.log"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "before close") || strings.Contains(string(data), "after close") {
		t.Fatalf("log file = %q", data)
	}
}

func TestDisabledLoggerDropsEverything(t *testing.T) {
	if err := Init(Config{Enabled: false}, ""); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	var buf bytes.Buffer
	restore := Intercept(&buf)
	defer restore()

	Error("nobody hears this")
	if buf.Len() != 0 {
		t.Fatalf("disabled logger wrote %q", buf.String())
	}
}

func TestParseLevelDefaultsToWarn(t *testing.T) {
	if got := parseLevel(""); got.String() != "WARN" {
		t.Fatalf("parseLevel(\"\") = %v, want WARN", got)
	}
	if got := parseLevel(" DEBUG "); got.String() != "DEBUG" {
		t.Fatalf("parseLevel(\" DEBUG \") = %v, want DEBUG", got)
	}
}
