package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func useTempDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	SetConfigDir(dir)
	t.Cleanup(func() { SetConfigDir("") })
	return dir
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	useTempDir(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Agent.Name != "HAL9000" || cfg.Agent.Location != "unknown" {
		t.Fatalf("agent defaults = %+v", cfg.Agent)
	}
	d, err := cfg.TickInterval()
	if err != nil || d != time.Second {
		t.Fatalf("TickInterval() = (%v, %v), want 1s", d, err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := useTempDir(t)

	cfg := DefaultConfig()
	cfg.Agent.Location = "pod bay"
	cfg.Terminal.Mode = "plain"
	cfg.Timer.Interval = "250ms"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Fatalf("config.yaml should exist: %v", err)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if got.Agent.Location != "pod bay" || got.Terminal.Mode != "plain" {
		t.Fatalf("Load() = %+v", got)
	}
	if d, _ := got.TickInterval(); d != 250*time.Millisecond {
		t.Fatalf("TickInterval() = %v", d)
	}
	if got.Logging.Enabled == nil || !*got.Logging.Enabled {
		t.Fatal("logging should stay enabled")
	}
}

func TestLoadPartialFileFillsDefaults(t *testing.T) {
	dir := useTempDir(t)
	data := "agent:\n  location: kitchen\nstyles:\n  hal:\n    color: \"#00ff00\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Agent.Location != "kitchen" || cfg.Agent.Name != "HAL9000" {
		t.Fatalf("agent = %+v", cfg.Agent)
	}
	if cfg.Styles.HAL.Color != "#00ff00" || cfg.Styles.HAL.Align != "right" {
		t.Fatalf("hal style = %+v", cfg.Styles.HAL)
	}
	if cfg.Terminal.CommandMarker != "/" || cfg.Timer.Interval != "1s" {
		t.Fatalf("terminal/timer defaults missing: %+v %+v", cfg.Terminal, cfg.Timer)
	}
	if cfg.Logging.Level != "warn" || cfg.Logging.File != "logs/hal9000.log" {
		t.Fatalf("logging defaults = %+v", cfg.Logging)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	dir := useTempDir(t)
	data := "terminal:\n  mode: gui\nstyles:\n  error:\n    align: justify\ntimer:\n  interval: -1s\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := Load()
	if err == nil {
		t.Fatal("Load() should fail")
	}
	for _, want := range []string{"terminal.mode", "styles.error.align", "timer.interval"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q should mention %s", err, want)
		}
	}
}

func TestBuildLoggerConfig(t *testing.T) {
	cfg := DefaultConfig()
	lc := cfg.BuildLoggerConfig()
	if !lc.Enabled || lc.Level != "warn" || lc.File != "logs/hal9000.log" || lc.Stdout {
		t.Fatalf("BuildLoggerConfig() = %+v", lc)
	}

	off := false
	cfg.Logging.Enabled = &off
	if cfg.BuildLoggerConfig().Enabled {
		t.Fatal("disabled logging should stay disabled")
	}
}
