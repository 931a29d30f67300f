// Package logger is the process-wide diagnostics log.
//
// The terminal is the user interface, so records go to a log file by default.
// While the full-screen UI owns the screen, Intercept routes them into its
// diagnostics panel instead of stdout.
package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Config describes logger settings.
type Config struct {
	Enabled bool
	Level   string // debug, info, warn, error; anything else is warn
	Stdout  bool
	File    string // relative paths are resolved against the config dir
}

// overlay is one Intercept call; the most recent one receives the records.
type overlay struct {
	w io.Writer
}

var (
	mu       sync.RWMutex
	level    slog.LevelVar
	cfg      Config
	file     *os.File
	overlays []*overlay
	base     *slog.Logger // nil while disabled
)

// Init (re)configures the logger. A file that cannot be opened is reported but
// the remaining writers are still used.
func Init(c Config, configDir string) error {
	mu.Lock()
	defer mu.Unlock()

	closeFile()
	cfg = c
	level.Set(parseLevel(c.Level))
	if !c.Enabled {
		base = nil
		return nil
	}

	var initErr error
	if c.File != "" {
		path := expandPath(c.File, configDir)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("logger: create log dir: %w", err)
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			initErr = fmt.Errorf("logger: open log file: %w", err)
		} else {
			file = f
		}
	}

	rebuild()
	return initErr
}

// Close flushes and closes the log file and disables logging.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	base = nil
	cfg.Enabled = false
	return closeFile()
}

// Intercept sends records to w in place of stdout until the returned func is
// called. The log file keeps receiving records. Intercepts nest.
func Intercept(w io.Writer) (restore func()) {
	o := &overlay{w: w}

	mu.Lock()
	overlays = append(overlays, o)
	rebuild()
	mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			mu.Lock()
			defer mu.Unlock()
			for i, cur := range overlays {
				if cur == o {
					overlays = append(overlays[:i], overlays[i+1:]...)
					break
				}
			}
			rebuild()
		})
	}
}

// rebuild reconstructs the handler. Must be called with mu held.
func rebuild() {
	if !cfg.Enabled {
		base = nil
		return
	}

	var writers []io.Writer
	switch {
	case len(overlays) > 0:
		writers = append(writers, overlays[len(overlays)-1].w)
	case cfg.Stdout:
		writers = append(writers, os.Stdout)
	}
	if file != nil {
		writers = append(writers, file)
	}
	if len(writers) == 0 {
		base = nil
		return
	}

	base = slog.New(slog.NewTextHandler(io.MultiWriter(writers...), &slog.HandlerOptions{
		Level:       &level,
		ReplaceAttr: shortErrKey,
	}))
}

// shortErrKey logs "error" attributes as err=.
func shortErrKey(_ []string, a slog.Attr) slog.Attr {
	if a.Key == "error" {
		a.Key = "err"
	}
	return a
}

func closeFile() error {
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}

func Debug(msg string, args ...any) { log(slog.LevelDebug, msg, args...) }
func Info(msg string, args ...any)  { log(slog.LevelInfo, msg, args...) }
func Warn(msg string, args ...any)  { log(slog.LevelWarn, msg, args...) }
func Error(msg string, args ...any) { log(slog.LevelError, msg, args...) }

func log(lvl slog.Level, msg string, args ...any) {
	mu.RLock()
	l := base
	mu.RUnlock()
	if l == nil {
		return
	}
	l.Log(context.Background(), lvl, msg, args...)
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

func expandPath(path, configDir string) string {
	if strings.HasPrefix(path, "~") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	if filepath.IsAbs(path) || configDir == "" {
		return path
	}
	return filepath.Join(configDir, path)
}
