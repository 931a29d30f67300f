// Package config handles configuration loading and saving.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/linanwx/hal9000/logger"
	"github.com/linanwx/hal9000/terminal"
)

const (
	configFileName = "config.yaml"
)

var configDirOverride string

// SetConfigDir overrides the config directory for the current process.
// Empty value clears the override.
func SetConfigDir(dir string) {
	configDirOverride = strings.TrimSpace(dir)
}

// Config is the root configuration structure.
type Config struct {
	Agent    AgentConfig    `json:"agent" yaml:"agent"`
	Terminal TerminalConfig `json:"terminal" yaml:"terminal"`
	Timer    TimerConfig    `json:"timer" yaml:"timer"`
	Styles   StylesConfig   `json:"styles" yaml:"styles"`
	Logging  LoggingConfig  `json:"logging,omitempty" yaml:"logging,omitempty"`
}

// AgentConfig describes the responder.
type AgentConfig struct {
	Name     string `json:"name" yaml:"name"`         // shown in the join hint; defaults to HAL9000
	Location string `json:"location" yaml:"location"` // starting location; defaults to "unknown"
}

// TerminalConfig selects and tunes the display surface.
type TerminalConfig struct {
	Mode          string  `json:"mode" yaml:"mode"`                                       // auto, tui, plain
	Prompt        string  `json:"prompt,omitempty" yaml:"prompt,omitempty"`               // TUI input prompt
	CommandMarker string  `json:"commandMarker,omitempty" yaml:"commandMarker,omitempty"` // defaults to "/"
	LogRatio      float64 `json:"logRatio,omitempty" yaml:"logRatio,omitempty"`           // TUI diagnostics share, 0 hides
	Width         int     `json:"width,omitempty" yaml:"width,omitempty"`                 // plain surface width, 0 detects
}

// TimerConfig controls the periodic update.
type TimerConfig struct {
	Interval string `json:"interval" yaml:"interval"` // Go duration, e.g. "1s"
}

// LineStyle is the alignment and colour of one kind of line.
type LineStyle struct {
	Align string `json:"align" yaml:"align"` // left, center, right
	Color string `json:"color" yaml:"color"` // "#rrggbb" or ANSI index
}

// StylesConfig holds the colours of everything shown in the transcript.
type StylesConfig struct {
	HAL       LineStyle `json:"hal" yaml:"hal"`
	Info      LineStyle `json:"info" yaml:"info"`
	Error     LineStyle `json:"error" yaml:"error"`
	HintColor string    `json:"hintColor" yaml:"hintColor"`
	EchoColor string    `json:"echoColor" yaml:"echoColor"`
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Enabled *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Level   string `json:"level,omitempty" yaml:"level,omitempty"`   // debug, info, warn, error
	Stdout  bool   `json:"stdout,omitempty" yaml:"stdout,omitempty"` // log to stdout (plain mode only)
	File    string `json:"file,omitempty" yaml:"file,omitempty"`     // log file path, relative to the config dir
}

// TickInterval parses the timer interval.
func (c *Config) TickInterval() (time.Duration, error) {
	d, err := time.ParseDuration(strings.TrimSpace(c.Timer.Interval))
	if err != nil {
		return 0, fmt.Errorf("timer.interval: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timer.interval: must be positive, got %s", d)
	}
	return d, nil
}

// BuildLoggerConfig converts the logging section for the logger package.
func (c *Config) BuildLoggerConfig() logger.Config {
	enabled := true
	if c.Logging.Enabled != nil {
		enabled = *c.Logging.Enabled
	}
	return logger.Config{
		Enabled: enabled,
		Level:   c.Logging.Level,
		Stdout:  c.Logging.Stdout,
		File:    c.Logging.File,
	}
}

// Validate reports every invalid field at once.
func (c *Config) Validate() error {
	var errs []error

	switch strings.ToLower(strings.TrimSpace(c.Terminal.Mode)) {
	case terminal.ModeAuto, terminal.ModeTUI, terminal.ModePlain:
	default:
		errs = append(errs, fmt.Errorf("terminal.mode: unknown mode %q", c.Terminal.Mode))
	}
	if c.Terminal.LogRatio < 0 || c.Terminal.LogRatio >= 1 {
		errs = append(errs, fmt.Errorf("terminal.logRatio: must be in [0, 1), got %v", c.Terminal.LogRatio))
	}
	if c.Terminal.Width < 0 {
		errs = append(errs, fmt.Errorf("terminal.width: must not be negative, got %d", c.Terminal.Width))
	}
	if _, err := c.TickInterval(); err != nil {
		errs = append(errs, err)
	}
	for name, style := range map[string]LineStyle{
		"styles.hal":   c.Styles.HAL,
		"styles.info":  c.Styles.Info,
		"styles.error": c.Styles.Error,
	} {
		if _, err := terminal.ParseAlign(style.Align); err != nil {
			errs = append(errs, fmt.Errorf("%s.align: %w", name, err))
		}
	}
	return errors.Join(errs...)
}
