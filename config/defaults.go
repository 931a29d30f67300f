package config

import "github.com/linanwx/hal9000/terminal"

const (
	defaultAgentName     = "HAL9000"
	defaultLocation      = "unknown"
	defaultMode          = terminal.ModeAuto
	defaultPrompt        = "operator> "
	defaultCommandMarker = terminal.DefaultCommandMarker
	defaultTickInterval  = "1s"
	defaultHintColor     = "#808080"
	defaultEchoColor     = "#C0C0C0"
	defaultLogLevel      = "warn"
	defaultLogFile       = "logs/hal9000.log"
)

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Agent: AgentConfig{
			Name:     defaultAgentName,
			Location: defaultLocation,
		},
		Terminal: TerminalConfig{
			Mode:          defaultMode,
			Prompt:        defaultPrompt,
			CommandMarker: defaultCommandMarker,
		},
		Timer: TimerConfig{
			Interval: defaultTickInterval,
		},
		Styles:  defaultStyles(),
		Logging: defaultLoggingConfig(),
	}
}

func defaultStyles() StylesConfig {
	return StylesConfig{
		HAL:       LineStyle{Align: string(terminal.AlignRight), Color: "#00805A"},
		Info:      LineStyle{Align: string(terminal.AlignCenter), Color: "#404040"},
		Error:     LineStyle{Align: string(terminal.AlignLeft), Color: "#ff3000"},
		HintColor: defaultHintColor,
		EchoColor: defaultEchoColor,
	}
}

func defaultLoggingConfig() LoggingConfig {
	enabled := true
	return LoggingConfig{
		Enabled: &enabled,
		Level:   defaultLogLevel,
		File:    defaultLogFile,
	}
}

func (c *Config) applyDefaults() {
	if c.Agent.Name == "" {
		c.Agent.Name = defaultAgentName
	}
	if c.Agent.Location == "" {
		c.Agent.Location = defaultLocation
	}

	if c.Terminal.Mode == "" {
		c.Terminal.Mode = defaultMode
	}
	if c.Terminal.Prompt == "" {
		c.Terminal.Prompt = defaultPrompt
	}
	if c.Terminal.CommandMarker == "" {
		c.Terminal.CommandMarker = defaultCommandMarker
	}

	if c.Timer.Interval == "" {
		c.Timer.Interval = defaultTickInterval
	}

	def := defaultStyles()
	fillStyle(&c.Styles.HAL, def.HAL)
	fillStyle(&c.Styles.Info, def.Info)
	fillStyle(&c.Styles.Error, def.Error)
	if c.Styles.HintColor == "" {
		c.Styles.HintColor = def.HintColor
	}
	if c.Styles.EchoColor == "" {
		c.Styles.EchoColor = def.EchoColor
	}

	logDef := defaultLoggingConfig()
	if c.Logging == (LoggingConfig{}) {
		c.Logging = logDef
		return
	}
	if c.Logging.Level == "" {
		c.Logging.Level = logDef.Level
	}
	if c.Logging.File == "" && !c.Logging.Stdout {
		c.Logging.File = logDef.File
	}
	if c.Logging.Enabled == nil {
		c.Logging.Enabled = logDef.Enabled
	}
}

func fillStyle(s *LineStyle, def LineStyle) {
	if s.Align == "" {
		s.Align = def.Align
	}
	if s.Color == "" {
		s.Color = def.Color
	}
}
