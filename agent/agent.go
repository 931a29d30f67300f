// Package agent implements HAL9000, the scripted responder behind the terminal.
package agent

import (
	"fmt"
	"strings"
	"time"

	"github.com/linanwx/hal9000/logger"
	"github.com/linanwx/hal9000/terminal"
)

const (
	// DefaultLocation is where HAL believes the operator is until told otherwise.
	DefaultLocation = "unknown"

	whereAmIPrefix = "Where am I?"
	relocatePrefix = "relocate "
	quitCommand    = "quit"

	greeting       = "Good morning, mortal! This is HAL."
	ignoredReply   = "Your input is registered and won't be taken into mind. Keep trying."
	refusalReply   = "I'm afraid I can't do that."
	locationReply  = "You are now in the %s, dummy."
	relocatedInfo  = "— Now in the %s. —"
	unknownCommand = "Command `%s` unknown."
)

// Display is the surface the agent writes its lines to.
type Display interface {
	Log(text string, align terminal.Align, color string)
}

// Style is the placement and colour of one kind of line.
type Style struct {
	Align terminal.Align
	Color string
}

// Styles groups the three kinds of line the agent emits.
type Styles struct {
	HAL   Style // HAL speaking
	Info  Style // status announcements
	Error Style // command errors
}

// DefaultStyles returns HAL on the right in green, info centered in gray and
// errors on the left in red.
func DefaultStyles() Styles {
	return Styles{
		HAL:   Style{Align: terminal.AlignRight, Color: "#00805A"},
		Info:  Style{Align: terminal.AlignCenter, Color: "#404040"},
		Error: Style{Align: terminal.AlignLeft, Color: "#ff3000"},
	}
}

// Config holds the agent's starting state and line styles.
type Config struct {
	Location string
	Styles   Styles
}

// Tick is passed to Update on every timer interval.
type Tick struct {
	Seq uint64
	At  time.Time
}

// Agent holds HAL's memory: where the operator is and whether HAL has greeted
// them yet. All methods must be called from the same goroutine.
type Agent struct {
	display Display
	quit    func()
	styles  Styles

	location    string
	initialized bool
}

// New creates an agent writing to display. quit is called when the operator
// asks to leave; it may be nil.
func New(display Display, quit func(), cfg Config) *Agent {
	location := cfg.Location
	if location == "" {
		location = DefaultLocation
	}
	styles := cfg.Styles
	if styles == (Styles{}) {
		styles = DefaultStyles()
	}
	return &Agent{
		display:  display,
		quit:     quit,
		styles:   styles,
		location: location,
	}
}

// Location returns the operator's current location.
func (a *Agent) Location() string { return a.location }

// Initialized reports whether HAL has greeted the operator.
func (a *Agent) Initialized() bool { return a.initialized }

// OnInput answers a plain line. The first line only wakes HAL up, whatever it
// says.
func (a *Agent) OnInput(text string) {
	if !a.initialized {
		a.logHAL(greeting)
		a.initialized = true
		logger.Debug("agent initialized")
		return
	}

	if strings.HasPrefix(text, whereAmIPrefix) {
		a.logHAL(fmt.Sprintf(locationReply, a.location))
		return
	}
	a.logHAL(ignoredReply)
}

// OnCommand handles a command line with its marker already stripped.
func (a *Agent) OnCommand(text string) {
	switch {
	case text == quitCommand:
		logger.Info("quit requested")
		if a.quit != nil {
			a.quit()
		}

	case strings.HasPrefix(text, relocatePrefix):
		place := strings.TrimPrefix(text, relocatePrefix)
		a.logInfo("")
		a.logInfo(fmt.Sprintf(relocatedInfo, place))
		a.location = place
		logger.Info("operator relocated", "location", place)

	default:
		a.logError(fmt.Sprintf(unknownCommand, text))
		a.logHAL(refusalReply)
		logger.Debug("unknown command", "command", text)
	}
}

// Update runs once per timer interval. HAL has no autonomous behaviour yet.
func (a *Agent) Update(tick Tick) {
	logger.Debug("agent tick", "seq", tick.Seq)
}

func (a *Agent) logHAL(text string) {
	a.display.Log(text, a.styles.HAL.Align, a.styles.HAL.Color)
}

func (a *Agent) logInfo(text string) {
	a.display.Log(text, a.styles.Info.Align, a.styles.Info.Color)
}

func (a *Agent) logError(text string) {
	a.display.Log(text, a.styles.Error.Align, a.styles.Error.Color)
}
