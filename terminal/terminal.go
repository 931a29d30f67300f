// Package terminal provides the display surfaces the operator talks through.
//
// A surface renders display lines and turns submitted lines into
// user.input / user.command events on the bus. Two surfaces exist: a
// full-screen bubbletea UI for interactive terminals and a plain line-based
// one for pipes and scripts.
package terminal

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/linanwx/hal9000/bus"
	"github.com/linanwx/hal9000/logger"
	"golang.org/x/term"
)

const (
	ModeAuto  = "auto"
	ModeTUI   = "tui"
	ModePlain = "plain"

	// DefaultCommandMarker prefixes lines routed to the command handler.
	DefaultCommandMarker = "/"

	defaultWidth = 80
)

// Surface is a display the agent writes to and the operator types into.
type Surface interface {
	// Log appends a formatted line to the display.
	Log(text string, align Align, color string)

	// Run blocks until the operator closes the surface or ctx is done.
	Run(ctx context.Context) error

	// Close ends Run. Safe to call more than once.
	Close()
}

// Handler receives the operator's lines.
type Handler interface {
	OnInput(text string)
	OnCommand(text string)
}

// Connect subscribes h to the input and command events on b.
func Connect(b *bus.Bus, h Handler) {
	b.Subscribe(bus.EventUserInput, func(_ context.Context, e *bus.Event) {
		h.OnInput(e.Text)
	})
	b.Subscribe(bus.EventUserCommand, func(_ context.Context, e *bus.Event) {
		h.OnCommand(e.Text)
	})
}

// Classify splits a submitted line into an event type and payload. A line
// starting with marker is a command with the marker stripped. Empty lines
// report ok=false.
func Classify(raw, marker string) (eventType bus.EventType, text string, ok bool) {
	raw = strings.TrimRight(raw, "\r\n")
	if raw == "" {
		return "", "", false
	}
	if marker != "" && strings.HasPrefix(raw, marker) {
		return bus.EventUserCommand, strings.TrimPrefix(raw, marker), true
	}
	return bus.EventUserInput, raw, true
}

// submit classifies raw and queues it on b under source, waiting for room so
// that piped input is never dropped.
func submit(ctx context.Context, b *bus.Bus, source, raw, marker string) {
	eventType, text, ok := Classify(raw, marker)
	if !ok {
		return
	}
	b.Send(ctx, bus.NewEvent(eventType, source, text))
}

// Options configures a surface.
type Options struct {
	Mode          string  // auto, tui or plain
	Prompt        string  // input prompt (TUI)
	CommandMarker string  // defaults to "/"
	EchoColor     string  // colour of the operator's echoed lines
	LogRatio      float64 // share of the TUI given to diagnostics; 0 hides the panel
	Width         int     // plain surface width; 0 detects
	Echo          bool    // plain surface repeats the operator's lines

	In  io.Reader // plain surface input; defaults to os.Stdin
	Out io.Writer // plain surface output; defaults to os.Stdout
}

// NewSurface builds the surface selected by opts.Mode. In auto mode the TUI is
// used when stdin is a terminal.
func NewSurface(opts Options, b *bus.Bus) (Surface, error) {
	if opts.CommandMarker == "" {
		opts.CommandMarker = DefaultCommandMarker
	}
	stdinTTY := term.IsTerminal(int(os.Stdin.Fd()))

	switch strings.ToLower(strings.TrimSpace(opts.Mode)) {
	case "", ModeAuto:
		if stdinTTY && opts.In == nil {
			return newTUISurface(opts, b), nil
		}
		return NewPlain(withPipedEcho(opts, stdinTTY), b), nil
	case ModeTUI:
		if !stdinTTY {
			logger.Warn("tui mode requested without a terminal on stdin")
		}
		return newTUISurface(opts, b), nil
	case ModePlain:
		return NewPlain(withPipedEcho(opts, stdinTTY), b), nil
	default:
		return nil, fmt.Errorf("unknown terminal mode %q (want auto, tui or plain)", opts.Mode)
	}
}

// withPipedEcho turns echo on when the operator's lines come from a pipe and
// would otherwise never reach the screen.
func withPipedEcho(opts Options, stdinTTY bool) Options {
	if opts.In == nil && !stdinTTY {
		opts.Echo = true
	}
	return opts
}
