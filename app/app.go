// Package app wires the terminal, the event loop, the timer and HAL together.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/linanwx/hal9000/agent"
	"github.com/linanwx/hal9000/bus"
	"github.com/linanwx/hal9000/config"
	"github.com/linanwx/hal9000/logger"
	"github.com/linanwx/hal9000/terminal"
	"github.com/linanwx/hal9000/timer"
)

const (
	eventBufferSize = 128
	appSource       = "app"
	timerSource     = "timer"
)

// Application owns the surface and the agent for the lifetime of the process.
type Application struct {
	bus     *bus.Bus
	surface terminal.Surface
	agent   *agent.Agent
	timer   *timer.Timer
	ticks   uint64 // only touched on the bus goroutine
}

// New builds the application from cfg. Fields set in term override the
// terminal section of cfg; callers use it to swap stdin/stdout or force a mode.
func New(cfg *config.Config, term terminal.Options) (*Application, error) {
	styles, err := agentStyles(cfg.Styles)
	if err != nil {
		return nil, err
	}
	interval, err := cfg.TickInterval()
	if err != nil {
		return nil, err
	}

	b := bus.New(eventBufferSize)
	surface, err := terminal.NewSurface(surfaceOptions(cfg, term), b)
	if err != nil {
		return nil, err
	}

	a := &Application{bus: b, surface: surface}

	// Hints shown before anyone speaks.
	surface.Log("Operator started the chat.", terminal.AlignLeft, cfg.Styles.HintColor)
	surface.Log(cfg.Agent.Name+" joined.", terminal.AlignRight, cfg.Styles.HintColor)

	a.agent = agent.New(surface, b.Stop, agent.Config{
		Location: cfg.Agent.Location,
		Styles:   styles,
	})

	terminal.Connect(b, a.agent)
	b.Subscribe(bus.EventTimerTick, func(_ context.Context, e *bus.Event) {
		a.ticks++
		a.agent.Update(agent.Tick{Seq: a.ticks, At: e.Timestamp})
	})
	b.Subscribe(bus.EventSurfaceClosed, func(context.Context, *bus.Event) {
		logger.Info("terminal closed by operator")
		b.Stop()
	})

	a.timer, err = timer.New(interval, func(uint64) {
		b.Publish(bus.NewEvent(bus.EventTimerTick, timerSource, ""))
	})
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Agent returns the running agent.
func (a *Application) Agent() *agent.Agent { return a.agent }

// Run starts the timer and the event loop and blocks until the operator
// quits, closes the terminal, or ctx is cancelled.
func (a *Application) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if err := a.timer.Start(); err != nil {
		return err
	}
	defer a.timer.Stop()

	surfaceErr := make(chan error, 1)
	go func() {
		err := a.surface.Run(ctx)
		// Queued behind every submitted line, so those are answered first.
		if !a.bus.Send(ctx, bus.NewEvent(bus.EventSurfaceClosed, appSource, "")) {
			a.bus.Stop()
		}
		surfaceErr <- err
	}()

	logger.Info("hal9000 started", "location", a.agent.Location(), "interval", a.timer.Interval())
	loopErr := a.bus.Run(ctx)

	// Restore the terminal before returning.
	a.surface.Close()
	err := errors.Join(loopErr, <-surfaceErr)

	logger.Info("hal9000 stopped")
	return err
}

func surfaceOptions(cfg *config.Config, term terminal.Options) terminal.Options {
	if term.Mode == "" {
		term.Mode = cfg.Terminal.Mode
	}
	if term.Prompt == "" {
		term.Prompt = cfg.Terminal.Prompt
	}
	if term.CommandMarker == "" {
		term.CommandMarker = cfg.Terminal.CommandMarker
	}
	if term.EchoColor == "" {
		term.EchoColor = cfg.Styles.EchoColor
	}
	if term.LogRatio == 0 {
		term.LogRatio = cfg.Terminal.LogRatio
	}
	if term.Width == 0 {
		term.Width = cfg.Terminal.Width
	}
	return term
}

func agentStyles(s config.StylesConfig) (agent.Styles, error) {
	hal, err := lineStyle("hal", s.HAL)
	if err != nil {
		return agent.Styles{}, err
	}
	info, err := lineStyle("info", s.Info)
	if err != nil {
		return agent.Styles{}, err
	}
	errStyle, err := lineStyle("error", s.Error)
	if err != nil {
		return agent.Styles{}, err
	}
	return agent.Styles{HAL: hal, Info: info, Error: errStyle}, nil
}

func lineStyle(name string, ls config.LineStyle) (agent.Style, error) {
	align, err := terminal.ParseAlign(ls.Align)
	if err != nil {
		return agent.Style{}, fmt.Errorf("styles.%s: %w", name, err)
	}
	return agent.Style{Align: align, Color: ls.Color}, nil
}
