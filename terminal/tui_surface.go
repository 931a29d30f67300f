package terminal

import (
	"bytes"
	"context"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/linanwx/hal9000/bus"
	"github.com/linanwx/hal9000/logger"
	"github.com/linanwx/hal9000/terminal/tui"
)

const (
	tuiSource = "terminal:tui"

	logLineBuffer = 256
)

// tuiSurface implements Surface using a bubbletea program.
type tuiSurface struct {
	app     *tui.App
	program *tea.Program
	bus     *bus.Bus
	marker  string

	mu       sync.Mutex // guards running/finished and pre-start appends
	running  bool
	finished bool

	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

func newTUISurface(opts Options, b *bus.Bus) *tuiSurface {
	app := tui.NewApp(tui.Options{
		Prompt:    opts.Prompt,
		EchoColor: opts.EchoColor,
		LogRatio:  opts.LogRatio,
	})
	return &tuiSurface{
		app:     app,
		program: tea.NewProgram(app, tea.WithAltScreen(), tea.WithMouseCellMotion()),
		bus:     b,
		marker:  opts.CommandMarker,
		done:    make(chan struct{}),
	}
}

// Log queues a transcript line. Lines logged before Run starts are added to
// the model directly since the program cannot receive messages yet. Lines
// logged after the program has exited are dropped.
func (s *tuiSurface) Log(text string, align Align, color string) {
	msg := tui.LineMsg{Text: text, Pos: align.Position(), Color: color}

	s.mu.Lock()
	if !s.running {
		if !s.finished {
			s.app.Append(msg)
		}
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.program.Send(msg)
}

func (s *tuiSurface) Run(ctx context.Context) error {
	select {
	case <-s.done:
		return nil
	default:
	}

	s.mu.Lock()
	s.running = true
	s.mu.Unlock()

	logs := newLogWriter(logLineBuffer)
	restore := logger.Intercept(logs)
	logger.Info("terminal started (TUI mode)")

	s.wg.Add(2)
	go func() {
		defer s.wg.Done()
		logs.pump(s.done, func(line string) {
			s.program.Send(tui.LogLineMsg{Line: line})
		})
	}()

	// Forward submitted lines to the bus.
	go func() {
		defer s.wg.Done()
		for {
			select {
			case <-ctx.Done():
				s.program.Quit()
				return
			case <-s.done:
				s.program.Quit()
				return
			case raw := <-s.app.InputCh:
				submit(ctx, s.bus, tuiSource, raw, s.marker)
			}
		}
	}()

	_, err := s.program.Run()
	restore()

	s.mu.Lock()
	s.running = false
	s.finished = true
	s.mu.Unlock()

	s.Close()
	s.wg.Wait()
	logger.Info("terminal stopped")
	return err
}

func (s *tuiSurface) Close() {
	s.stopOnce.Do(func() {
		close(s.done)
	})
}

// logWriter turns log output into diagnostics panel lines. Write never blocks,
// so code running inside the bubbletea loop can log; lines that do not fit
// the buffer are dropped.
type logWriter struct {
	lines chan string
}

func newLogWriter(size int) *logWriter {
	return &logWriter{lines: make(chan string, size)}
}

func (w *logWriter) Write(p []byte) (int, error) {
	// A single write may carry several records.
	for _, line := range bytes.Split(p, []byte("\n")) {
		if len(line) == 0 {
			continue
		}
		select {
		case w.lines <- string(line):
		default:
		}
	}
	return len(p), nil
}

// pump hands buffered lines to send, in order, until done is closed.
func (w *logWriter) pump(done <-chan struct{}, send func(line string)) {
	for {
		select {
		case <-done:
			return
		case line := <-w.lines:
			send(line)
		}
	}
}
