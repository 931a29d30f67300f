package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/linanwx/hal9000/bus"
	"github.com/linanwx/hal9000/logger"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

const plainSource = "terminal:plain"

// Plain is a line-oriented surface: one operator line in, rendered lines out.
// It is used when stdin is not a terminal.
type Plain struct {
	bus      *bus.Bus
	in       io.Reader
	out      io.Writer
	renderer *lipgloss.Renderer
	width    int
	marker   string
	echo     bool
	echoCol  string

	mu        sync.Mutex // guards out
	done      chan struct{}
	closeOnce sync.Once
}

// NewPlain creates a plain surface publishing to b.
func NewPlain(opts Options, b *bus.Bus) *Plain {
	in := opts.In
	if in == nil {
		in = os.Stdin
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	marker := opts.CommandMarker
	if marker == "" {
		marker = DefaultCommandMarker
	}

	renderer := lipgloss.NewRenderer(out)
	if _, isFile := out.(*os.File); !isFile {
		// Buffers and pipes from callers get uncoloured, aligned text.
		renderer = lipgloss.NewRenderer(out, termenv.WithProfile(termenv.Ascii))
	}

	return &Plain{
		bus:      b,
		in:       in,
		out:      out,
		renderer: renderer,
		width:    detectWidth(opts.Width, out),
		marker:   marker,
		echo:     opts.Echo,
		echoCol:  opts.EchoColor,
		done:     make(chan struct{}),
	}
}

// Log writes one rendered line.
func (p *Plain) Log(text string, align Align, color string) {
	p.write(Line{Text: text, Align: align, Color: color})
}

func (p *Plain) write(line Line) {
	rendered := Render(p.renderer, line, p.width)

	p.mu.Lock()
	defer p.mu.Unlock()
	if _, err := fmt.Fprintln(p.out, rendered); err != nil {
		logger.Warn("plain terminal write failed", "err", err)
	}
}

// Run reads operator lines until EOF, ctx is done or Close is called.
func (p *Plain) Run(ctx context.Context) error {
	logger.Info("terminal started (plain mode)", "width", p.width)
	defer p.Close()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go p.readInput(lines, readErr)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-p.done:
			return nil
		case err := <-readErr:
			logger.Info("terminal input closed")
			return err
		case raw := <-lines:
			if p.echo {
				if _, _, ok := Classify(raw, p.marker); ok {
					p.write(Line{Text: raw, Align: AlignLeft, Color: p.echoCol})
				}
			}
			submit(ctx, p.bus, plainSource, raw, p.marker)
		}
	}
}

// readInput forwards scanned lines. It reports nil on EOF.
func (p *Plain) readInput(lines chan<- string, readErr chan<- error) {
	scanner := bufio.NewScanner(p.in)
	for scanner.Scan() {
		select {
		case lines <- scanner.Text():
		case <-p.done:
			return
		}
	}
	readErr <- scanner.Err()
}

// Close ends Run.
func (p *Plain) Close() {
	p.closeOnce.Do(func() {
		close(p.done)
	})
}

func detectWidth(configured int, out io.Writer) int {
	if configured > 0 {
		return configured
	}
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return defaultWidth
}
