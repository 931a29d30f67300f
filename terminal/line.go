package terminal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ErrInvalidAlign is returned by ParseAlign for unknown alignment names.
var ErrInvalidAlign = errors.New("invalid alignment")

// Align is the horizontal placement of a display line.
type Align string

const (
	AlignLeft   Align = "left"
	AlignCenter Align = "center"
	AlignRight  Align = "right"
)

// ParseAlign parses left, center or right, ignoring case and surrounding space.
func ParseAlign(s string) (Align, error) {
	switch a := Align(strings.ToLower(strings.TrimSpace(s))); a {
	case AlignLeft, AlignCenter, AlignRight:
		return a, nil
	}
	return "", fmt.Errorf("%w: %q (want left, center or right)", ErrInvalidAlign, s)
}

// Position maps the alignment onto lipgloss. Unknown values fall back to left.
func (a Align) Position() lipgloss.Position {
	switch a {
	case AlignCenter:
		return lipgloss.Center
	case AlignRight:
		return lipgloss.Right
	default:
		return lipgloss.Left
	}
}

// Line is one formatted display line. It is not retained by whoever emits it.
type Line struct {
	Text  string
	Align Align
	Color string // hex ("#00805A") or ANSI index ("8"); empty keeps the default
}

// Render lays out a line across width columns using r. A width of zero or less
// skips padding.
func Render(r *lipgloss.Renderer, line Line, width int) string {
	style := r.NewStyle().Align(line.Align.Position())
	if width > 0 {
		style = style.Width(width)
	}
	if line.Color != "" {
		style = style.Foreground(lipgloss.Color(line.Color))
	}
	return style.Render(line.Text)
}
