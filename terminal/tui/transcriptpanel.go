package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const defaultMaxTranscriptLines = 2000

// TranscriptPanel shows the conversation. Lines keep their alignment and are
// laid out again whenever the width changes.
type TranscriptPanel struct {
	viewport viewport.Model
	lines    []LineMsg
	maxLines int
	width    int
}

// NewTranscriptPanel creates a transcript panel.
func NewTranscriptPanel() *TranscriptPanel {
	vp := viewport.New(0, 0)
	vp.SetContent("")
	return &TranscriptPanel{
		viewport: vp,
		maxLines: defaultMaxTranscriptLines,
	}
}

func (p *TranscriptPanel) Update(msg tea.Msg) (Panel, tea.Cmd) {
	switch msg := msg.(type) {
	case LineMsg:
		p.append(msg)
		return p, nil
	}
	var cmd tea.Cmd
	p.viewport, cmd = p.viewport.Update(msg)
	return p, cmd
}

func (p *TranscriptPanel) append(line LineMsg) {
	p.lines = append(p.lines, line)
	if len(p.lines) > p.maxLines {
		p.lines = p.lines[len(p.lines)-p.maxLines:]
	}
	p.refresh()
}

func (p *TranscriptPanel) refresh() {
	rendered := make([]string, 0, len(p.lines))
	for _, line := range p.lines {
		rendered = append(rendered, renderLine(line, p.width))
	}
	p.viewport.SetContent(strings.Join(rendered, "\n"))
	p.viewport.GotoBottom()
}

func (p *TranscriptPanel) View() string {
	return p.viewport.View()
}

func (p *TranscriptPanel) SetSize(width, height int) {
	p.viewport.Width = width
	p.viewport.Height = height
	if width != p.width {
		p.width = width
		p.refresh()
	}
}

func renderLine(line LineMsg, width int) string {
	style := lipgloss.NewStyle().Align(line.Pos)
	if width > 0 {
		style = style.Width(width)
	}
	if line.Color != "" {
		style = style.Foreground(lipgloss.Color(line.Color))
	}
	return style.Render(line.Text)
}
