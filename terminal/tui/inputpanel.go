package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	inputPlaceholder = "type a line, or /relocate <place>, /quit"
	maxHistory       = 100
)

// InputPanel is the operator's prompt. Up and Down walk back through lines
// submitted earlier in the session.
type InputPanel struct {
	input textinput.Model

	history []string
	cursor  int    // len(history) when not browsing
	draft   string // what was typed before browsing started
}

// NewInputPanel creates a focused prompt.
func NewInputPanel(prompt string) *InputPanel {
	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = inputPlaceholder
	ti.Focus()
	return &InputPanel{input: ti}
}

func (p *InputPanel) Update(msg tea.Msg) (Panel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.Type {
		case tea.KeyEnter:
			return p, p.submit()
		case tea.KeyUp:
			p.browse(-1)
			return p, nil
		case tea.KeyDown:
			p.browse(1)
			return p, nil
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return p, cmd
}

func (p *InputPanel) submit() tea.Cmd {
	text := p.input.Value()
	if text == "" {
		return nil
	}
	if n := len(p.history); n == 0 || p.history[n-1] != text {
		p.history = append(p.history, text)
		if len(p.history) > maxHistory {
			p.history = p.history[len(p.history)-maxHistory:]
		}
	}
	p.cursor = len(p.history)
	p.draft = ""
	p.input.Reset()
	return func() tea.Msg { return InputSubmitMsg{Text: text} }
}

// browse moves the history cursor by step and shows the selected line.
func (p *InputPanel) browse(step int) {
	next := p.cursor + step
	if next < 0 || next > len(p.history) {
		return
	}
	if p.cursor == len(p.history) {
		p.draft = p.input.Value()
	}
	p.cursor = next
	if next == len(p.history) {
		p.input.SetValue(p.draft)
	} else {
		p.input.SetValue(p.history[next])
	}
	p.input.CursorEnd()
}

func (p *InputPanel) View() string {
	return p.input.View()
}

func (p *InputPanel) SetSize(width, _ int) {
	p.input.Width = max(width-lipgloss.Width(p.input.Prompt)-1, 1)
}
