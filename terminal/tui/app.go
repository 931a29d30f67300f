package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/linanwx/hal9000/logger"
)

const (
	defaultPrompt    = "> "
	defaultEchoColor = "6" // cyan
	inputBufferSize  = 16

	busyNotice = "HAL is busy, not sent: "
	busyColor  = "9"
)

var separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

// Options configures the root model.
type Options struct {
	Prompt    string
	EchoColor string
	LogRatio  float64 // 0 hides the diagnostics panel
}

// App is the root bubbletea model that orchestrates panels and layout.
type App struct {
	logPanel        Panel
	transcriptPanel Panel
	inputPanel      Panel

	width, height int
	logRatio      float64
	echoColor     string

	// InputCh receives every line the operator submits, unmodified.
	InputCh chan string
}

// NewApp creates the root TUI model.
func NewApp(opts Options) *App {
	prompt := opts.Prompt
	if prompt == "" {
		prompt = defaultPrompt
	}
	echo := opts.EchoColor
	if echo == "" {
		echo = defaultEchoColor
	}
	ratio := opts.LogRatio
	if ratio < 0 || ratio >= 1 {
		ratio = 0
	}
	return &App{
		logPanel:        NewLogPanel(),
		transcriptPanel: NewTranscriptPanel(),
		inputPanel:      NewInputPanel(prompt),
		logRatio:        ratio,
		echoColor:       echo,
		InputCh:         make(chan string, inputBufferSize),
	}
}

// Append adds a transcript line outside the bubbletea loop. Only call it
// before the program starts.
func (m *App) Append(line LineMsg) {
	m.transcriptPanel, _ = m.transcriptPanel.Update(line)
}

func (m *App) Init() tea.Cmd {
	return nil
}

func (m *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.recalcLayout()
		return m, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyCtrlD:
			return m, tea.Quit
		case tea.KeyPgUp, tea.KeyPgDown:
			p, cmd := m.transcriptPanel.Update(msg)
			m.transcriptPanel = p
			return m, cmd
		}
		p, cmd := m.inputPanel.Update(msg)
		m.inputPanel = p
		cmds = append(cmds, cmd)

	case InputSubmitMsg:
		line := LineMsg{Text: msg.Text, Pos: lipgloss.Left, Color: m.echoColor}
		// Never block the UI loop on a slow consumer.
		select {
		case m.InputCh <- msg.Text:
		default:
			logger.Warn("operator line dropped, input queue full", "pending", len(m.InputCh))
			line = LineMsg{Text: busyNotice + msg.Text, Pos: lipgloss.Left, Color: busyColor}
		}
		p, cmd := m.transcriptPanel.Update(line)
		m.transcriptPanel = p
		cmds = append(cmds, cmd)

	case LineMsg:
		p, cmd := m.transcriptPanel.Update(msg)
		m.transcriptPanel = p
		cmds = append(cmds, cmd)

	case LogLineMsg:
		p, cmd := m.logPanel.Update(msg)
		m.logPanel = p
		cmds = append(cmds, cmd)

	default:
		// Cursor blink and friends.
		p, cmd := m.inputPanel.Update(msg)
		m.inputPanel = p
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *App) View() string {
	if m.width == 0 || m.height == 0 {
		return "initializing..."
	}

	sep := separatorStyle.Render(strings.Repeat("─", m.width))

	if m.logRatio == 0 {
		return lipgloss.JoinVertical(lipgloss.Left,
			m.transcriptPanel.View(),
			sep,
			m.inputPanel.View(),
		)
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.logPanel.View(),
		sep,
		m.transcriptPanel.View(),
		sep,
		m.inputPanel.View(),
	)
}

func (m *App) recalcLayout() {
	const inputH = 1

	sepLines := 1
	if m.logRatio > 0 {
		sepLines = 2
	}
	usable := max(m.height-inputH-sepLines, 2)

	logH := 0
	if m.logRatio > 0 {
		logH = max(int(float64(usable)*m.logRatio), 1)
	}
	transcriptH := max(usable-logH, 1)

	m.logPanel.SetSize(m.width, logH)
	m.transcriptPanel.SetSize(m.width, transcriptH)
	m.inputPanel.SetSize(m.width, inputH)
}
