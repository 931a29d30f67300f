// Package tui provides the full-screen terminal surface.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Panel is a composable TUI region with its own state, update logic, and view.
// The root App model orchestrates panels without knowing their internals.
type Panel interface {
	Update(tea.Msg) (Panel, tea.Cmd)
	View() string
	SetSize(width, height int)
}

// LogLineMsg carries a single diagnostics line from the logger writer.
type LogLineMsg struct{ Line string }

// LineMsg carries one display line for the transcript.
type LineMsg struct {
	Text  string
	Pos   lipgloss.Position
	Color string
}

// InputSubmitMsg is emitted when the user presses Enter in the input panel.
type InputSubmitMsg struct{ Text string }
