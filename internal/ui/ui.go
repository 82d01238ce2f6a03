// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/solargeo/internal/state"
)

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// SnapshotMsg signals a new computed snapshot is available.
	SnapshotMsg struct {
		Snapshot state.Snapshot
	}

	// ErrorMsg signals a compute error.
	ErrorMsg struct {
		Error error
	}
)

// Model is the root Bubble Tea model.
type Model struct {
	tracker *state.Tracker

	width  int
	height int
	ready  bool

	showAveraged bool // toggle between live history and averaged-bin sparkline

	snapshot state.Snapshot
	lastErr  error
}

// New creates a new root UI model.
func New(tracker *state.Tracker) Model {
	return Model{
		tracker:      tracker,
		showAveraged: true,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tickCmd()
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "a":
			m.showAveraged = !m.showAveraged
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case TickMsg:
		// Re-render on the clock; the compute loop pushes data separately.
		return m, tickCmd()

	case SnapshotMsg:
		m.snapshot = msg.Snapshot
		m.lastErr = msg.Snapshot.LastError

	case ErrorMsg:
		m.lastErr = msg.Error
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	return m.renderDashboard()
}

// tickCmd schedules the next UI clock tick.
func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
