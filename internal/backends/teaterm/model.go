package teaterm

import (
	tea "github.com/charmbracelet/bubbletea"
)

// frameMsg carries a fully rendered frame into the Bubble Tea program.
type frameMsg string

// model is the Bubble Tea side of the display. It only shows the last frame
// it was sent and forwards input to the runtime loop.
type model struct {
	events chan<- tea.Msg
	frame  string
}

func (m *model) Init() tea.Cmd {
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frame = string(msg)
	case tea.KeyMsg, tea.MouseMsg, tea.WindowSizeMsg:
		select {
		case m.events <- msg:
		default:
			// The loop is behind; input for a frame it will never see is dropped.
		}
	}
	return m, nil
}

func (m *model) View() string {
	return m.frame
}
