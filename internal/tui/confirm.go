package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

const confirmWidth = 50

// ConfirmModel asks a yes/no question before a destructive action.
type ConfirmModel struct {
	action   ConfirmAction
	targetID string
	message  string
	width    int
	height   int
}

// NewConfirmModel creates a confirmation for action on targetID.
func NewConfirmModel(action ConfirmAction, targetID, message string) ConfirmModel {
	return ConfirmModel{action: action, targetID: targetID, message: message}
}

// Init initializes the model.
func (m ConfirmModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m ConfirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "y", "Y":
			return m, m.answer(true)
		case "n", "N", "esc", "q":
			return m, m.answer(false)
		}
	}
	return m, nil
}

func (m ConfirmModel) answer(yes bool) tea.Cmd {
	result := ConfirmedMsg{Action: m.action, TargetID: m.targetID, Yes: yes}
	return func() tea.Msg { return result }
}

// View renders the model.
func (m ConfirmModel) View() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		PromptStyle.Render(wordwrap.String(m.message, confirmWidth)),
		HelpStyle.Render("y: yes • n: no"),
	)
	dialog := DialogStyle.Render(body)
	if m.width == 0 || m.height == 0 {
		return dialog
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}
