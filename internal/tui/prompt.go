package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const promptCharLimit = 200

// PromptModel collects a single line of text, such as a card title.
type PromptModel struct {
	kind     PromptKind
	targetID string
	label    string
	input    textinput.Model
	width    int
	height   int
}

// NewPromptModel creates a focused prompt.
func NewPromptModel(kind PromptKind, targetID, label string) PromptModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = promptCharLimit
	switch kind {
	case PromptAddCard:
		ti.Placeholder = "Card title..."
	case PromptAddColumn:
		ti.Placeholder = "Column name..."
	case PromptImport:
		ti.Placeholder = "path/to/export.json"
	}
	ti.Focus()

	return PromptModel{
		kind:     kind,
		targetID: targetID,
		label:    label,
		input:    ti,
	}
}

// Init initializes the model.
func (m PromptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages and updates the model state.
func (m PromptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return PromptCancelledMsg{} }
		case "enter":
			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				// Empty titles are ignored; keep the prompt open
				return m, nil
			}
			submitted := PromptSubmittedMsg{Kind: m.kind, TargetID: m.targetID, Value: value}
			return m, func() tea.Msg { return submitted }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the model.
func (m PromptModel) View() string {
	body := lipgloss.JoinVertical(lipgloss.Left,
		PromptStyle.Render(m.label),
		m.input.View(),
		HelpStyle.Render("enter: save • esc: cancel"),
	)
	dialog := DialogStyle.Render(body)
	if m.width == 0 || m.height == 0 {
		return dialog
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, dialog)
}
