package tui

import "github.com/charmbracelet/lipgloss"

// Palette (256-color).
const (
	colorAccent = lipgloss.Color("205") // Selection and focus
	colorFrame  = lipgloss.Color("240") // Unfocused borders
	colorDim    = lipgloss.Color("241")
	colorText   = lipgloss.Color("252")
	colorError  = lipgloss.Color("196")
	colorInfo   = lipgloss.Color("42")
	colorTitle  = lipgloss.Color("62")
	colorPrompt = lipgloss.Color("99")
)

// Shared styles for dialogs and pickers.
var (
	// TitleStyle is used for screen titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorTitle).
			MarginBottom(1)

	// ErrorStyle is used for fatal error screens.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(colorError).
			Bold(true)

	// PromptStyle is used for the question in a prompt or confirmation.
	PromptStyle = lipgloss.NewStyle().
			Foreground(colorPrompt).
			MarginBottom(1)

	// HelpStyle is used for key hints under a dialog.
	HelpStyle = lipgloss.NewStyle().
			Foreground(colorDim).
			MarginTop(1)

	// DialogStyle frames prompts and confirmations.
	DialogStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorAccent).
			Padding(1, 2)

	// HelpOverlayStyle frames the full key reference.
	HelpOverlayStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(colorTitle).
				Padding(1, 2).
				MarginTop(1)
)

// Board, detail and jump styles. Width and height are set at render time.
var (
	titleStyle        = lipgloss.NewStyle().Bold(true)
	dimStyle          = lipgloss.NewStyle().Foreground(colorDim)
	errorStyle        = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	infoStyle         = lipgloss.NewStyle().Foreground(colorInfo)
	columnHeaderStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	cardStyle         = lipgloss.NewStyle().Foreground(colorText)
	selectedCardStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	moveModeStyle = lipgloss.NewStyle().
			Background(colorAccent).
			Foreground(lipgloss.Color("0")).
			Padding(0, 1)

	detailTitleStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	detailLabelStyle = lipgloss.NewStyle().Foreground(colorDim)
	detailValueStyle = lipgloss.NewStyle().Foreground(colorText)

	panelBorderStyle        = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorFrame)
	focusedPanelBorderStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorAccent)

	crumbSelectedStyle = lipgloss.NewStyle().Foreground(colorAccent).Bold(true)
	crumbStyle         = lipgloss.NewStyle().Foreground(colorText)
)

// columnBorderColor returns the border color of a column on the board.
func columnBorderColor(selected bool) lipgloss.Color {
	if selected {
		return colorAccent
	}
	return colorFrame
}
