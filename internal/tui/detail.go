package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/robby/nest/internal/domain"
	"github.com/robby/nest/internal/store"
)

// Layout constants
const (
	leftPanelRatio = 0.35 // Left panel takes 35% of width
	minLeftWidth   = 30
	maxLeftWidth   = 50
	headerHeight   = 1
	footerHeight   = 1
	borderSize     = 2 // Top + bottom border
)

// subColumn is one column of a card's sub-board, captured for the preview.
type subColumn struct {
	title  string
	titles []string
}

// DetailModel shows one card and a preview of its sub-board.
type DetailModel struct {
	card       domain.Card
	column     string // Title of the card's column
	board      string // Title of the board the card lives on
	subBoard   *domain.Board
	subColumns []subColumn

	viewport viewport.Model

	width  int
	height int
}

// NewDetailModel captures the card and its sub-board from s.
func NewDetailModel(s *store.Store, card domain.Card) DetailModel {
	m := DetailModel{
		card:     card,
		viewport: viewport.New(40, 10), // Resized in WindowSizeMsg
	}
	if col := s.GetColumn(card.ColumnID); col != nil {
		m.column = col.Title
	}
	if board := s.GetBoard(card.BoardID); board != nil {
		m.board = board.Title
	}

	m.subBoard = s.GetBoard(domain.SubBoardID(card.ID))
	if m.subBoard != nil {
		for _, colID := range m.subBoard.ColumnIDs {
			col := s.GetColumn(colID)
			if col == nil {
				continue
			}
			sc := subColumn{title: col.Title}
			for _, c := range s.GetColumnCards(colID) {
				sc.titles = append(sc.titles, c.Title)
			}
			m.subColumns = append(m.subColumns, sc)
		}
	}
	m.updateViewportContent()
	return m
}

// Init initializes the detail model
func (m DetailModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages
func (m DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeComponents()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

// resizeComponents calculates and sets component dimensions
func (m *DetailModel) resizeComponents() {
	leftWidth := m.leftWidth(m.width)
	rightWidth := m.width - leftWidth - 3 // 3 = gap between panels
	if rightWidth < 30 {
		rightWidth = 30
	}

	contentHeight := m.height - headerHeight - footerHeight - borderSize
	if contentHeight < 10 {
		contentHeight = 10
	}

	m.viewport.Width = rightWidth - borderSize - 2 // -2 for padding
	m.viewport.Height = contentHeight - borderSize
	m.updateViewportContent()
}

func (m DetailModel) leftWidth(width int) int {
	w := int(float64(width) * leftPanelRatio)
	return max(minLeftWidth, min(w, maxLeftWidth))
}

// handleKeyPress processes keyboard input
func (m DetailModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		return m, func() tea.Msg { return closeDetailMsg{} }
	case "enter":
		cardID := m.card.ID
		return m, func() tea.Msg { return openCardBoardMsg{cardID: cardID} }
	case "j", "down":
		m.viewport.LineDown(1)
	case "k", "up":
		m.viewport.LineUp(1)
	case "ctrl+d":
		m.viewport.HalfViewDown()
	case "ctrl+u":
		m.viewport.HalfViewUp()
	case "g":
		m.viewport.GotoTop()
	case "G":
		m.viewport.GotoBottom()
	}
	return m, nil
}

// View renders the split-screen detail view
func (m DetailModel) View() string {
	width := m.width
	height := m.height
	if width == 0 {
		width = 100
	}
	if height == 0 {
		height = 30
	}

	leftWidth := m.leftWidth(width)
	rightWidth := width - leftWidth - 1 // 1 char gap

	contentHeight := height - headerHeight - footerHeight
	if contentHeight < 10 {
		contentHeight = 10
	}

	header := dimStyle.Render("[q]back [enter]open board [j/k]scroll [g/G]top/bottom")

	leftPanel := panelBorderStyle.
		Width(leftWidth - borderSize).
		Height(contentHeight - borderSize).
		Render(m.renderLeftPanel(leftWidth - borderSize))

	rightPanel := focusedPanelBorderStyle.
		Width(rightWidth - borderSize).
		Height(contentHeight - borderSize).
		Render(m.viewport.View())

	panels := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, " ", rightPanel)

	return lipgloss.JoinVertical(lipgloss.Left, header, panels, m.renderFooter(width))
}

// renderFooter renders the bottom status bar
func (m DetailModel) renderFooter(width int) string {
	left := "no sub-board yet"
	if m.subBoard != nil {
		total := 0
		for _, col := range m.subColumns {
			total += len(col.titles)
		}
		left = fmt.Sprintf("%d columns, %d cards inside", len(m.subColumns), total)
	}

	right := ""
	if m.viewport.TotalLineCount() > m.viewport.Height {
		switch {
		case m.viewport.AtTop():
			right = "TOP"
		case m.viewport.AtBottom():
			right = "END"
		default:
			right = fmt.Sprintf("%d%%", int(m.viewport.ScrollPercent()*100))
		}
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}
	return dimStyle.Render(left) + strings.Repeat(" ", padding) + dimStyle.Render(right)
}

// renderLeftPanel renders the card metadata panel
func (m DetailModel) renderLeftPanel(width int) string {
	var b strings.Builder

	b.WriteString(detailTitleStyle.Render(wordwrap.String(m.card.Title, width-2)))
	b.WriteString("\n\n")

	field := func(label, value string) {
		b.WriteString(detailLabelStyle.Render(label))
		b.WriteString("\n")
		b.WriteString(detailValueStyle.Render(truncate.StringWithTail(value, uint(max(width-2, 1)), "…")))
		b.WriteString("\n\n")
	}
	field("Board", m.board)
	field("Column", m.column)
	field("ID", m.card.ID)

	return b.String()
}

// updateViewportContent renders the sub-board preview into the viewport.
func (m *DetailModel) updateViewportContent() {
	width := max(m.viewport.Width, 10)

	if m.subBoard == nil {
		m.viewport.SetContent(dimStyle.Render(wordwrap.String("This card has no board yet. Press enter to create it.", width)))
		return
	}

	var b strings.Builder
	for i, col := range m.subColumns {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(columnHeaderStyle.Render(fmt.Sprintf("%s (%d)", col.title, len(col.titles))))
		b.WriteString("\n")
		if len(col.titles) == 0 {
			b.WriteString(dimStyle.Render("  (empty)"))
			b.WriteString("\n")
		}
		for _, title := range col.titles {
			b.WriteString(cardStyle.Render("  • " + truncate.StringWithTail(title, uint(max(width-4, 1)), "…")))
			b.WriteString("\n")
		}
	}
	m.viewport.SetContent(b.String())
}
