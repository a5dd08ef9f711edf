package tui

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/robby/nest/internal/domain"
	"github.com/robby/nest/internal/snapshot"
	"github.com/robby/nest/internal/store"
)

// Layout constants
const (
	minColumnWidth = 20
	maxColumnWidth = 35
	headerLines    = 2  // Title line + hints line
	pageJumpSize   = 10 // Number of items to jump with Ctrl+D/U
)

// BoardModel represents the kanban view of the current board.
type BoardModel struct {
	// Dependencies
	store     *store.Store
	now       func() time.Time
	exportDir string

	// UI components
	keymap      KeyMap
	help        HelpModel
	filterInput textinput.Model

	// Board state, rebuilt from the store after every change
	boardID        string
	columns        []domain.Column
	filteredCards  map[string][]domain.Card // Column ID -> visible cards
	hasSubBoard    map[string]bool          // Card ID -> sub-board exists
	selectedColumn int
	columnOffset   int            // Horizontal scroll offset (first visible column index)
	selectedCard   map[string]int // Column ID -> selected card index
	scrollOffset   map[string]int // Column ID -> scroll offset

	// View state
	width      int
	height     int
	showHelp   bool
	filterMode bool
	filterText string
	moveMode   bool
	errorToast string
	infoToast  string
}

// BoardOption configures a BoardModel.
type BoardOption func(*BoardModel)

// WithExportDir sets the directory exports are written to.
func WithExportDir(dir string) BoardOption {
	return func(m *BoardModel) { m.exportDir = dir }
}

// WithBoardClock sets the clock used to name export files.
func WithBoardClock(now func() time.Time) BoardOption {
	return func(m *BoardModel) { m.now = now }
}

// NewBoardModel creates a new board model
func NewBoardModel(s *store.Store, opts ...BoardOption) BoardModel {
	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.Prompt = "/ "

	m := BoardModel{
		store:        s,
		now:          time.Now,
		exportDir:    ".",
		keymap:       DefaultKeyMap(),
		help:         NewHelpModel(DefaultKeyMap()),
		filterInput:  ti,
		selectedCard: make(map[string]int),
		scrollOffset: make(map[string]int),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.refresh()
	return m
}

// Init initializes the board
func (m BoardModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case PromptSubmittedMsg:
		(&m).handlePrompt(msg)
		return m, nil

	case ConfirmedMsg:
		if msg.Yes {
			(&m).handleConfirmed(msg)
		}
		return m, nil

	case openCardBoardMsg:
		(&m).report(m.store.OpenBoard(msg.cardID))
		(&m).refresh()
		return m, nil

	case BoardSelectedMsg:
		(&m).report(m.store.ReturnTo(msg.BoardID))
		(&m).refresh()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m BoardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Help overlay
	if m.showHelp {
		if msg.String() == "?" || msg.String() == "q" || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	// Filter mode
	if m.filterMode {
		switch msg.String() {
		case "enter":
			m.filterMode = false
			m.filterText = strings.TrimSpace(m.filterInput.Value())
			(&m).refresh()
			return m, nil
		case "esc":
			m.filterMode = false
			m.filterInput.SetValue(m.filterText)
			return m, nil
		default:
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			return m, cmd
		}
	}

	// Move mode
	if m.moveMode {
		return m.handleMoveMode(msg)
	}

	m.errorToast = ""
	m.infoToast = ""

	switch {
	case key.Matches(msg, m.keymap.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keymap.Help):
		m.showHelp = true
	case key.Matches(msg, m.keymap.Filter):
		m.filterMode = true
		m.filterInput.Focus()
	case key.Matches(msg, m.keymap.Left):
		if m.selectedColumn > 0 {
			m.selectedColumn--
			(&m).adjustColumnScroll()
		}
	case key.Matches(msg, m.keymap.Right):
		if m.selectedColumn < len(m.columns)-1 {
			m.selectedColumn++
			(&m).adjustColumnScroll()
		}
	case key.Matches(msg, m.keymap.Down):
		(&m).moveCardSelection(1)
	case key.Matches(msg, m.keymap.Up):
		(&m).moveCardSelection(-1)
	case key.Matches(msg, m.keymap.Top):
		(&m).jumpToCard(0)
	case key.Matches(msg, m.keymap.Bottom):
		(&m).jumpToCard(-1)
	case msg.String() == "ctrl+d":
		(&m).moveCardSelection(pageJumpSize)
	case msg.String() == "ctrl+u":
		(&m).moveCardSelection(-pageJumpSize)

	case key.Matches(msg, m.keymap.OpenBoard):
		if card := m.getSelectedCard(); card != nil {
			(&m).report(m.store.OpenBoard(card.ID))
			(&m).refresh()
		}
	case key.Matches(msg, m.keymap.Back):
		if m.filterText != "" {
			m.filterText = ""
			m.filterInput.SetValue("")
		} else {
			(&m).report(m.store.GoBack())
		}
		(&m).refresh()
	case key.Matches(msg, m.keymap.Jump):
		if m.store.CanGoBack() {
			return m, func() tea.Msg { return openJumpMsg{} }
		}
	case key.Matches(msg, m.keymap.Details):
		if card := m.getSelectedCard(); card != nil {
			return m, func() tea.Msg { return openDetailMsg{cardID: card.ID} }
		}

	case key.Matches(msg, m.keymap.DragLeft):
		(&m).dragAcross(-1)
	case key.Matches(msg, m.keymap.DragRight):
		(&m).dragAcross(1)
	case key.Matches(msg, m.keymap.DragUp):
		(&m).dragWithin(-1)
	case key.Matches(msg, m.keymap.DragDown):
		(&m).dragWithin(1)
	case key.Matches(msg, m.keymap.Move):
		if m.getSelectedCard() != nil {
			m.moveMode = true
		}

	case key.Matches(msg, m.keymap.AddCard):
		if col := m.getSelectedColumn(); col != nil {
			label := fmt.Sprintf("New card in %s", col.Title)
			return m, openPrompt(PromptAddCard, col.ID, label)
		}
	case key.Matches(msg, m.keymap.AddColumn):
		return m, openPrompt(PromptAddColumn, "", "New column")
	case key.Matches(msg, m.keymap.DeleteCard):
		if card := m.getSelectedCard(); card != nil {
			return m, openConfirm(ConfirmDeleteCard, card.ID, fmt.Sprintf("Delete card %q?", card.Title))
		}
	case key.Matches(msg, m.keymap.DeleteColumn):
		if col := m.getSelectedColumn(); col != nil {
			message := fmt.Sprintf("Delete column %q and all of its %d cards?", col.Title, len(col.CardIDs))
			return m, openConfirm(ConfirmDeleteColumn, col.ID, message)
		}
	case key.Matches(msg, m.keymap.Export):
		(&m).export()
	case key.Matches(msg, m.keymap.Import):
		return m, openPrompt(PromptImport, "", "Import from file (replaces everything)")
	case key.Matches(msg, m.keymap.Reset):
		return m, openConfirm(ConfirmReset, "", "Reset all data? This cannot be undone.")
	}

	return m, nil
}

// handleMoveMode handles key presses in move mode
func (m BoardModel) handleMoveMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.moveMode = false
		return m, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(msg.Runes[0] - '1')
		card := m.getSelectedCard()
		if card != nil && idx >= 0 && idx < len(m.columns) {
			target := m.columns[idx].ID
			(&m).report(m.store.Drop(card.ID, target))
			m.moveMode = false
			(&m).refresh()
			(&m).selectCard(card.ID)
		}
	}
	return m, nil
}

func openPrompt(kind PromptKind, targetID, label string) tea.Cmd {
	return func() tea.Msg {
		return openPromptMsg{kind: kind, targetID: targetID, label: label}
	}
}

func openConfirm(action ConfirmAction, targetID, message string) tea.Cmd {
	return func() tea.Msg {
		return openConfirmMsg{action: action, targetID: targetID, message: message}
	}
}

// handlePrompt applies a submitted prompt.
func (m *BoardModel) handlePrompt(msg PromptSubmittedMsg) {
	switch msg.Kind {
	case PromptAddCard:
		id, err := m.store.AddCard(msg.TargetID, msg.Value)
		m.report(err)
		m.refresh()
		if id != "" {
			m.selectCard(id)
		}
	case PromptAddColumn:
		id, err := m.store.AddColumn(msg.Value)
		m.report(err)
		m.refresh()
		for i, col := range m.columns {
			if col.ID == id {
				m.selectedColumn = i
				m.adjustColumnScroll()
			}
		}
	case PromptImport:
		data, err := os.ReadFile(msg.Value)
		if err != nil {
			m.errorToast = fmt.Sprintf("Import failed: %v", err)
			return
		}
		err = m.store.ImportData(string(data))
		if err != nil && !errors.Is(err, store.ErrUnsynced) {
			m.errorToast = "Import failed: " + firstLine(err)
			return
		}
		m.report(err)
		m.filterText = ""
		m.filterInput.SetValue("")
		m.refresh()
		if m.errorToast == "" {
			m.infoToast = "Imported " + filepath.Base(msg.Value)
		}
	}
}

// handleConfirmed applies a confirmed destructive action.
func (m *BoardModel) handleConfirmed(msg ConfirmedMsg) {
	switch msg.Action {
	case ConfirmDeleteCard:
		m.report(m.store.DeleteCard(msg.TargetID))
	case ConfirmDeleteColumn:
		m.report(m.store.DeleteColumn(msg.TargetID))
	case ConfirmReset:
		m.report(m.store.Reset())
		m.filterText = ""
		m.filterInput.SetValue("")
	}
	m.refresh()
}

// export writes the current state next to the working directory.
func (m *BoardModel) export() {
	data, err := m.store.ExportData()
	if err != nil {
		m.errorToast = fmt.Sprintf("Export failed: %v", err)
		return
	}
	path := filepath.Join(m.exportDir, snapshot.ExportFilename(m.now()))
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		m.errorToast = fmt.Sprintf("Export failed: %v", err)
		return
	}
	m.infoToast = "Exported to " + path
}

// report surfaces a store error in the status line. A failed save still
// leaves the change visible, so it is reported but not rolled back.
func (m *BoardModel) report(err error) {
	if err == nil {
		return
	}
	m.errorToast = firstLine(err)
}

func firstLine(err error) string {
	if err == nil {
		return ""
	}
	line, _, _ := strings.Cut(err.Error(), "\n")
	return line
}

// dragAcross moves the selected card into the neighbouring column, at the
// same row when that column has a card there.
func (m *BoardModel) dragAcross(delta int) {
	card := m.getSelectedCard()
	target := m.selectedColumn + delta
	if card == nil || target < 0 || target >= len(m.columns) {
		return
	}

	targetCol := m.columns[target]
	overID := targetCol.ID
	row := m.selectedCard[m.columns[m.selectedColumn].ID]
	if cards := m.filteredCards[targetCol.ID]; row < len(cards) {
		overID = cards[row].ID
	}

	m.report(m.store.DragOver(card.ID, overID))
	m.refresh()
	m.selectCard(card.ID)
}

// dragWithin swaps the selected card with its visible neighbour.
func (m *BoardModel) dragWithin(delta int) {
	if len(m.columns) == 0 {
		return
	}
	colID := m.columns[m.selectedColumn].ID
	cards := m.filteredCards[colID]
	idx := m.selectedCard[colID]
	neighbour := idx + delta
	if idx >= len(cards) || neighbour < 0 || neighbour >= len(cards) {
		return
	}

	cardID := cards[idx].ID
	m.report(m.store.Drop(cardID, cards[neighbour].ID))
	m.refresh()
	m.selectCard(cardID)
}

// View renders the board - fills entire terminal exactly
func (m BoardModel) View() string {
	// Use sensible defaults if dimensions not yet set
	width := m.width
	height := m.height
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	var sections []string
	sections = append(sections, m.renderHeader(width))
	sections = append(sections, m.renderSecondHeader(width))

	if m.filterMode {
		sections = append(sections, m.filterInput.View())
	}

	if m.moveMode {
		moveBar := moveModeStyle.Render("MOVE") + " Press 1-9 to select column, ESC to cancel"
		sections = append(sections, moveBar)
	}

	boardHeight := height - headerLines
	if m.filterMode {
		boardHeight--
	}
	if m.moveMode {
		boardHeight--
	}
	if boardHeight < 5 {
		boardHeight = 5
	}

	var mainContent string
	if m.showHelp {
		helpLines := strings.Split(m.help.View(width), "\n")
		if len(helpLines) > boardHeight {
			helpLines = helpLines[:boardHeight]
		}
		mainContent = strings.Join(helpLines, "\n")
	} else if len(m.columns) == 0 {
		emptyMsg := "No columns on this board. Press 'A' to add one."
		mainContent = lipgloss.Place(width, boardHeight, lipgloss.Center, lipgloss.Center, emptyMsg)
	} else {
		mainContent = m.renderBoard(width, boardHeight)
	}
	sections = append(sections, mainContent)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the breadcrumb path on the left and status on the right.
func (m BoardModel) renderHeader(width int) string {
	crumbs := m.store.Breadcrumbs()
	titles := make([]string, len(crumbs))
	for i, b := range crumbs {
		titles[i] = b.Title
	}

	title := strings.Join(titles, " › ")
	if m.store.CanGoBack() {
		title = "← " + title
	}

	var statusParts []string
	if depth := m.store.Depth(); depth > 1 {
		statusParts = append(statusParts, fmt.Sprintf("Level %d", depth))
	}

	total := 0
	for _, cards := range m.filteredCards {
		total += len(cards)
	}
	statusParts = append(statusParts, fmt.Sprintf("%d cards", total))

	if m.filterText != "" {
		statusParts = append(statusParts, "/"+m.filterText)
	}
	if !m.store.Synced() {
		statusParts = append(statusParts, errorStyle.Render("unsaved"))
	}
	statusParts = append(statusParts, "[?]help")

	status := strings.Join(statusParts, " | ")

	maxTitle := width - lipgloss.Width(status) - 3
	if maxTitle < 10 {
		maxTitle = 10
	}
	title = truncate.StringWithTail(title, uint(maxTitle), "…")

	padding := width - lipgloss.Width(title) - lipgloss.Width(status) - 2
	if padding < 1 {
		padding = 1
	}
	return titleStyle.Render(title) + strings.Repeat(" ", padding) + dimStyle.Render(status)
}

// renderSecondHeader renders navigation hints, toasts and position info
func (m BoardModel) renderSecondHeader(width int) string {
	left := "h/l:col j/k:card H/J/K/L:drag enter:open a:add d:del"
	if m.store.CanGoBack() {
		left += " esc:back"
	}

	right := ""
	switch {
	case m.errorToast != "":
		right = errorStyle.Render(m.errorToast)
	case m.infoToast != "":
		right = infoStyle.Render(m.infoToast)
	case len(m.columns) > 0:
		colID := m.columns[m.selectedColumn].ID
		cards := m.filteredCards[colID]
		colPos := fmt.Sprintf("col %d/%d", m.selectedColumn+1, len(m.columns))
		if len(cards) > 0 {
			right = fmt.Sprintf("%s | card %d/%d", colPos, m.selectedCard[colID]+1, len(cards))
		} else {
			right = colPos
		}
	}

	padding := width - len(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}
	return dimStyle.Render(left) + strings.Repeat(" ", padding) + right
}

// renderBoard renders the kanban columns within the given dimensions
// Implements horizontal scrolling (carousel) when columns overflow
func (m BoardModel) renderBoard(totalWidth, totalHeight int) string {
	numCols := len(m.columns)
	if numCols == 0 {
		return ""
	}

	// lipgloss Border adds 2 lines (top + bottom) to the content height
	colContentHeight := totalHeight - 2
	if colContentHeight < 3 {
		colContentHeight = 3
	}

	visibleCols := totalWidth / minColumnWidth
	if visibleCols < 1 {
		visibleCols = 1
	}
	if visibleCols > numCols {
		visibleCols = numCols
	}

	colWidth := totalWidth / visibleCols
	if colWidth > maxColumnWidth {
		colWidth = maxColumnWidth
	}
	if colWidth < minColumnWidth {
		colWidth = minColumnWidth
	}

	// Content width inside column (2 border + 2 padding)
	innerWidth := colWidth - 4
	if innerWidth < 10 {
		innerWidth = 10
	}

	startCol := m.columnOffset
	endCol := startCol + visibleCols
	if endCol > numCols {
		endCol = numCols
		startCol = endCol - visibleCols
		if startCol < 0 {
			startCol = 0
		}
	}

	columnViews := make([]string, 0, visibleCols+2)

	if startCol > 0 {
		columnViews = append(columnViews, scrollIndicator("◀", colContentHeight+2))
	}
	for i := startCol; i < endCol; i++ {
		isSelected := i == m.selectedColumn
		columnViews = append(columnViews, m.renderColumn(m.columns[i], isSelected, colWidth, colContentHeight, innerWidth, i+1))
	}
	if endCol < numCols {
		columnViews = append(columnViews, scrollIndicator("▶", colContentHeight+2))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columnViews...)
}

func scrollIndicator(arrow string, height int) string {
	return lipgloss.NewStyle().
		Width(2).
		Height(height).
		Foreground(colorAccent).
		Align(lipgloss.Center, lipgloss.Center).
		Render(arrow)
}

// renderColumn renders a single column with proper sizing.
// innerHeight is the content area, not including border.
func (m BoardModel) renderColumn(col domain.Column, selected bool, width, innerHeight, innerWidth, colNum int) string {
	cards := m.filteredCards[col.ID]

	// Header: [N] Title (count)
	headerText := fmt.Sprintf("[%d] %s (%d)", colNum, col.Title, len(cards))
	headerText = truncate.StringWithTail(headerText, uint(innerWidth), "…")

	scrollOffset := m.scrollOffset[col.ID]
	selectedIdx := m.selectedCard[col.ID]

	// One line is the header
	availableSlots := innerHeight - 1
	if availableSlots < 1 {
		availableSlots = 1
	}

	needUpIndicator := scrollOffset > 0
	if needUpIndicator {
		availableSlots--
	}

	endIdx := min(scrollOffset+availableSlots, len(cards))
	needDownIndicator := false
	if endIdx < len(cards) {
		needDownIndicator = true
		availableSlots--
		endIdx = min(scrollOffset+availableSlots, len(cards))
	}

	var lines []string
	lines = append(lines, columnHeaderStyle.Render(headerText))

	if needUpIndicator {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("↑ %d more", scrollOffset)))
	}

	for i := scrollOffset; i < endIdx; i++ {
		cardText := m.formatCardText(cards[i], innerWidth-2) // 2 for "> " or "  " prefix
		if selected && i == selectedIdx {
			lines = append(lines, selectedCardStyle.Render("> "+cardText))
		} else {
			lines = append(lines, cardStyle.Render("  "+cardText))
		}
	}

	if remaining := len(cards) - endIdx; needDownIndicator && remaining > 0 {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("↓ %d more", remaining)))
	}

	if len(cards) == 0 {
		lines = append(lines, dimStyle.Render("Drop a card here"))
	}

	// Height sets content height, border adds 2 more lines
	colStyle := lipgloss.NewStyle().
		Width(width-2).
		Height(innerHeight).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(columnBorderColor(selected))

	return colStyle.Render(strings.Join(lines, "\n"))
}

// formatCardText fits a card title into maxWidth. Cards that own a sub-board
// get a trailing marker.
func (m BoardModel) formatCardText(card domain.Card, maxWidth int) string {
	if !m.hasSubBoard[card.ID] {
		return truncate.StringWithTail(card.Title, uint(max(maxWidth, 1)), "…")
	}

	const marker = "▸"
	title := truncate.StringWithTail(card.Title, uint(max(maxWidth-2, 1)), "…")
	padding := maxWidth - lipgloss.Width(title) - lipgloss.Width(marker)
	if padding < 1 {
		padding = 1
	}
	return title + strings.Repeat(" ", padding) + dimStyle.Render(marker)
}

// refresh rebuilds the visible columns and cards from the store and clamps
// the selection. Switching boards resets the selection.
func (m *BoardModel) refresh() {
	board := m.store.CurrentBoard()
	boardID := ""
	if board != nil {
		boardID = board.ID
	}
	if boardID != m.boardID {
		m.boardID = boardID
		m.selectedColumn = 0
		m.columnOffset = 0
		m.selectedCard = make(map[string]int)
		m.scrollOffset = make(map[string]int)
	}

	m.columns = m.store.GetColumns()
	m.filteredCards = make(map[string][]domain.Card, len(m.columns))
	m.hasSubBoard = make(map[string]bool)

	filter := strings.ToLower(m.filterText)
	for _, col := range m.columns {
		visible := make([]domain.Card, 0, len(col.CardIDs))
		for _, card := range m.store.GetColumnCards(col.ID) {
			if filter != "" && !strings.Contains(strings.ToLower(card.Title), filter) {
				continue
			}
			visible = append(visible, card)
			if m.store.GetBoard(domain.SubBoardID(card.ID)) != nil {
				m.hasSubBoard[card.ID] = true
			}
		}
		m.filteredCards[col.ID] = visible

		if n := len(visible); m.selectedCard[col.ID] >= n {
			m.selectedCard[col.ID] = max(n-1, 0)
		}
		if m.scrollOffset[col.ID] > m.selectedCard[col.ID] {
			m.scrollOffset[col.ID] = m.selectedCard[col.ID]
		}
	}

	if m.selectedColumn >= len(m.columns) {
		m.selectedColumn = max(len(m.columns)-1, 0)
	}
	m.adjustColumnScroll()
}

// selectCard moves the selection to cardID if it is visible.
func (m *BoardModel) selectCard(cardID string) {
	for i, col := range m.columns {
		for j, card := range m.filteredCards[col.ID] {
			if card.ID == cardID {
				m.selectedColumn = i
				m.selectedCard[col.ID] = j
				m.adjustColumnScroll()
				m.adjustScroll(col.ID)
				return
			}
		}
	}
}

// moveCardSelection moves the card selection up or down by delta
func (m *BoardModel) moveCardSelection(delta int) {
	if len(m.columns) == 0 {
		return
	}

	colID := m.columns[m.selectedColumn].ID
	cards := m.filteredCards[colID]
	if len(cards) == 0 {
		return
	}

	newIdx := m.selectedCard[colID] + delta
	newIdx = max(0, min(newIdx, len(cards)-1))

	m.selectedCard[colID] = newIdx
	m.adjustScroll(colID)
}

// jumpToCard jumps to a specific card index. Use -1 to jump to last card.
func (m *BoardModel) jumpToCard(idx int) {
	if len(m.columns) == 0 {
		return
	}

	colID := m.columns[m.selectedColumn].ID
	cards := m.filteredCards[colID]
	if len(cards) == 0 {
		return
	}

	if idx < 0 || idx >= len(cards) {
		idx = len(cards) - 1
	}

	m.selectedCard[colID] = idx
	m.adjustScroll(colID)
}

// adjustScroll ensures the selected card is visible
func (m *BoardModel) adjustScroll(colID string) {
	selectedIdx := m.selectedCard[colID]

	contentHeight := m.height - headerLines - 2 // 2 for column borders
	if m.moveMode {
		contentHeight--
	}
	if m.filterMode {
		contentHeight--
	}
	visibleCards := contentHeight - 3 // header + potential scroll indicators
	if visibleCards < 3 {
		visibleCards = 3
	}

	if selectedIdx < m.scrollOffset[colID] {
		m.scrollOffset[colID] = selectedIdx
	}
	if selectedIdx >= m.scrollOffset[colID]+visibleCards {
		m.scrollOffset[colID] = selectedIdx - visibleCards + 1
	}
}

// adjustColumnScroll ensures the selected column is visible (horizontal carousel)
func (m *BoardModel) adjustColumnScroll() {
	if len(m.columns) == 0 || m.width == 0 {
		return
	}

	visibleCols := m.width / minColumnWidth
	if visibleCols < 1 {
		visibleCols = 1
	}
	if visibleCols > len(m.columns) {
		visibleCols = len(m.columns)
	}

	if m.selectedColumn < m.columnOffset {
		m.columnOffset = m.selectedColumn
	}
	if m.selectedColumn >= m.columnOffset+visibleCols {
		m.columnOffset = m.selectedColumn - visibleCols + 1
	}
}

// getSelectedColumn returns the currently selected column
func (m BoardModel) getSelectedColumn() *domain.Column {
	if len(m.columns) == 0 {
		return nil
	}
	col := m.columns[m.selectedColumn]
	return &col
}

// getSelectedCard returns the currently selected card
func (m BoardModel) getSelectedCard() *domain.Card {
	col := m.getSelectedColumn()
	if col == nil {
		return nil
	}

	cards := m.filteredCards[col.ID]
	if len(cards) == 0 {
		return nil
	}

	idx := m.selectedCard[col.ID]
	if idx >= len(cards) {
		idx = 0
	}
	card := cards[idx]
	return &card
}
