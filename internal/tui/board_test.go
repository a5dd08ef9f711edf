package tui

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robby/nest/internal/domain"
	"github.com/robby/nest/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestStore creates a store with c1, c2 in "To Do" and c3 in "In Progress".
func createTestStore(t *testing.T) *store.Store {
	t.Helper()
	n := 0
	s := store.New(store.WithIDGenerator(func() string {
		n++
		return "c" + strconv.Itoa(n)
	}))
	for _, add := range []struct{ col, title string }{
		{"col-1", "Task 1"},
		{"col-1", "Task 2"},
		{"col-2", "Task 3"},
	} {
		_, err := s.AddCard(add.col, add.title)
		require.NoError(t, err)
	}
	return s
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// press feeds keys to the board and returns the resulting model and last command.
func press(t *testing.T, m BoardModel, keys ...tea.KeyMsg) (BoardModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var model tea.Model
		model, cmd = m.Update(k)
		m = model.(BoardModel)
	}
	return m, cmd
}

func cardIDs(cards []domain.Card) []string {
	ids := make([]string, len(cards))
	for i, c := range cards {
		ids[i] = c.ID
	}
	return ids
}

func TestBoardModel_Columns(t *testing.T) {
	board := NewBoardModel(createTestStore(t))

	require.Len(t, board.columns, 3)
	assert.Equal(t, "To Do", board.columns[0].Title)
	assert.Equal(t, "In Progress", board.columns[1].Title)
	assert.Equal(t, "Done", board.columns[2].Title)

	assert.Equal(t, []string{"c1", "c2"}, cardIDs(board.filteredCards["col-1"]))
	assert.Equal(t, []string{"c3"}, cardIDs(board.filteredCards["col-2"]))
	assert.Empty(t, board.filteredCards["col-3"])
}

func TestBoardModel_Filter(t *testing.T) {
	board := NewBoardModel(createTestStore(t))

	board.filterText = "task 2"
	(&board).refresh()

	assert.Equal(t, []string{"c2"}, cardIDs(board.filteredCards["col-1"]))
	assert.Empty(t, board.filteredCards["col-2"])
}

func TestBoardModel_Navigation(t *testing.T) {
	board := NewBoardModel(createTestStore(t))
	assert.Equal(t, 0, board.selectedColumn)

	board, _ = press(t, board, runeKey('l'))
	assert.Equal(t, 1, board.selectedColumn)

	board, _ = press(t, board, runeKey('l'), runeKey('l'))
	assert.Equal(t, 2, board.selectedColumn, "stops at the last column")

	board, _ = press(t, board, runeKey('h'))
	assert.Equal(t, 1, board.selectedColumn)
}

func TestBoardModel_CardNavigation(t *testing.T) {
	board := NewBoardModel(createTestStore(t))
	board.width = 120
	board.height = 40

	board, _ = press(t, board, runeKey('j'))
	assert.Equal(t, 1, board.selectedCard["col-1"])

	board, _ = press(t, board, runeKey('j'))
	assert.Equal(t, 1, board.selectedCard["col-1"], "stops at the last card")

	board, _ = press(t, board, runeKey('k'), runeKey('k'))
	assert.Equal(t, 0, board.selectedCard["col-1"])
}

func TestBoardModel_DragWithinColumn(t *testing.T) {
	s := createTestStore(t)
	board := NewBoardModel(s)

	board, _ = press(t, board, runeKey('J'))
	assert.Equal(t, []string{"c2", "c1"}, s.GetColumn("col-1").CardIDs)
	assert.Equal(t, 1, board.selectedCard["col-1"], "selection follows the card")

	board, _ = press(t, board, runeKey('K'))
	assert.Equal(t, []string{"c1", "c2"}, s.GetColumn("col-1").CardIDs)
	assert.Equal(t, 0, board.selectedCard["col-1"])

	board, _ = press(t, board, runeKey('K'))
	assert.Equal(t, []string{"c1", "c2"}, s.GetColumn("col-1").CardIDs, "top card cannot move up")
}

func TestBoardModel_DragAcrossColumns(t *testing.T) {
	s := createTestStore(t)
	board := NewBoardModel(s)

	// Row 0 of "In Progress" holds c3, so c1 takes its place
	board, _ = press(t, board, runeKey('L'))
	assert.Equal(t, []string{"c1", "c3"}, s.GetColumn("col-2").CardIDs)
	assert.Equal(t, []string{"c2"}, s.GetColumn("col-1").CardIDs)
	assert.Equal(t, 1, board.selectedColumn)
	assert.Equal(t, 0, board.selectedCard["col-2"])

	// "Done" is empty, so the card is appended
	board, _ = press(t, board, runeKey('L'))
	assert.Equal(t, []string{"c1"}, s.GetColumn("col-3").CardIDs)
	assert.Equal(t, 2, board.selectedColumn)

	board, _ = press(t, board, runeKey('L'))
	assert.Equal(t, []string{"c1"}, s.GetColumn("col-3").CardIDs, "no column to the right")
}

func TestBoardModel_MoveMode(t *testing.T) {
	s := createTestStore(t)
	board := NewBoardModel(s)

	board, _ = press(t, board, runeKey('m'))
	assert.True(t, board.moveMode)

	board, _ = press(t, board, runeKey('2'))
	assert.False(t, board.moveMode)
	assert.Equal(t, []string{"c3", "c1"}, s.GetColumn("col-2").CardIDs)
	assert.Equal(t, 1, board.selectedColumn)
}

func TestBoardModel_OpenAndBack(t *testing.T) {
	s := createTestStore(t)
	board := NewBoardModel(s)
	board.width = 120
	board.height = 30

	board, _ = press(t, board, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, 2, s.Depth())
	require.Len(t, board.columns, 3)
	assert.Equal(t, "col-c1-1", board.columns[0].ID)

	view := board.View()
	assert.Contains(t, view, "Level 2")
	assert.Contains(t, view, "← My Projects › Task 1")

	board, _ = press(t, board, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, 1, s.Depth())
	assert.Equal(t, "col-1", board.columns[0].ID)
	assert.NotContains(t, board.View(), "Level")
	assert.True(t, board.hasSubBoard["c1"])
}

func TestBoardModel_EscClearsFilterFirst(t *testing.T) {
	s := createTestStore(t)
	require.NoError(t, s.OpenBoard("c1"))
	board := NewBoardModel(s)
	board.filterText = "x"

	board, _ = press(t, board, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, board.filterText)
	assert.Equal(t, 2, s.Depth())
}

func TestBoardModel_AddCardPrompt(t *testing.T) {
	s := createTestStore(t)
	board := NewBoardModel(s)
	board, _ = press(t, board, runeKey('l'))

	_, cmd := press(t, board, runeKey('a'))
	require.NotNil(t, cmd)
	msg, ok := cmd().(openPromptMsg)
	require.True(t, ok)
	assert.Equal(t, PromptAddCard, msg.kind)
	assert.Equal(t, "col-2", msg.targetID)

	model, _ := board.Update(PromptSubmittedMsg{Kind: PromptAddCard, TargetID: "col-2", Value: "Fresh"})
	board = model.(BoardModel)

	cards := s.GetColumnCards("col-2")
	require.Len(t, cards, 2)
	assert.Equal(t, "Fresh", cards[1].Title)
	assert.Equal(t, 1, board.selectedCard["col-2"])
}

func TestBoardModel_AddColumnPrompt(t *testing.T) {
	s := createTestStore(t)
	board := NewBoardModel(s)

	model, _ := board.Update(PromptSubmittedMsg{Kind: PromptAddColumn, Value: "Blocked"})
	board = model.(BoardModel)

	require.Len(t, board.columns, 4)
	assert.Equal(t, "Blocked", board.columns[3].Title)
	assert.Equal(t, 3, board.selectedColumn)
}

func TestBoardModel_DeleteNeedsConfirmation(t *testing.T) {
	s := createTestStore(t)
	board := NewBoardModel(s)

	_, cmd := press(t, board, runeKey('d'))
	require.NotNil(t, cmd)
	msg, ok := cmd().(openConfirmMsg)
	require.True(t, ok)
	assert.Equal(t, ConfirmDeleteCard, msg.action)
	assert.Equal(t, "c1", msg.targetID)
	assert.NotNil(t, s.GetCard("c1"), "nothing is deleted before confirming")

	model, _ := board.Update(ConfirmedMsg{Action: ConfirmDeleteCard, TargetID: "c1", Yes: false})
	board = model.(BoardModel)
	assert.NotNil(t, s.GetCard("c1"))

	model, _ = board.Update(ConfirmedMsg{Action: ConfirmDeleteCard, TargetID: "c1", Yes: true})
	board = model.(BoardModel)
	assert.Nil(t, s.GetCard("c1"))
	assert.Equal(t, []string{"c2"}, cardIDs(board.filteredCards["col-1"]))
}

func TestBoardModel_DeleteColumnAndReset(t *testing.T) {
	s := createTestStore(t)
	board := NewBoardModel(s)

	model, _ := board.Update(ConfirmedMsg{Action: ConfirmDeleteColumn, TargetID: "col-1", Yes: true})
	board = model.(BoardModel)
	assert.Len(t, board.columns, 2)
	assert.Nil(t, s.GetCard("c1"))

	model, _ = board.Update(ConfirmedMsg{Action: ConfirmReset, Yes: true})
	board = model.(BoardModel)
	assert.Equal(t, domain.DefaultState(), s.State())
	assert.Len(t, board.columns, 3)
}

func TestBoardModel_ExportImport(t *testing.T) {
	dir := t.TempDir()
	at := time.Date(2026, 7, 14, 10, 0, 0, 0, time.UTC)
	src := createTestStore(t)
	board := NewBoardModel(src, WithExportDir(dir), WithBoardClock(func() time.Time { return at }))

	board, _ = press(t, board, runeKey('e'))
	path := filepath.Join(dir, "kanban-2026-07-14.json")
	assert.FileExists(t, path)
	assert.Contains(t, board.infoToast, "kanban-2026-07-14.json")

	dst := store.New()
	target := NewBoardModel(dst)
	model, _ := target.Update(PromptSubmittedMsg{Kind: PromptImport, Value: path})
	target = model.(BoardModel)
	assert.Empty(t, target.errorToast)
	assert.Equal(t, src.State(), dst.State())
	assert.Len(t, target.filteredCards["col-1"], 2)

	t.Run("invalid file keeps state", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{"boards": 1}`), 0o644))

		model, _ := target.Update(PromptSubmittedMsg{Kind: PromptImport, Value: bad})
		after := model.(BoardModel)
		assert.Contains(t, after.errorToast, "Import failed")
		assert.Equal(t, src.State(), dst.State())
	})
}

func TestBoardModel_EmptyColumn(t *testing.T) {
	board := NewBoardModel(createTestStore(t))
	board.width = 100
	board.height = 20

	view := board.renderBoard(board.width, board.height-headerLines)
	assert.Contains(t, view, "[3] Done (0)")
	assert.Contains(t, view, "Drop a card here")
}

func TestBoardModel_WindowResize(t *testing.T) {
	board := NewBoardModel(createTestStore(t))

	model, _ := board.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	board = model.(BoardModel)

	assert.Equal(t, 120, board.width)
	assert.Equal(t, 40, board.height)
}

func TestBoardModel_View_NotPanic(t *testing.T) {
	board := NewBoardModel(createTestStore(t))

	require.NotPanics(t, func() {
		board.View()
	})

	board.width = 30
	board.height = 8
	require.NotPanics(t, func() {
		assert.NotEmpty(t, board.View())
	})

	empty := store.New()
	require.NoError(t, empty.DeleteColumn("col-1"))
	require.NoError(t, empty.DeleteColumn("col-2"))
	require.NoError(t, empty.DeleteColumn("col-3"))
	assert.Contains(t, NewBoardModel(empty).View(), "No columns")
}

func TestFormatCardText(t *testing.T) {
	s := createTestStore(t)
	require.NoError(t, s.OpenBoard("c1"))
	require.NoError(t, s.GoBack())
	board := NewBoardModel(s)

	long := domain.Card{ID: "x", Title: "This is a very long title that should be truncated to fit"}
	text := board.formatCardText(long, 20)
	assert.Contains(t, text, "…")
	assert.LessOrEqual(t, len([]rune(text)), 20)

	withBoard := board.formatCardText(*s.GetCard("c1"), 20)
	assert.True(t, strings.HasPrefix(withBoard, "Task 1"))
	assert.Contains(t, withBoard, "▸")
}
