package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robby/nest/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// send feeds msg to the app and follows the returned command once.
func send(t *testing.T, m AppModel, msg tea.Msg) AppModel {
	t.Helper()
	model, cmd := m.Update(msg)
	m = model.(AppModel)
	if cmd == nil {
		return m
	}
	next := cmd()
	switch next.(type) {
	case openPromptMsg, openConfirmMsg, openDetailMsg, openJumpMsg,
		PromptSubmittedMsg, PromptCancelledMsg, ConfirmedMsg,
		BoardSelectedMsg, openCardBoardMsg, closeDetailMsg, closeJumpMsg:
		model, _ = m.Update(next)
		m = model.(AppModel)
	}
	return m
}

func TestAppModel_AddCardThroughPrompt(t *testing.T) {
	s := createTestStore(t)
	app := NewAppModel(s, nil)
	app = send(t, app, tea.WindowSizeMsg{Width: 100, Height: 30})

	app = send(t, app, runeKey('a'))
	require.Equal(t, ScreenPrompt, app.currentScreen)
	assert.Contains(t, app.View(), "New card in To Do")

	// Typing returns a cursor blink command, which is not followed
	model, _ := app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Write docs")})
	app = model.(AppModel)
	app = send(t, app, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, ScreenBoard, app.currentScreen)
	cards := s.GetColumnCards("col-1")
	require.Len(t, cards, 3)
	assert.Equal(t, "Write docs", cards[2].Title)
}

func TestAppModel_PromptCancel(t *testing.T) {
	s := createTestStore(t)
	app := NewAppModel(s, nil)

	app = send(t, app, runeKey('A'))
	require.Equal(t, ScreenPrompt, app.currentScreen)

	app = send(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, ScreenBoard, app.currentScreen)
	assert.Len(t, s.GetColumns(), 3)
}

func TestAppModel_ConfirmDelete(t *testing.T) {
	s := createTestStore(t)
	app := NewAppModel(s, nil)

	app = send(t, app, runeKey('d'))
	require.Equal(t, ScreenConfirm, app.currentScreen)
	assert.Contains(t, app.View(), `Delete card "Task 1"?`)

	app = send(t, app, runeKey('n'))
	assert.Equal(t, ScreenBoard, app.currentScreen)
	assert.NotNil(t, s.GetCard("c1"))

	app = send(t, app, runeKey('d'))
	app = send(t, app, runeKey('y'))
	assert.Equal(t, ScreenBoard, app.currentScreen)
	assert.Nil(t, s.GetCard("c1"))
}

func TestAppModel_DetailOpensBoard(t *testing.T) {
	s := createTestStore(t)
	app := NewAppModel(s, nil)

	app = send(t, app, runeKey('i'))
	require.Equal(t, ScreenDetail, app.currentScreen)
	assert.Contains(t, app.View(), "no board yet")

	app = send(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ScreenBoard, app.currentScreen)
	assert.Equal(t, 2, s.Depth())
	assert.Equal(t, "col-c1-1", app.boardModel.columns[0].ID)
}

func TestAppModel_JumpToAncestor(t *testing.T) {
	s := createTestStore(t)
	app := NewAppModel(s, nil)
	app = send(t, app, tea.WindowSizeMsg{Width: 100, Height: 30})

	// Nothing to jump to on the root board
	app = send(t, app, runeKey('b'))
	assert.Equal(t, ScreenBoard, app.currentScreen)

	app = send(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	_, err := s.AddCard("col-c1-1", "Nested")
	require.NoError(t, err)
	require.NoError(t, s.OpenBoard("c4"))
	require.Equal(t, 3, s.Depth())

	app = send(t, app, runeKey('b'))
	require.Equal(t, ScreenJump, app.currentScreen)

	app = send(t, app, BoardSelectedMsg{BoardID: domain.RootBoardID})
	assert.Equal(t, ScreenBoard, app.currentScreen)
	assert.Equal(t, 1, s.Depth())
	assert.Equal(t, "col-1", app.boardModel.columns[0].ID)
}

func TestAppModel_ResizeWhileModal(t *testing.T) {
	app := NewAppModel(createTestStore(t), nil)

	app = send(t, app, runeKey('A'))
	require.Equal(t, ScreenPrompt, app.currentScreen)

	app = send(t, app, tea.WindowSizeMsg{Width: 140, Height: 50})
	assert.Equal(t, 140, app.boardModel.width)
	assert.Equal(t, 50, app.boardModel.height)
}

func TestAppModel_ErrorView(t *testing.T) {
	app := NewAppModel(createTestStore(t), nil)

	model, _ := app.Update(ErrorMsg{Err: assert.AnError})
	app = model.(AppModel)

	assert.Contains(t, app.View(), assert.AnError.Error())
}
