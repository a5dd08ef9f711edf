package tui

import (
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/robby/nest/internal/store"
)

// AppScreen represents the different screens in the application.
type AppScreen int

const (
	ScreenBoard AppScreen = iota
	ScreenPrompt
	ScreenConfirm
	ScreenDetail
	ScreenJump
)

// AppModel is the root Bubble Tea model that manages screen transitions.
// The board is always underneath; every other screen is a modal that returns
// to it.
type AppModel struct {
	store  *store.Store
	logger *log.Logger

	currentScreen AppScreen
	currentModel  tea.Model
	boardModel    BoardModel
	err           error

	width  int
	height int
}

// NewAppModel creates the app model around s.
func NewAppModel(s *store.Store, logger *log.Logger, opts ...BoardOption) AppModel {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	board := NewBoardModel(s, opts...)
	return AppModel{
		store:         s,
		logger:        logger,
		currentScreen: ScreenBoard,
		currentModel:  board,
		boardModel:    board,
	}
}

// Init initializes the app model.
func (m AppModel) Init() tea.Cmd {
	return m.boardModel.Init()
}

// Update handles messages and transitions between screens.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Keep the cached board sized while a modal is open
		if m.currentScreen != ScreenBoard {
			model, _ := m.boardModel.Update(msg)
			m.boardModel = model.(BoardModel)
		}

	case ErrorMsg:
		m.err = msg.Err
		return m, nil

	case QuitMsg:
		return m, tea.Quit

	case openPromptMsg:
		m.logger.Debug("open prompt", "kind", msg.kind, "target", msg.targetID)
		return m.show(ScreenPrompt, NewPromptModel(msg.kind, msg.targetID, msg.label))

	case openConfirmMsg:
		return m.show(ScreenConfirm, NewConfirmModel(msg.action, msg.targetID, msg.message))

	case openDetailMsg:
		card := m.store.GetCard(msg.cardID)
		if card == nil {
			return m, nil
		}
		return m.show(ScreenDetail, NewDetailModel(m.store, *card))

	case openJumpMsg:
		return m.show(ScreenJump, NewJumpModel(m.store.Breadcrumbs()))

	case PromptSubmittedMsg, ConfirmedMsg, BoardSelectedMsg, openCardBoardMsg:
		return m.backToBoard(msg)

	case PromptCancelledMsg, closeDetailMsg, closeJumpMsg:
		return m.backToBoard(nil)
	}

	var cmd tea.Cmd
	m.currentModel, cmd = m.currentModel.Update(msg)
	if m.currentScreen == ScreenBoard {
		if bm, ok := m.currentModel.(BoardModel); ok {
			m.boardModel = bm
		}
	}
	return m, cmd
}

// show switches to a modal screen and sizes it.
func (m AppModel) show(screen AppScreen, model tea.Model) (tea.Model, tea.Cmd) {
	m.currentScreen = screen
	if m.width > 0 {
		model, _ = model.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
	}
	m.currentModel = model
	return m, model.Init()
}

// backToBoard returns to the board and hands it msg, if any.
func (m AppModel) backToBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.currentScreen = ScreenBoard
	var cmd tea.Cmd
	if msg != nil {
		var model tea.Model
		model, cmd = m.boardModel.Update(msg)
		m.boardModel = model.(BoardModel)
	}
	m.currentModel = m.boardModel
	return m, cmd
}

// View renders the current screen.
func (m AppModel) View() string {
	if m.err != nil {
		return ErrorStyle.Render(fmt.Sprintf("Error: %v\n\nPress Ctrl+C to quit", m.err))
	}
	return m.currentModel.View()
}
