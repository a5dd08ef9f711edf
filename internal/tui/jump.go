package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/robby/nest/internal/domain"
)

// boardItem wraps one breadcrumb for use in bubbles/list.
type boardItem struct {
	board domain.Board
	level int
}

func (i boardItem) FilterValue() string {
	return i.board.Title
}

func (i boardItem) Title() string {
	return i.board.Title
}

func (i boardItem) Description() string {
	return fmt.Sprintf("Level %d, %d columns", i.level, len(i.board.ColumnIDs))
}

// boardDelegate renders breadcrumbs indented by depth.
type boardDelegate struct{}

func (d boardDelegate) Height() int                             { return 2 }
func (d boardDelegate) Spacing() int                            { return 1 }
func (d boardDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d boardDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(boardItem)
	if !ok {
		return
	}

	indent := strings.Repeat("  ", i.level-1)
	if index == m.Index() {
		fmt.Fprint(w, crumbSelectedStyle.Render(indent+"> "+i.Title()))
		fmt.Fprint(w, "\n  "+indent+crumbStyle.Render(i.Description()))
	} else {
		fmt.Fprint(w, crumbStyle.Render(indent+"  "+i.Title()))
		fmt.Fprint(w, "\n  "+indent+dimStyle.Render(i.Description()))
	}
}

// JumpModel lists the ancestors of the current board so the user can return
// several levels at once.
type JumpModel struct {
	list list.Model
}

// NewJumpModel creates a picker over the ancestors in crumbs. The last crumb
// is the current board and is not offered.
func NewJumpModel(crumbs []domain.Board) JumpModel {
	items := make([]list.Item, 0, len(crumbs))
	for i, b := range crumbs {
		if i == len(crumbs)-1 {
			break
		}
		items = append(items, boardItem{board: b, level: i + 1})
	}

	l := list.New(items, boardDelegate{}, 80, 20)
	l.Title = "Jump to board"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = TitleStyle
	if len(items) > 0 {
		l.Select(len(items) - 1) // Parent board
	}

	return JumpModel{list: l}
}

// Init initializes the model.
func (m JumpModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages and updates the model state.
func (m JumpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width - 2)
		m.list.SetHeight(msg.Height - 2)
		return m, nil

	case tea.KeyMsg:
		if m.list.FilterState() == list.Filtering {
			break
		}
		switch msg.String() {
		case "q", "esc":
			return m, func() tea.Msg { return closeJumpMsg{} }
		case "enter":
			if item, ok := m.list.SelectedItem().(boardItem); ok {
				return m, func() tea.Msg {
					return BoardSelectedMsg{BoardID: item.board.ID}
				}
			}
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the model.
func (m JumpModel) View() string {
	return m.list.View()
}
