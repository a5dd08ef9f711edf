// Package domain defines the board, column and card types of a nested kanban.
// Any card can own a sub-board, so boards form a tree rooted at RootBoardID.
package domain

import "slices"

// Well-known ids of the default state.
const (
	RootBoardID    = "root"
	RootBoardTitle = "My Projects"
)

// DefaultColumnTitles are the titles of the three columns every new board starts with.
var DefaultColumnTitles = [3]string{"To Do", "In Progress", "Done"}

// Card is a single item on a board. BoardID is the board the card lives on,
// not the sub-board it may open.
type Card struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	ColumnID string `json:"columnId"`
	BoardID  string `json:"boardId"`
	Order    int    `json:"order"` // Advisory only; Column.CardIDs is authoritative
}

// Column is an ordered list of cards on one board.
type Column struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	BoardID string   `json:"boardId"`
	CardIDs []string `json:"cardIds"`
}

// Board is an ordered list of columns. Every board except the root is the
// detail view of exactly one card.
type Board struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	ParentCardID string   `json:"parentCardId,omitempty"`
	ColumnIDs    []string `json:"columnIds"`
}

// IsRoot reports whether the board has no owning card.
func (b Board) IsRoot() bool {
	return b.ParentCardID == ""
}

// AppState is the aggregate root: the full entity graph plus navigation state.
// Values are treated as immutable; use the With* builders to derive new ones.
type AppState struct {
	Boards         map[string]Board  `json:"boards"`
	Columns        map[string]Column `json:"columns"`
	Cards          map[string]Card   `json:"cards"`
	CurrentBoardID string            `json:"currentBoardId"`
	History        []string          `json:"history"`
}

const subBoardPrefix = "board-"

// SubBoardID returns the id of the sub-board owned by cardID.
func SubBoardID(cardID string) string {
	return subBoardPrefix + cardID
}

// SubBoardColumnIDs returns the ids of the default columns of cardID's sub-board.
func SubBoardColumnIDs(cardID string) []string {
	prefix := "col-" + cardID + "-"
	return []string{prefix + "1", prefix + "2", prefix + "3"}
}

// NewBoard builds a board with the three default columns.
// The columns are returned in display order.
func NewBoard(id, title, parentCardID string, columnIDs []string) (Board, []Column) {
	board := Board{
		ID:           id,
		Title:        title,
		ParentCardID: parentCardID,
		ColumnIDs:    slices.Clone(columnIDs),
	}
	columns := make([]Column, len(columnIDs))
	for i, colID := range columnIDs {
		columns[i] = Column{
			ID:      colID,
			Title:   DefaultColumnTitles[i%len(DefaultColumnTitles)],
			BoardID: id,
			CardIDs: []string{},
		}
	}
	return board, columns
}

// DefaultState returns a state with one root board, three empty columns and no cards.
func DefaultState() AppState {
	board, columns := NewBoard(RootBoardID, RootBoardTitle, "", []string{"col-1", "col-2", "col-3"})

	state := AppState{
		Boards:         map[string]Board{board.ID: board},
		Columns:        make(map[string]Column, len(columns)),
		Cards:          map[string]Card{},
		CurrentBoardID: board.ID,
		History:        []string{},
	}
	for _, col := range columns {
		state.Columns[col.ID] = col
	}
	return state
}

// Clone returns a deep copy that shares no maps or slices with s.
func (s AppState) Clone() AppState {
	out := AppState{
		Boards:         make(map[string]Board, len(s.Boards)),
		Columns:        make(map[string]Column, len(s.Columns)),
		Cards:          make(map[string]Card, len(s.Cards)),
		CurrentBoardID: s.CurrentBoardID,
		History:        cloneIDs(s.History),
	}
	for id, b := range s.Boards {
		out.Boards[id] = b.WithColumnIDs(b.ColumnIDs)
	}
	for id, c := range s.Columns {
		out.Columns[id] = c.WithCardIDs(c.CardIDs)
	}
	for id, c := range s.Cards {
		out.Cards[id] = c
	}
	return out
}

// Normalize replaces nil maps and slices with empty ones so the state
// serializes as objects and arrays rather than null.
func (s AppState) Normalize() AppState {
	if s.Boards == nil {
		s.Boards = map[string]Board{}
	}
	if s.Columns == nil {
		s.Columns = map[string]Column{}
	}
	if s.Cards == nil {
		s.Cards = map[string]Card{}
	}
	if s.History == nil {
		s.History = []string{}
	}
	return s
}

func cloneIDs(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return slices.Clone(ids)
}
