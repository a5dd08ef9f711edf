package store

import "github.com/robby/nest/internal/domain"

// The functions in this file are pure state transitions. Each returns the
// next state and whether anything changed; when nothing changed the input is
// returned untouched. The input state is never modified.

// OpenBoard descends into the sub-board owned by cardID, creating it with the
// default columns and the card's current title the first time. If one of the
// new column ids is already taken the card cannot get a board and nothing
// changes.
func OpenBoard(s domain.AppState, cardID string) (domain.AppState, bool) {
	card, ok := s.Cards[cardID]
	if !ok {
		return s, false
	}

	subID := domain.SubBoardID(cardID)
	if _, exists := s.Boards[subID]; !exists {
		colIDs := domain.SubBoardColumnIDs(cardID)
		for _, colID := range colIDs {
			if _, taken := s.Columns[colID]; taken {
				return s, false
			}
		}
		board, columns := domain.NewBoard(subID, card.Title, cardID, colIDs)
		s = s.WithBoards(board).WithColumns(columns)
	}

	history := append(append([]string{}, s.History...), s.CurrentBoardID)
	return s.WithNavigation(subID, history), true
}

// GoBack returns to the previously visited board.
func GoBack(s domain.AppState) (domain.AppState, bool) {
	if len(s.History) == 0 {
		return s, false
	}
	last := len(s.History) - 1
	return s.WithNavigation(s.History[last], s.History[:last]), true
}

// ReturnTo unwinds history back to boardID, which must be an ancestor of the
// current board.
func ReturnTo(s domain.AppState, boardID string) (domain.AppState, bool) {
	for i := len(s.History) - 1; i >= 0; i-- {
		if s.History[i] == boardID {
			return s.WithNavigation(boardID, s.History[:i]), true
		}
	}
	return s, false
}

// AddCard appends a card with the given id to the end of columnID.
func AddCard(s domain.AppState, columnID, cardID, title string) (domain.AppState, bool) {
	col, ok := s.Columns[columnID]
	if !ok {
		return s, false
	}

	card := domain.Card{
		ID:       cardID,
		Title:    title,
		ColumnID: col.ID,
		BoardID:  col.BoardID,
		Order:    len(col.CardIDs),
	}
	col = col.WithCardAt(cardID, len(col.CardIDs))
	return s.WithCards([]domain.Card{card}).WithColumns([]domain.Column{col}), true
}

// DeleteCard removes a card from its column and from the card map.
// A sub-board the card owns is left in place.
func DeleteCard(s domain.AppState, cardID string) (domain.AppState, bool) {
	card, ok := s.Cards[cardID]
	if !ok {
		return s, false
	}

	var upserts []domain.Column
	if col, ok := s.Columns[card.ColumnID]; ok {
		upserts = append(upserts, col.WithoutCard(cardID))
	}
	return s.WithCards(nil, cardID).WithColumns(upserts), true
}

// MoveCard places cardID in targetColumnID at newIndex. The card is removed
// from its current column before inserting, so for a same-column move
// newIndex refers to the shortened sequence. Indexes outside
// [0, len] are clamped.
func MoveCard(s domain.AppState, cardID, targetColumnID string, newIndex int) (domain.AppState, bool) {
	card, ok := s.Cards[cardID]
	if !ok {
		return s, false
	}
	target, ok := s.Columns[targetColumnID]
	if !ok {
		return s, false
	}

	var upserts []domain.Column
	if source, ok := s.Columns[card.ColumnID]; ok && source.ID != target.ID {
		upserts = append(upserts, source.WithoutCard(cardID))
	}
	target = target.WithoutCard(cardID).WithCardAt(cardID, newIndex)
	upserts = append(upserts, target)

	return s.WithCards([]domain.Card{card.MovedTo(target)}).WithColumns(upserts), true
}

// AddColumn appends an empty column with the given id to the current board.
func AddColumn(s domain.AppState, columnID, title string) (domain.AppState, bool) {
	board, ok := s.Boards[s.CurrentBoardID]
	if !ok {
		return s, false
	}

	col := domain.Column{ID: columnID, Title: title, BoardID: board.ID, CardIDs: []string{}}
	return s.WithColumns([]domain.Column{col}).WithBoards(board.WithColumn(columnID)), true
}

// DeleteColumn removes a column and every card listed in it.
func DeleteColumn(s domain.AppState, columnID string) (domain.AppState, bool) {
	col, ok := s.Columns[columnID]
	if !ok {
		return s, false
	}

	if board, ok := s.Boards[col.BoardID]; ok {
		s = s.WithBoards(board.WithoutColumn(columnID))
	}
	return s.WithColumns(nil, columnID).WithCards(nil, col.CardIDs...), true
}

// ResolveDrop maps a drag target to a column and insertion index. overID may
// name a column (append to it) or a card (take that card's position).
func ResolveDrop(s domain.AppState, overID string) (columnID string, index int, ok bool) {
	if col, isColumn := s.Columns[overID]; isColumn {
		return col.ID, len(col.CardIDs), true
	}

	over, isCard := s.Cards[overID]
	if !isCard {
		return "", 0, false
	}
	col, exists := s.Columns[over.ColumnID]
	if !exists {
		return "", 0, false
	}
	idx := col.IndexOf(overID)
	if idx < 0 {
		return "", 0, false
	}
	return col.ID, idx, true
}
