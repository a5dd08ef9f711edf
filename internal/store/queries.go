package store

import "github.com/robby/nest/internal/domain"

// GetCard returns a copy of the card, or nil if it does not exist.
func (s *Store) GetCard(cardID string) *domain.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	card, ok := s.state.Cards[cardID]
	if !ok {
		return nil
	}
	return &card
}

// GetColumn returns a copy of the column, or nil if it does not exist.
func (s *Store) GetColumn(columnID string) *domain.Column {
	s.mu.RLock()
	defer s.mu.RUnlock()
	col, ok := s.state.Columns[columnID]
	if !ok {
		return nil
	}
	col = col.WithCardIDs(col.CardIDs)
	return &col
}

// GetBoard returns a copy of the board, or nil if it does not exist.
func (s *Store) GetBoard(boardID string) *domain.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.boardLocked(boardID)
}

// CurrentBoard returns a copy of the board being viewed.
func (s *Store) CurrentBoard() *domain.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.boardLocked(s.state.CurrentBoardID)
}

func (s *Store) boardLocked(boardID string) *domain.Board {
	board, ok := s.state.Boards[boardID]
	if !ok {
		return nil
	}
	board = board.WithColumnIDs(board.ColumnIDs)
	return &board
}

// GetColumns returns the columns of the current board in display order.
// Ids that do not resolve are skipped.
func (s *Store) GetColumns() []domain.Column {
	s.mu.RLock()
	defer s.mu.RUnlock()

	board, ok := s.state.Boards[s.state.CurrentBoardID]
	if !ok {
		return nil
	}
	columns := make([]domain.Column, 0, len(board.ColumnIDs))
	for _, id := range board.ColumnIDs {
		if col, ok := s.state.Columns[id]; ok {
			columns = append(columns, col.WithCardIDs(col.CardIDs))
		}
	}
	return columns
}

// GetColumnCards returns the cards of a column in order. Ids that do not
// resolve are skipped.
func (s *Store) GetColumnCards(columnID string) []domain.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()

	col, ok := s.state.Columns[columnID]
	if !ok {
		return nil
	}
	cards := make([]domain.Card, 0, len(col.CardIDs))
	for _, id := range col.CardIDs {
		if card, ok := s.state.Cards[id]; ok {
			cards = append(cards, card)
		}
	}
	return cards
}

// Breadcrumbs returns the boards from the root down to the current one.
func (s *Store) Breadcrumbs() []domain.Board {
	s.mu.RLock()
	defer s.mu.RUnlock()

	path := make([]domain.Board, 0, len(s.state.History)+1)
	for _, id := range append(append([]string{}, s.state.History...), s.state.CurrentBoardID) {
		if board, ok := s.state.Boards[id]; ok {
			path = append(path, board.WithColumnIDs(board.ColumnIDs))
		}
	}
	return path
}

// Depth returns the nesting level of the current board, starting at 1 for the root.
func (s *Store) Depth() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.History) + 1
}

// CanGoBack reports whether there is a board to return to.
func (s *Store) CanGoBack() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.state.History) > 0
}
