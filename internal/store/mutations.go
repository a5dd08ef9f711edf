package store

import (
	"fmt"

	"github.com/robby/nest/internal/domain"
	"github.com/robby/nest/internal/snapshot"
)

// OpenBoard makes the sub-board of cardID current, creating it on first use.
func (s *Store) OpenBoard(cardID string) error {
	_, err := s.apply("open-board", func(st domain.AppState) (domain.AppState, bool) {
		return OpenBoard(st, cardID)
	}, "card", cardID)
	return err
}

// GoBack returns to the previous board.
func (s *Store) GoBack() error {
	_, err := s.apply("go-back", GoBack)
	return err
}

// ReturnTo goes back several levels at once to an ancestor board.
func (s *Store) ReturnTo(boardID string) error {
	_, err := s.apply("return-to", func(st domain.AppState) (domain.AppState, bool) {
		return ReturnTo(st, boardID)
	}, "board", boardID)
	return err
}

// AddCard appends a new card to columnID and returns its id. The id is empty
// when the column does not exist.
func (s *Store) AddCard(columnID, title string) (string, error) {
	cardID := s.newID()
	changed, err := s.apply("add-card", func(st domain.AppState) (domain.AppState, bool) {
		return AddCard(st, columnID, cardID, title)
	}, "column", columnID)
	if !changed {
		return "", err
	}
	return cardID, err
}

// DeleteCard removes a card. Its sub-board, if any, is kept.
func (s *Store) DeleteCard(cardID string) error {
	_, err := s.apply("delete-card", func(st domain.AppState) (domain.AppState, bool) {
		return DeleteCard(st, cardID)
	}, "card", cardID)
	return err
}

// MoveCard moves a card into targetColumnID at newIndex.
func (s *Store) MoveCard(cardID, targetColumnID string, newIndex int) error {
	_, err := s.apply("move-card", func(st domain.AppState) (domain.AppState, bool) {
		return MoveCard(st, cardID, targetColumnID, newIndex)
	}, "card", cardID, "column", targetColumnID, "index", newIndex)
	return err
}

// AddColumn appends a new empty column to the current board and returns its id.
func (s *Store) AddColumn(title string) (string, error) {
	columnID := s.newID()
	changed, err := s.apply("add-column", func(st domain.AppState) (domain.AppState, bool) {
		return AddColumn(st, columnID, title)
	}, "board", s.currentBoardID())
	if !changed {
		return "", err
	}
	return columnID, err
}

// DeleteColumn removes a column together with its cards.
func (s *Store) DeleteColumn(columnID string) error {
	_, err := s.apply("delete-column", func(st domain.AppState) (domain.AppState, bool) {
		return DeleteColumn(st, columnID)
	}, "column", columnID)
	return err
}

// DragOver handles a card hovering over overID, which may be a column or a
// card. The card only moves when the hover target is in a different column.
func (s *Store) DragOver(activeCardID, overID string) error {
	_, err := s.apply("drag-over", func(st domain.AppState) (domain.AppState, bool) {
		active, ok := st.Cards[activeCardID]
		if !ok {
			return st, false
		}
		columnID, index, ok := ResolveDrop(st, overID)
		if !ok || columnID == active.ColumnID {
			return st, false
		}
		return MoveCard(st, activeCardID, columnID, index)
	}, "card", activeCardID, "over", overID)
	return err
}

// Drop places the dragged card at the position of overID.
func (s *Store) Drop(activeCardID, overID string) error {
	_, err := s.apply("drop", func(st domain.AppState) (domain.AppState, bool) {
		if activeCardID == overID {
			return st, false
		}
		columnID, index, ok := ResolveDrop(st, overID)
		if !ok {
			return st, false
		}
		return MoveCard(st, activeCardID, columnID, index)
	}, "card", activeCardID, "over", overID)
	return err
}

// ExportData returns the current state as an indented export document.
func (s *Store) ExportData() (string, error) {
	s.mu.RLock()
	state := s.state
	s.mu.RUnlock()

	data, err := snapshot.EncodeExport(state, s.now())
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ImportData replaces the whole state with the document in data. An invalid
// document leaves the state untouched.
func (s *Store) ImportData(data string) error {
	state, err := snapshot.Decode([]byte(data))
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Info("importing state", "boards", len(state.Boards), "cards", len(state.Cards))
	return s.commitLocked("import", state)
}

// Reset replaces the whole state with the default state.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logger.Info("resetting state")
	return s.commitLocked("reset", domain.DefaultState())
}

func (s *Store) currentBoardID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.CurrentBoardID
}
