package domain

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"
)

// ErrInvariant is wrapped by every ValidationError.
var ErrInvariant = errors.New("state invariant violated")

// ValidationError reports one invariant violation at a location in the state.
type ValidationError struct {
	Path string // Location of the offending value, e.g. columns["col-1"].cardIds[2]
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

// Unwrap returns the underlying error.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is makes every ValidationError match ErrInvariant.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvariant
}

// Validate checks the referential and structural invariants of the state and
// returns every violation joined into one error, or nil.
func (s AppState) Validate() error {
	v := &validator{state: s}
	v.checkBoards()
	v.checkColumns()
	v.checkCards()
	v.checkNavigation()
	return errors.Join(v.errs...)
}

type validator struct {
	state AppState
	errs  []error
}

func (v *validator) fail(path, format string, args ...any) {
	v.errs = append(v.errs, &ValidationError{Path: path, Err: fmt.Errorf(format, args...)})
}

func (v *validator) checkBoards() {
	for _, id := range sortedKeys(v.state.Boards) {
		board := v.state.Boards[id]
		path := fmt.Sprintf("boards[%q]", id)

		if id == "" {
			v.fail(path, "empty board id")
		}
		if board.ID != id {
			v.fail(path+".id", "id %q does not match key", board.ID)
		}
		if board.ParentCardID != "" && id != SubBoardID(board.ParentCardID) {
			v.fail(path+".parentCardId", "sub-board of card %q must have id %q", board.ParentCardID, SubBoardID(board.ParentCardID))
		}
		if cardID, isSub := strings.CutPrefix(id, subBoardPrefix); isSub && board.ParentCardID != cardID {
			v.fail(path+".parentCardId", "board id is reserved for the sub-board of card %q", cardID)
		}

		seen := make(map[string]bool, len(board.ColumnIDs))
		for i, colID := range board.ColumnIDs {
			colPath := fmt.Sprintf("%s.columnIds[%d]", path, i)
			if seen[colID] {
				v.fail(colPath, "column %q listed twice", colID)
				continue
			}
			seen[colID] = true

			col, ok := v.state.Columns[colID]
			if !ok {
				v.fail(colPath, "unknown column %q", colID)
				continue
			}
			if col.BoardID != id {
				v.fail(colPath, "column %q belongs to board %q", colID, col.BoardID)
			}
		}
	}
}

func (v *validator) checkColumns() {
	owner := make(map[string]string, len(v.state.Cards))

	for _, id := range sortedKeys(v.state.Columns) {
		col := v.state.Columns[id]
		path := fmt.Sprintf("columns[%q]", id)

		if id == "" {
			v.fail(path, "empty column id")
		}
		if col.ID != id {
			v.fail(path+".id", "id %q does not match key", col.ID)
		}
		board, ok := v.state.Boards[col.BoardID]
		if !ok {
			v.fail(path+".boardId", "unknown board %q", col.BoardID)
		} else if !slices.Contains(board.ColumnIDs, id) {
			v.fail(path+".boardId", "board %q does not list this column", col.BoardID)
		}

		for i, cardID := range col.CardIDs {
			cardPath := fmt.Sprintf("%s.cardIds[%d]", path, i)
			if prev, dup := owner[cardID]; dup {
				v.fail(cardPath, "card %q already listed in column %q", cardID, prev)
				continue
			}
			owner[cardID] = id

			if _, ok := v.state.Cards[cardID]; !ok {
				v.fail(cardPath, "unknown card %q", cardID)
			}
		}
	}

	for _, id := range sortedKeys(v.state.Cards) {
		card := v.state.Cards[id]
		if colID, listed := owner[id]; !listed || colID != card.ColumnID {
			v.fail(fmt.Sprintf("cards[%q].columnId", id), "card is not listed in column %q", card.ColumnID)
		}
	}
}

func (v *validator) checkCards() {
	for _, id := range sortedKeys(v.state.Cards) {
		card := v.state.Cards[id]
		path := fmt.Sprintf("cards[%q]", id)

		if id == "" {
			v.fail(path, "empty card id")
		}
		if card.ID != id {
			v.fail(path+".id", "id %q does not match key", card.ID)
		}
		if col, ok := v.state.Columns[card.ColumnID]; ok && col.BoardID != card.BoardID {
			v.fail(path+".boardId", "card lives on board %q but its column belongs to %q", card.BoardID, col.BoardID)
		}
	}
}

func (v *validator) checkNavigation() {
	if _, ok := v.state.Boards[v.state.CurrentBoardID]; !ok {
		v.fail("currentBoardId", "unknown board %q", v.state.CurrentBoardID)
	}
	for i, boardID := range v.state.History {
		if _, ok := v.state.Boards[boardID]; !ok {
			v.fail(fmt.Sprintf("history[%d]", i), "unknown board %q", boardID)
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
