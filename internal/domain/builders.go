package domain

import "slices"

// WithCardIDs returns a copy of the column holding its own copy of ids.
func (c Column) WithCardIDs(ids []string) Column {
	c.CardIDs = cloneIDs(ids)
	return c
}

// WithoutCard returns a copy of the column with every occurrence of cardID removed.
func (c Column) WithoutCard(cardID string) Column {
	ids := make([]string, 0, len(c.CardIDs))
	for _, id := range c.CardIDs {
		if id != cardID {
			ids = append(ids, id)
		}
	}
	c.CardIDs = ids
	return c
}

// WithCardAt returns a copy of the column with cardID inserted at index.
// The index is clamped to [0, len(CardIDs)], so inserting past the end appends.
func (c Column) WithCardAt(cardID string, index int) Column {
	index = max(0, min(index, len(c.CardIDs)))
	ids := make([]string, 0, len(c.CardIDs)+1)
	ids = append(ids, c.CardIDs[:index]...)
	ids = append(ids, cardID)
	ids = append(ids, c.CardIDs[index:]...)
	c.CardIDs = ids
	return c
}

// IndexOf returns the position of cardID in the column, or -1.
func (c Column) IndexOf(cardID string) int {
	return slices.Index(c.CardIDs, cardID)
}

// WithColumnIDs returns a copy of the board holding its own copy of ids.
func (b Board) WithColumnIDs(ids []string) Board {
	b.ColumnIDs = cloneIDs(ids)
	return b
}

// WithColumn returns a copy of the board with columnID appended.
func (b Board) WithColumn(columnID string) Board {
	ids := make([]string, 0, len(b.ColumnIDs)+1)
	ids = append(ids, b.ColumnIDs...)
	b.ColumnIDs = append(ids, columnID)
	return b
}

// WithoutColumn returns a copy of the board with columnID removed.
func (b Board) WithoutColumn(columnID string) Board {
	ids := make([]string, 0, len(b.ColumnIDs))
	for _, id := range b.ColumnIDs {
		if id != columnID {
			ids = append(ids, id)
		}
	}
	b.ColumnIDs = ids
	return b
}

// MovedTo returns a copy of the card placed in column col.
func (c Card) MovedTo(col Column) Card {
	c.ColumnID = col.ID
	c.BoardID = col.BoardID
	return c
}

// WithBoards returns a shallow copy of s with a fresh Boards map containing
// the given upserts. Untouched entities are shared with s, which is safe
// because entity values are never mutated in place.
func (s AppState) WithBoards(upserts ...Board) AppState {
	boards := make(map[string]Board, len(s.Boards)+len(upserts))
	for id, b := range s.Boards {
		boards[id] = b
	}
	for _, b := range upserts {
		boards[b.ID] = b
	}
	s.Boards = boards
	return s
}

// WithColumns returns a shallow copy of s with the given columns upserted and
// the ids in remove deleted.
func (s AppState) WithColumns(upserts []Column, remove ...string) AppState {
	columns := make(map[string]Column, len(s.Columns)+len(upserts))
	for id, c := range s.Columns {
		columns[id] = c
	}
	for _, id := range remove {
		delete(columns, id)
	}
	for _, c := range upserts {
		columns[c.ID] = c
	}
	s.Columns = columns
	return s
}

// WithCards returns a shallow copy of s with the given cards upserted and the
// ids in remove deleted.
func (s AppState) WithCards(upserts []Card, remove ...string) AppState {
	cards := make(map[string]Card, len(s.Cards)+len(upserts))
	for id, c := range s.Cards {
		cards[id] = c
	}
	for _, id := range remove {
		delete(cards, id)
	}
	for _, c := range upserts {
		cards[c.ID] = c
	}
	s.Cards = cards
	return s
}

// WithNavigation returns a shallow copy of s pointing at boardID with the given history.
func (s AppState) WithNavigation(boardID string, history []string) AppState {
	s.CurrentBoardID = boardID
	s.History = cloneIDs(history)
	return s
}
