package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// createTestState returns the default state with two cards in "To Do".
func createTestState() AppState {
	s := DefaultState()
	s = s.WithCards([]Card{
		{ID: "c1", Title: "First", ColumnID: "col-1", BoardID: RootBoardID, Order: 0},
		{ID: "c2", Title: "Second", ColumnID: "col-1", BoardID: RootBoardID, Order: 1},
	})
	return s.WithColumns([]Column{s.Columns["col-1"].WithCardIDs([]string{"c1", "c2"})})
}

func TestDefaultState(t *testing.T) {
	s := DefaultState()

	require.Contains(t, s.Boards, RootBoardID)
	root := s.Boards[RootBoardID]
	assert.True(t, root.IsRoot())
	assert.Equal(t, RootBoardTitle, root.Title)
	assert.Equal(t, []string{"col-1", "col-2", "col-3"}, root.ColumnIDs)

	for i, colID := range root.ColumnIDs {
		col := s.Columns[colID]
		assert.Equal(t, DefaultColumnTitles[i], col.Title)
		assert.Equal(t, RootBoardID, col.BoardID)
		assert.Empty(t, col.CardIDs)
	}

	assert.Empty(t, s.Cards)
	assert.Equal(t, RootBoardID, s.CurrentBoardID)
	assert.Empty(t, s.History)
	assert.NoError(t, s.Validate())
}

func TestSubBoardIDs(t *testing.T) {
	assert.Equal(t, "board-abc", SubBoardID("abc"))
	assert.Equal(t, []string{"col-abc-1", "col-abc-2", "col-abc-3"}, SubBoardColumnIDs("abc"))
}

func TestClone_IsDeep(t *testing.T) {
	s := createTestState()
	c := s.Clone()

	c.Columns["col-1"].CardIDs[0] = "changed"
	c.Boards[RootBoardID].ColumnIDs[0] = "changed"
	c.History = append(c.History, "x")

	assert.Equal(t, "c1", s.Columns["col-1"].CardIDs[0])
	assert.Equal(t, "col-1", s.Boards[RootBoardID].ColumnIDs[0])
	assert.Empty(t, s.History)
}

func TestColumnBuilders(t *testing.T) {
	col := Column{ID: "a", CardIDs: []string{"c1", "c2", "c3"}}

	t.Run("without card", func(t *testing.T) {
		out := col.WithoutCard("c2")
		assert.Equal(t, []string{"c1", "c3"}, out.CardIDs)
		assert.Equal(t, []string{"c1", "c2", "c3"}, col.CardIDs)
	})

	t.Run("insert in the middle", func(t *testing.T) {
		out := col.WithCardAt("x", 1)
		assert.Equal(t, []string{"c1", "x", "c2", "c3"}, out.CardIDs)
	})

	t.Run("insert past the end appends", func(t *testing.T) {
		out := col.WithCardAt("x", 99)
		assert.Equal(t, []string{"c1", "c2", "c3", "x"}, out.CardIDs)
	})

	t.Run("negative index prepends", func(t *testing.T) {
		out := col.WithCardAt("x", -4)
		assert.Equal(t, []string{"x", "c1", "c2", "c3"}, out.CardIDs)
	})

	t.Run("index of", func(t *testing.T) {
		assert.Equal(t, 2, col.IndexOf("c3"))
		assert.Equal(t, -1, col.IndexOf("nope"))
	})
}

func TestBoardBuilders(t *testing.T) {
	b := Board{ID: "b", ColumnIDs: []string{"x", "y"}}

	assert.Equal(t, []string{"x", "y", "z"}, b.WithColumn("z").ColumnIDs)
	assert.Equal(t, []string{"y"}, b.WithoutColumn("x").ColumnIDs)
	assert.Equal(t, []string{"x", "y"}, b.ColumnIDs)
}

func TestStateBuilders_DoNotMutateOriginal(t *testing.T) {
	s := createTestState()

	next := s.WithCards(nil, "c1")
	assert.NotContains(t, next.Cards, "c1")
	assert.Contains(t, s.Cards, "c1")

	next = s.WithColumns(nil, "col-3")
	assert.NotContains(t, next.Columns, "col-3")
	assert.Contains(t, s.Columns, "col-3")

	next = s.WithNavigation("elsewhere", []string{RootBoardID})
	assert.Equal(t, "elsewhere", next.CurrentBoardID)
	assert.Equal(t, RootBoardID, s.CurrentBoardID)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(AppState) AppState
		wantPath string
	}{
		{
			name: "dangling card id in column",
			mutate: func(s AppState) AppState {
				return s.WithColumns([]Column{s.Columns["col-2"].WithCardIDs([]string{"ghost"})})
			},
			wantPath: `columns["col-2"].cardIds[0]`,
		},
		{
			name: "card listed in two columns",
			mutate: func(s AppState) AppState {
				return s.WithColumns([]Column{s.Columns["col-2"].WithCardIDs([]string{"c1"})})
			},
			wantPath: `cardIds[0]`,
		},
		{
			name: "card column mismatch",
			mutate: func(s AppState) AppState {
				c := s.Cards["c1"]
				c.ColumnID = "col-2"
				return s.WithCards([]Card{c})
			},
			wantPath: `cards["c1"].columnId`,
		},
		{
			name: "card not listed anywhere",
			mutate: func(s AppState) AppState {
				return s.WithColumns([]Column{s.Columns["col-1"].WithoutCard("c2")})
			},
			wantPath: `cards["c2"].columnId`,
		},
		{
			name: "dangling column id in board",
			mutate: func(s AppState) AppState {
				return s.WithBoards(s.Boards[RootBoardID].WithColumn("ghost"))
			},
			wantPath: `boards["root"].columnIds[3]`,
		},
		{
			name: "column board mismatch",
			mutate: func(s AppState) AppState {
				col := s.Columns["col-3"]
				col.BoardID = "other"
				return s.WithColumns([]Column{col})
			},
			wantPath: `columns["col-3"].boardId`,
		},
		{
			name: "unknown current board",
			mutate: func(s AppState) AppState {
				return s.WithNavigation("nope", nil)
			},
			wantPath: "currentBoardId",
		},
		{
			name: "unknown history entry",
			mutate: func(s AppState) AppState {
				return s.WithNavigation(RootBoardID, []string{"gone"})
			},
			wantPath: "history[0]",
		},
		{
			name: "sub-board id not derived from parent card",
			mutate: func(s AppState) AppState {
				return s.WithBoards(Board{ID: "random", ParentCardID: "c1", ColumnIDs: []string{}})
			},
			wantPath: `boards["random"].parentCardId`,
		},
		{
			name: "sub-board id without its parent card",
			mutate: func(s AppState) AppState {
				return s.WithBoards(Board{ID: SubBoardID("c2"), Title: "Stray", ColumnIDs: []string{}})
			},
			wantPath: `boards["board-c2"].parentCardId`,
		},
		{
			name: "sub-board id owned by another card",
			mutate: func(s AppState) AppState {
				return s.WithBoards(Board{ID: SubBoardID("c2"), Title: "Stray", ParentCardID: "c1", ColumnIDs: []string{}})
			},
			wantPath: `board id is reserved for the sub-board of card "c2"`,
		},
		{
			name: "key does not match id",
			mutate: func(s AppState) AppState {
				c := s.Cards["c1"]
				c.ID = "other"
				cards := s.WithCards(nil).Cards
				cards["c1"] = c
				s.Cards = cards
				return s
			},
			wantPath: `cards["c1"].id`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := tt.mutate(createTestState())
			err := s.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvariant)
			assert.Contains(t, err.Error(), tt.wantPath)
		})
	}

	t.Run("valid state", func(t *testing.T) {
		assert.NoError(t, createTestState().Validate())
	})
}
