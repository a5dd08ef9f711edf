package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all key bindings for the board view.
type KeyMap struct {
	// Navigation
	Left   key.Binding
	Right  key.Binding
	Up     key.Binding
	Down   key.Binding
	Top    key.Binding
	Bottom key.Binding

	// Boards
	OpenBoard key.Binding
	Back      key.Binding
	Jump      key.Binding
	Details   key.Binding

	// Keyboard drag
	DragLeft  key.Binding
	DragRight key.Binding
	DragUp    key.Binding
	DragDown  key.Binding
	Move      key.Binding

	// Editing
	AddCard      key.Binding
	AddColumn    key.Binding
	DeleteCard   key.Binding
	DeleteColumn key.Binding
	Export       key.Binding
	Import       key.Binding
	Reset        key.Binding

	Filter key.Binding
	Help   key.Binding
	Quit   key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "previous column"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next column"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "previous card"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "next card"),
		),
		Top: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "first card"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "last card"),
		),
		OpenBoard: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "open card board"),
		),
		Back: key.NewBinding(
			key.WithKeys("backspace", "esc"),
			key.WithHelp("esc", "back"),
		),
		Jump: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "jump to parent board"),
		),
		Details: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "card details"),
		),
		DragLeft: key.NewBinding(
			key.WithKeys("H", "shift+left"),
			key.WithHelp("H", "drag card left"),
		),
		DragRight: key.NewBinding(
			key.WithKeys("L", "shift+right"),
			key.WithHelp("L", "drag card right"),
		),
		DragUp: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "drag card up"),
		),
		DragDown: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "drag card down"),
		),
		Move: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "move card to column"),
		),
		AddCard: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add card"),
		),
		AddColumn: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "add column"),
		),
		DeleteCard: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete card"),
		),
		DeleteColumn: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "delete column"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export to file"),
		),
		Import: key.NewBinding(
			key.WithKeys("I"),
			key.WithHelp("I", "import from file"),
		),
		Reset: key.NewBinding(
			key.WithKeys("R"),
			key.WithHelp("R", "reset everything"),
		),
		Filter: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "filter cards"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns key bindings to be shown in the mini help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Help, k.Quit}
}

// FullHelp returns key bindings for the expanded help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right, k.Top, k.Bottom},
		{k.OpenBoard, k.Back, k.Jump, k.Details},
		{k.DragUp, k.DragDown, k.DragLeft, k.DragRight, k.Move},
		{k.AddCard, k.AddColumn, k.DeleteCard, k.DeleteColumn},
		{k.Export, k.Import, k.Reset, k.Filter, k.Help, k.Quit},
	}
}
