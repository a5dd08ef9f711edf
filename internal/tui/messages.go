// Package tui provides Bubble Tea models for the interactive TUI.
package tui

// PromptKind identifies what a text prompt is collecting.
type PromptKind int

const (
	PromptAddCard PromptKind = iota
	PromptAddColumn
	PromptImport
)

// ConfirmAction identifies the destructive action awaiting confirmation.
type ConfirmAction int

const (
	ConfirmDeleteCard ConfirmAction = iota
	ConfirmDeleteColumn
	ConfirmReset
)

// openPromptMsg asks the app to show a text prompt.
type openPromptMsg struct {
	kind     PromptKind
	targetID string // Column for PromptAddCard
	label    string
}

// PromptSubmittedMsg is emitted when the user submits a non-empty prompt.
type PromptSubmittedMsg struct {
	Kind     PromptKind
	TargetID string
	Value    string // Trimmed
}

// PromptCancelledMsg is emitted when the user abandons a prompt.
type PromptCancelledMsg struct{}

// openConfirmMsg asks the app to show a y/n confirmation.
type openConfirmMsg struct {
	action   ConfirmAction
	targetID string
	message  string
}

// ConfirmedMsg is emitted when the user answers a confirmation.
type ConfirmedMsg struct {
	Action   ConfirmAction
	TargetID string
	Yes      bool
}

// openDetailMsg asks the app to show a card's details.
type openDetailMsg struct {
	cardID string
}

// closeDetailMsg returns from the detail view to the board.
type closeDetailMsg struct{}

// openCardBoardMsg returns to the board view and descends into a card's sub-board.
type openCardBoardMsg struct {
	cardID string
}

// openJumpMsg asks the app to show the breadcrumb picker.
type openJumpMsg struct{}

// BoardSelectedMsg is emitted when the user picks a board from the breadcrumb picker.
type BoardSelectedMsg struct {
	BoardID string
}

// closeJumpMsg returns from the breadcrumb picker without navigating.
type closeJumpMsg struct{}

// ErrorMsg is emitted when an error occurs.
type ErrorMsg struct {
	Err error
}

// QuitMsg is emitted when the user requests to quit.
type QuitMsg struct{}
