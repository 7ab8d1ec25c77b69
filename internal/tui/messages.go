// Package tui provides Bubble Tea models for the interactive TUI.
package tui

import "github.com/h0rv/bugsquash/internal/notify"

// ProjectSelectedMsg is emitted when the user picks a project.
type ProjectSelectedMsg struct {
	ProjectID string
}

// ErrorMsg is emitted when an error occurs.
type ErrorMsg struct {
	Err error
}

// Screen transitions. Each screen asks the AppModel to move on by
// returning one of these from a command.
type (
	backMsg              struct{}
	openBoardMsg         struct{}
	openProjectPickerMsg struct{}
	openDetailMsg        struct{ issueID string }
	closeDetailMsg       struct{}
	openIssueFormMsg     struct{ issueID string } // empty issueID creates a new issue
	openProjectFormMsg   struct{}
	closeProjectFormMsg  struct{ projectID string } // empty when cancelled
	openSettingsMsg      struct{}
	closeSettingsMsg     struct{ saved, deleted bool }
	refreshMsg           struct{}
)

type closeIssueFormMsg struct {
	issueID string // empty when cancelled
	created bool
}

// Outbound calls.
type (
	notifyMsg        struct{ req notify.Request }
	notifyResultMsg  struct{ err error }
	signOutMsg       struct{}
	signOutResultMsg struct{ err error }
)
