package store

import "github.com/h0rv/bugsquash/internal/domain"

// Action is one of the closed set of state transitions accepted by Dispatch.
// The unexported marker keeps the set sealed to this package.
type Action interface {
	isAction()
}

// SetCurrentProject points the current project at ProjectID, or at nothing if it is unknown.
type SetCurrentProject struct{ ProjectID string }

// AddProject appends a fully formed project. The caller supplies a fresh ID.
type AddProject struct{ Project domain.Project }

// UpdateProject replaces the project with the same ID.
type UpdateProject struct{ Project domain.Project }

// DeleteProject removes a project. Its issues are left in place.
type DeleteProject struct{ ProjectID string }

// AddIssue appends a fully formed issue. The caller supplies a fresh ID.
type AddIssue struct{ Issue domain.Issue }

// UpdateIssue replaces the issue with the same ID. The caller bumps UpdatedAt.
type UpdateIssue struct{ Issue domain.Issue }

// DeleteIssue removes an issue together with its comments.
type DeleteIssue struct{ IssueID string }

// MoveIssue sets only the Status of an issue. UpdatedAt is not touched.
type MoveIssue struct {
	IssueID  string
	StatusID string
}

// SetLoading sets the loading flag.
type SetLoading struct{ Loading bool }

// SetError sets the error message. An empty message clears it.
type SetError struct{ Message string }

func (SetCurrentProject) isAction() {}
func (AddProject) isAction()        {}
func (UpdateProject) isAction()     {}
func (DeleteProject) isAction()     {}
func (AddIssue) isAction()          {}
func (UpdateIssue) isAction()       {}
func (DeleteIssue) isAction()       {}
func (MoveIssue) isAction()         {}
func (SetLoading) isAction()        {}
func (SetError) isAction()          {}
