// Package store provides the in-memory state container for BugSquash.
// All changes go through Dispatch with one of a closed set of actions; each dispatch
// is applied synchronously and independently, with no undo and no cross-action transaction.
package store

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var (
	// ErrProjectNotFound indicates the referenced project does not exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrIssueNotFound indicates the referenced issue does not exist.
	ErrIssueNotFound = errors.New("issue not found")
	// ErrUserNotFound indicates the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrStatusNotInProject indicates a status ID outside the issue's project workflow.
	ErrStatusNotInProject = errors.New("status not in project workflow")
)

// Store owns the current State and serializes dispatches.
type Store struct {
	mu      sync.Mutex
	state   State
	initial State

	log         *zap.Logger
	statusCheck bool
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for rejected actions and orphan warnings.
func WithLogger(log *zap.Logger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithStatusCheck toggles rejection of issue actions whose status is not part of
// the issue's project workflow. It is enabled by default.
func WithStatusCheck(enabled bool) Option {
	return func(s *Store) {
		s.statusCheck = enabled
	}
}

// New creates a Store seeded with initial.
func New(initial State, opts ...Option) *Store {
	s := &Store{
		state:       initial,
		initial:     initial,
		log:         zap.NewNop(),
		statusCheck: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Dispatch applies a and returns the new state.
// With the status check enabled, an issue action that fails Check is dropped.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.statusCheck {
		if err := Check(s.state, a); err != nil {
			s.log.Warn("action rejected",
				zap.String("action", actionName(a)),
				zap.Error(err),
			)
			return s.state
		}
	}

	next := Reduce(s.state, a)

	if del, ok := a.(DeleteProject); ok && len(next.Projects) != len(s.state.Projects) {
		if orphans := ProjectIssues(next, del.ProjectID); len(orphans) > 0 {
			s.log.Warn("project deleted with issues still referencing it",
				zap.String("project_id", del.ProjectID),
				zap.Int("orphaned_issues", len(orphans)),
			)
		}
	}

	s.state = next
	return next
}

// Reset restores the snapshot the Store was created with.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = s.initial
}

// Check reports whether a would leave an issue pointing at a status outside its
// project's workflow. Actions that do not change an issue's status or project
// always pass.
func Check(s State, a Action) error {
	switch a := a.(type) {
	case AddIssue:
		return checkIssueStatus(s, a.Issue.ProjectID, a.Issue.Status)
	case UpdateIssue:
		idx, ok := findIssue(s.Issues, a.Issue.ID)
		if !ok {
			// Unknown IDs are a silent no-op in Reduce.
			return nil
		}
		// Issues left on a removed status can still be edited in place.
		cur := s.Issues[idx]
		if cur.ProjectID == a.Issue.ProjectID && cur.Status == a.Issue.Status {
			return nil
		}
		return checkIssueStatus(s, a.Issue.ProjectID, a.Issue.Status)
	case MoveIssue:
		idx, ok := findIssue(s.Issues, a.IssueID)
		if !ok {
			return nil
		}
		return checkIssueStatus(s, s.Issues[idx].ProjectID, a.StatusID)
	}
	return nil
}

func checkIssueStatus(s State, projectID, statusID string) error {
	idx, ok := findProject(s.Projects, projectID)
	if !ok {
		return fmt.Errorf("%w: %s", ErrProjectNotFound, projectID)
	}
	if !s.Projects[idx].HasStatus(statusID) {
		return fmt.Errorf("%w: %s in %s", ErrStatusNotInProject, statusID, projectID)
	}
	return nil
}

func actionName(a Action) string {
	return fmt.Sprintf("%T", a)
}
