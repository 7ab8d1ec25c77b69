package store

import "github.com/h0rv/bugsquash/internal/domain"

// State is an immutable snapshot of the tracker.
// Collections are insertion ordered. Reduce never mutates a State it was given.
type State struct {
	Projects         []domain.Project
	Issues           []domain.Issue
	Users            []domain.User
	CurrentProjectID string // Empty when no project is current
	Loading          bool
	Error            string // Empty when no error is set
}

// Reduce applies a to s and returns the resulting state.
// Actions that reference an unknown ID leave the state unchanged.
func Reduce(s State, a Action) State {
	switch a := a.(type) {
	case SetCurrentProject:
		s.CurrentProjectID = ""
		if _, ok := findProject(s.Projects, a.ProjectID); ok {
			s.CurrentProjectID = a.ProjectID
		}

	case AddProject:
		s.Projects = appendCopy(s.Projects, a.Project)

	case UpdateProject:
		s.Projects = replaceByID(s.Projects, a.Project, func(p domain.Project) string { return p.ID })

	case DeleteProject:
		s.Projects = removeByID(s.Projects, a.ProjectID, func(p domain.Project) string { return p.ID })
		if s.CurrentProjectID == a.ProjectID {
			s.CurrentProjectID = ""
			if len(s.Projects) > 0 {
				s.CurrentProjectID = s.Projects[0].ID
			}
		}

	case AddIssue:
		s.Issues = appendCopy(s.Issues, a.Issue)

	case UpdateIssue:
		s.Issues = replaceByID(s.Issues, a.Issue, func(i domain.Issue) string { return i.ID })

	case DeleteIssue:
		s.Issues = removeByID(s.Issues, a.IssueID, func(i domain.Issue) string { return i.ID })

	case MoveIssue:
		idx, ok := findIssue(s.Issues, a.IssueID)
		if !ok {
			return s
		}
		moved := s.Issues[idx]
		moved.Status = a.StatusID
		s.Issues = replaceAt(s.Issues, idx, moved)

	case SetLoading:
		s.Loading = a.Loading

	case SetError:
		s.Error = a.Message
	}

	return s
}

func appendCopy[T any](items []T, item T) []T {
	out := make([]T, 0, len(items)+1)
	out = append(out, items...)
	return append(out, item)
}

func replaceAt[T any](items []T, idx int, item T) []T {
	out := make([]T, len(items))
	copy(out, items)
	out[idx] = item
	return out
}

// replaceByID returns items with the entry matching item's ID swapped for item.
// The original slice is returned when nothing matches.
func replaceByID[T any](items []T, item T, id func(T) string) []T {
	target := id(item)
	for i := range items {
		if id(items[i]) == target {
			return replaceAt(items, i, item)
		}
	}
	return items
}

// removeByID returns items without entries whose ID equals target.
// The original slice is returned when nothing matches.
func removeByID[T any](items []T, target string, id func(T) string) []T {
	found := false
	for i := range items {
		if id(items[i]) == target {
			found = true
			break
		}
	}
	if !found {
		return items
	}

	out := make([]T, 0, len(items)-1)
	for _, item := range items {
		if id(item) != target {
			out = append(out, item)
		}
	}
	return out
}

func findProject(projects []domain.Project, id string) (int, bool) {
	for i := range projects {
		if projects[i].ID == id {
			return i, true
		}
	}
	return -1, false
}

func findIssue(issues []domain.Issue, id string) (int, bool) {
	for i := range issues {
		if issues[i].ID == id {
			return i, true
		}
	}
	return -1, false
}
