package store

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/h0rv/bugsquash/internal/domain"
)

// ProjectByID returns the project with the given ID.
func ProjectByID(s State, id string) (domain.Project, error) {
	idx, ok := findProject(s.Projects, id)
	if !ok {
		return domain.Project{}, fmt.Errorf("%w: %s", ErrProjectNotFound, id)
	}
	return s.Projects[idx], nil
}

// IssueByID returns the issue with the given ID.
func IssueByID(s State, id string) (domain.Issue, error) {
	idx, ok := findIssue(s.Issues, id)
	if !ok {
		return domain.Issue{}, fmt.Errorf("%w: %s", ErrIssueNotFound, id)
	}
	return s.Issues[idx], nil
}

// UserByID returns the user with the given ID.
func UserByID(s State, id string) (domain.User, error) {
	for _, u := range s.Users {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("%w: %s", ErrUserNotFound, id)
}

// CurrentProject returns the current project, if any.
func CurrentProject(s State) (domain.Project, bool) {
	if s.CurrentProjectID == "" {
		return domain.Project{}, false
	}
	idx, ok := findProject(s.Projects, s.CurrentProjectID)
	if !ok {
		return domain.Project{}, false
	}
	return s.Projects[idx], true
}

// ProjectIssues returns the issues filed against projectID in insertion order.
func ProjectIssues(s State, projectID string) []domain.Issue {
	var out []domain.Issue
	for _, i := range s.Issues {
		if i.ProjectID == projectID {
			out = append(out, i)
		}
	}
	return out
}

// IssuesByStatus returns the issues of projectID whose status is statusID.
func IssuesByStatus(s State, projectID, statusID string) []domain.Issue {
	var out []domain.Issue
	for _, i := range s.Issues {
		if i.ProjectID == projectID && i.Status == statusID {
			out = append(out, i)
		}
	}
	return out
}

// Progress returns the rounded percentage of a project's issues whose status is named "Done".
// A project without issues is at 0.
func Progress(s State, projectID string) int {
	p, err := ProjectByID(s, projectID)
	if err != nil {
		return 0
	}

	issues := ProjectIssues(s, projectID)
	if len(issues) == 0 {
		return 0
	}

	done := 0
	for _, i := range issues {
		if st, ok := p.StatusByID(i.Status); ok && st.Name == domain.DoneStatusName {
			done++
		}
	}
	return int(math.Floor(float64(done)*100/float64(len(issues)) + 0.5))
}

// RecentlyUpdated returns up to n issues ordered by UpdatedAt, newest first.
func RecentlyUpdated(s State, n int) []domain.Issue {
	issues := make([]domain.Issue, len(s.Issues))
	copy(issues, s.Issues)
	sort.SliceStable(issues, func(a, b int) bool {
		return issues[a].UpdatedAt.After(issues[b].UpdatedAt)
	})
	if n >= 0 && len(issues) > n {
		issues = issues[:n]
	}
	return issues
}

// AssignedTo returns the issues assigned to userID.
func AssignedTo(s State, userID string) []domain.Issue {
	var out []domain.Issue
	for _, i := range s.Issues {
		if userID != "" && i.AssigneeID == userID {
			out = append(out, i)
		}
	}
	return out
}

// HighPriority returns issues with highest or high priority.
func HighPriority(s State) []domain.Issue {
	var out []domain.Issue
	for _, i := range s.Issues {
		if i.Priority.IsHigh() {
			out = append(out, i)
		}
	}
	return out
}

// Orphans returns issues whose project no longer exists.
func Orphans(s State) []domain.Issue {
	var out []domain.Issue
	for _, i := range s.Issues {
		if _, ok := findProject(s.Projects, i.ProjectID); !ok {
			out = append(out, i)
		}
	}
	return out
}

// NextID returns prefix-N where N is one more than the largest numeric suffix
// among existing IDs sharing the prefix.
func NextID(prefix string, existing []string) string {
	highest := 0
	for _, id := range existing {
		rest, ok := strings.CutPrefix(id, prefix+"-")
		if !ok {
			continue
		}
		if n, err := strconv.Atoi(rest); err == nil && n > highest {
			highest = n
		}
	}
	return prefix + "-" + strconv.Itoa(highest+1)
}

// ProjectIDs returns the IDs of all projects.
func ProjectIDs(s State) []string {
	ids := make([]string, len(s.Projects))
	for i, p := range s.Projects {
		ids[i] = p.ID
	}
	return ids
}

// IssueIDs returns the IDs of all issues.
func IssueIDs(s State) []string {
	ids := make([]string, len(s.Issues))
	for i, issue := range s.Issues {
		ids[i] = issue.ID
	}
	return ids
}

// CommentIDs returns the IDs of every comment on every issue.
func CommentIDs(s State) []string {
	var ids []string
	for _, issue := range s.Issues {
		for _, c := range issue.Comments {
			ids = append(ids, c.ID)
		}
	}
	return ids
}
