package domain

import (
	"regexp"
	"sort"
	"strings"
)

// DoneStatusName is the status name counted as complete for progress.
const DoneStatusName = "Done"

var projectKeyPattern = regexp.MustCompile(`^[A-Z0-9]+$`)

// DefaultStatuses returns the workflow given to newly created projects.
func DefaultStatuses() []Status {
	return []Status{
		{ID: "status-1", Name: "Backlog", Color: "#EEEEEE"},
		{ID: "status-2", Name: "To Do", Color: "#E0E0FF"},
		{ID: "status-3", Name: "In Progress", Color: "#FFF8E0"},
		{ID: "status-4", Name: "In Review", Color: "#E0F8FF"},
		{ID: "status-5", Name: DoneStatusName, Color: "#E0FFE0"},
	}
}

// FieldErrors maps a form field name to its validation message.
type FieldErrors map[string]string

func (e FieldErrors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, e[f])
	}
	return strings.Join(msgs, "; ")
}

// ValidateProject checks the fields a user types when creating or editing a project.
// It returns nil when the input is acceptable.
func ValidateProject(name, key string) error {
	errs := FieldErrors{}

	if strings.TrimSpace(name) == "" {
		errs["name"] = "Project name is required"
	}

	key = strings.TrimSpace(key)
	switch {
	case key == "":
		errs["key"] = "Project key is required"
	case !projectKeyPattern.MatchString(key):
		errs["key"] = "Project key must contain only uppercase letters and numbers"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// IssueKey returns the human-facing key of an issue, e.g. "WEB-3" for issue "issue-3".
func IssueKey(p Project, i Issue) string {
	idx := strings.LastIndex(i.ID, "-")
	if idx < 0 || idx == len(i.ID)-1 {
		return p.Key + "-" + i.ID
	}
	return p.Key + "-" + i.ID[idx+1:]
}
