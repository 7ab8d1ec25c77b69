// Package domain defines the BugSquash domain types.
// Entities reference each other by ID only; lookups happen at read time.
package domain

import "time"

// UserRole is the role a user holds in the workspace.
type UserRole string

const (
	RoleAdmin  UserRole = "admin"
	RoleMember UserRole = "member"
)

// IssueType classifies an issue.
type IssueType string

const (
	TypeBug         IssueType = "bug"
	TypeTask        IssueType = "task"
	TypeFeature     IssueType = "feature"
	TypeImprovement IssueType = "improvement"
)

// IssueTypes lists every issue type in display order.
var IssueTypes = []IssueType{TypeBug, TypeTask, TypeFeature, TypeImprovement}

// Valid reports whether t is one of the known issue types.
func (t IssueType) Valid() bool {
	for _, known := range IssueTypes {
		if t == known {
			return true
		}
	}
	return false
}

// Priority is the urgency of an issue.
type Priority string

const (
	PriorityHighest Priority = "highest"
	PriorityHigh    Priority = "high"
	PriorityMedium  Priority = "medium"
	PriorityLow     Priority = "low"
	PriorityLowest  Priority = "lowest"
)

// Priorities lists every priority from most to least urgent.
var Priorities = []Priority{PriorityHighest, PriorityHigh, PriorityMedium, PriorityLow, PriorityLowest}

// Valid reports whether p is one of the known priorities.
func (p Priority) Valid() bool {
	for _, known := range Priorities {
		if p == known {
			return true
		}
	}
	return false
}

// IsHigh reports whether p counts as high priority on the dashboard.
func (p Priority) IsHigh() bool {
	return p == PriorityHighest || p == PriorityHigh
}

// User is a member of the workspace.
type User struct {
	ID        string   `json:"id" yaml:"id"`
	Name      string   `json:"name" yaml:"name"`
	Email     string   `json:"email" yaml:"email"`
	AvatarURL string   `json:"avatarUrl" yaml:"avatarUrl"`
	Role      UserRole `json:"role" yaml:"role"`
}

// Status is one step of a project's workflow. IDs are unique within a project only.
type Status struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"` // Hex color, e.g. "#E0FFE0"
}

// Project groups issues under a short key and owns its workflow.
type Project struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Key         string    `json:"key" yaml:"key"` // Issue-number prefix, e.g. "WEB"
	Description string    `json:"description" yaml:"description"`
	Lead        string    `json:"lead" yaml:"lead"` // User ID
	Statuses    []Status  `json:"statuses" yaml:"statuses"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
}

// StatusByID returns the workflow status with the given ID.
func (p Project) StatusByID(id string) (Status, bool) {
	for _, s := range p.Statuses {
		if s.ID == id {
			return s, true
		}
	}
	return Status{}, false
}

// HasStatus reports whether id is part of the project's workflow.
func (p Project) HasStatus(id string) bool {
	_, ok := p.StatusByID(id)
	return ok
}

// Comment is an immutable note on an issue.
type Comment struct {
	ID        string    `json:"id" yaml:"id"`
	Content   string    `json:"content" yaml:"content"`
	AuthorID  string    `json:"authorId" yaml:"authorId"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
}

// Issue is a unit of work filed against a project.
type Issue struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description" yaml:"description"`
	Type        IssueType `json:"type" yaml:"type"`
	Status      string    `json:"status" yaml:"status"` // Status ID within the owning project
	Priority    Priority  `json:"priority" yaml:"priority"`
	ProjectID   string    `json:"projectId" yaml:"projectId"`
	AssigneeID  string    `json:"assigneeId,omitempty" yaml:"assigneeId,omitempty"` // Empty when unassigned
	ReporterID  string    `json:"reporterId" yaml:"reporterId"`
	Comments    []Comment `json:"comments" yaml:"comments"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// IsAssigned reports whether the issue has an assignee.
func (i Issue) IsAssigned() bool {
	return i.AssigneeID != ""
}

// WithComment returns a copy of the issue with c appended and UpdatedAt set to at.
// The receiver's comment slice is never modified.
func (i Issue) WithComment(c Comment, at time.Time) Issue {
	comments := make([]Comment, 0, len(i.Comments)+1)
	comments = append(comments, i.Comments...)
	i.Comments = append(comments, c)
	i.UpdatedAt = at
	return i
}
