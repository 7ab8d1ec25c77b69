package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/h0rv/bugsquash/internal/domain"
	"github.com/h0rv/bugsquash/internal/notify"
	"github.com/h0rv/bugsquash/internal/store"
)

// Issue form fields in tab order.
const (
	issueFieldProject = iota
	issueFieldTitle
	issueFieldDescription
	issueFieldType
	issueFieldPriority
	issueFieldStatus
	issueFieldAssignee
	issueFieldCount
)

var issueFieldLabels = [issueFieldCount]string{
	"Project", "Title", "Description", "Type", "Priority", "Status", "Assignee",
}

// IssueFormModel creates a new issue or edits an existing one.
// Input lives in the form until it is saved.
type IssueFormModel struct {
	store         *store.Store
	currentUserID string
	baseURL       string
	now           func() time.Time

	editing  domain.Issue // Zero when creating
	projects []domain.Project
	users    []domain.User

	title       textinput.Model
	description textarea.Model

	focus       int
	projectIdx  int
	typeIdx     int
	priorityIdx int
	statusIdx   int
	assigneeIdx int // 0 is Unassigned, i+1 is users[i]

	errors   map[string]string
	errorMsg string
	width    int
}

// NewIssueFormModel opens the form. An empty issueID creates a new issue in
// the current project.
func NewIssueFormModel(s *store.Store, issueID, currentUserID, baseURL string) IssueFormModel {
	st := s.State()

	ti := textinput.New()
	ti.Placeholder = "Short summary"
	ti.CharLimit = 200
	ti.Prompt = ""

	ta := textarea.New()
	ta.Placeholder = "What happened? What should happen?"
	ta.ShowLineNumbers = false
	ta.SetHeight(5)
	ta.SetWidth(60)

	m := IssueFormModel{
		store:         s,
		currentUserID: currentUserID,
		baseURL:       baseURL,
		now:           time.Now,
		projects:      st.Projects,
		users:         st.Users,
		title:         ti,
		description:   ta,
		priorityIdx:   indexOf(domain.Priorities, domain.PriorityMedium),
		errors:        map[string]string{},
	}

	if issue, err := store.IssueByID(st, issueID); err == nil {
		m.editing = issue
		m.title.SetValue(issue.Title)
		m.description.SetValue(issue.Description)
		m.projectIdx = m.projectIndex(issue.ProjectID)
		m.typeIdx = max(indexOf(domain.IssueTypes, issue.Type), 0)
		m.priorityIdx = max(indexOf(domain.Priorities, issue.Priority), 0)
		m.statusIdx = m.statusIndex(issue.Status)
		m.assigneeIdx = m.assigneeIndex(issue.AssigneeID)
		m.focus = issueFieldTitle
	} else {
		m.projectIdx = m.projectIndex(st.CurrentProjectID)
		if len(m.projects) > 0 {
			m.focus = issueFieldTitle
		}
	}

	m.focusField()
	return m
}

func indexOf[T comparable](items []T, target T) int {
	for i, item := range items {
		if item == target {
			return i
		}
	}
	return -1
}

func (m IssueFormModel) projectIndex(id string) int {
	for i, p := range m.projects {
		if p.ID == id {
			return i
		}
	}
	return 0
}

func (m IssueFormModel) statusIndex(id string) int {
	p, ok := m.project()
	if !ok {
		return 0
	}
	for i, s := range p.Statuses {
		if s.ID == id {
			return i
		}
	}
	return 0
}

func (m IssueFormModel) assigneeIndex(id string) int {
	for i, u := range m.users {
		if u.ID == id {
			return i + 1
		}
	}
	return 0
}

func (m IssueFormModel) isEdit() bool {
	return m.editing.ID != ""
}

func (m IssueFormModel) project() (domain.Project, bool) {
	if m.projectIdx < 0 || m.projectIdx >= len(m.projects) {
		return domain.Project{}, false
	}
	return m.projects[m.projectIdx], true
}

func (m IssueFormModel) status() (domain.Status, bool) {
	p, ok := m.project()
	if !ok || m.statusIdx >= len(p.Statuses) {
		return domain.Status{}, false
	}
	return p.Statuses[m.statusIdx], true
}

func (m IssueFormModel) assigneeID() string {
	if m.assigneeIdx == 0 {
		return ""
	}
	return m.users[m.assigneeIdx-1].ID
}

// Init starts the cursor blinking.
func (m IssueFormModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.WindowSize())
}

// Update handles messages.
func (m IssueFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		if msg.Width > 20 {
			m.description.SetWidth(min(msg.Width-20, 80))
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return m, func() tea.Msg { return closeIssueFormMsg{} }
		case "ctrl+s":
			return m.save()
		case "tab":
			m.focus = (m.focus + 1) % issueFieldCount
			m.focusField()
			return m, nil
		case "shift+tab":
			m.focus = (m.focus + issueFieldCount - 1) % issueFieldCount
			m.focusField()
			return m, nil
		case "enter":
			if m.focus != issueFieldDescription {
				m.focus = (m.focus + 1) % issueFieldCount
				m.focusField()
				return m, nil
			}
		case "left", "right":
			if m.isChoiceField() {
				delta := 1
				if msg.String() == "left" {
					delta = -1
				}
				m.cycle(delta)
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case issueFieldTitle:
		m.title, cmd = m.title.Update(msg)
	case issueFieldDescription:
		m.description, cmd = m.description.Update(msg)
	}
	return m, cmd
}

func (m IssueFormModel) isChoiceField() bool {
	switch m.focus {
	case issueFieldProject, issueFieldType, issueFieldPriority, issueFieldStatus, issueFieldAssignee:
		return true
	}
	return false
}

func wrapIndex(i, delta, n int) int {
	if n == 0 {
		return 0
	}
	return ((i+delta)%n + n) % n
}

func (m *IssueFormModel) cycle(delta int) {
	switch m.focus {
	case issueFieldProject:
		m.projectIdx = wrapIndex(m.projectIdx, delta, len(m.projects))
		// Status IDs are scoped to a project.
		m.statusIdx = 0
	case issueFieldType:
		m.typeIdx = wrapIndex(m.typeIdx, delta, len(domain.IssueTypes))
	case issueFieldPriority:
		m.priorityIdx = wrapIndex(m.priorityIdx, delta, len(domain.Priorities))
	case issueFieldStatus:
		if p, ok := m.project(); ok {
			m.statusIdx = wrapIndex(m.statusIdx, delta, len(p.Statuses))
		}
	case issueFieldAssignee:
		m.assigneeIdx = wrapIndex(m.assigneeIdx, delta, len(m.users)+1)
	}
}

func (m *IssueFormModel) focusField() {
	m.title.Blur()
	m.description.Blur()
	switch m.focus {
	case issueFieldTitle:
		m.title.Focus()
	case issueFieldDescription:
		m.description.Focus()
	}
}

func (m IssueFormModel) validate() map[string]string {
	errs := map[string]string{}
	if strings.TrimSpace(m.title.Value()) == "" {
		errs["title"] = "Title is required"
	}
	if _, ok := m.project(); !ok {
		errs["project"] = "Create a project first"
	}
	if _, ok := m.status(); !ok {
		errs["status"] = "Project has no statuses"
	}
	return errs
}

// save dispatches AddIssue or UpdateIssue and closes the form.
func (m IssueFormModel) save() (tea.Model, tea.Cmd) {
	m.errors = m.validate()
	if len(m.errors) > 0 {
		return m, nil
	}

	project, _ := m.project()
	status, _ := m.status()
	now := m.now()

	issue := m.editing
	previousAssignee := issue.AssigneeID
	issue.Title = strings.TrimSpace(m.title.Value())
	issue.Description = strings.TrimSpace(m.description.Value())
	issue.Type = domain.IssueTypes[m.typeIdx]
	issue.Priority = domain.Priorities[m.priorityIdx]
	issue.ProjectID = project.ID
	issue.Status = status.ID
	issue.AssigneeID = m.assigneeID()
	issue.UpdatedAt = now

	var next store.State
	if m.isEdit() {
		next = m.store.Dispatch(store.UpdateIssue{Issue: issue})
	} else {
		issue.ID = store.NextID("issue", store.IssueIDs(m.store.State()))
		issue.ReporterID = m.currentUserID
		issue.Comments = []domain.Comment{}
		issue.CreatedAt = now
		next = m.store.Dispatch(store.AddIssue{Issue: issue})
	}

	saved, err := store.IssueByID(next, issue.ID)
	if err != nil || saved.Status != issue.Status {
		m.errorMsg = "Issue was rejected by the store"
		return m, nil
	}

	closeMsg := closeIssueFormMsg{issueID: issue.ID, created: !m.isEdit()}
	cmds := []tea.Cmd{func() tea.Msg { return closeMsg }}

	if issue.AssigneeID != "" && issue.AssigneeID != previousAssignee && issue.AssigneeID != m.currentUserID {
		req := notify.Request{
			UserID:  issue.AssigneeID,
			Title:   "You were assigned " + domain.IssueKey(project, issue),
			Content: issue.Title,
			Link:    issueURL(m.baseURL, issue),
		}
		cmds = append(cmds, func() tea.Msg { return notifyMsg{req: req} })
	}

	return m, tea.Batch(cmds...)
}

// View renders the form.
func (m IssueFormModel) View() string {
	var b strings.Builder

	heading := "New Issue"
	if m.isEdit() {
		heading = "Edit Issue"
	}
	b.WriteString(TitleStyle.Render(heading))
	b.WriteString("\n")

	for f := 0; f < issueFieldCount; f++ {
		label := LabelStyle
		marker := "  "
		if f == m.focus {
			label = FocusedLabelStyle
			marker = "> "
		}
		b.WriteString(marker + label.Render(fmt.Sprintf("%-12s", issueFieldLabels[f])))
		b.WriteString(m.fieldView(f))
		if msg, ok := m.errors[strings.ToLower(issueFieldLabels[f])]; ok {
			b.WriteString("  " + ErrorStyle.Render(msg))
		}
		b.WriteString("\n")
	}

	if m.errorMsg != "" {
		b.WriteString("\n" + ErrorStyle.Render(m.errorMsg) + "\n")
	}

	b.WriteString(HelpStyle.Render("tab/shift+tab: field • ←/→: change • ctrl+s: save • esc: cancel"))
	return b.String()
}

func (m IssueFormModel) fieldView(f int) string {
	choice := func(s string) string {
		if f == m.focus {
			return "◀ " + s + " ▶"
		}
		return s
	}

	switch f {
	case issueFieldProject:
		if p, ok := m.project(); ok {
			return choice(p.Key + " - " + p.Name)
		}
		return dimStyle.Render("(no projects)")
	case issueFieldTitle:
		return m.title.View()
	case issueFieldDescription:
		return "\n" + m.description.View()
	case issueFieldType:
		return choice(string(domain.IssueTypes[m.typeIdx]))
	case issueFieldPriority:
		p := domain.Priorities[m.priorityIdx]
		return priorityStyle(string(p)).Render(choice(string(p)))
	case issueFieldStatus:
		if s, ok := m.status(); ok {
			return choice(s.Name)
		}
		return dimStyle.Render("(none)")
	case issueFieldAssignee:
		if m.assigneeIdx == 0 {
			return choice("Unassigned")
		}
		return choice(m.users[m.assigneeIdx-1].Name)
	}
	return ""
}
