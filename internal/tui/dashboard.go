package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/h0rv/bugsquash/internal/domain"
	"github.com/h0rv/bugsquash/internal/store"
)

const recentActivityLimit = 5

var (
	metricValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("252")).
			MarginTop(1)
)

// DashboardModel is the landing screen: metrics, projects and recent activity.
type DashboardModel struct {
	store         *store.Store
	currentUserID string

	keymap   KeyMap
	help     HelpModel
	selected int

	showHelp bool
	width    int
	height   int

	now func() time.Time
}

// NewDashboardModel creates the dashboard.
func NewDashboardModel(s *store.Store, currentUserID string) DashboardModel {
	km := DefaultKeyMap()
	return DashboardModel{
		store:         s,
		currentUserID: currentUserID,
		keymap:        km,
		help:          NewHelpModel("Dashboard", km.Dashboard()),
		now:           time.Now,
	}
}

// Init requests the window size.
func (m DashboardModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages.
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshMsg:
		m.clampSelection()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}
	return m, nil
}

func (m DashboardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch msg.String() {
		case "?", "q", "esc":
			m.showHelp = false
		}
		return m, nil
	}

	if key.Matches(msg, m.keymap.Help) {
		m.showHelp = true
		return m, nil
	}

	projects := m.store.State().Projects

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "j", "down":
		if m.selected < len(projects)-1 {
			m.selected++
		}
	case "k", "up":
		if m.selected > 0 {
			m.selected--
		}
	case "enter":
		if id, ok := m.selectedProjectID(); ok {
			m.store.Dispatch(store.SetCurrentProject{ProjectID: id})
			return m, func() tea.Msg { return openBoardMsg{} }
		}
	case "n":
		return m, func() tea.Msg { return openProjectFormMsg{} }
	case "i":
		return m, func() tea.Msg { return openIssueFormMsg{} }
	case "p":
		return m, func() tea.Msg { return openProjectPickerMsg{} }
	case "s":
		if id, ok := m.selectedProjectID(); ok {
			m.store.Dispatch(store.SetCurrentProject{ProjectID: id})
			return m, func() tea.Msg { return openSettingsMsg{} }
		}
	case "S":
		return m, func() tea.Msg { return signOutMsg{} }
	}
	return m, nil
}

func (m DashboardModel) selectedProjectID() (string, bool) {
	projects := m.store.State().Projects
	if m.selected < 0 || m.selected >= len(projects) {
		return "", false
	}
	return projects[m.selected].ID, true
}

func (m *DashboardModel) clampSelection() {
	n := len(m.store.State().Projects)
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}

// View renders the dashboard.
func (m DashboardModel) View() string {
	width := m.width
	if width == 0 {
		width = 80
	}

	if m.showHelp {
		return TitleStyle.Render("Help") + "\n" + m.help.View(width)
	}

	st := m.store.State()
	var b strings.Builder

	b.WriteString(TitleStyle.Render("BugSquash Dashboard"))
	b.WriteString("\n")
	b.WriteString(m.renderMetrics(st))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Projects"))
	b.WriteString("\n")
	b.WriteString(m.renderProjects(st, width))
	b.WriteString("\n")

	b.WriteString(sectionStyle.Render("Recent Activity"))
	b.WriteString("\n")
	b.WriteString(m.renderRecent(st, width))
	b.WriteString("\n")

	b.WriteString(HelpStyle.Render("enter:board n:new project i:new issue p:projects s:settings S:sign out ?:help q:quit"))
	return b.String()
}

func (m DashboardModel) renderMetrics(st store.State) string {
	mine := 0
	if m.currentUserID != "" {
		mine = len(store.AssignedTo(st, m.currentUserID))
	}
	metric := func(n int, label string) string {
		return metricValueStyle.Render(fmt.Sprintf("%d", n)) + " " + LabelStyle.Render(label)
	}
	return strings.Join([]string{
		metric(mine, "my issues"),
		metric(len(store.HighPriority(st)), "high priority"),
		metric(len(st.Projects), "projects"),
	}, "   ")
}

func (m DashboardModel) renderProjects(st store.State, width int) string {
	if len(st.Projects) == 0 {
		return dimStyle.Render("No projects yet. Press 'n' to create one.")
	}

	nameWidth := width - 40
	if nameWidth < 10 {
		nameWidth = 10
	}

	lines := make([]string, 0, len(st.Projects))
	for i, p := range st.Projects {
		pct := store.Progress(st, p.ID)
		line := fmt.Sprintf("%-6s %-*s %10s %s %3d%%",
			p.Key,
			nameWidth, truncate(p.Name, nameWidth),
			issueCount(len(store.ProjectIssues(st, p.ID))),
			progressBar(pct, 10),
			pct,
		)
		if p.ID == st.CurrentProjectID {
			line += " *"
		}
		if i == m.selected {
			lines = append(lines, SelectedItemStyle.Render("> "+line))
		} else {
			lines = append(lines, NormalItemStyle.Render("  "+line))
		}
	}
	return strings.Join(lines, "\n")
}

func (m DashboardModel) renderRecent(st store.State, width int) string {
	recent := store.RecentlyUpdated(st, recentActivityLimit)
	if len(recent) == 0 {
		return dimStyle.Render("No activity yet.")
	}

	now := m.now()
	lines := make([]string, 0, len(recent))
	for _, issue := range recent {
		issueKey := issue.ID
		status := "Unknown"
		if p, err := store.ProjectByID(st, issue.ProjectID); err == nil {
			issueKey = domain.IssueKey(p, issue)
			if s, ok := p.StatusByID(issue.Status); ok {
				status = s.Name
			}
		}

		meta := fmt.Sprintf("%s · %s · updated %s", issueKey, status, timeAgo(issue.UpdatedAt, now))
		titleWidth := width - lipgloss.Width(meta) - 4
		if titleWidth < 10 {
			titleWidth = 10
		}
		lines = append(lines, "  "+
			priorityStyle(string(issue.Priority)).Render("●")+" "+
			NormalItemStyle.Render(truncate(issue.Title, titleWidth))+"  "+
			dimStyle.Render(meta))
	}
	return strings.Join(lines, "\n")
}
