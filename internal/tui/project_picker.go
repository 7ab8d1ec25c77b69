package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/h0rv/bugsquash/internal/domain"
)

// projectItem wraps a domain.Project for use in bubbles/list.
type projectItem struct {
	project domain.Project
	issues  int
}

func (i projectItem) FilterValue() string {
	return i.project.Name + " " + i.project.Key
}

func (i projectItem) Title() string {
	return fmt.Sprintf("%s: %s", i.project.Key, i.project.Name)
}

func (i projectItem) Description() string {
	if i.project.Description == "" {
		return issueCount(i.issues)
	}
	return fmt.Sprintf("%s (%s)", i.project.Description, issueCount(i.issues))
}

// projectDelegate is a custom item delegate for project items.
type projectDelegate struct {
	currentID string
}

func (d projectDelegate) Height() int                             { return 2 }
func (d projectDelegate) Spacing() int                            { return 1 }
func (d projectDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d projectDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(projectItem)
	if !ok {
		return
	}

	str := fmt.Sprintf("%d. %s", index+1, i.Title())
	if i.project.ID == d.currentID {
		str += " (current)"
	}
	desc := i.Description()

	if index == m.Index() {
		fmt.Fprint(w, SelectedItemStyle.Render("> "+str))
		fmt.Fprint(w, "\n  "+NormalItemStyle.Render(desc))
	} else {
		fmt.Fprint(w, NormalItemStyle.Render("  "+str))
		fmt.Fprint(w, "\n  "+lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(desc))
	}
}

// ProjectPickerModel lists the projects so the user can switch the current one.
type ProjectPickerModel struct {
	list list.Model
	err  error
}

// NewProjectPickerModel creates a picker. issueCounts maps project ID to its issue count.
func NewProjectPickerModel(projects []domain.Project, issueCounts map[string]int, currentID string) ProjectPickerModel {
	items := make([]list.Item, len(projects))
	selected := 0
	for i, p := range projects {
		items[i] = projectItem{project: p, issues: issueCounts[p.ID]}
		if p.ID == currentID {
			selected = i
		}
	}

	l := list.New(items, projectDelegate{currentID: currentID}, 80, 20)
	l.Title = "Select a Project"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.Styles.Title = TitleStyle
	l.Select(selected)

	return ProjectPickerModel{
		list: l,
	}
}

// Init initializes the model.
func (m ProjectPickerModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages and updates the model state.
func (m ProjectPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.list.SetWidth(msg.Width - 2)
		m.list.SetHeight(msg.Height - 2)
		return m, nil

	case tea.KeyMsg:
		if m.list.SettingFilter() {
			break
		}
		switch msg.String() {
		case "q", "esc":
			return m, func() tea.Msg { return backMsg{} }
		case "enter":
			if item, ok := m.list.SelectedItem().(projectItem); ok {
				return m, func() tea.Msg {
					return ProjectSelectedMsg{ProjectID: item.project.ID}
				}
			}
		}

	case ErrorMsg:
		m.err = msg.Err
		return m, nil
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the model.
func (m ProjectPickerModel) View() string {
	if len(m.list.Items()) == 0 {
		return TitleStyle.Render("Select a Project") + "\n" +
			dimStyle.Render("No projects yet. Press ESC and then 'n' on the dashboard to create one.")
	}

	view := m.list.View()
	if m.err != nil {
		view += ErrorStyle.Render(fmt.Sprintf("\nError: %v", m.err))
	}
	return view
}
