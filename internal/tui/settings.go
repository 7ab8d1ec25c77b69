package tui

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/h0rv/bugsquash/internal/domain"
	"github.com/h0rv/bugsquash/internal/store"
)

// Settings focus targets in tab order.
const (
	settingsFieldName = iota
	settingsFieldKey
	settingsFieldDescription
	settingsFieldStatuses
	settingsFieldNewStatus
	settingsFieldNewColor
	settingsFieldCount
)

const defaultStatusColor = "#EEEEEE"

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// SettingsModel edits the current project's details and workflow.
// Changes stay in the form until ctrl+s.
type SettingsModel struct {
	store   *store.Store
	project domain.Project

	name        textinput.Model
	key         textinput.Model
	description textinput.Model
	newStatus   textinput.Model
	newColor    textinput.Model

	statuses       []domain.Status // Working copy
	selectedStatus int

	focus         int
	confirmDelete bool
	errors        domain.FieldErrors
	errorMsg      string
	warning       string
}

// NewSettingsModel opens settings for the current project.
func NewSettingsModel(s *store.Store) SettingsModel {
	project, _ := store.CurrentProject(s.State())

	m := SettingsModel{
		store:       s,
		project:     project,
		name:        newFormInput("Project name", 100),
		key:         newFormInput("KEY", 10),
		description: newFormInput("Description", 500),
		newStatus:   newFormInput("New status name", 50),
		newColor:    newFormInput(defaultStatusColor, 7),
		statuses:    append([]domain.Status(nil), project.Statuses...),
	}
	m.name.SetValue(project.Name)
	m.key.SetValue(project.Key)
	m.description.SetValue(project.Description)
	m.name.Focus()
	return m
}

// Init starts the cursor blinking.
func (m SettingsModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *SettingsModel) input(field int) *textinput.Model {
	switch field {
	case settingsFieldName:
		return &m.name
	case settingsFieldKey:
		return &m.key
	case settingsFieldDescription:
		return &m.description
	case settingsFieldNewStatus:
		return &m.newStatus
	case settingsFieldNewColor:
		return &m.newColor
	}
	return nil
}

func (m *SettingsModel) setFocus(field int) {
	if in := m.input(m.focus); in != nil {
		in.Blur()
	}
	m.focus = field
	if in := m.input(m.focus); in != nil {
		in.Focus()
	}
}

// Update handles messages.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	if m.project.ID == "" {
		switch keyMsg.String() {
		case "esc", "q":
			return m, func() tea.Msg { return closeSettingsMsg{} }
		}
		return m, nil
	}

	if m.confirmDelete {
		switch keyMsg.String() {
		case "y", "Y":
			m.store.Dispatch(store.DeleteProject{ProjectID: m.project.ID})
			return m, func() tea.Msg { return closeSettingsMsg{deleted: true} }
		case "n", "N", "esc":
			m.confirmDelete = false
		}
		return m, nil
	}

	switch keyMsg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		return m, func() tea.Msg { return closeSettingsMsg{} }
	case "ctrl+s":
		return m.save()
	case "tab":
		m.setFocus((m.focus + 1) % settingsFieldCount)
		return m, nil
	case "shift+tab":
		m.setFocus((m.focus + settingsFieldCount - 1) % settingsFieldCount)
		return m, nil
	}

	switch m.focus {
	case settingsFieldStatuses:
		m.handleStatusKeys(keyMsg)
		return m, nil
	case settingsFieldNewStatus, settingsFieldNewColor:
		if keyMsg.String() == "enter" {
			m.addStatus()
			return m, nil
		}
	default:
		if keyMsg.String() == "enter" {
			m.setFocus(m.focus + 1)
			return m, nil
		}
	}

	in := m.input(m.focus)
	var cmd tea.Cmd
	*in, cmd = in.Update(keyMsg)
	if m.focus == settingsFieldKey {
		m.key.SetValue(strings.ToUpper(m.key.Value()))
	}
	return m, cmd
}

func (m *SettingsModel) handleStatusKeys(msg tea.KeyMsg) {
	m.warning = ""
	switch msg.String() {
	case "j", "down":
		if m.selectedStatus < len(m.statuses)-1 {
			m.selectedStatus++
		}
	case "k", "up":
		if m.selectedStatus > 0 {
			m.selectedStatus--
		}
	case "x":
		m.removeStatus()
	case "D":
		m.confirmDelete = true
	}
}

// removeStatus drops the selected status from the working copy. Issues still
// using it are left alone and show in the board's Unknown column.
func (m *SettingsModel) removeStatus() {
	if m.selectedStatus >= len(m.statuses) {
		return
	}
	removed := m.statuses[m.selectedStatus]
	m.statuses = append(m.statuses[:m.selectedStatus:m.selectedStatus], m.statuses[m.selectedStatus+1:]...)
	if m.selectedStatus >= len(m.statuses) && m.selectedStatus > 0 {
		m.selectedStatus--
	}

	if n := len(store.IssuesByStatus(m.store.State(), m.project.ID, removed.ID)); n > 0 {
		m.warning = fmt.Sprintf("%d issue(s) use %q and will show as Unknown", n, removed.Name)
	}
}

func (m *SettingsModel) addStatus() {
	m.errorMsg = ""
	name := strings.TrimSpace(m.newStatus.Value())
	if name == "" {
		m.errorMsg = "Status name is required"
		return
	}
	color := strings.TrimSpace(m.newColor.Value())
	if color == "" {
		color = defaultStatusColor
	}
	if !hexColorPattern.MatchString(color) {
		m.errorMsg = "Color must look like #RRGGBB"
		return
	}

	ids := make([]string, len(m.statuses))
	for i, s := range m.statuses {
		ids[i] = s.ID
	}
	m.statuses = append(m.statuses, domain.Status{
		ID:    store.NextID("status", ids),
		Name:  name,
		Color: strings.ToUpper(color),
	})
	m.newStatus.SetValue("")
	m.newColor.SetValue("")
	m.setFocus(settingsFieldNewStatus)
}

func (m SettingsModel) save() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.name.Value())
	key := strings.TrimSpace(m.key.Value())

	m.errors = nil
	m.errorMsg = ""
	if err := domain.ValidateProject(name, key); err != nil {
		var fe domain.FieldErrors
		if errors.As(err, &fe) {
			m.errors = fe
		}
		return m, nil
	}
	if len(m.statuses) == 0 {
		m.errorMsg = "A project needs at least one status"
		return m, nil
	}

	updated := m.project
	updated.Name = name
	updated.Key = key
	updated.Description = strings.TrimSpace(m.description.Value())
	updated.Statuses = append([]domain.Status(nil), m.statuses...)
	m.store.Dispatch(store.UpdateProject{Project: updated})

	return m, func() tea.Msg { return closeSettingsMsg{saved: true} }
}

// View renders the settings screen.
func (m SettingsModel) View() string {
	if m.project.ID == "" {
		return TitleStyle.Render("Project Settings") + "\n" +
			dimStyle.Render("No project selected. Press ESC to go back.")
	}

	var b strings.Builder
	b.WriteString(TitleStyle.Render("Project Settings: " + m.project.Key))
	b.WriteString("\n")

	if m.confirmDelete {
		b.WriteString(warningStyle.Render(fmt.Sprintf("Delete project %q? Its issues are kept but will no longer appear on a board. [Y]delete [N]cancel", m.project.Name)))
		b.WriteString("\n\n")
	}

	label := func(field int, text string) string {
		if field == m.focus {
			return FocusedLabelStyle.Render(fmt.Sprintf("%-12s", text))
		}
		return LabelStyle.Render(fmt.Sprintf("%-12s", text))
	}

	b.WriteString(label(settingsFieldName, "Name") + m.name.View() + "\n")
	if msg, ok := m.errors["name"]; ok {
		b.WriteString(strings.Repeat(" ", 12) + ErrorStyle.Render(msg) + "\n")
	}
	b.WriteString(label(settingsFieldKey, "Key") + m.key.View() + "\n")
	if msg, ok := m.errors["key"]; ok {
		b.WriteString(strings.Repeat(" ", 12) + ErrorStyle.Render(msg) + "\n")
	}
	b.WriteString(label(settingsFieldDescription, "Description") + m.description.View() + "\n\n")

	b.WriteString(label(settingsFieldStatuses, "Statuses") + "\n")
	for i, s := range m.statuses {
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(s.Color)).Render("●")
		line := fmt.Sprintf("%s %s %s", swatch, s.Name, dimStyle.Render(s.Color))
		if m.focus == settingsFieldStatuses && i == m.selectedStatus {
			b.WriteString("  " + SelectedItemStyle.Render("> ") + line + "\n")
		} else {
			b.WriteString("    " + line + "\n")
		}
	}
	if len(m.statuses) == 0 {
		b.WriteString(dimStyle.Render("    (no statuses)") + "\n")
	}
	b.WriteString("\n")

	b.WriteString(label(settingsFieldNewStatus, "Add status") + m.newStatus.View() + "\n")
	b.WriteString(label(settingsFieldNewColor, "Color") + m.newColor.View() + "\n")

	if m.warning != "" {
		b.WriteString("\n" + warningStyle.Render(m.warning) + "\n")
	}
	if m.errorMsg != "" {
		b.WriteString("\n" + ErrorStyle.Render(m.errorMsg) + "\n")
	}

	b.WriteString(HelpStyle.Render("tab: next • enter: add status • x: remove status • D: delete project (on statuses) • ctrl+s: save • esc: cancel"))
	return b.String()
}
