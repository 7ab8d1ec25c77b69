package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/h0rv/bugsquash/internal/domain"
)

// assigneeItem represents a user, or nobody when user.ID is empty.
type assigneeItem struct {
	user    domain.User
	current bool
}

func (i assigneeItem) FilterValue() string { return i.user.Name }

// assigneeItemDelegate handles rendering of assignee items.
type assigneeItemDelegate struct{}

func (d assigneeItemDelegate) Height() int                             { return 1 }
func (d assigneeItemDelegate) Spacing() int                            { return 0 }
func (d assigneeItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d assigneeItemDelegate) Render(w io.Writer, m list.Model, index int, listItem list.Item) {
	i, ok := listItem.(assigneeItem)
	if !ok {
		return
	}

	// Format: name (role)
	str := "Unassigned"
	if i.user.ID != "" {
		str = fmt.Sprintf("%s (%s)", i.user.Name, i.user.Role)
	}
	if i.current {
		str += " *"
	}

	fn := NormalItemStyle.Render
	if index == m.Index() {
		fn = func(s ...string) string {
			return SelectedItemStyle.Render("> " + s[0])
		}
	}

	fmt.Fprint(w, fn(str))
}

// AssigneePickerModel lets the user pick who an issue is assigned to.
type AssigneePickerModel struct {
	list list.Model
}

// NewAssigneePickerModel lists "Unassigned" followed by users.
func NewAssigneePickerModel(users []domain.User, currentID string) AssigneePickerModel {
	items := make([]list.Item, 0, len(users)+1)
	items = append(items, assigneeItem{current: currentID == ""})
	selected := 0
	for i, u := range users {
		items = append(items, assigneeItem{user: u, current: u.ID == currentID})
		if u.ID == currentID {
			selected = i + 1
		}
	}

	l := list.New(items, assigneeItemDelegate{}, 40, len(items)+4)
	l.Title = "Assign To"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.Styles.Title = TitleStyle
	l.Styles.PaginationStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	l.Styles.HelpStyle = HelpStyle
	l.Select(selected)

	return AssigneePickerModel{list: l}
}

// Update handles messages.
func (m AssigneePickerModel) Update(msg tea.Msg) (AssigneePickerModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		switch msg.String() {
		case "enter":
			if item, ok := m.list.SelectedItem().(assigneeItem); ok {
				return m, func() tea.Msg { return assigneeChosenMsg{userID: item.user.ID} }
			}
			return m, nil
		case "q", "esc":
			return m, func() tea.Msg { return pickerClosedMsg{} }
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the model.
func (m AssigneePickerModel) View() string {
	return m.list.View()
}
