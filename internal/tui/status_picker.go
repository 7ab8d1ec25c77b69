package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/h0rv/bugsquash/internal/domain"
)

type (
	statusChosenMsg   struct{ statusID string }
	assigneeChosenMsg struct{ userID string }
	pickerClosedMsg   struct{}
)

// statusItem wraps a domain.Status for use in bubbles/list.
type statusItem struct {
	status  domain.Status
	current bool
}

func (i statusItem) FilterValue() string {
	return i.status.Name
}

// statusDelegate renders a status with a swatch of its color.
type statusDelegate struct{}

func (d statusDelegate) Height() int                             { return 1 }
func (d statusDelegate) Spacing() int                            { return 0 }
func (d statusDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d statusDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(statusItem)
	if !ok {
		return
	}

	swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(i.status.Color)).Render("●")
	str := fmt.Sprintf("%d. %s", index+1, i.status.Name)
	if i.current {
		str += " (current)"
	}

	if index == m.Index() {
		fmt.Fprint(w, SelectedItemStyle.Render("> ")+swatch+" "+SelectedItemStyle.Render(str))
	} else {
		fmt.Fprint(w, "  "+swatch+" "+NormalItemStyle.Render(str))
	}
}

// StatusPickerModel lists a project's workflow statuses.
type StatusPickerModel struct {
	list list.Model
}

// NewStatusPickerModel creates a picker with currentID preselected.
func NewStatusPickerModel(statuses []domain.Status, currentID string) StatusPickerModel {
	items := make([]list.Item, len(statuses))
	selected := 0
	for i, st := range statuses {
		items[i] = statusItem{status: st, current: st.ID == currentID}
		if st.ID == currentID {
			selected = i
		}
	}

	l := list.New(items, statusDelegate{}, 40, len(statuses)+4)
	l.Title = "Change Status"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.Styles.Title = TitleStyle
	l.Select(selected)

	return StatusPickerModel{list: l}
}

// Update handles messages and updates the model state.
func (m StatusPickerModel) Update(msg tea.Msg) (StatusPickerModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "esc", "q":
			return m, func() tea.Msg { return pickerClosedMsg{} }
		case "enter":
			if item, ok := m.list.SelectedItem().(statusItem); ok {
				return m, func() tea.Msg { return statusChosenMsg{statusID: item.status.ID} }
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the model.
func (m StatusPickerModel) View() string {
	return m.list.View()
}
