package tui

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/h0rv/bugsquash/internal/domain"
	"github.com/h0rv/bugsquash/internal/store"
)

const (
	projectFieldName = iota
	projectFieldKey
	projectFieldDescription
	projectFieldCount
)

// ProjectFormModel creates a project with the default workflow.
type ProjectFormModel struct {
	store         *store.Store
	currentUserID string
	now           func() time.Time

	inputs [projectFieldCount]textinput.Model
	focus  int
	errors domain.FieldErrors
}

func newFormInput(placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Prompt = ""
	return ti
}

// NewProjectFormModel creates an empty project form.
func NewProjectFormModel(s *store.Store, currentUserID string) ProjectFormModel {
	m := ProjectFormModel{
		store:         s,
		currentUserID: currentUserID,
		now:           time.Now,
		inputs: [projectFieldCount]textinput.Model{
			newFormInput("Website Redesign", 100),
			newFormInput("WEB", 10),
			newFormInput("What is this project about?", 500),
		},
	}
	m.inputs[projectFieldName].Focus()
	return m
}

// Init starts the cursor blinking.
func (m ProjectFormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages.
func (m ProjectFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			return m, func() tea.Msg { return closeProjectFormMsg{} }
		case "ctrl+s":
			return m.save()
		case "enter":
			if m.focus == projectFieldCount-1 {
				return m.save()
			}
			m.setFocus(m.focus + 1)
			return m, nil
		case "tab", "down":
			m.setFocus((m.focus + 1) % projectFieldCount)
			return m, nil
		case "shift+tab", "up":
			m.setFocus((m.focus + projectFieldCount - 1) % projectFieldCount)
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	if m.focus == projectFieldKey {
		m.inputs[projectFieldKey].SetValue(strings.ToUpper(m.inputs[projectFieldKey].Value()))
	}
	return m, cmd
}

func (m *ProjectFormModel) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m ProjectFormModel) save() (tea.Model, tea.Cmd) {
	name := strings.TrimSpace(m.inputs[projectFieldName].Value())
	key := strings.TrimSpace(m.inputs[projectFieldKey].Value())

	m.errors = nil
	if err := domain.ValidateProject(name, key); err != nil {
		var fe domain.FieldErrors
		if errors.As(err, &fe) {
			m.errors = fe
		}
		return m, nil
	}

	project := domain.Project{
		ID:          store.NextID("project", store.ProjectIDs(m.store.State())),
		Name:        name,
		Key:         key,
		Description: strings.TrimSpace(m.inputs[projectFieldDescription].Value()),
		Lead:        m.currentUserID,
		Statuses:    domain.DefaultStatuses(),
		CreatedAt:   m.now(),
	}
	m.store.Dispatch(store.AddProject{Project: project})

	return m, func() tea.Msg { return closeProjectFormMsg{projectID: project.ID} }
}

// View renders the form.
func (m ProjectFormModel) View() string {
	var b strings.Builder
	b.WriteString(TitleStyle.Render("Create Project"))
	b.WriteString("\n")

	fields := [projectFieldCount]struct{ label, errKey string }{
		{"Name", "name"},
		{"Key", "key"},
		{"Description", ""},
	}
	for i, f := range fields {
		label := LabelStyle
		if i == m.focus {
			label = FocusedLabelStyle
		}
		b.WriteString(label.Render(fmt.Sprintf("%-12s", f.label)))
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
		if msg, ok := m.errors[f.errKey]; ok && f.errKey != "" {
			b.WriteString(strings.Repeat(" ", 12) + ErrorStyle.Render(msg) + "\n")
		}
	}

	b.WriteString(HelpStyle.Render("Issues in this project will be numbered KEY-1, KEY-2, ...\ntab: next field • ctrl+s: create • esc: cancel"))
	return b.String()
}
