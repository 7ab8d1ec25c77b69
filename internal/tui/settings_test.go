package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h0rv/bugsquash/internal/domain"
	"github.com/h0rv/bugsquash/internal/store"
)

func pressSettings(t *testing.T, m SettingsModel, keys ...tea.KeyMsg) (SettingsModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var model tea.Model
		model, cmd = m.Update(k)
		m = model.(SettingsModel)
	}
	return m, cmd
}

func tabs(n int) []tea.KeyMsg {
	keys := make([]tea.KeyMsg, n)
	for i := range keys {
		keys[i] = keyType(tea.KeyTab)
	}
	return keys
}

func currentProject(t *testing.T, s *store.Store) domain.Project {
	t.Helper()
	p, ok := store.CurrentProject(s.State())
	require.True(t, ok)
	return p
}

func TestSettingsModel_LoadsCurrentProject(t *testing.T) {
	m := NewSettingsModel(newTestStore(t))

	assert.Equal(t, "Web Application", m.name.Value())
	assert.Equal(t, "WEB", m.key.Value())
	assert.Len(t, m.statuses, 5)

	view := m.View()
	assert.Contains(t, view, "Project Settings: WEB")
	assert.Contains(t, view, "In Review")
}

func TestSettingsModel_EditDetails(t *testing.T) {
	s := newTestStore(t)
	m := NewSettingsModel(s)

	m, _ = pressSettings(t, m, keyRunes(" v2"), keyType(tea.KeyTab), keyRunes("x"))
	assert.Equal(t, "WEBX", m.key.Value(), "key is forced to uppercase")

	_, cmd := pressSettings(t, m, keyType(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	assert.Equal(t, closeSettingsMsg{saved: true}, cmd())

	p := currentProject(t, s)
	assert.Equal(t, "Web Application v2", p.Name)
	assert.Equal(t, "WEBX", p.Key)
}

func TestSettingsModel_AddStatus(t *testing.T) {
	s := newTestStore(t)
	m := NewSettingsModel(s)

	m, _ = pressSettings(t, m, tabs(settingsFieldNewStatus)...)
	m, _ = pressSettings(t, m, keyRunes("Blocked"), keyType(tea.KeyTab), keyRunes("#ff0000"), keyType(tea.KeyEnter))

	require.Len(t, m.statuses, 6)
	assert.Equal(t, domain.Status{ID: "status-6", Name: "Blocked", Color: "#FF0000"}, m.statuses[5])
	assert.Empty(t, m.newStatus.Value())
	assert.Equal(t, settingsFieldNewStatus, m.focus)

	// Nothing is stored until save
	assert.Len(t, currentProject(t, s).Statuses, 5)

	_, cmd := pressSettings(t, m, keyType(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	assert.Equal(t, closeSettingsMsg{saved: true}, cmd())
	assert.Len(t, currentProject(t, s).Statuses, 6)
}

func TestSettingsModel_AddStatusDefaultColor(t *testing.T) {
	m := NewSettingsModel(newTestStore(t))

	m, _ = pressSettings(t, m, tabs(settingsFieldNewStatus)...)
	m, _ = pressSettings(t, m, keyRunes("QA"), keyType(tea.KeyEnter))

	require.Len(t, m.statuses, 6)
	assert.Equal(t, defaultStatusColor, m.statuses[5].Color)
}

func TestSettingsModel_AddStatusValidation(t *testing.T) {
	m := NewSettingsModel(newTestStore(t))

	m, _ = pressSettings(t, m, tabs(settingsFieldNewStatus)...)
	m, _ = pressSettings(t, m, keyType(tea.KeyEnter))
	assert.Equal(t, "Status name is required", m.errorMsg)

	m, _ = pressSettings(t, m, keyRunes("QA"), keyType(tea.KeyTab), keyRunes("red"), keyType(tea.KeyEnter))
	assert.Equal(t, "Color must look like #RRGGBB", m.errorMsg)
	assert.Len(t, m.statuses, 5)
}

func TestSettingsModel_RemoveStatusInUse(t *testing.T) {
	s := newTestStore(t)
	m := NewSettingsModel(s)

	// To Do holds issue-2
	m, _ = pressSettings(t, m, tabs(settingsFieldStatuses)...)
	m, _ = pressSettings(t, m, keyRunes("j"), keyRunes("x"))

	require.Len(t, m.statuses, 4)
	assert.Equal(t, `1 issue(s) use "To Do" and will show as Unknown`, m.warning)
	assert.Contains(t, m.View(), "will show as Unknown")

	_, cmd := pressSettings(t, m, keyType(tea.KeyCtrlS))
	require.NotNil(t, cmd)
	cmd()

	p := currentProject(t, s)
	assert.False(t, p.HasStatus("status-2"))

	// The issue keeps its status and falls into the board's Unknown column
	issue, err := store.IssueByID(s.State(), "issue-2")
	require.NoError(t, err)
	assert.Equal(t, "status-2", issue.Status)
}

func TestSettingsModel_RemoveUnusedStatusNoWarning(t *testing.T) {
	m := NewSettingsModel(newTestStore(t))

	m, _ = pressSettings(t, m, tabs(settingsFieldStatuses)...)
	m, _ = pressSettings(t, m, keyRunes("x")) // Backlog

	assert.Len(t, m.statuses, 4)
	assert.Empty(t, m.warning)
}

func TestSettingsModel_SaveValidation(t *testing.T) {
	s := newTestStore(t)

	t.Run("project fields", func(t *testing.T) {
		m := NewSettingsModel(s)
		m.name.SetValue("  ")
		m.key.SetValue("web")

		m, cmd := pressSettings(t, m, keyType(tea.KeyCtrlS))
		assert.Nil(t, cmd)
		assert.Equal(t, "Project name is required", m.errors["name"])
		assert.Contains(t, m.errors["key"], "uppercase")
		assert.Equal(t, "Web Application", currentProject(t, s).Name)
	})

	t.Run("at least one status", func(t *testing.T) {
		m := NewSettingsModel(s)
		m, _ = pressSettings(t, m, tabs(settingsFieldStatuses)...)
		for range 5 {
			m, _ = pressSettings(t, m, keyRunes("x"))
		}
		require.Empty(t, m.statuses)

		m, cmd := pressSettings(t, m, keyType(tea.KeyCtrlS))
		assert.Nil(t, cmd)
		assert.Equal(t, "A project needs at least one status", m.errorMsg)
		assert.Len(t, currentProject(t, s).Statuses, 5)
	})
}

func TestSettingsModel_DeleteProject(t *testing.T) {
	s := newTestStore(t)
	m := NewSettingsModel(s)

	m, _ = pressSettings(t, m, tabs(settingsFieldStatuses)...)
	m, _ = pressSettings(t, m, keyRunes("D"))
	require.True(t, m.confirmDelete)
	assert.Contains(t, m.View(), `Delete project "Web Application"?`)

	// n cancels
	m, _ = pressSettings(t, m, keyRunes("n"))
	assert.False(t, m.confirmDelete)
	assert.Len(t, s.State().Projects, 2)

	_, cmd := pressSettings(t, m, keyRunes("D"), keyRunes("y"))
	require.NotNil(t, cmd)
	assert.Equal(t, closeSettingsMsg{deleted: true}, cmd())

	st := s.State()
	assert.Len(t, st.Projects, 1)
	assert.Equal(t, "project-2", st.CurrentProjectID)
	assert.Len(t, store.Orphans(st), 3)
}

func TestSettingsModel_Cancel(t *testing.T) {
	s := newTestStore(t)
	m := NewSettingsModel(s)

	m, _ = pressSettings(t, m, keyRunes("zzz"))
	_, cmd := pressSettings(t, m, keyType(tea.KeyEsc))
	require.NotNil(t, cmd)
	assert.Equal(t, closeSettingsMsg{}, cmd())
	assert.Equal(t, "Web Application", currentProject(t, s).Name)
}

func TestSettingsModel_NoProject(t *testing.T) {
	m := NewSettingsModel(store.New(store.State{}))

	assert.Contains(t, m.View(), "No project selected")

	_, cmd := pressSettings(t, m, keyType(tea.KeyEsc))
	require.NotNil(t, cmd)
	assert.Equal(t, closeSettingsMsg{}, cmd())
}
