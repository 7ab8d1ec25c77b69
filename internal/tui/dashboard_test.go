package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/h0rv/bugsquash/internal/domain"
	"github.com/h0rv/bugsquash/internal/store"
)

func newTestDashboard(t *testing.T, s *store.Store) DashboardModel {
	t.Helper()
	m := NewDashboardModel(s, "user-3")
	m.now = fixedClock
	m.width = 140
	return m
}

func pressDashboard(t *testing.T, m DashboardModel, keys ...tea.KeyMsg) (DashboardModel, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		var model tea.Model
		model, cmd = m.Update(k)
		m = model.(DashboardModel)
	}
	return m, cmd
}

func TestDashboardModel_View(t *testing.T) {
	m := newTestDashboard(t, newTestStore(t))
	view := m.View()

	// user-3 has issue-1 and issue-4; issue-1 is high and issue-4 highest
	assert.Contains(t, view, "2 my issues")
	assert.Contains(t, view, "2 high priority")
	assert.Contains(t, view, "2 projects")

	assert.Contains(t, view, "Web Application")
	assert.Contains(t, view, "Mobile App")
	assert.Contains(t, view, "3 issues")
	assert.Contains(t, view, "1 issue ")
	assert.NotContains(t, view, "1 issues")

	// Most recent first
	assert.Contains(t, view, "MOB-4 · To Do · updated 1 day ago")
	assert.Contains(t, view, "WEB-1 · In Progress · updated 4 days ago")
}

func TestDashboardModel_ProgressCountsDone(t *testing.T) {
	s := newTestStore(t)
	s.Dispatch(store.MoveIssue{IssueID: "issue-4", StatusID: "status-5"})

	m := newTestDashboard(t, s)
	assert.Contains(t, m.View(), "[██████████] 100%")
}

func TestDashboardModel_UnknownStatusInActivity(t *testing.T) {
	s := newTestStore(t, store.WithStatusCheck(false))
	s.Dispatch(store.AddIssue{Issue: domain.Issue{
		ID: "issue-5", Title: "Lost", ProjectID: "project-2", Status: "status-4",
		Priority: domain.PriorityLow, Type: domain.TypeTask, UpdatedAt: testNow,
	}})

	m := newTestDashboard(t, s)
	assert.Contains(t, m.View(), "MOB-5 · Unknown · updated now")
}

func TestDashboardModel_EnterOpensBoard(t *testing.T) {
	s := newTestStore(t)
	m := newTestDashboard(t, s)

	m, _ = pressDashboard(t, m, keyRunes("j"))
	assert.Equal(t, 1, m.selected)

	// Cannot move past the last project
	m, _ = pressDashboard(t, m, keyRunes("j"))
	assert.Equal(t, 1, m.selected)

	_, cmd := pressDashboard(t, m, keyType(tea.KeyEnter))
	require.NotNil(t, cmd)
	assert.Equal(t, openBoardMsg{}, cmd())
	assert.Equal(t, "project-2", s.State().CurrentProjectID)
}

func TestDashboardModel_SettingsSelectsProject(t *testing.T) {
	s := newTestStore(t)
	m := newTestDashboard(t, s)

	_, cmd := pressDashboard(t, m, keyRunes("j"), keyRunes("s"))
	require.NotNil(t, cmd)
	assert.Equal(t, openSettingsMsg{}, cmd())
	assert.Equal(t, "project-2", s.State().CurrentProjectID)
}

func TestDashboardModel_ScreenKeys(t *testing.T) {
	tests := []struct {
		key  string
		want tea.Msg
	}{
		{"n", openProjectFormMsg{}},
		{"i", openIssueFormMsg{}},
		{"p", openProjectPickerMsg{}},
		{"S", signOutMsg{}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			m := newTestDashboard(t, newTestStore(t))
			_, cmd := pressDashboard(t, m, keyRunes(tt.key))
			require.NotNil(t, cmd)
			assert.Equal(t, tt.want, cmd())
		})
	}
}

func TestDashboardModel_Empty(t *testing.T) {
	m := newTestDashboard(t, store.New(store.State{}))

	view := m.View()
	assert.Contains(t, view, "No projects yet")
	assert.Contains(t, view, "No activity yet")

	_, cmd := pressDashboard(t, m, keyType(tea.KeyEnter))
	assert.Nil(t, cmd)
}

func TestDashboardModel_RefreshClampsSelection(t *testing.T) {
	s := newTestStore(t)
	m := newTestDashboard(t, s)
	m, _ = pressDashboard(t, m, keyRunes("j"))

	s.Dispatch(store.DeleteProject{ProjectID: "project-2"})
	model, _ := m.Update(refreshMsg{})
	m = model.(DashboardModel)

	assert.Equal(t, 0, m.selected)
}

func TestDashboardModel_HelpOverlay(t *testing.T) {
	m := newTestDashboard(t, newTestStore(t))

	m, _ = pressDashboard(t, m, keyRunes("?"))
	view := m.View()
	assert.Contains(t, view, "Dashboard keys")
	assert.Contains(t, view, "new project")
	assert.Contains(t, view, "sign out")

	// Keys are swallowed while help is open
	m, cmd := pressDashboard(t, m, keyRunes("n"))
	assert.Nil(t, cmd)

	m, _ = pressDashboard(t, m, keyType(tea.KeyEsc))
	assert.NotContains(t, m.View(), "Dashboard keys")
}
