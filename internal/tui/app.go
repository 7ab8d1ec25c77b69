package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/h0rv/bugsquash/internal/notify"
	"github.com/h0rv/bugsquash/internal/store"
)

// footerLines is reserved under every screen for toasts and the loading spinner.
const footerLines = 1

// Options configures the AppModel.
type Options struct {
	CurrentUserID string
	BaseURL       string // Web client base URL used for issue links; may be empty
	Notifier      notify.Notifier
	SignOut       func(ctx context.Context) error
}

// AppModel is the root Bubble Tea model. It keeps a stack of screens; the
// top one receives input and is rendered.
type AppModel struct {
	// Dependencies
	store *store.Store
	ctx   context.Context
	opts  Options

	// Screens, bottom first. The dashboard is always at the bottom.
	screens []tea.Model

	spinner spinner.Model
	toast   string
	pending int // Outbound calls in flight
}

// NewAppModel creates the app starting on the dashboard.
func NewAppModel(ctx context.Context, s *store.Store, opts Options) AppModel {
	if opts.Notifier == nil {
		opts.Notifier = notify.Nop{}
	}

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return AppModel{
		store:   s,
		ctx:     ctx,
		opts:    opts,
		screens: []tea.Model{NewDashboardModel(s, opts.CurrentUserID)},
		spinner: sp,
	}
}

// Init initializes the app model.
func (m AppModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.top().Init())
}

func (m AppModel) top() tea.Model {
	return m.screens[len(m.screens)-1]
}

// push shows next on top of the current screen.
func (m AppModel) push(next tea.Model) (AppModel, tea.Cmd) {
	m.screens = append(m.screens[:len(m.screens):len(m.screens)], next)
	return m, next.Init()
}

// pop closes the top screen and refreshes the one revealed underneath.
func (m AppModel) pop() (AppModel, tea.Cmd) {
	if len(m.screens) > 1 {
		m.screens = m.screens[:len(m.screens)-1]
	}
	return m.refreshTop()
}

// popToRoot returns to the dashboard.
func (m AppModel) popToRoot() (AppModel, tea.Cmd) {
	m.screens = m.screens[:1]
	return m.refreshTop()
}

func (m AppModel) refreshTop() (AppModel, tea.Cmd) {
	var cmd tea.Cmd
	m.screens[len(m.screens)-1], cmd = m.top().Update(refreshMsg{})
	return m, tea.Batch(cmd, tea.WindowSize())
}

// Update handles messages and transitions between screens.
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		m.toast = ""

	case tea.WindowSizeMsg:
		msg.Height -= footerLines
		return m.delegate(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ErrorMsg:
		zap.L().Warn("screen error", zap.Error(msg.Err))
		m.store.Dispatch(store.SetError{Message: msg.Err.Error()})
		return m, nil

	// Navigation

	case backMsg:
		return m.pop()

	case openBoardMsg:
		return m.push(NewBoardModel(m.store, m.opts.CurrentUserID, m.opts.BaseURL))

	case openProjectPickerMsg:
		st := m.store.State()
		counts := make(map[string]int, len(st.Projects))
		for _, issue := range st.Issues {
			counts[issue.ProjectID]++
		}
		return m.push(NewProjectPickerModel(st.Projects, counts, st.CurrentProjectID))

	case ProjectSelectedMsg:
		m.store.Dispatch(store.SetCurrentProject{ProjectID: msg.ProjectID})
		m.screens = m.screens[:len(m.screens)-1]
		if _, ok := m.top().(BoardModel); ok {
			return m.refreshTop()
		}
		return m.push(NewBoardModel(m.store, m.opts.CurrentUserID, m.opts.BaseURL))

	case openDetailMsg:
		return m.push(NewDetailModel(m.store, msg.issueID, m.opts.CurrentUserID, m.opts.BaseURL))

	case closeDetailMsg:
		return m.pop()

	case openIssueFormMsg:
		return m.push(NewIssueFormModel(m.store, msg.issueID, m.opts.CurrentUserID, m.opts.BaseURL))

	case closeIssueFormMsg:
		switch {
		case msg.issueID == "":
		case msg.created:
			m.showToast("Issue created")
		default:
			m.showToast("Issue updated")
		}
		return m.pop()

	case openProjectFormMsg:
		return m.push(NewProjectFormModel(m.store, m.opts.CurrentUserID))

	case closeProjectFormMsg:
		if msg.projectID != "" {
			m.showToast("Project created")
		}
		return m.pop()

	case openSettingsMsg:
		return m.push(NewSettingsModel(m.store))

	case closeSettingsMsg:
		if msg.deleted {
			m.showToast("Project deleted")
			return m.popToRoot()
		}
		if msg.saved {
			m.showToast("Project updated")
		}
		return m.pop()

	// Outbound calls

	case notifyMsg:
		m.begin()
		return m, m.sendNotification(msg.req)

	case notifyResultMsg:
		m.finish()
		if msg.err != nil {
			zap.L().Warn("notification failed", zap.Error(msg.err))
			m.store.Dispatch(store.SetError{Message: "Notification failed: " + msg.err.Error()})
			return m, nil
		}
		m.store.Dispatch(store.SetError{})
		return m, nil

	case signOutMsg:
		if m.opts.SignOut == nil {
			return m, tea.Quit
		}
		m.begin()
		return m, m.signOut()

	case signOutResultMsg:
		m.finish()
		if msg.err != nil {
			zap.L().Warn("sign out failed", zap.Error(msg.err))
			m.store.Dispatch(store.SetError{Message: "Sign out failed: " + msg.err.Error()})
			return m, nil
		}
		return m, tea.Quit
	}

	return m.delegate(msg)
}

// showToast reports a success. It replaces any error still in the footer.
func (m *AppModel) showToast(text string) {
	m.toast = text
	if m.store.State().Error != "" {
		m.store.Dispatch(store.SetError{})
	}
}

// begin and finish bracket an outbound call. Loading stays set until the
// last overlapping call returns.
func (m *AppModel) begin() {
	m.pending++
	if m.pending == 1 {
		m.store.Dispatch(store.SetLoading{Loading: true})
	}
}

func (m *AppModel) finish() {
	if m.pending > 0 {
		m.pending--
	}
	if m.pending == 0 {
		m.store.Dispatch(store.SetLoading{Loading: false})
	}
}

// delegate forwards msg to the top screen.
func (m AppModel) delegate(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.screens[len(m.screens)-1], cmd = m.top().Update(msg)
	return m, cmd
}

func (m AppModel) sendNotification(req notify.Request) tea.Cmd {
	n := m.opts.Notifier
	ctx := m.ctx
	return func() tea.Msg {
		return notifyResultMsg{err: n.Notify(ctx, req)}
	}
}

func (m AppModel) signOut() tea.Cmd {
	signOut := m.opts.SignOut
	ctx := m.ctx
	return func() tea.Msg {
		return signOutResultMsg{err: signOut(ctx)}
	}
}

// View renders the current screen and the footer line.
func (m AppModel) View() string {
	st := m.store.State()

	var footer string
	switch {
	case st.Loading:
		footer = m.spinner.View() + " Working..."
	case st.Error != "":
		footer = ErrorStyle.Render("✗ " + st.Error)
	case m.toast != "":
		footer = SuccessStyle.Render("✓ " + m.toast)
	}

	return m.top().View() + "\n" + footer
}
