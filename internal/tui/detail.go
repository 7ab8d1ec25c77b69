package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/h0rv/bugsquash/internal/domain"
	"github.com/h0rv/bugsquash/internal/notify"
	"github.com/h0rv/bugsquash/internal/store"
)

// Layout constants
const (
	leftPanelRatio = 0.35 // Left panel takes 35% of width
	minLeftWidth   = 30
	maxLeftWidth   = 50
	headerHeight   = 1
	footerHeight   = 1
	borderSize     = 2 // Top + bottom border
)

// Detail view styles
var (
	detailTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	detailValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	commentAuthorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("212")).
				Bold(true)

	commentTimeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241"))

	commentBodyStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	panelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240"))

	focusedPanelBorderStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("205"))

	scrollIndicatorStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205"))
)

type pickerKind int

const (
	noPicker pickerKind = iota
	statusPicker
	assigneePicker
)

// DetailModel shows one issue with its metadata on the left and the
// discussion on the right.
type DetailModel struct {
	// Dependencies
	store         *store.Store
	issueID       string
	currentUserID string
	baseURL       string
	now           func() time.Time

	// UI components
	commentInput   textarea.Model
	viewport       viewport.Model
	statusPicker   StatusPickerModel
	assigneePicker AssigneePickerModel

	// State
	picker        pickerKind
	commentMode   bool
	confirmExit   bool // Show "unsaved changes" prompt
	confirmDelete bool
	errorMsg      string
	successMsg    string

	// View dimensions
	width  int
	height int
}

// NewDetailModel creates a detail view for issueID.
func NewDetailModel(s *store.Store, issueID, currentUserID, baseURL string) DetailModel {
	ta := textarea.New()
	ta.Placeholder = "Write your comment here..."
	ta.CharLimit = 65535
	ta.SetHeight(6)
	ta.SetWidth(40) // Will be resized
	ta.ShowLineNumbers = false
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle() // No highlight on cursor line
	ta.FocusedStyle.Base = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("228"))
	ta.BlurredStyle.Base = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240"))

	vp := viewport.New(40, 10) // Will be resized in WindowSizeMsg
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	m := DetailModel{
		store:         s,
		issueID:       issueID,
		currentUserID: currentUserID,
		baseURL:       baseURL,
		now:           time.Now,
		commentInput:  ta,
		viewport:      vp,
	}
	m.updateViewportContent()
	return m
}

// Init initializes the detail model
func (m DetailModel) Init() tea.Cmd {
	return tea.WindowSize()
}

func (m DetailModel) issue() (domain.Issue, bool) {
	issue, err := store.IssueByID(m.store.State(), m.issueID)
	return issue, err == nil
}

// Update handles messages
func (m DetailModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeComponents()
		return m, nil

	case refreshMsg:
		m.updateViewportContent()
		return m, nil

	case statusChosenMsg:
		m.picker = noPicker
		m.changeStatus(msg.statusID)
		return m, nil

	case assigneeChosenMsg:
		m.picker = noPicker
		cmd := m.changeAssignee(msg.userID)
		return m, cmd

	case pickerClosedMsg:
		m.picker = noPicker
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.MouseMsg:
		// Forward mouse events to viewport when not in comment mode
		if !m.commentMode {
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	// Update textarea when in comment mode (for blink, etc.)
	if m.commentMode {
		var cmd tea.Cmd
		m.commentInput, cmd = m.commentInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// resizeComponents calculates and sets component dimensions
func (m *DetailModel) resizeComponents() {
	leftWidth := int(float64(m.width) * leftPanelRatio)
	if leftWidth < minLeftWidth {
		leftWidth = minLeftWidth
	}
	if leftWidth > maxLeftWidth {
		leftWidth = maxLeftWidth
	}

	rightWidth := m.width - leftWidth - 3 // 3 = gap between panels
	if rightWidth < 30 {
		rightWidth = 30
	}

	contentHeight := m.height - headerHeight - footerHeight - borderSize
	if contentHeight < 10 {
		contentHeight = 10
	}

	m.viewport.Width = rightWidth - borderSize - 2 // -2 for padding
	m.viewport.Height = contentHeight - borderSize - 1
	m.commentInput.SetWidth(rightWidth - borderSize - 4)

	m.updateViewportContent()
}

// handleKeyPress processes keyboard input
func (m DetailModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.picker {
	case statusPicker:
		var cmd tea.Cmd
		m.statusPicker, cmd = m.statusPicker.Update(msg)
		return m, cmd
	case assigneePicker:
		var cmd tea.Cmd
		m.assigneePicker, cmd = m.assigneePicker.Update(msg)
		return m, cmd
	}

	if m.confirmDelete {
		switch msg.String() {
		case "y", "Y":
			m.confirmDelete = false
			m.store.Dispatch(store.DeleteIssue{IssueID: m.issueID})
			return m, func() tea.Msg { return closeDetailMsg{} }
		case "n", "N", "esc":
			m.confirmDelete = false
		}
		return m, nil
	}

	// Confirm exit dialog
	if m.confirmExit {
		switch msg.String() {
		case "y", "Y":
			// Discard and exit
			m.confirmExit = false
			m.commentMode = false
			m.commentInput.Reset()
			m.commentInput.Blur()
			return m, func() tea.Msg { return closeDetailMsg{} }
		case "n", "N", "esc":
			// Cancel, stay in comment mode
			m.confirmExit = false
		case "s", "S":
			// Save and exit
			m.confirmExit = false
			notifyCmd := m.saveComment()
			return m, tea.Batch(notifyCmd, func() tea.Msg { return closeDetailMsg{} })
		}
		return m, nil
	}

	// Comment mode - textarea gets all key events except special ones
	if m.commentMode {
		switch msg.String() {
		case "esc":
			if strings.TrimSpace(m.commentInput.Value()) != "" {
				m.confirmExit = true
				return m, nil
			}
			m.commentMode = false
			m.commentInput.Blur()
			return m, nil
		case "ctrl+s":
			cmd := m.saveComment()
			return m, cmd
		default:
			var cmd tea.Cmd
			m.commentInput, cmd = m.commentInput.Update(msg)
			return m, cmd
		}
	}

	issue, ok := m.issue()
	if !ok {
		switch msg.String() {
		case "q", "esc":
			return m, func() tea.Msg { return closeDetailMsg{} }
		}
		return m, nil
	}

	m.errorMsg = ""
	m.successMsg = ""

	switch msg.String() {
	case "q", "esc":
		return m, func() tea.Msg { return closeDetailMsg{} }
	case "o":
		if url := issueURL(m.baseURL, issue); url != "" {
			if err := openURL(url); err != nil {
				m.errorMsg = "Could not open browser: " + err.Error()
			}
		}
	case "c":
		m.commentMode = true
		m.commentInput.Focus()
		return m, textarea.Blink
	case "m":
		project, err := store.ProjectByID(m.store.State(), issue.ProjectID)
		if err != nil {
			m.errorMsg = err.Error()
			return m, nil
		}
		m.statusPicker = NewStatusPickerModel(project.Statuses, issue.Status)
		m.picker = statusPicker
	case "a":
		m.assigneePicker = NewAssigneePickerModel(m.store.State().Users, issue.AssigneeID)
		m.picker = assigneePicker
	case "e":
		return m, func() tea.Msg { return openIssueFormMsg{issueID: issue.ID} }
	case "d":
		m.confirmDelete = true
	case "j", "down":
		m.viewport.LineDown(1)
	case "k", "up":
		m.viewport.LineUp(1)
	case "ctrl+d":
		m.viewport.HalfViewDown()
	case "ctrl+u":
		m.viewport.HalfViewUp()
	case "g":
		m.viewport.GotoTop()
	case "G":
		m.viewport.GotoBottom()
	}

	return m, nil
}

// saveComment appends the typed comment to the issue and asks the assignee
// to be notified.
func (m *DetailModel) saveComment() tea.Cmd {
	content := strings.TrimSpace(m.commentInput.Value())
	if content == "" {
		return nil
	}

	st := m.store.State()
	issue, err := store.IssueByID(st, m.issueID)
	if err != nil {
		m.errorMsg = err.Error()
		return nil
	}

	now := m.now()
	comment := domain.Comment{
		ID:        store.NextID("comment", store.CommentIDs(st)),
		Content:   content,
		AuthorID:  m.currentUserID,
		CreatedAt: now,
	}
	updated := issue.WithComment(comment, now)
	next := m.store.Dispatch(store.UpdateIssue{Issue: updated})
	if got, err := store.IssueByID(next, issue.ID); err != nil || !hasComment(got, comment.ID) {
		// Keep the draft so nothing typed is lost
		m.errorMsg = "Comment was rejected by the store"
		return nil
	}

	m.commentMode = false
	m.commentInput.Reset()
	m.commentInput.Blur()
	m.errorMsg = ""
	m.successMsg = "Comment added"
	m.updateViewportContent()
	m.viewport.GotoBottom()

	return m.notifyAssignee(updated, "New comment on "+m.issueKey(updated), content)
}

func (m *DetailModel) changeStatus(statusID string) {
	issue, ok := m.issue()
	if !ok || issue.Status == statusID {
		return
	}

	issue.Status = statusID
	issue.UpdatedAt = m.now()
	next := m.store.Dispatch(store.UpdateIssue{Issue: issue})

	if got, err := store.IssueByID(next, issue.ID); err != nil || got.Status != statusID {
		m.errorMsg = "Status change rejected"
		return
	}
	m.successMsg = "Status updated"
}

func (m *DetailModel) changeAssignee(userID string) tea.Cmd {
	issue, ok := m.issue()
	if !ok || issue.AssigneeID == userID {
		return nil
	}

	issue.AssigneeID = userID
	issue.UpdatedAt = m.now()
	next := m.store.Dispatch(store.UpdateIssue{Issue: issue})
	if got, err := store.IssueByID(next, issue.ID); err != nil || got.AssigneeID != userID {
		m.errorMsg = "Assignee change rejected"
		return nil
	}
	m.successMsg = "Assignee updated"

	return m.notifyAssignee(issue, "You were assigned "+m.issueKey(issue), issue.Title)
}

func hasComment(issue domain.Issue, commentID string) bool {
	for _, c := range issue.Comments {
		if c.ID == commentID {
			return true
		}
	}
	return false
}

// notifyAssignee returns a command asking the app to notify the issue's
// assignee, or nil when there is nobody else to tell.
func (m DetailModel) notifyAssignee(issue domain.Issue, title, content string) tea.Cmd {
	if !issue.IsAssigned() || issue.AssigneeID == m.currentUserID {
		return nil
	}
	req := notify.Request{
		UserID:  issue.AssigneeID,
		Title:   title,
		Content: content,
		Link:    issueURL(m.baseURL, issue),
	}
	return func() tea.Msg { return notifyMsg{req: req} }
}

func (m DetailModel) issueKey(issue domain.Issue) string {
	project, err := store.ProjectByID(m.store.State(), issue.ProjectID)
	if err != nil {
		return issue.ID
	}
	return domain.IssueKey(project, issue)
}

// View renders the split-screen detail view
func (m DetailModel) View() string {
	width := m.width
	height := m.height
	if width == 0 {
		width = 100
	}
	if height == 0 {
		height = 30
	}

	issue, ok := m.issue()
	if !ok {
		return errorStyle.Render("Issue not found") + "\n" + dimStyle.Render("[q]back")
	}

	leftWidth := int(float64(width) * leftPanelRatio)
	if leftWidth < minLeftWidth {
		leftWidth = minLeftWidth
	}
	if leftWidth > maxLeftWidth {
		leftWidth = maxLeftWidth
	}
	rightWidth := width - leftWidth - 1 // 1 char gap

	contentHeight := height - headerHeight - footerHeight
	if contentHeight < 10 {
		contentHeight = 10
	}

	header := m.renderHeader()

	leftContent := m.renderLeftPanel(issue, leftWidth-borderSize)
	leftPanel := panelBorderStyle.
		Width(leftWidth - borderSize).
		Height(contentHeight - borderSize).
		Render(leftContent)

	rightContent := m.renderRightPanel(issue)
	rightBorder := focusedPanelBorderStyle
	if m.commentMode {
		rightBorder = panelBorderStyle // Unfocus when typing
	}
	rightPanel := rightBorder.
		Width(rightWidth - borderSize).
		Height(contentHeight - borderSize).
		Render(rightContent)

	panels := lipgloss.JoinHorizontal(lipgloss.Top, leftPanel, " ", rightPanel)

	footer := m.renderFooter(width, issue)

	return lipgloss.JoinVertical(lipgloss.Left, header, panels, footer)
}

// renderHeader renders the top help bar
func (m DetailModel) renderHeader() string {
	switch {
	case m.confirmDelete:
		return warningStyle.Render("Delete this issue? [Y]delete [N]cancel")
	case m.confirmExit:
		return warningStyle.Render("Unsaved comment! [Y]discard [N]cancel [S]save and exit")
	case m.commentMode:
		return dimStyle.Render("[Ctrl+S]save [ESC]cancel") + "  " +
			commentAuthorStyle.Render("Writing comment...")
	case m.picker != noPicker:
		return dimStyle.Render("[enter]select [esc]cancel")
	}

	parts := []string{"[q]back", "[c]comment", "[m]status", "[a]assign", "[e]edit", "[d]delete", "[o]open", "[j/k]scroll"}
	return dimStyle.Render(strings.Join(parts, " "))
}

// renderFooter renders the bottom status bar
func (m DetailModel) renderFooter(width int, issue domain.Issue) string {
	var left, right string

	switch {
	case m.successMsg != "":
		left = SuccessStyle.Render("✓ " + m.successMsg)
	case m.errorMsg != "":
		left = errorStyle.Render("✗ " + m.errorMsg)
	case m.commentMode:
		left = fmt.Sprintf("%d chars", len(m.commentInput.Value()))
	}

	if (issue.Description != "" || len(issue.Comments) > 0) && !m.commentMode {
		switch {
		case m.viewport.AtTop():
			right = "TOP"
		case m.viewport.AtBottom():
			right = "END"
		default:
			right = fmt.Sprintf("%d%%", int(m.viewport.ScrollPercent()*100))
		}
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return left + strings.Repeat(" ", padding) + dimStyle.Render(right)
}

// renderLeftPanel renders the issue metadata panel
func (m DetailModel) renderLeftPanel(issue domain.Issue, width int) string {
	st := m.store.State()
	project, projectErr := store.ProjectByID(st, issue.ProjectID)

	var b strings.Builder

	key := issue.ID
	if projectErr == nil {
		key = domain.IssueKey(project, issue)
	}
	b.WriteString(LabelStyle.Render(fmt.Sprintf("%s · %s", key, issue.Type)))
	b.WriteString("\n\n")

	b.WriteString(detailTitleStyle.Render(wordwrap.String(issue.Title, width-2)))
	b.WriteString("\n\n")

	field := func(label, value string, style lipgloss.Style) {
		b.WriteString(LabelStyle.Render(label + ": "))
		b.WriteString(style.Render(truncate(value, width-len(label)-3)))
		b.WriteString("\n")
	}

	projectName := "Unknown"
	status := "Unknown"
	if projectErr == nil {
		projectName = project.Name
		if s, ok := project.StatusByID(issue.Status); ok {
			status = s.Name
		}
	}

	field("Project", projectName, detailValueStyle)
	field("Status", status, detailValueStyle)
	field("Priority", string(issue.Priority), priorityStyle(string(issue.Priority)))
	field("Assignee", m.userName(issue.AssigneeID, "Unassigned"), detailValueStyle)
	field("Reporter", m.userName(issue.ReporterID, "Unknown"), detailValueStyle)

	now := m.now()
	b.WriteString("\n")
	field("Created", formatDate(issue.CreatedAt, now), dimStyle)
	field("Updated", formatDate(issue.UpdatedAt, now), dimStyle)

	return b.String()
}

func (m DetailModel) userName(id, fallback string) string {
	if id == "" {
		return fallback
	}
	u, err := store.UserByID(m.store.State(), id)
	if err != nil {
		return fallback
	}
	return u.Name
}

// renderRightPanel renders the discussion panel, or a picker when one is open.
func (m DetailModel) renderRightPanel(issue domain.Issue) string {
	switch m.picker {
	case statusPicker:
		return m.statusPicker.View()
	case assigneePicker:
		return m.assigneePicker.View()
	}

	var b strings.Builder

	title := "Discussion"
	count := len(issue.Comments)
	if issue.Description != "" {
		count++ // Description is the opening post
	}
	if count > 0 {
		title = fmt.Sprintf("Discussion (%d)", count)
	}

	scrollHint := ""
	if count > 0 && !m.commentMode && m.viewport.TotalLineCount() > m.viewport.Height {
		switch {
		case m.viewport.AtTop():
			scrollHint = " ↓"
		case m.viewport.AtBottom():
			scrollHint = " ↑"
		default:
			scrollHint = " ↕"
		}
	}

	b.WriteString(LabelStyle.Render(title))
	b.WriteString(scrollIndicatorStyle.Render(scrollHint))
	b.WriteString("\n")

	if m.commentMode {
		b.WriteString("\n")
		b.WriteString(commentAuthorStyle.Render("New Comment"))
		b.WriteString("\n\n")
		b.WriteString(m.commentInput.View())
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("Ctrl+S to save • ESC to cancel"))

		if len(issue.Comments) > 0 {
			b.WriteString("\n\n")
			b.WriteString(LabelStyle.Render(fmt.Sprintf("── %d existing comments ──", len(issue.Comments))))
		}
		return b.String()
	}

	if count == 0 {
		b.WriteString("\n")
		b.WriteString(dimStyle.Render("No description or comments"))
		b.WriteString("\n\n")
		b.WriteString(dimStyle.Render("Press 'c' to add a comment"))
		return b.String()
	}

	b.WriteString(m.viewport.View())
	return b.String()
}

// updateViewportContent formats description and comments for viewport display
func (m *DetailModel) updateViewportContent() {
	issue, ok := m.issue()
	if !ok {
		m.viewport.SetContent("")
		return
	}

	wrapWidth := m.viewport.Width - 4
	if wrapWidth < 30 {
		wrapWidth = 30
	}
	now := m.now()

	var b strings.Builder
	hasContent := false

	if issue.Description != "" {
		b.WriteString(commentAuthorStyle.Render(m.userName(issue.ReporterID, "Reporter")))
		b.WriteString(" ")
		b.WriteString(lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")).
			Bold(true).
			Render("OP"))
		b.WriteString(" ")
		b.WriteString(commentTimeStyle.Render(formatDate(issue.CreatedAt, now)))
		b.WriteString("\n")
		b.WriteString(commentBodyStyle.Render(wordwrap.String(issue.Description, wrapWidth)))
		hasContent = true
	}

	for _, c := range issue.Comments {
		if hasContent {
			b.WriteString("\n\n")
			b.WriteString(dimStyle.Render(strings.Repeat("─", min(20, wrapWidth))))
			b.WriteString("\n\n")
		}

		b.WriteString(commentAuthorStyle.Render(m.userName(c.AuthorID, "(deleted)")))
		b.WriteString(" ")
		b.WriteString(commentTimeStyle.Render(formatDate(c.CreatedAt, now)))
		b.WriteString("\n")
		b.WriteString(commentBodyStyle.Render(wordwrap.String(c.Content, wrapWidth)))
		hasContent = true
	}

	m.viewport.SetContent(b.String())
}
