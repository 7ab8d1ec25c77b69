package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/pkg/browser"

	"github.com/h0rv/bugsquash/internal/domain"
	"github.com/h0rv/bugsquash/internal/store"
)

// Layout constants
const (
	minColumnWidth = 20
	maxColumnWidth = 35
	headerLines    = 1  // Single header line with title + status
	pageJumpSize   = 10 // Number of items to jump with Ctrl+D/U
)

// unknownColumnKey collects issues whose status is not in the project workflow.
const unknownColumnKey = "__unknown__"

// Styles for the board view - base styles without width/height (set dynamically)
var (
	columnHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("205"))

	cardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	selectedCardStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)

	statusBarStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	moveModeStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("205")).
			Foreground(lipgloss.Color("0")).
			Padding(0, 1)
)

// openURL is swapped out in tests.
var openURL = browser.OpenURL

// BoardModel is the kanban board of the current project.
type BoardModel struct {
	// Dependencies
	store         *store.Store
	currentUserID string
	baseURL       string

	// UI components
	keymap      KeyMap
	help        HelpModel
	filterInput textinput.Model

	// Board state
	projectID      string
	columns        []string            // Status IDs in workflow order, then unknownColumnKey
	columnNames    map[string]string   // Column ID -> display name
	filteredCards  map[string][]string // Column ID -> issue IDs
	selectedColumn int                 // Currently selected column
	columnOffset   int                 // Horizontal scroll offset (first visible column index)
	selectedCard   map[string]int      // Column ID -> selected card index
	scrollOffset   map[string]int      // Column ID -> scroll offset

	// View state
	width        int
	height       int
	showHelp     bool
	filterMode   bool
	filterText   string
	filterMyOnly bool // Toggle to show only issues assigned to the current user
	moveMode     bool
	errorToast   string
	infoToast    string
}

// NewBoardModel creates a board for the store's current project.
func NewBoardModel(s *store.Store, currentUserID, baseURL string) BoardModel {
	ti := textinput.New()
	ti.Placeholder = "Filter..."
	ti.Prompt = "/ "

	km := DefaultKeyMap()
	m := BoardModel{
		store:         s,
		currentUserID: currentUserID,
		baseURL:       baseURL,
		keymap:        km,
		help:          NewHelpModel("Board", km.Board()),
		filterInput:   ti,
		columns:       []string{},
		columnNames:   make(map[string]string),
		filteredCards: make(map[string][]string),
		selectedCard:  make(map[string]int),
		scrollOffset:  make(map[string]int),
	}
	m.rebuildColumns()
	m.applyFilter()
	return m
}

// Init requests the window size so the first render fits the terminal.
func (m BoardModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update handles messages
func (m BoardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshMsg:
		(&m).rebuildColumns()
		(&m).applyFilter()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	}

	return m, nil
}

// handleKeyPress processes keyboard input
func (m BoardModel) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Help overlay
	if m.showHelp {
		if msg.String() == "?" || msg.String() == "q" || msg.String() == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	// Filter mode
	if m.filterMode {
		switch msg.String() {
		case "enter":
			m.filterMode = false
			m.filterText = m.filterInput.Value()
			(&m).applyFilter()
			return m, nil
		case "esc":
			m.filterMode = false
			m.filterInput.SetValue(m.filterText)
			return m, nil
		default:
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			return m, cmd
		}
	}

	// Move mode
	if m.moveMode {
		return m.handleMoveMode(msg)
	}

	m.errorToast = ""
	m.infoToast = ""

	if key.Matches(msg, m.keymap.Help) {
		m.showHelp = true
		return m, nil
	}

	// Normal navigation
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "esc":
		return m, func() tea.Msg { return backMsg{} }
	case "/":
		m.filterMode = true
		m.filterInput.Focus()
	case "h", "left":
		if m.selectedColumn > 0 {
			m.selectedColumn--
			(&m).adjustColumnScroll()
		}
	case "l", "right":
		if m.selectedColumn < len(m.columns)-1 {
			m.selectedColumn++
			(&m).adjustColumnScroll()
		}
	case "j", "down":
		(&m).moveCardSelection(1)
	case "k", "up":
		(&m).moveCardSelection(-1)
	case "g":
		// Go to top of current column (vim: gg)
		(&m).jumpToCard(0)
	case "G":
		// Go to bottom of current column (vim: G)
		(&m).jumpToCard(-1)
	case "ctrl+d":
		(&m).moveCardSelection(pageJumpSize)
	case "ctrl+u":
		(&m).moveCardSelection(-pageJumpSize)
	case "m":
		if _, ok := m.getSelectedIssue(); ok {
			m.moveMode = true
		}
	case "o":
		if issue, ok := m.getSelectedIssue(); ok {
			if url := issueURL(m.baseURL, issue); url != "" {
				if err := openURL(url); err != nil {
					return m, func() tea.Msg { return ErrorMsg{Err: err} }
				}
			}
		}
	case "a":
		m.filterMyOnly = !m.filterMyOnly
		(&m).applyFilter()
	case "n":
		return m, func() tea.Msg { return openIssueFormMsg{} }
	case "s":
		return m, func() tea.Msg { return openSettingsMsg{} }
	case "p":
		return m, func() tea.Msg { return openProjectPickerMsg{} }
	case "enter":
		if issue, ok := m.getSelectedIssue(); ok {
			return m, func() tea.Msg { return openDetailMsg{issueID: issue.ID} }
		}
	}

	return m, nil
}

// handleMoveMode handles key presses in move mode
func (m BoardModel) handleMoveMode(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.moveMode = false
		return m, nil
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(msg.Runes[0] - '1')
		// The unknown column is not a move target.
		if idx >= 0 && idx < len(m.columns) && m.columns[idx] != unknownColumnKey {
			(&m).moveIssueToColumn(m.columns[idx])
		}
	}
	return m, nil
}

// View renders the board - fills entire terminal exactly
func (m BoardModel) View() string {
	// Use sensible defaults if dimensions not yet set
	width := m.width
	height := m.height
	if width == 0 {
		width = 80
	}
	if height == 0 {
		height = 24
	}

	var sections []string

	// === HEADER (title + status) ===
	sections = append(sections, m.renderHeader(width))

	// === SECOND HEADER LINE (navigation hints + position) ===
	sections = append(sections, m.renderSecondHeader(width))

	// === FILTER INPUT (if active) ===
	if m.filterMode {
		sections = append(sections, m.filterInput.View())
	}

	// === MOVE MODE BANNER ===
	if m.moveMode {
		moveBar := moveModeStyle.Render("MOVE") + " Press 1-9 to select column, ESC to cancel"
		sections = append(sections, moveBar)
	}

	boardHeight := height - 2 // header + second header
	if m.filterMode {
		boardHeight--
	}
	if m.moveMode {
		boardHeight--
	}
	if boardHeight < 5 {
		boardHeight = 5
	}

	// === MAIN CONTENT ===
	var mainContent string
	switch {
	case m.showHelp:
		helpLines := strings.Split(m.help.View(width), "\n")
		if len(helpLines) > boardHeight {
			helpLines = helpLines[:boardHeight]
		}
		mainContent = strings.Join(helpLines, "\n")
	case m.projectID == "":
		emptyMsg := "No project selected. Press 'p' to pick one or ESC to go back."
		mainContent = lipgloss.Place(width, boardHeight, lipgloss.Center, lipgloss.Center, emptyMsg)
	default:
		mainContent = m.renderBoard(width, boardHeight)
	}
	sections = append(sections, mainContent)

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderSecondHeader renders navigation hints and position info
func (m BoardModel) renderSecondHeader(width int) string {
	left := "h/l:col j/k:card m:move n:new enter:view esc:back"

	right := ""
	switch {
	case m.errorToast != "":
		right = errorStyle.Render(m.errorToast)
	case m.infoToast != "":
		right = SuccessStyle.Render(m.infoToast)
	case len(m.columns) > 0:
		colID := m.columns[m.selectedColumn]
		cards := m.filteredCards[colID]

		colPos := fmt.Sprintf("col %d/%d", m.selectedColumn+1, len(m.columns))
		if len(cards) > 0 {
			right = fmt.Sprintf("%s | card %d/%d", colPos, m.selectedCard[colID]+1, len(cards))
		} else {
			right = colPos
		}
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if padding < 1 {
		padding = 1
	}

	return dimStyle.Render(left) + strings.Repeat(" ", padding) + right
}

// renderHeader renders a single header line with title on left and status on right
func (m BoardModel) renderHeader(width int) string {
	project, err := store.ProjectByID(m.store.State(), m.projectID)
	if err != nil {
		return titleStyle.Render("BugSquash")
	}

	title := fmt.Sprintf("%s - %s", project.Key, project.Name)

	var statusParts []string

	total := 0
	for _, cards := range m.filteredCards {
		total += len(cards)
	}
	statusParts = append(statusParts, issueCount(total))

	if m.filterMyOnly {
		statusParts = append(statusParts, "@me")
	}
	if m.filterText != "" {
		statusParts = append(statusParts, fmt.Sprintf("/%s", m.filterText))
	}
	statusParts = append(statusParts, "[a]@me [?]help")

	status := strings.Join(statusParts, " | ")

	padding := width - lipgloss.Width(title) - lipgloss.Width(status) - 2
	if padding < 1 {
		padding = 1
	}

	return titleStyle.Render(title) + strings.Repeat(" ", padding) + statusBarStyle.Render(status)
}

// renderBoard renders the kanban columns within the given dimensions.
// Columns scroll horizontally when they overflow.
func (m BoardModel) renderBoard(totalWidth, totalHeight int) string {
	numCols := len(m.columns)
	if numCols == 0 {
		return ""
	}

	// lipgloss Border adds 2 lines (top + bottom) to the content height
	colContentHeight := totalHeight - 2
	if colContentHeight < 3 {
		colContentHeight = 3
	}

	maxVisibleCols := totalWidth / minColumnWidth
	if maxVisibleCols < 1 {
		maxVisibleCols = 1
	}

	visibleCols := maxVisibleCols
	if visibleCols > numCols {
		visibleCols = numCols
	}

	colWidth := totalWidth / visibleCols
	if colWidth > maxColumnWidth {
		colWidth = maxColumnWidth
	}
	if colWidth < minColumnWidth {
		colWidth = minColumnWidth
	}

	// Content width inside column (2 border + 2 padding)
	innerWidth := colWidth - 4
	if innerWidth < 10 {
		innerWidth = 10
	}

	maxCardLines := colContentHeight - 1
	if maxCardLines < 1 {
		maxCardLines = 1
	}

	startCol := m.columnOffset
	endCol := startCol + visibleCols
	if endCol > numCols {
		endCol = numCols
		startCol = endCol - visibleCols
		if startCol < 0 {
			startCol = 0
		}
	}

	columnViews := make([]string, 0, visibleCols+2)

	if startCol > 0 {
		columnViews = append(columnViews, scrollIndicator("◀", colContentHeight+2))
	}

	for i := startCol; i < endCol; i++ {
		colID := m.columns[i]
		columnViews = append(columnViews, m.renderColumn(colID, i == m.selectedColumn, colWidth, colContentHeight, innerWidth, maxCardLines, i+1))
	}

	if endCol < numCols {
		columnViews = append(columnViews, scrollIndicator("▶", colContentHeight+2))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, columnViews...)
}

func scrollIndicator(arrow string, height int) string {
	return lipgloss.NewStyle().
		Width(2).
		Height(height).
		Foreground(lipgloss.Color("205")).
		Align(lipgloss.Center, lipgloss.Center).
		Render(arrow)
}

// renderColumn renders a single column with proper sizing.
// innerHeight excludes the border; maxCardLines excludes the header.
func (m BoardModel) renderColumn(colID string, selected bool, width, innerHeight, innerWidth, maxCardLines, colNum int) string {
	cards := m.filteredCards[colID]
	name := m.columnNames[colID]

	// Header: [N] Name (count). The unknown column has no move number.
	headerText := fmt.Sprintf("[%d] %s (%d)", colNum, name, len(cards))
	if colID == unknownColumnKey {
		headerText = fmt.Sprintf("%s (%d)", name, len(cards))
	}
	headerText = truncate(headerText, innerWidth)

	scrollOffset := m.scrollOffset[colID]
	selectedIdx := m.selectedCard[colID]

	cardSlots := maxCardLines - 1
	if cardSlots < 1 {
		cardSlots = 1
	}

	needUpIndicator := scrollOffset > 0
	needDownIndicator := false

	availableSlots := cardSlots
	if needUpIndicator {
		availableSlots--
	}

	endIdx := scrollOffset + availableSlots
	if endIdx > len(cards) {
		endIdx = len(cards)
	}

	if endIdx < len(cards) {
		needDownIndicator = true
		availableSlots--
		endIdx = scrollOffset + availableSlots
		if endIdx > len(cards) {
			endIdx = len(cards)
		}
	}

	var lines []string
	lines = append(lines, columnHeaderStyle.Render(headerText))

	if needUpIndicator {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("↑ %d more", scrollOffset)))
	}

	st := m.store.State()
	project, _ := store.ProjectByID(st, m.projectID)
	for i := scrollOffset; i < endIdx; i++ {
		issue, err := store.IssueByID(st, cards[i])
		if err != nil {
			continue
		}

		cardText := m.formatCardText(project, issue, innerWidth-3) // 3 for "> " or "  " prefix
		if selected && i == selectedIdx {
			lines = append(lines, selectedCardStyle.Render("> "+cardText))
		} else {
			lines = append(lines, cardStyle.Render("  "+cardText))
		}
	}

	remaining := len(cards) - endIdx
	if needDownIndicator && remaining > 0 {
		lines = append(lines, dimStyle.Render(fmt.Sprintf("↓ %d more", remaining)))
	}

	if len(cards) == 0 {
		lines = append(lines, dimStyle.Render("(empty)"))
	}

	content := strings.Join(lines, "\n")

	borderColor := lipgloss.Color("240")
	if selected {
		borderColor = lipgloss.Color("205")
	}

	// Width includes border (2) + padding (2). Height is the content area;
	// MaxHeight would truncate the border.
	colStyle := lipgloss.NewStyle().
		Width(width - 2).
		Height(innerHeight).
		Padding(0, 1).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor)

	return colStyle.Render(content)
}

// formatCardText formats an issue for display with max width.
// The issue key is right-aligned.
func (m BoardModel) formatCardText(project domain.Project, issue domain.Issue, maxWidth int) string {
	title := issue.Title
	if issue.Priority.IsHigh() {
		title = "! " + title
	}
	suffix := domain.IssueKey(project, issue)

	suffixLen := lipgloss.Width(suffix)
	availableForTitle := maxWidth - suffixLen - 1
	if availableForTitle < 5 {
		availableForTitle = 5
	}
	title = truncate(title, availableForTitle)

	padding := maxWidth - lipgloss.Width(title) - suffixLen
	if padding < 1 {
		padding = 1
	}

	return title + strings.Repeat(" ", padding) + dimStyle.Render(suffix)
}

// rebuildColumns rebuilds column structure from the current project's workflow.
func (m *BoardModel) rebuildColumns() {
	project, ok := store.CurrentProject(m.store.State())
	if !ok {
		m.projectID = ""
		m.columns = []string{}
		m.columnNames = make(map[string]string)
		m.selectedColumn = 0
		return
	}

	if project.ID != m.projectID {
		m.selectedColumn = 0
		m.columnOffset = 0
		m.selectedCard = make(map[string]int)
		m.scrollOffset = make(map[string]int)
	}
	m.projectID = project.ID

	m.columns = make([]string, 0, len(project.Statuses)+1)
	m.columnNames = make(map[string]string)

	for _, st := range project.Statuses {
		m.columns = append(m.columns, st.ID)
		m.columnNames[st.ID] = st.Name
	}

	m.columns = append(m.columns, unknownColumnKey)
	m.columnNames[unknownColumnKey] = "Unknown"

	if m.selectedColumn >= len(m.columns) {
		m.selectedColumn = 0
	}
}

// applyFilter filters the project's issues and groups them by column
func (m *BoardModel) applyFilter() {
	m.filteredCards = make(map[string][]string)
	for _, colID := range m.columns {
		m.filteredCards[colID] = []string{}
	}

	st := m.store.State()
	project, err := store.ProjectByID(st, m.projectID)
	if err != nil {
		return
	}

	needle := strings.ToLower(m.filterText)
	for _, issue := range store.ProjectIssues(st, project.ID) {
		if needle != "" && !strings.Contains(strings.ToLower(issue.Title), needle) {
			continue
		}
		if m.filterMyOnly && issue.AssigneeID != m.currentUserID {
			continue
		}

		colID := issue.Status
		if !project.HasStatus(colID) {
			colID = unknownColumnKey
		}
		m.filteredCards[colID] = append(m.filteredCards[colID], issue.ID)
	}

	// Reset scroll offsets and clamp selection so a shorter list never
	// shows "↑ N more" or points past its end.
	for colID := range m.filteredCards {
		m.scrollOffset[colID] = 0
		if m.selectedCard[colID] >= len(m.filteredCards[colID]) {
			if len(m.filteredCards[colID]) > 0 {
				m.selectedCard[colID] = len(m.filteredCards[colID]) - 1
			} else {
				m.selectedCard[colID] = 0
			}
		}
	}
}

// moveCardSelection moves the card selection up or down by delta
func (m *BoardModel) moveCardSelection(delta int) {
	if len(m.columns) == 0 {
		return
	}

	colID := m.columns[m.selectedColumn]
	cards := m.filteredCards[colID]
	if len(cards) == 0 {
		return
	}

	newIdx := m.selectedCard[colID] + delta
	if newIdx < 0 {
		newIdx = 0
	}
	if newIdx >= len(cards) {
		newIdx = len(cards) - 1
	}

	m.selectedCard[colID] = newIdx
	m.adjustScroll(colID)
}

// jumpToCard jumps to a specific card index. Use -1 to jump to last card.
func (m *BoardModel) jumpToCard(idx int) {
	if len(m.columns) == 0 {
		return
	}

	colID := m.columns[m.selectedColumn]
	cards := m.filteredCards[colID]
	if len(cards) == 0 {
		return
	}

	if idx < 0 || idx >= len(cards) {
		idx = len(cards) - 1
	}

	m.selectedCard[colID] = idx
	m.adjustScroll(colID)
}

// adjustScroll ensures the selected card is visible
func (m *BoardModel) adjustScroll(colID string) {
	selectedIdx := m.selectedCard[colID]
	scrollOffset := m.scrollOffset[colID]

	contentHeight := m.height - headerLines - 2 // 2 for column borders
	if m.moveMode {
		contentHeight--
	}
	if m.filterMode {
		contentHeight--
	}
	visibleCards := contentHeight - 3 // header + potential scroll indicators
	if visibleCards < 3 {
		visibleCards = 3
	}

	if selectedIdx < scrollOffset {
		m.scrollOffset[colID] = selectedIdx
	}
	if selectedIdx >= scrollOffset+visibleCards {
		m.scrollOffset[colID] = selectedIdx - visibleCards + 1
	}
}

// adjustColumnScroll ensures the selected column is visible
func (m *BoardModel) adjustColumnScroll() {
	if len(m.columns) == 0 || m.width == 0 {
		return
	}

	visibleCols := m.width / minColumnWidth
	if visibleCols < 1 {
		visibleCols = 1
	}
	if visibleCols > len(m.columns) {
		visibleCols = len(m.columns)
	}

	if m.selectedColumn < m.columnOffset {
		m.columnOffset = m.selectedColumn
	}
	if m.selectedColumn >= m.columnOffset+visibleCols {
		m.columnOffset = m.selectedColumn - visibleCols + 1
	}
}

// getSelectedIssue returns the currently selected issue
func (m BoardModel) getSelectedIssue() (domain.Issue, bool) {
	if len(m.columns) == 0 {
		return domain.Issue{}, false
	}

	colID := m.columns[m.selectedColumn]
	cards := m.filteredCards[colID]
	if len(cards) == 0 {
		return domain.Issue{}, false
	}

	cardIdx := m.selectedCard[colID]
	if cardIdx >= len(cards) {
		cardIdx = 0
	}

	issue, err := store.IssueByID(m.store.State(), cards[cardIdx])
	if err != nil {
		return domain.Issue{}, false
	}
	return issue, true
}

// moveIssueToColumn dispatches MoveIssue for the selected issue.
func (m *BoardModel) moveIssueToColumn(statusID string) {
	m.moveMode = false

	issue, ok := m.getSelectedIssue()
	if !ok {
		return
	}

	next := m.store.Dispatch(store.MoveIssue{IssueID: issue.ID, StatusID: statusID})
	moved, err := store.IssueByID(next, issue.ID)
	if err != nil || moved.Status != statusID {
		m.errorToast = "Move rejected"
		return
	}

	m.rebuildColumns()
	m.applyFilter()
	m.infoToast = fmt.Sprintf("Moved to %s", m.columnNames[statusID])
}

// renderAllColumns renders only the board area, without headers.
func (m BoardModel) renderAllColumns() string {
	return m.renderBoard(m.width, m.height-headerLines)
}
