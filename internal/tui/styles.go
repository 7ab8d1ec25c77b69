package tui

import "github.com/charmbracelet/lipgloss"

var (
	// TitleStyle is used for screen titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("62")). // Purple
			MarginBottom(1)

	// SelectedItemStyle is used for highlighted/selected items.
	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("170")). // Light purple
				Bold(true)

	// NormalItemStyle is used for non-selected items.
	NormalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")) // Light gray

	// ErrorStyle is used for error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")). // Red
			Bold(true)

	// SuccessStyle is used for confirmations such as "Project created".
	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("34")) // Green

	// PromptStyle is used for prompt text.
	PromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")). // Light blue
			MarginBottom(1)

	// HelpStyle is used for help text.
	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")). // Dark gray
			MarginTop(1)

	// LabelStyle is used for form and metadata labels.
	LabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	// FocusedLabelStyle marks the form field that has focus.
	FocusedLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)
)

// Shared by the board and detail views.
var (
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228")).
			Bold(true)
)

// priorityStyle colors a priority label, hottest first.
func priorityStyle(p string) lipgloss.Style {
	switch p {
	case "highest":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	case "high":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("208"))
	case "medium":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	case "low":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("34"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	}
}
