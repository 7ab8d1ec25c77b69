package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"
)

var (
	// HelpOverlayStyle defines the style for the help overlay container.
	HelpOverlayStyle = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		MarginTop(2)
)

// HelpModel renders one screen's key bindings as an overlay.
type HelpModel struct {
	help  help.Model
	title string
	keys  help.KeyMap
}

// NewHelpModel creates a help overlay titled after the screen it describes.
func NewHelpModel(title string, keys help.KeyMap) HelpModel {
	h := help.New()
	h.ShowAll = true
	h.FullSeparator = "   "

	return HelpModel{
		help:  h,
		title: title,
		keys:  keys,
	}
}

// View renders the overlay no wider than width.
func (m HelpModel) View(width int) string {
	m.help.Width = width - 8 // Account for padding and border
	body := m.help.View(m.keys)
	if m.title != "" {
		body = LabelStyle.Render(m.title+" keys") + "\n\n" + body
	}
	return HelpOverlayStyle.Render(body)
}
