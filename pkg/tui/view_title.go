package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// ViewTitle renders the form title bar
type ViewTitle struct {
	text string
}

// NewViewTitle creates a new view title with the given text
func NewViewTitle(text string) *ViewTitle {
	return &ViewTitle{text: text}
}

// View renders the title as white text on a dark band
func (v *ViewTitle) View() string {
	if v.text == "" {
		return ""
	}

	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(ColorWhite)).
		Background(lipgloss.Color("0")).
		Bold(true).
		Padding(0, 1)

	return titleStyle.Render(v.text)
}
