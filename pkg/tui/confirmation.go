package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ConfirmationModel asks a yes/no question on a single line
type ConfirmationModel struct {
	active    bool
	message   string
	onConfirm func() tea.Cmd
	onCancel  func() tea.Cmd
}

// NewConfirmation creates a new confirmation model
func NewConfirmation() *ConfirmationModel {
	return &ConfirmationModel{}
}

// Show activates the confirmation
func (m *ConfirmationModel) Show(message string, onConfirm, onCancel func() tea.Cmd) {
	m.active = true
	m.message = message
	m.onConfirm = onConfirm
	m.onCancel = onCancel
}

// Active returns whether the confirmation is currently shown
func (m *ConfirmationModel) Active() bool {
	return m.active
}

// Update handles key events for the confirmation
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	if !m.active {
		return nil
	}

	switch msg.String() {
	case "y", "Y":
		m.active = false
		if m.onConfirm != nil {
			return m.onConfirm()
		}
	case "n", "N", "esc":
		m.active = false
		if m.onCancel != nil {
			return m.onCancel()
		}
	}
	return nil
}

// View renders the question with its options
func (m *ConfirmationModel) View() string {
	if !m.active {
		return ""
	}
	yes := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorError)).Bold(true).Render("[Y]es")
	no := lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).Bold(true).Render("[N]o")
	return fmt.Sprintf("%s %s / %s", m.message, yes, no)
}
