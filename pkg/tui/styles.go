package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Color constants
const (
	ColorActive   = "170" // Purple/magenta for the focused field
	ColorInactive = "240" // Gray for unfocused fields
	ColorSelected = "236" // Dark gray for the input background
	ColorNormal   = "245" // Light gray for values
	ColorDim      = "241" // Placeholders and tips
	ColorWarning  = "214" // Orange for pending commits
	ColorSuccess  = "28"  // Green for accepted commits
	ColorError    = "196" // Red for invalid and rejected values
	ColorWhite    = "255"
)

var (
	LabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(ColorInactive)).
			Width(12)

	FocusedLabelStyle = LabelStyle.
				Foreground(lipgloss.Color(ColorActive))

	ValueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorNormal))

	PlaceholderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorDim)).
				Italic(true)

	TipStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDim)).
			Italic(true).
			PaddingLeft(1)

	ButtonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorInactive)).
			Padding(0, 1)

	FocusedButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color(ColorWhite)).
				Background(lipgloss.Color(ColorActive)).
				Padding(0, 1)

	InputStyle = lipgloss.NewStyle().
			Background(lipgloss.Color(ColorSelected)).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorError))

	BusyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorWarning))

	SuccessStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorSuccess))

	StatusBarStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("62")).
			Foreground(lipgloss.Color("230")).
			Padding(0, 1)

	HelpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(ColorDim))
)
