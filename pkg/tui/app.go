package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pluqqy/inledit/pkg/field"
)

// App is a form of inline-editable fields
type App struct {
	title     *ViewTitle
	fields    []*FieldModel
	focus     int
	width     int
	height    int
	statusMsg string
	confirm   *ConfirmationModel
}

// NewApp creates the form. The first field starts focused.
func NewApp(title string, fields []*FieldModel) *App {
	a := &App{
		title:   NewViewTitle(title),
		fields:  fields,
		confirm: NewConfirmation(),
	}
	if len(fields) > 0 {
		fields[0].SetFocused(true)
	}
	return a
}

func (a *App) Init() tea.Cmd {
	return nil
}

// Focused returns the field receiving key presses, or nil for an empty form
func (a *App) Focused() *FieldModel {
	if len(a.fields) == 0 {
		return nil
	}
	return a.fields[a.focus]
}

// Status returns the status bar text
func (a *App) Status() string {
	return a.statusMsg
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case StatusMsg:
		a.statusMsg = string(msg)
		return a, nil

	case tea.KeyMsg:
		if a.confirm.Active() {
			return a, a.confirm.Update(msg)
		}
		return a, a.handleKey(msg)
	}

	// Commit results, spinner ticks and blinks go to every field; each one filters
	// what belongs to it
	var cmds []tea.Cmd
	for _, f := range a.fields {
		cmds = append(cmds, f.Update(msg))
	}
	return a, tea.Batch(cmds...)
}

func (a *App) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.Type == tea.KeyCtrlC {
		return a.requestQuit()
	}

	focused := a.Focused()
	if focused == nil {
		if msg.String() == "q" {
			return tea.Quit
		}
		return nil
	}

	// Navigation only while the focused field is not being edited
	if focused.Field().Mode() == field.Viewing {
		switch msg.String() {
		case "q":
			return a.requestQuit()
		case "up", "k", "shift+tab":
			a.moveFocus(-1)
			return nil
		case "down", "j", "tab":
			a.moveFocus(1)
			return nil
		}
	}

	return focused.Update(msg)
}

func (a *App) moveFocus(delta int) {
	a.fields[a.focus].SetFocused(false)
	a.focus = (a.focus + delta + len(a.fields)) % len(a.fields)
	a.fields[a.focus].SetFocused(true)
}

// requestQuit quits right away unless some field has an edit or commit in progress
func (a *App) requestQuit() tea.Cmd {
	inProgress := 0
	for _, f := range a.fields {
		if f.Field().Mode() != field.Viewing {
			inProgress++
		}
	}
	if inProgress == 0 {
		return tea.Quit
	}

	message := "An edit is in progress. Quit anyway?"
	if inProgress > 1 {
		message = "Edits are in progress. Quit anyway?"
	}
	a.confirm.Show(message, func() tea.Cmd { return tea.Quit }, nil)
	return nil
}

func (a *App) View() string {
	var b strings.Builder

	if title := a.title.View(); title != "" {
		b.WriteString(title)
		b.WriteString("\n\n")
	}

	if len(a.fields) == 0 {
		b.WriteString(PlaceholderStyle.Render("No fields defined. Add some to fields.yaml."))
		b.WriteString("\n")
	}
	for _, f := range a.fields {
		b.WriteString(f.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render(a.help()))

	if a.confirm.Active() {
		b.WriteString("\n")
		b.WriteString(a.confirm.View())
	} else if a.statusMsg != "" {
		b.WriteString("\n")
		b.WriteString(StatusBarStyle.Render(a.statusMsg))
	}

	content := b.String()
	if a.width > 0 {
		content = lipgloss.NewStyle().MaxWidth(a.width).Render(content)
	}
	return content
}

func (a *App) help() string {
	focused := a.Focused()
	if focused == nil {
		return "q quit"
	}
	switch focused.Field().Mode() {
	case field.Editing:
		return "enter submit • esc cancel"
	case field.Submitting:
		return "saving…"
	default:
		return "↑/↓ move • enter edit • y copy • q quit"
	}
}
