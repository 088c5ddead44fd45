package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
)

// inputSurface exposes a bubbles text input as the field's editable surface
type inputSurface struct {
	input    *textinput.Model
	disabled bool
}

func (s *inputSurface) Value() string {
	return s.input.Value()
}

func (s *inputSurface) SetValue(value string) {
	s.input.SetValue(value)
	s.input.CursorEnd()
}

func (s *inputSurface) Focus() {
	s.input.Focus()
}

func (s *inputSurface) SetDisabled(disabled bool) {
	s.disabled = disabled
	if disabled {
		s.input.Blur()
	}
}
