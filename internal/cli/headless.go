package cli

import (
	"fmt"
	"strings"

	"github.com/pluqqy/inledit/pkg/field"
	"github.com/pluqqy/inledit/pkg/models"
)

// EditOutcome is the final signal of a non-interactive edit
type EditOutcome struct {
	Signal  field.Signal // cancel, invalid, accepted or rejected
	Value   string
	Message string
}

// Changed reports whether the edit committed a new value
func (o EditOutcome) Changed() bool {
	return o.Signal == field.SignalAccepted
}

// memorySurface is the editable surface used without a terminal UI
type memorySurface struct {
	text string
}

func (s *memorySurface) Value() string     { return s.text }
func (s *memorySurface) SetValue(v string) { s.text = v }
func (s *memorySurface) Focus()            {}
func (s *memorySurface) SetDisabled(bool)  {}

// ApplyEdit runs one edit cycle on a field holding current: enter editing, replace the
// text with next (trimmed, as stored values are) and submit. committer must resolve
// synchronously. native false selects the validator without constraint rules.
func ApplyEdit(def models.FieldDef, current, next string, committer field.Committer, native bool) (EditOutcome, error) {
	validator, err := def.Validator(native)
	if err != nil {
		return EditOutcome{}, err
	}

	surface := &memorySurface{}
	f, err := field.New(current, field.Config{
		Surface:     surface,
		Validator:   validator,
		Committer:   committer,
		Required:    def.Required,
		Placeholder: def.Placeholder,
	})
	if err != nil {
		return EditOutcome{}, err
	}

	var outcome EditOutcome
	f.Subscribe(func(ev field.Event) {
		switch ev.Signal {
		case field.SignalCancel, field.SignalInvalid, field.SignalAccepted, field.SignalRejected:
			outcome = EditOutcome{Signal: ev.Signal, Value: ev.Value, Message: ev.Message}
		}
	})

	f.RequestEdit()
	surface.SetValue(strings.TrimSpace(next))
	f.RequestSubmit()

	if f.Busy() {
		return EditOutcome{}, fmt.Errorf("%w: commit for %s did not resolve synchronously", field.ErrContractViolation, def.Key)
	}
	if outcome.Signal == field.SignalCancel {
		outcome.Value = f.DisplayText()
	}
	return outcome, nil
}
