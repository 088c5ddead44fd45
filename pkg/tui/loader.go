package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/pluqqy/inledit/pkg/models"
	"github.com/pluqqy/inledit/pkg/store"
)

// LoadFields builds a field model for every definition in the store, seeded with
// the committed values
func LoadFields(st *store.Store, settings *models.Settings) ([]*FieldModel, error) {
	defs, err := st.ReadFields()
	if err != nil {
		return nil, err
	}
	record, err := st.ReadValues()
	if err != nil {
		return nil, err
	}

	fields := make([]*FieldModel, 0, len(defs.Fields))
	for _, def := range defs.Fields {
		validator, err := def.Validator(settings.UI.NativeValidation)
		if err != nil {
			return nil, fmt.Errorf("field %s: %w", def.Key, err)
		}

		m, err := NewFieldModel(FieldOptions{
			Def:            def,
			Initial:        record.Values[def.Key],
			Persist:        st.Save,
			Validator:      validator,
			Labels:         settings.UI.Labels,
			LiveValidation: settings.UI.LiveValidation,
			ShowTip:        settings.UI.ShowTips,
			Width:          settings.UI.Width,
			Latency:        settings.Commit.SimulatedLatency,
		})
		if err != nil {
			return nil, err
		}
		fields = append(fields, m)
	}
	return fields, nil
}

// Run launches the form on the alternate screen and blocks until it quits
func Run(st *store.Store, settings *models.Settings) error {
	fields, err := LoadFields(st, settings)
	if err != nil {
		return err
	}

	p := tea.NewProgram(NewApp("inledit", fields), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
