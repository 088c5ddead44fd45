package models

import (
	"time"

	"github.com/pluqqy/inledit/pkg/field"
)

// Settings represents the application configuration
type Settings struct {
	UI     UISettings     `yaml:"ui"`
	Commit CommitSettings `yaml:"commit"`
}

// UISettings controls UI preferences
type UISettings struct {
	Labels           field.Labels `yaml:"labels"`
	LiveValidation   bool         `yaml:"live_validation"`
	NativeValidation bool         `yaml:"native_validation"` // Off keeps only required and custom checks
	ShowTips         bool         `yaml:"show_tips"`
	Width            int          `yaml:"width"` // Max width of a rendered value
}

// CommitSettings controls how new values are persisted
type CommitSettings struct {
	// SimulatedLatency delays every commit, handy to see the busy state
	SimulatedLatency time.Duration `yaml:"simulated_latency"`
	// RejectPattern makes the store refuse matching values
	RejectPattern string `yaml:"reject_pattern"`
}

// DefaultSettings returns the default configuration
func DefaultSettings() *Settings {
	return &Settings{
		UI: UISettings{
			Labels:           field.DefaultLabels(),
			LiveValidation:   true,
			NativeValidation: true,
			ShowTips:         true,
			Width:            60,
		},
		Commit: CommitSettings{
			SimulatedLatency: 0,
			RejectPattern:    "",
		},
	}
}
