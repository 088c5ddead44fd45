package field

import (
	"github.com/rs/zerolog"
)

// Surface is the externally owned control holding the in-progress text
type Surface interface {
	Value() string
	SetValue(value string)
	Focus()
	SetDisabled(disabled bool)
}

// Validator checks a candidate value. A nil result means the value is acceptable.
type Validator interface {
	Validate(value string) *ValidationError
}

// ValidatorFunc adapts a plain function to Validator
type ValidatorFunc func(value string) *ValidationError

// Validate calls f(value)
func (f ValidatorFunc) Validate(value string) *ValidationError {
	return f(value)
}

// Committer persists a new value. Implementations must call exactly one of accept or
// reject exactly once, possibly later and possibly before Commit returns.
// The reason passed to reject may be nil.
type Committer interface {
	Commit(value string, accept func(), reject func(reason error))
}

// CommitFunc adapts a plain function to Committer
type CommitFunc func(value string, accept func(), reject func(reason error))

// Commit calls f(value, accept, reject)
func (f CommitFunc) Commit(value string, accept func(), reject func(reason error)) {
	f(value, accept, reject)
}

// Labels are the action captions shown by a front end
type Labels struct {
	Edit   string `yaml:"edit"`
	Submit string `yaml:"submit"`
	Cancel string `yaml:"cancel"`
}

// DefaultLabels returns the stock action captions
func DefaultLabels() Labels {
	return Labels{
		Edit:   "Edit",
		Submit: "Submit",
		Cancel: "Cancel",
	}
}

// Config holds the capabilities and static options of a field.
// It is not modified after New.
type Config struct {
	Surface   Surface
	Validator Validator
	Committer Committer

	Required    bool
	Placeholder string
	Tip         string // Hint shown next to the value while viewing
	Labels      Labels

	// LiveValidation enables InputChanged checks while editing
	LiveValidation bool

	// Logger overrides the global zerolog logger when set
	Logger *zerolog.Logger
}

var acceptAll = ValidatorFunc(func(string) *ValidationError { return nil })
