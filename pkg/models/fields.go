package models

import (
	"fmt"
	"regexp"
	"time"

	"github.com/pluqqy/inledit/pkg/validate"
)

var keyPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]*$`)

// FieldDef declares one inline-editable field
type FieldDef struct {
	Key         string               `yaml:"key"`
	Label       string               `yaml:"label"`
	Placeholder string               `yaml:"placeholder,omitempty"`
	Tip         string               `yaml:"tip,omitempty"`
	Required    bool                 `yaml:"required,omitempty"`
	Strategy    string               `yaml:"strategy,omitempty"` // native, custom or hybrid
	Constraints validate.Constraints `yaml:"constraints,omitempty"`
	// Forbidden lists values refused by the custom predicate
	Forbidden []string `yaml:"forbidden,omitempty"`
}

// DisplayLabel returns the label, falling back to the key
func (d FieldDef) DisplayLabel() string {
	if d.Label != "" {
		return d.Label
	}
	return d.Key
}

// Validate checks the definition itself
func (d FieldDef) Validate() error {
	if !keyPattern.MatchString(d.Key) {
		return fmt.Errorf("invalid field key %q: use lowercase letters, digits, '-' or '_'", d.Key)
	}
	if _, err := d.Validator(true); err != nil {
		return fmt.Errorf("field %s: %w", d.Key, err)
	}
	return nil
}

// Validator builds the value validator described by the definition.
// nativeSupported false selects the simplified fallback path.
func (d FieldDef) Validator(nativeSupported bool) (*validate.Validator, error) {
	constraints := d.Constraints
	constraints.Required = constraints.Required || d.Required

	custom := d.forbiddenCheck()
	if !nativeSupported {
		return validate.Select(false, constraints, custom)
	}

	strategy, err := validate.ParseStrategy(d.Strategy)
	if err != nil {
		return nil, err
	}
	return validate.New(strategy, constraints, custom)
}

func (d FieldDef) forbiddenCheck() validate.CustomFunc {
	if len(d.Forbidden) == 0 {
		return nil
	}
	forbidden := make(map[string]bool, len(d.Forbidden))
	for _, v := range d.Forbidden {
		forbidden[v] = true
	}
	return func(value string) string {
		if forbidden[value] {
			return fmt.Sprintf("%q is not allowed", value)
		}
		return ""
	}
}

// FieldSet is the content of fields.yaml
type FieldSet struct {
	Fields []FieldDef `yaml:"fields"`
}

// Find returns the definition with the given key
func (s *FieldSet) Find(key string) (FieldDef, bool) {
	for _, d := range s.Fields {
		if d.Key == key {
			return d, true
		}
	}
	return FieldDef{}, false
}

// Validate checks every definition and rejects duplicate keys
func (s *FieldSet) Validate() error {
	seen := make(map[string]bool, len(s.Fields))
	for _, d := range s.Fields {
		if err := d.Validate(); err != nil {
			return err
		}
		if seen[d.Key] {
			return fmt.Errorf("duplicate field key: %s", d.Key)
		}
		seen[d.Key] = true
	}
	return nil
}

// Record holds committed values, keyed by field key
type Record struct {
	Values    map[string]string `yaml:"values"`
	UpdatedAt time.Time         `yaml:"updated_at,omitempty"`
}

// NewRecord returns an empty record
func NewRecord() *Record {
	return &Record{Values: map[string]string{}}
}

// DefaultFieldSet returns the sample fields written by init
func DefaultFieldSet() *FieldSet {
	return &FieldSet{
		Fields: []FieldDef{
			{
				Key:         "name",
				Label:       "Name",
				Placeholder: "Click to add your name",
				Required:    true,
				Constraints: validate.Constraints{MaxLength: 64},
			},
			{
				Key:         "email",
				Label:       "Email",
				Placeholder: "No email",
				Tip:         "used for notifications",
				Required:    true,
				Constraints: validate.Constraints{Kind: validate.KindEmail},
			},
			{
				Key:         "phone",
				Label:       "Phone",
				Placeholder: "No phone",
				Constraints: validate.Constraints{Kind: validate.KindTel},
			},
			{
				Key:         "username",
				Label:       "Username",
				Placeholder: "Pick a username",
				Strategy:    string(validate.Hybrid),
				Constraints: validate.Constraints{Pattern: "[a-z0-9_]+", MinLength: 3, MaxLength: 20},
				Forbidden:   []string{"admin", "root"},
			},
		},
	}
}
