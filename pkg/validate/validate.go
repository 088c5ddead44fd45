// Package validate builds field validators from native-constraint style rules
// (required, pattern, length, numeric range, input kind) and custom predicates.
package validate

import (
	"fmt"
	"math"
	"net/mail"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pluqqy/inledit/pkg/field"
)

// Kind mirrors the input types that carry built-in constraint checks
type Kind string

const (
	KindText   Kind = "text"
	KindNumber Kind = "number"
	KindEmail  Kind = "email"
	KindURL    Kind = "url"
	KindTel    Kind = "tel"
)

// Strategy selects which checks a validator runs
type Strategy string

const (
	Native Strategy = "native" // Constraint rules only
	Custom Strategy = "custom" // Custom predicate only
	Hybrid Strategy = "hybrid" // Constraint rules, then the custom predicate
)

// Constraints are the declarative rules of the native strategy.
// Zero values disable a rule.
type Constraints struct {
	Required  bool     `yaml:"required,omitempty"`
	Pattern   string   `yaml:"pattern,omitempty"`
	MinLength int      `yaml:"min_length,omitempty"`
	MaxLength int      `yaml:"max_length,omitempty"`
	Min       *float64 `yaml:"min,omitempty"`
	Max       *float64 `yaml:"max,omitempty"`
	Kind      Kind     `yaml:"kind,omitempty"`
}

// CustomFunc returns a custom-validity message for value, or "" when it is acceptable
type CustomFunc func(value string) string

var (
	telPattern    = regexp.MustCompile(`^\+?[0-9 ().-]{3,}$`)
	digitPattern  = regexp.MustCompile(`[0-9]`)
	numberPattern = regexp.MustCompile(`^[+-]?([0-9]+(\.[0-9]*)?|\.[0-9]+)([eE][+-]?[0-9]+)?$`)
)

// ParsePattern compiles a constraint pattern. Like the HTML pattern attribute, it must
// match the whole value.
func ParsePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile("^(?:" + pattern + ")$")
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	return re, nil
}

// ParseStrategy maps a configuration string to a Strategy. Empty means Hybrid.
func ParseStrategy(s string) (Strategy, error) {
	switch Strategy(strings.ToLower(strings.TrimSpace(s))) {
	case "", Hybrid:
		return Hybrid, nil
	case Native:
		return Native, nil
	case Custom:
		return Custom, nil
	default:
		return "", fmt.Errorf("unknown validation strategy: %s", s)
	}
}

// Validator runs the checks chosen by its strategy
type Validator struct {
	strategy    Strategy
	constraints Constraints
	pattern     *regexp.Regexp
	custom      CustomFunc
}

// New builds a validator. It fails when the constraints are malformed.
func New(strategy Strategy, c Constraints, custom CustomFunc) (*Validator, error) {
	switch strategy {
	case Native, Custom, Hybrid:
	default:
		return nil, fmt.Errorf("unknown validation strategy: %s", strategy)
	}

	if c.MinLength < 0 || c.MaxLength < 0 {
		return nil, fmt.Errorf("length constraints must not be negative")
	}
	if c.MaxLength > 0 && c.MinLength > c.MaxLength {
		return nil, fmt.Errorf("min_length %d exceeds max_length %d", c.MinLength, c.MaxLength)
	}
	if c.Min != nil && c.Max != nil && *c.Min > *c.Max {
		return nil, fmt.Errorf("min %v exceeds max %v", *c.Min, *c.Max)
	}
	switch c.Kind {
	case "", KindText, KindNumber, KindEmail, KindURL, KindTel:
	default:
		return nil, fmt.Errorf("unknown input kind: %s", c.Kind)
	}

	v := &Validator{
		strategy:    strategy,
		constraints: c,
		custom:      custom,
	}
	if c.Pattern != "" {
		re, err := ParsePattern(c.Pattern)
		if err != nil {
			return nil, err
		}
		v.pattern = re
	}
	return v, nil
}

// Select picks the strategy at construction time. Without native constraint support
// the simplified path runs: only the required rule and the custom predicate.
func Select(nativeSupported bool, c Constraints, custom CustomFunc) (*Validator, error) {
	if nativeSupported {
		return New(Hybrid, c, custom)
	}
	return New(Custom, Constraints{Required: c.Required}, custom)
}

// Strategy returns the strategy in use
func (v *Validator) Strategy() Strategy {
	return v.strategy
}

// Validate implements field.Validator
func (v *Validator) Validate(value string) *field.ValidationError {
	if msg := v.message(value); msg != "" {
		return &field.ValidationError{Value: value, Message: msg}
	}
	return nil
}

func (v *Validator) message(value string) string {
	if value == "" && v.constraints.Required {
		return field.RequiredMessage
	}

	if v.strategy != Custom && value != "" {
		if msg := v.native(value); msg != "" {
			return msg
		}
	}

	if v.strategy != Native && v.custom != nil {
		return v.custom(value)
	}
	return ""
}

func (v *Validator) native(value string) string {
	c := v.constraints
	length := utf8.RuneCountInString(value)

	if c.MinLength > 0 && length < c.MinLength {
		return fmt.Sprintf("must be at least %d characters", c.MinLength)
	}
	if c.MaxLength > 0 && length > c.MaxLength {
		return fmt.Sprintf("must be at most %d characters", c.MaxLength)
	}

	switch c.Kind {
	case KindEmail:
		addr, err := mail.ParseAddress(value)
		if err != nil || addr.Address != value {
			return "must be a valid email address"
		}
	case KindURL:
		u, err := url.ParseRequestURI(value)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return "must be a valid URL"
		}
	case KindTel:
		if !telPattern.MatchString(value) || !digitPattern.MatchString(value) {
			return "must be a valid phone number"
		}
	}

	if c.Kind == KindNumber || c.Min != nil || c.Max != nil {
		// ParseFloat also takes NaN, Inf, hex and underscores; a number input does not
		if !numberPattern.MatchString(value) {
			return "must be a number"
		}
		n, err := strconv.ParseFloat(value, 64)
		if err != nil || math.IsInf(n, 0) {
			return "must be a number"
		}
		if c.Min != nil && n < *c.Min {
			return fmt.Sprintf("must be >= %s", formatNumber(*c.Min))
		}
		if c.Max != nil && n > *c.Max {
			return fmt.Sprintf("must be <= %s", formatNumber(*c.Max))
		}
	}

	if v.pattern != nil && !v.pattern.MatchString(value) {
		return "does not match the requested format"
	}
	return ""
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
