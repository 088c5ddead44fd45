package field

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSurface is returned by New when the config has no editable surface
	ErrNoSurface = errors.New("field: config has no surface")

	// ErrNoCommitter is returned by New when the config has no commit capability
	ErrNoCommitter = errors.New("field: config has no committer")

	// ErrContractViolation marks panics raised when a capability breaks its contract,
	// e.g. a committer resolving the same submission twice
	ErrContractViolation = errors.New("field: contract violation")
)

// GenericInvalidMessage is reported when a validator fails without a usable message
const GenericInvalidMessage = "invalid value"

// RequiredMessage is reported when a required field is submitted empty
const RequiredMessage = "required"

// ValidationError describes why a value was refused before commit
type ValidationError struct {
	Value   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value %q: %s", e.Value, e.Message)
}

func contractViolation(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrContractViolation, fmt.Sprintf(format, args...))
}
