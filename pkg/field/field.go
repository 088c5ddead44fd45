package field

import (
	"strings"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Field is a click-to-edit value: it toggles between showing the committed value and
// an editable surface, gates submissions through validation and waits for a commit to
// be accepted or rejected.
//
// A Field is not safe for concurrent use. All methods, including the accept and reject
// callbacks handed to the Committer, must run on the same event loop.
type Field struct {
	cfg Config
	log zerolog.Logger
	bus signalBus

	value      string // Last committed value, or the placeholder
	mode       Mode
	pending    string // Value captured when editing began
	hasPending bool
	busy       bool
	lastError  *ValidationError

	inflight *submission
}

// submission tracks one outstanding commit
type submission struct {
	id       string
	value    string
	resolved bool
}

// New creates a field in Viewing mode showing initialText (trimmed) or the placeholder
func New(initialText string, cfg Config) (*Field, error) {
	if cfg.Surface == nil {
		return nil, ErrNoSurface
	}
	if cfg.Committer == nil {
		return nil, ErrNoCommitter
	}
	if cfg.Validator == nil {
		cfg.Validator = acceptAll
	}
	if cfg.Labels == (Labels{}) {
		cfg.Labels = DefaultLabels()
	}

	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}

	text := strings.TrimSpace(initialText)
	f := &Field{
		cfg:  cfg,
		log:  logger.With().Str("component", "field").Logger(),
		mode: Viewing,
	}
	f.value = f.orPlaceholder(text)
	cfg.Surface.SetValue(text)

	return f, nil
}

// Subscribe registers a listener and returns a function that removes it.
// Listeners run synchronously, in registration order, inside the transition that
// emitted the signal.
func (f *Field) Subscribe(fn Listener) func() {
	return f.bus.subscribe(fn)
}

// RequestEdit switches from Viewing to Editing. It is a no-op while editing or busy.
func (f *Field) RequestEdit() {
	if f.guardBusy("edit") || f.mode != Viewing {
		return
	}

	text := f.DisplayText()
	f.pending = text
	f.hasPending = true
	f.lastError = nil
	f.mode = Editing

	f.cfg.Surface.SetValue(text)
	f.cfg.Surface.SetDisabled(false)
	f.cfg.Surface.Focus()

	f.log.Debug().Str("pending", text).Msg("editing")
	f.bus.emit(Event{Signal: SignalEdit})
}

// RequestCancel abandons the edit, restoring the surface to the value it had when
// editing began
func (f *Field) RequestCancel() {
	if f.guardBusy("cancel") || f.mode != Editing {
		return
	}
	f.cancel()
}

// RequestSubmit attempts to commit the surface's current value.
//
// An unchanged value behaves like RequestCancel. Otherwise the value must pass the
// required check and then the validator; a refused value emits SignalInvalid and
// leaves the field editing. A valid value starts a commit.
func (f *Field) RequestSubmit() {
	if f.guardBusy("submit") || f.mode != Editing {
		return
	}

	newValue := f.cfg.Surface.Value()
	if newValue == f.pending {
		f.cancel()
		return
	}

	f.lastError = f.check(newValue)
	if f.lastError != nil {
		f.log.Debug().Str("value", newValue).Str("message", f.lastError.Message).Msg("submit refused")
		f.bus.emit(Event{Signal: SignalInvalid, Value: newValue, Message: f.lastError.Message})
		return
	}

	f.submit(newValue)
}

// InputChanged re-validates the surface content while editing. It never changes the
// mode; it only updates LastError and emits SignalInvalid, or SignalValid when a
// previous error clears. It does nothing unless live validation is enabled.
func (f *Field) InputChanged() {
	if !f.cfg.LiveValidation || f.busy || f.mode != Editing {
		return
	}

	value := f.cfg.Surface.Value()
	prev := f.lastError
	f.lastError = f.check(value)

	switch {
	case f.lastError != nil:
		f.bus.emit(Event{Signal: SignalInvalid, Value: value, Message: f.lastError.Message})
	case prev != nil:
		f.bus.emit(Event{Signal: SignalValid, Value: value})
	}
}

// Value returns the committed value, which is the placeholder when nothing is set
func (f *Field) Value() string {
	return f.value
}

// DisplayText returns the committed value, or "" when it is the placeholder
func (f *Field) DisplayText() string {
	if f.value == f.cfg.Placeholder {
		return ""
	}
	return f.value
}

// Mode returns the current lifecycle state
func (f *Field) Mode() Mode {
	return f.mode
}

// Busy reports whether a commit is outstanding
func (f *Field) Busy() bool {
	return f.busy
}

// PendingValue returns the value captured when editing began. ok is false in Viewing.
func (f *Field) PendingValue() (value string, ok bool) {
	return f.pending, f.hasPending
}

// LastError returns the most recent validation failure, if any
func (f *Field) LastError() *ValidationError {
	return f.lastError
}

// Config returns the configuration the field was built with
func (f *Field) Config() Config {
	return f.cfg
}

func (f *Field) guardBusy(action string) bool {
	if f.busy {
		f.log.Debug().Str("action", action).Msg("ignored while submitting")
	}
	return f.busy
}

func (f *Field) cancel() {
	f.cfg.Surface.SetValue(f.pending)
	f.pending = ""
	f.hasPending = false
	f.lastError = nil
	f.mode = Viewing

	f.log.Debug().Msg("edit cancelled")
	f.bus.emit(Event{Signal: SignalCancel})
}

// check applies the required rule and then the validator
func (f *Field) check(value string) *ValidationError {
	if value == "" {
		if f.cfg.Required {
			return &ValidationError{Value: value, Message: RequiredMessage}
		}
		return nil
	}
	return f.runValidator(value)
}

func (f *Field) runValidator(value string) (verr *ValidationError) {
	defer func() {
		if r := recover(); r != nil {
			f.log.Error().Interface("panic", r).Str("value", value).Msg("validator panicked")
			verr = &ValidationError{Value: value, Message: GenericInvalidMessage}
		}
	}()

	result := f.cfg.Validator.Validate(value)
	if result == nil {
		return nil
	}

	out := *result
	out.Value = value
	if out.Message == "" {
		out.Message = GenericInvalidMessage
	}
	return &out
}

func (f *Field) submit(value string) {
	sub := &submission{
		id:    ulid.Make().String(),
		value: value,
	}
	f.inflight = sub
	f.busy = true
	f.mode = Submitting
	f.cfg.Surface.SetDisabled(true)

	f.log.Debug().Str("request_id", sub.id).Str("value", value).Msg("submitting")
	f.bus.emit(Event{Signal: SignalSubmitting, Value: value, RequestID: sub.id})

	f.cfg.Committer.Commit(value,
		func() { f.accept(sub) },
		func(reason error) { f.reject(sub, reason) },
	)
}

// settle ends the outstanding submission, panicking on a second resolution
func (f *Field) settle(sub *submission, outcome string) {
	if sub.resolved {
		panic(contractViolation("submission %s resolved twice (second: %s)", sub.id, outcome))
	}
	if f.inflight != sub || f.mode != Submitting {
		panic(contractViolation("submission %s resolved (%s) while %s", sub.id, outcome, f.mode))
	}

	sub.resolved = true
	f.inflight = nil
	f.busy = false
	f.cfg.Surface.SetDisabled(false)
}

func (f *Field) accept(sub *submission) {
	f.settle(sub, "accept")

	f.value = f.orPlaceholder(sub.value)
	f.pending = ""
	f.hasPending = false
	f.mode = Viewing

	f.log.Debug().Str("request_id", sub.id).Str("value", sub.value).Msg("commit accepted")
	f.bus.emit(Event{Signal: SignalAccepted, Value: sub.value, RequestID: sub.id})
}

func (f *Field) reject(sub *submission, reason error) {
	f.settle(sub, "reject")

	// The surface keeps the attempted value; pending still holds the pre-edit value
	f.mode = Editing
	f.cfg.Surface.Focus()

	var message string
	if reason != nil {
		message = reason.Error()
	}

	f.log.Debug().Str("request_id", sub.id).Str("value", sub.value).Str("reason", message).Msg("commit rejected")
	f.bus.emit(Event{Signal: SignalRejected, Value: sub.value, Message: message, RequestID: sub.id})
}

func (f *Field) orPlaceholder(text string) string {
	if text == "" {
		return f.cfg.Placeholder
	}
	return text
}
