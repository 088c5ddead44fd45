// Package fieldtest provides fake capabilities for exercising fields in tests.
package fieldtest

import (
	"testing"

	"github.com/pluqqy/inledit/pkg/field"
)

// Surface is an in-memory editable surface
type Surface struct {
	Text     string
	Disabled bool
	Focused  int // Number of Focus calls
	Sets     int // Number of SetValue calls
}

// Value returns the current text
func (s *Surface) Value() string { return s.Text }

// SetValue replaces the text
func (s *Surface) SetValue(value string) {
	s.Text = value
	s.Sets++
}

// Focus counts focus requests
func (s *Surface) Focus() { s.Focused++ }

// SetDisabled records the disabled flag
func (s *Surface) SetDisabled(disabled bool) { s.Disabled = disabled }

// Type simulates the user replacing the text
func (s *Surface) Type(text string) { s.Text = text }

// Committer captures commits so a test can resolve them later
type Committer struct {
	Calls  []string
	accept func()
	reject func(error)
}

// Commit records the value and keeps the callbacks
func (c *Committer) Commit(value string, accept func(), reject func(reason error)) {
	c.Calls = append(c.Calls, value)
	c.accept = accept
	c.reject = reject
}

// Pending reports whether a captured commit has callbacks available
func (c *Committer) Pending() bool {
	return c.accept != nil
}

// Accept resolves the last commit successfully
func (c *Committer) Accept(t *testing.T) {
	t.Helper()
	if c.accept == nil {
		t.Fatal("no commit to accept")
	}
	accept := c.accept
	c.accept, c.reject = nil, nil
	accept()
}

// Reject resolves the last commit with a failure
func (c *Committer) Reject(t *testing.T, reason error) {
	t.Helper()
	if c.reject == nil {
		t.Fatal("no commit to reject")
	}
	reject := c.reject
	c.accept, c.reject = nil, nil
	reject(reason)
}

// Recorder collects every event emitted by a field
type Recorder struct {
	Events []field.Event
}

// Listen is a field.Listener
func (r *Recorder) Listen(ev field.Event) {
	r.Events = append(r.Events, ev)
}

// Signals returns the recorded signal names in order
func (r *Recorder) Signals() []field.Signal {
	signals := make([]field.Signal, 0, len(r.Events))
	for _, ev := range r.Events {
		signals = append(signals, ev.Signal)
	}
	return signals
}

// Last returns the most recent event, or a zero Event
func (r *Recorder) Last() field.Event {
	if len(r.Events) == 0 {
		return field.Event{}
	}
	return r.Events[len(r.Events)-1]
}

// Reset forgets recorded events
func (r *Recorder) Reset() {
	r.Events = nil
}

// Harness bundles a field with its fakes
type Harness struct {
	Field     *field.Field
	Surface   *Surface
	Committer *Committer
	Recorder  *Recorder
}

// New builds a field around fresh fakes. cfg's Surface and Committer are replaced.
func New(t *testing.T, initial string, cfg field.Config) *Harness {
	t.Helper()

	h := &Harness{
		Surface:   &Surface{},
		Committer: &Committer{},
		Recorder:  &Recorder{},
	}
	cfg.Surface = h.Surface
	cfg.Committer = h.Committer

	f, err := field.New(initial, cfg)
	if err != nil {
		t.Fatalf("field.New() error = %v", err)
	}
	f.Subscribe(h.Recorder.Listen)
	h.Field = f
	return h
}

// AssertInvariants checks the busy/mode and pending/mode relationships
func AssertInvariants(t *testing.T, f *field.Field) {
	t.Helper()

	if f.Busy() && f.Mode() != field.Submitting {
		t.Errorf("busy while %s", f.Mode())
	}
	if _, ok := f.PendingValue(); ok != (f.Mode() != field.Viewing) {
		t.Errorf("pending present = %v while %s", ok, f.Mode())
	}
}
