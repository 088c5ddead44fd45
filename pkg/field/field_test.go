package field_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pluqqy/inledit/pkg/field"
	"github.com/pluqqy/inledit/pkg/field/fieldtest"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name        string
		initial     string
		placeholder string
		wantValue   string
		wantDisplay string
	}{
		{
			name:        "initial text is trimmed",
			initial:     "  Alice \n",
			wantValue:   "Alice",
			wantDisplay: "Alice",
		},
		{
			name:        "empty text falls back to placeholder",
			initial:     "",
			placeholder: "Your name",
			wantValue:   "Your name",
			wantDisplay: "",
		},
		{
			name:        "whitespace only uses placeholder",
			initial:     "   ",
			placeholder: "n/a",
			wantValue:   "n/a",
			wantDisplay: "",
		},
		{
			name:        "no placeholder and no text",
			initial:     "",
			wantValue:   "",
			wantDisplay: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := fieldtest.New(t, tt.initial, field.Config{Placeholder: tt.placeholder})

			assert.Equal(t, field.Viewing, h.Field.Mode())
			assert.Equal(t, tt.wantValue, h.Field.Value())
			assert.Equal(t, tt.wantDisplay, h.Field.DisplayText())
			assert.False(t, h.Field.Busy())
			assert.Equal(t, field.DefaultLabels(), h.Field.Config().Labels)
			fieldtest.AssertInvariants(t, h.Field)
		})
	}
}

func TestNew_MissingCapabilities(t *testing.T) {
	_, err := field.New("x", field.Config{Committer: &fieldtest.Committer{}})
	assert.ErrorIs(t, err, field.ErrNoSurface)

	_, err = field.New("x", field.Config{Surface: &fieldtest.Surface{}})
	assert.ErrorIs(t, err, field.ErrNoCommitter)
}

func TestRequestEdit(t *testing.T) {
	h := fieldtest.New(t, "Alice", field.Config{})
	h.Surface.Type("stale")

	h.Field.RequestEdit()

	assert.Equal(t, field.Editing, h.Field.Mode())
	pending, ok := h.Field.PendingValue()
	assert.True(t, ok)
	assert.Equal(t, "Alice", pending)
	assert.Equal(t, "Alice", h.Surface.Text, "surface should show the committed value")
	assert.Equal(t, 1, h.Surface.Focused)
	assert.Equal(t, []field.Signal{field.SignalEdit}, h.Recorder.Signals())
}

func TestRequestEdit_PlaceholderIsNotEdited(t *testing.T) {
	h := fieldtest.New(t, "", field.Config{Placeholder: "Click to set"})

	h.Field.RequestEdit()

	pending, _ := h.Field.PendingValue()
	assert.Equal(t, "", pending)
	assert.Equal(t, "", h.Surface.Text)
}

func TestRequestEdit_Idempotent(t *testing.T) {
	h := fieldtest.New(t, "Alice", field.Config{})

	h.Field.RequestEdit()
	first, _ := h.Field.PendingValue()

	h.Surface.Type("Ali")
	h.Field.RequestEdit()

	second, ok := h.Field.PendingValue()
	assert.True(t, ok)
	assert.Equal(t, first, second)
	assert.Equal(t, "Ali", h.Surface.Text, "second edit must not reset the surface")
	assert.Equal(t, 1, h.Surface.Focused, "second edit must not refocus")
	assert.Equal(t, []field.Signal{field.SignalEdit}, h.Recorder.Signals())
}

func TestRequestCancel(t *testing.T) {
	h := fieldtest.New(t, "Alice", field.Config{})
	h.Field.RequestEdit()
	h.Surface.Type("Bob")

	h.Field.RequestCancel()

	assert.Equal(t, field.Viewing, h.Field.Mode())
	assert.Equal(t, "Alice", h.Surface.Text)
	assert.Equal(t, "Alice", h.Field.Value())
	_, ok := h.Field.PendingValue()
	assert.False(t, ok)
	assert.Equal(t, []field.Signal{field.SignalEdit, field.SignalCancel}, h.Recorder.Signals())
}

func TestRequestCancel_WhileViewingIsNoop(t *testing.T) {
	h := fieldtest.New(t, "Alice", field.Config{})

	h.Field.RequestCancel()
	h.Field.RequestSubmit()

	assert.Equal(t, field.Viewing, h.Field.Mode())
	assert.Empty(t, h.Recorder.Events)
}

func TestRequestSubmit_Unchanged(t *testing.T) {
	h := fieldtest.New(t, "Alice", field.Config{})
	h.Field.RequestEdit()

	h.Field.RequestSubmit()

	assert.Equal(t, field.Viewing, h.Field.Mode())
	assert.Empty(t, h.Committer.Calls)
	assert.Equal(t, []field.Signal{field.SignalEdit, field.SignalCancel}, h.Recorder.Signals())
}

func TestRequestSubmit_UnchangedSkipsValidation(t *testing.T) {
	validated := 0
	h := fieldtest.New(t, "bad", field.Config{
		Validator: field.ValidatorFunc(func(v string) *field.ValidationError {
			validated++
			return &field.ValidationError{Message: "always wrong"}
		}),
	})
	h.Field.RequestEdit()

	h.Field.RequestSubmit()

	assert.Equal(t, field.Viewing, h.Field.Mode())
	assert.Zero(t, validated)
	assert.NotContains(t, h.Recorder.Signals(), field.SignalInvalid)
}

func TestRequestSubmit_Validation(t *testing.T) {
	digitsOnly := field.ValidatorFunc(func(v string) *field.ValidationError {
		for _, r := range v {
			if r < '0' || r > '9' {
				return &field.ValidationError{Message: "digits only"}
			}
		}
		return nil
	})

	tests := []struct {
		name        string
		required    bool
		input       string
		wantMode    field.Mode
		wantMessage string
		wantCommit  bool
	}{
		{
			name:        "required empty is refused",
			required:    true,
			input:       "",
			wantMode:    field.Editing,
			wantMessage: field.RequiredMessage,
		},
		{
			name:       "optional empty skips validator and commits",
			input:      "",
			wantMode:   field.Submitting,
			wantCommit: true,
		},
		{
			name:        "validator message is reported",
			input:       "12a",
			wantMode:    field.Editing,
			wantMessage: "digits only",
		},
		{
			name:       "valid value commits",
			required:   true,
			input:      "123",
			wantMode:   field.Submitting,
			wantCommit: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := fieldtest.New(t, "42", field.Config{Required: tt.required, Validator: digitsOnly})
			h.Field.RequestEdit()
			h.Surface.Type(tt.input)
			h.Recorder.Reset()

			h.Field.RequestSubmit()

			assert.Equal(t, tt.wantMode, h.Field.Mode())
			fieldtest.AssertInvariants(t, h.Field)

			if tt.wantCommit {
				assert.Equal(t, []string{tt.input}, h.Committer.Calls)
				assert.Nil(t, h.Field.LastError())
				assert.Equal(t, []field.Signal{field.SignalSubmitting}, h.Recorder.Signals())
				return
			}

			assert.Empty(t, h.Committer.Calls)
			require.Len(t, h.Recorder.Events, 1)
			ev := h.Recorder.Events[0]
			assert.Equal(t, field.SignalInvalid, ev.Signal)
			assert.Equal(t, tt.input, ev.Value)
			assert.Equal(t, tt.wantMessage, ev.Message)
			require.NotNil(t, h.Field.LastError())
			assert.Equal(t, tt.wantMessage, h.Field.LastError().Message)
			assert.Equal(t, tt.input, h.Surface.Text, "offending text stays on the surface")
		})
	}
}

func TestRequestSubmit_PanickingValidator(t *testing.T) {
	h := fieldtest.New(t, "a", field.Config{
		Validator: field.ValidatorFunc(func(string) *field.ValidationError {
			panic("boom")
		}),
	})
	h.Field.RequestEdit()
	h.Surface.Type("b")

	assert.NotPanics(t, h.Field.RequestSubmit)
	assert.Equal(t, field.Editing, h.Field.Mode())
	assert.Equal(t, field.GenericInvalidMessage, h.Recorder.Last().Message)
}

func TestRequestSubmit_EmptyValidatorMessage(t *testing.T) {
	h := fieldtest.New(t, "a", field.Config{
		Validator: field.ValidatorFunc(func(string) *field.ValidationError {
			return &field.ValidationError{}
		}),
	})
	h.Field.RequestEdit()
	h.Surface.Type("b")

	h.Field.RequestSubmit()

	assert.Equal(t, field.GenericInvalidMessage, h.Field.LastError().Message)
	assert.Equal(t, "b", h.Field.LastError().Value)
}

func TestRequestSubmit_ClearsPreviousError(t *testing.T) {
	h := fieldtest.New(t, "a", field.Config{Required: true})
	h.Field.RequestEdit()
	h.Surface.Type("")
	h.Field.RequestSubmit()
	require.NotNil(t, h.Field.LastError())

	h.Surface.Type("b")
	h.Field.RequestSubmit()

	assert.Nil(t, h.Field.LastError())
	assert.Equal(t, field.Submitting, h.Field.Mode())
}

func TestCommit_Accepted(t *testing.T) {
	h := fieldtest.New(t, "Alice", field.Config{})
	h.Field.RequestEdit()
	h.Surface.Type("Bob")

	h.Field.RequestSubmit()

	assert.True(t, h.Field.Busy())
	assert.True(t, h.Surface.Disabled)
	assert.Equal(t, []string{"Bob"}, h.Committer.Calls)
	submitting := h.Recorder.Last()
	assert.Equal(t, field.SignalSubmitting, submitting.Signal)
	assert.NotEmpty(t, submitting.RequestID)

	h.Committer.Accept(t)

	accepted := h.Recorder.Last()
	assert.Equal(t, field.SignalAccepted, accepted.Signal)
	assert.Equal(t, "Bob", accepted.Value)
	assert.Equal(t, submitting.RequestID, accepted.RequestID)
	assert.Equal(t, "Bob", h.Field.Value())
	assert.Equal(t, field.Viewing, h.Field.Mode())
	assert.False(t, h.Field.Busy())
	assert.False(t, h.Surface.Disabled)
	fieldtest.AssertInvariants(t, h.Field)
}

func TestCommit_AcceptedEmptyShowsPlaceholder(t *testing.T) {
	h := fieldtest.New(t, "Alice", field.Config{Placeholder: "None"})
	h.Field.RequestEdit()
	h.Surface.Type("")
	h.Field.RequestSubmit()

	h.Committer.Accept(t)

	assert.Equal(t, "None", h.Field.Value())
	assert.Equal(t, "", h.Field.DisplayText())
	assert.Equal(t, "", h.Recorder.Last().Value)
}

func TestCommit_Rejected(t *testing.T) {
	h := fieldtest.New(t, "Alice", field.Config{})
	h.Field.RequestEdit()
	h.Surface.Type("Bob")
	h.Field.RequestSubmit()

	h.Committer.Reject(t, errors.New("server said no"))

	rejected := h.Recorder.Last()
	assert.Equal(t, field.SignalRejected, rejected.Signal)
	assert.Equal(t, "Bob", rejected.Value)
	assert.Equal(t, "server said no", rejected.Message)
	assert.Equal(t, field.Editing, h.Field.Mode())
	assert.Equal(t, "Alice", h.Field.Value())
	assert.False(t, h.Field.Busy())
	assert.False(t, h.Surface.Disabled)
	assert.Equal(t, "Bob", h.Surface.Text)
	fieldtest.AssertInvariants(t, h.Field)

	// Cancel after a rejection restores the pre-edit value
	h.Field.RequestCancel()
	assert.Equal(t, "Alice", h.Surface.Text)
	assert.Equal(t, field.Viewing, h.Field.Mode())
}

func TestCommit_RejectedWithoutReason(t *testing.T) {
	h := fieldtest.New(t, "Alice", field.Config{})
	h.Field.RequestEdit()
	h.Surface.Type("Bob")
	h.Field.RequestSubmit()

	h.Committer.Reject(t, nil)

	assert.Equal(t, field.SignalRejected, h.Recorder.Last().Signal)
	assert.Empty(t, h.Recorder.Last().Message)
}

func TestCommit_RetryAfterReject(t *testing.T) {
	h := fieldtest.New(t, "Alice", field.Config{})
	h.Field.RequestEdit()
	h.Surface.Type("Bob")
	h.Field.RequestSubmit()
	h.Committer.Reject(t, nil)

	h.Field.RequestSubmit()

	assert.Equal(t, field.Submitting, h.Field.Mode())
	assert.Equal(t, []string{"Bob", "Bob"}, h.Committer.Calls)
	h.Committer.Accept(t)
	assert.Equal(t, "Bob", h.Field.Value())
}

func TestBusyGuard(t *testing.T) {
	h := fieldtest.New(t, "Alice", field.Config{LiveValidation: true, Required: true})
	h.Field.RequestEdit()
	h.Surface.Type("Bob")
	h.Field.RequestSubmit()
	h.Recorder.Reset()

	h.Field.RequestCancel()
	h.Field.RequestSubmit()
	h.Field.RequestEdit()
	h.Surface.Type("")
	h.Field.InputChanged()

	assert.Equal(t, field.Submitting, h.Field.Mode())
	assert.True(t, h.Field.Busy())
	assert.Empty(t, h.Recorder.Events)
	assert.Equal(t, []string{"Bob"}, h.Committer.Calls)
	pending, _ := h.Field.PendingValue()
	assert.Equal(t, "Alice", pending)
}

func TestSynchronousCommit(t *testing.T) {
	rec := &fieldtest.Recorder{}
	f, err := field.New("Alice", field.Config{
		Surface: &fieldtest.Surface{},
		Committer: field.CommitFunc(func(value string, accept func(), reject func(error)) {
			accept()
		}),
	})
	require.NoError(t, err)
	f.Subscribe(rec.Listen)

	f.RequestEdit()
	f.Config().Surface.SetValue("Bob")
	f.RequestSubmit()

	assert.Equal(t, field.Viewing, f.Mode())
	assert.Equal(t, "Bob", f.Value())
	assert.Equal(t, []field.Signal{
		field.SignalEdit,
		field.SignalSubmitting,
		field.SignalAccepted,
	}, rec.Signals())
}

func TestContractViolations(t *testing.T) {
	tests := []struct {
		name    string
		resolve func(accept func(), reject func(error))
	}{
		{
			name: "accept twice",
			resolve: func(accept func(), reject func(error)) {
				accept()
				accept()
			},
		},
		{
			name: "accept then reject",
			resolve: func(accept func(), reject func(error)) {
				accept()
				reject(nil)
			},
		},
		{
			name: "reject twice",
			resolve: func(accept func(), reject func(error)) {
				reject(nil)
				reject(nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var accept func()
			var reject func(error)
			f, err := field.New("a", field.Config{
				Surface: &fieldtest.Surface{},
				Committer: field.CommitFunc(func(_ string, a func(), r func(error)) {
					accept, reject = a, r
				}),
			})
			require.NoError(t, err)
			f.RequestEdit()
			f.Config().Surface.SetValue("b")
			f.RequestSubmit()

			defer func() {
				r := recover()
				require.NotNil(t, r, "expected panic")
				perr, ok := r.(error)
				require.True(t, ok)
				assert.ErrorIs(t, perr, field.ErrContractViolation)
			}()
			tt.resolve(accept, reject)
		})
	}
}

func TestLiveValidation(t *testing.T) {
	h := fieldtest.New(t, "abc", field.Config{
		Required:       true,
		LiveValidation: true,
		Validator: field.ValidatorFunc(func(v string) *field.ValidationError {
			if len(v) > 5 {
				return &field.ValidationError{Message: "too long"}
			}
			return nil
		}),
	})
	h.Field.RequestEdit()
	h.Recorder.Reset()

	h.Surface.Type("abcdefg")
	h.Field.InputChanged()
	assert.Equal(t, "too long", h.Recorder.Last().Message)
	assert.Equal(t, field.Editing, h.Field.Mode())

	h.Surface.Type("")
	h.Field.InputChanged()
	assert.Equal(t, field.RequiredMessage, h.Recorder.Last().Message)

	h.Surface.Type("ab")
	h.Field.InputChanged()
	assert.Equal(t, field.SignalValid, h.Recorder.Last().Signal)
	assert.Nil(t, h.Field.LastError())

	// Still valid: no repeated valid signal
	h.Surface.Type("abc")
	h.Field.InputChanged()

	assert.Equal(t, []field.Signal{
		field.SignalInvalid,
		field.SignalInvalid,
		field.SignalValid,
	}, h.Recorder.Signals())
}

func TestLiveValidation_Disabled(t *testing.T) {
	h := fieldtest.New(t, "abc", field.Config{Required: true})
	h.Field.RequestEdit()
	h.Surface.Type("")

	h.Field.InputChanged()

	assert.Nil(t, h.Field.LastError())
	assert.Equal(t, []field.Signal{field.SignalEdit}, h.Recorder.Signals())
}

func TestSubscribe_Unsubscribe(t *testing.T) {
	h := fieldtest.New(t, "a", field.Config{})
	var extra []field.Signal
	unsubscribe := h.Field.Subscribe(func(ev field.Event) {
		extra = append(extra, ev.Signal)
	})

	h.Field.RequestEdit()
	unsubscribe()
	h.Field.RequestCancel()

	assert.Equal(t, []field.Signal{field.SignalEdit}, extra)
	assert.Equal(t, []field.Signal{field.SignalEdit, field.SignalCancel}, h.Recorder.Signals())
}

func TestInvariants_RandomSequences(t *testing.T) {
	actions := []func(h *fieldtest.Harness){
		func(h *fieldtest.Harness) { h.Field.RequestEdit() },
		func(h *fieldtest.Harness) { h.Field.RequestCancel() },
		func(h *fieldtest.Harness) { h.Field.RequestSubmit() },
		func(h *fieldtest.Harness) { h.Surface.Type("") },
		func(h *fieldtest.Harness) { h.Surface.Type("next") },
		func(h *fieldtest.Harness) { h.Field.InputChanged() },
		func(h *fieldtest.Harness) {
			if h.Committer.Pending() {
				h.Committer.Accept(t)
			}
		},
		func(h *fieldtest.Harness) {
			if h.Committer.Pending() {
				h.Committer.Reject(t, errors.New("no"))
			}
		},
	}

	// Deterministic pseudo-random walk over the action table
	seed := uint32(7)
	for run := 0; run < 50; run++ {
		h := fieldtest.New(t, "start", field.Config{Required: run%2 == 0, LiveValidation: true})
		for step := 0; step < 40; step++ {
			seed = seed*1664525 + 1013904223
			actions[int(seed>>16)%len(actions)](h)
			fieldtest.AssertInvariants(t, h.Field)
		}
	}
}
