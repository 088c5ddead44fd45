package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/rs/zerolog/log"

	"github.com/pluqqy/inledit/pkg/field"
	"github.com/pluqqy/inledit/pkg/models"
)

// PersistFunc stores a committed value. It runs off the event loop.
type PersistFunc func(key, value string) error

// writeClipboard is swapped out in tests
var writeClipboard = clipboard.WriteAll

// FieldOptions configures a FieldModel
type FieldOptions struct {
	Def            models.FieldDef
	Initial        string
	Persist        PersistFunc
	Validator      field.Validator
	Labels         field.Labels
	LiveValidation bool
	ShowTip        bool
	Width          int
	Latency        time.Duration // Added before every persist call
}

// FieldModel renders one inline-editable field and feeds key presses and commit
// results into its state machine
type FieldModel struct {
	def     models.FieldDef
	field   *field.Field
	input   textinput.Model
	surface *inputSurface
	spinner spinner.Model

	labels  field.Labels
	showTip bool
	width   int
	focused bool

	// Last invalid or rejected message, cleared on the next edit or success
	message string

	persist  PersistFunc
	latency  time.Duration
	seq      int
	inflight *pendingCommit
	queued   tea.Cmd
}

// pendingCommit holds the resolution callbacks of the outstanding commit
type pendingCommit struct {
	seq    int
	accept func()
	reject func(error)
}

// NewFieldModel builds a field model in viewing mode
func NewFieldModel(opts FieldOptions) (*FieldModel, error) {
	if opts.Persist == nil {
		return nil, fmt.Errorf("field %s: no persist function", opts.Def.Key)
	}
	if opts.Labels == (field.Labels{}) {
		opts.Labels = field.DefaultLabels()
	}
	if opts.Width <= 0 {
		opts.Width = 40
	}

	m := &FieldModel{
		def:     opts.Def,
		input:   textinput.New(),
		labels:  opts.Labels,
		showTip: opts.ShowTip,
		width:   opts.Width,
		persist: opts.Persist,
		latency: opts.Latency,
	}
	m.input.Placeholder = opts.Def.Placeholder
	m.input.Prompt = ""
	m.input.Width = opts.Width
	m.surface = &inputSurface{input: &m.input}

	m.spinner = spinner.New()
	m.spinner.Spinner = spinner.Dot
	m.spinner.Style = BusyStyle

	logger := log.With().Str("field", opts.Def.Key).Logger()
	f, err := field.New(opts.Initial, field.Config{
		Surface:        m.surface,
		Validator:      opts.Validator,
		Committer:      field.CommitFunc(m.commit),
		Required:       opts.Def.Required,
		Placeholder:    opts.Def.Placeholder,
		Tip:            opts.Def.Tip,
		Labels:         opts.Labels,
		LiveValidation: opts.LiveValidation,
		Logger:         &logger,
	})
	if err != nil {
		return nil, err
	}
	m.field = f
	f.Subscribe(m.onEvent)

	return m, nil
}

// Field returns the underlying state machine
func (m *FieldModel) Field() *field.Field {
	return m.field
}

// Key returns the field key
func (m *FieldModel) Key() string {
	return m.def.Key
}

// Message returns the last invalid or rejected message
func (m *FieldModel) Message() string {
	return m.message
}

// SetFocused marks the field as the one receiving key presses
func (m *FieldModel) SetFocused(focused bool) {
	m.focused = focused
}

// commit is the field's Committer: it stashes the callbacks and queues a command
// that persists the value and reports back with a commitResultMsg
func (m *FieldModel) commit(value string, accept func(), reject func(error)) {
	m.seq++
	m.inflight = &pendingCommit{seq: m.seq, accept: accept, reject: reject}

	key, seq, persist, latency := m.def.Key, m.seq, m.persist, m.latency
	m.queued = tea.Batch(m.spinner.Tick, func() tea.Msg {
		if latency > 0 {
			time.Sleep(latency)
		}
		return commitResultMsg{Key: key, Seq: seq, Err: persist(key, value)}
	})
}

func (m *FieldModel) onEvent(ev field.Event) {
	switch ev.Signal {
	case field.SignalEdit, field.SignalCancel, field.SignalValid, field.SignalAccepted, field.SignalSubmitting:
		m.message = ""
	case field.SignalInvalid:
		m.message = ev.Message
	case field.SignalRejected:
		m.message = ev.Message
		if m.message == "" {
			m.message = "could not save"
		}
	}
}

// takeQueued returns and clears the command queued by a commit
func (m *FieldModel) takeQueued() tea.Cmd {
	cmd := m.queued
	m.queued = nil
	return cmd
}

// Update handles key presses (when focused), spinner ticks and commit results
func (m *FieldModel) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case commitResultMsg:
		if msg.Key != m.def.Key || m.inflight == nil || msg.Seq != m.inflight.seq {
			return nil
		}
		p := m.inflight
		m.inflight = nil
		if msg.Err != nil {
			log.Debug().Str("field", msg.Key).Err(msg.Err).Msg("persist failed")
			p.reject(msg.Err)
			return statusCmd(fmt.Sprintf("✗ %s not saved: %v", m.def.DisplayLabel(), msg.Err))
		}
		p.accept()
		return statusCmd(fmt.Sprintf("✓ Saved %s", m.def.DisplayLabel()))

	case spinner.TickMsg:
		if !m.field.Busy() {
			return nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return cmd

	case tea.KeyMsg:
		if !m.focused {
			return nil
		}
		return m.handleKey(msg)
	}

	if m.field.Mode() == field.Editing {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}
	return nil
}

func (m *FieldModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch m.field.Mode() {
	case field.Viewing:
		switch msg.String() {
		case "enter", "e", " ":
			m.field.RequestEdit()
			return textinput.Blink
		case "y":
			return m.copyValue()
		}
		return nil

	case field.Editing:
		switch msg.String() {
		case "enter":
			m.field.RequestSubmit()
			return m.takeQueued()
		case "esc":
			m.field.RequestCancel()
			return nil
		}

		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			m.field.InputChanged()
		}
		return cmd
	}

	// Submitting: the surface is disabled
	return nil
}

func (m *FieldModel) copyValue() tea.Cmd {
	text := m.field.DisplayText()
	if text == "" {
		return statusCmd(fmt.Sprintf("%s is empty", m.def.DisplayLabel()))
	}
	if err := writeClipboard(text); err != nil {
		return statusCmd(fmt.Sprintf("✗ Failed to copy: %v", err))
	}
	return statusCmd(fmt.Sprintf("✓ Copied %s to clipboard", m.def.DisplayLabel()))
}

// View renders the label and either the value or the input with its actions
func (m *FieldModel) View() string {
	labelStyle := LabelStyle
	if m.focused {
		labelStyle = FocusedLabelStyle
	}
	label := labelStyle.Render(m.def.DisplayLabel())

	var body string
	switch m.field.Mode() {
	case field.Viewing:
		body = m.viewValue()
	case field.Editing:
		body = m.viewInput(false)
	case field.Submitting:
		body = m.viewInput(true)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, label, body)
}

func (m *FieldModel) viewValue() string {
	var b strings.Builder

	editButton := ButtonStyle
	if m.focused {
		editButton = FocusedButtonStyle
	}
	b.WriteString(editButton.Render(m.labels.Edit))
	b.WriteString(" ")

	text := m.field.DisplayText()
	if text == "" {
		b.WriteString(PlaceholderStyle.Render(m.field.Value()))
	} else {
		b.WriteString(ValueStyle.Render(truncate.StringWithTail(text, uint(m.width), "…")))
	}

	if m.showTip && m.def.Tip != "" {
		b.WriteString("\n")
		b.WriteString(TipStyle.Render(wordwrap.String(m.def.Tip, m.width)))
	}
	return b.String()
}

func (m *FieldModel) viewInput(busy bool) string {
	var b strings.Builder

	b.WriteString(InputStyle.Render(m.input.View()))
	b.WriteString(" ")
	if busy {
		b.WriteString(m.spinner.View())
		b.WriteString(BusyStyle.Render(" Saving…"))
	} else {
		b.WriteString(FocusedButtonStyle.Render(m.labels.Submit))
		b.WriteString(" ")
		b.WriteString(ButtonStyle.Render(m.labels.Cancel))
	}

	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(ErrorStyle.Render(wordwrap.String("✗ "+m.message, m.width)))
	}
	return b.String()
}

func statusCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return StatusMsg(text)
	}
}
