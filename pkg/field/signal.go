package field

// Signal names a notification emitted by a field
type Signal string

const (
	SignalEdit       Signal = "edit"
	SignalCancel     Signal = "cancel"
	SignalInvalid    Signal = "invalid"
	SignalValid      Signal = "valid"
	SignalSubmitting Signal = "submitting"
	SignalAccepted   Signal = "accepted"
	SignalRejected   Signal = "rejected"
)

// Event is delivered to listeners for every emitted signal.
// Value and Message are only set for signals that carry them.
type Event struct {
	Signal    Signal
	Value     string
	Message   string
	RequestID string // Submission id, set for submitting/accepted/rejected
}

// Listener receives field events
type Listener func(Event)

// signalBus keeps listeners in registration order
type signalBus struct {
	nextID    int
	listeners []subscription
}

type subscription struct {
	id int
	fn Listener
}

func (b *signalBus) subscribe(fn Listener) func() {
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, subscription{id: id, fn: fn})

	return func() {
		for i, s := range b.listeners {
			if s.id == id {
				b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

func (b *signalBus) emit(ev Event) {
	// Copy so listeners may unsubscribe while being notified
	current := make([]subscription, len(b.listeners))
	copy(current, b.listeners)
	for _, s := range current {
		s.fn(ev)
	}
}
