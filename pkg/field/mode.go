package field

// Mode is the lifecycle state of an editable field
type Mode int

const (
	Viewing    Mode = iota // Read-only presentation of the committed value
	Editing                // Editable surface shown, user may type
	Submitting             // A commit is outstanding
)

// String returns the lowercase name of the mode
func (m Mode) String() string {
	switch m {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	case Submitting:
		return "submitting"
	default:
		return "unknown"
	}
}
