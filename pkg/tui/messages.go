package tui

// StatusMsg sets the status bar text
type StatusMsg string

// commitResultMsg carries the outcome of a persist call back to the event loop
type commitResultMsg struct {
	Key string
	Seq int
	Err error
}
