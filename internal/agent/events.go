package agent

// EventKind identifies what a display event carries.
type EventKind int

const (
	// EventText is a fragment of streamed model output.
	EventText EventKind = iota
	// EventToolStart is emitted just before a tool runs.
	EventToolStart
	// EventToolEnd is emitted after a tool finishes, success or not.
	EventToolEnd
)

// Event is a display-only progress notification. It never changes the
// turn's outcome; the answer returned by Send stays authoritative.
type Event struct {
	Kind EventKind
	Tool string
	Text string
}
