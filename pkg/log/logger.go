package log

// Logger receives the renderer's protocol events: SSDP datagrams, control
// requests, decoded actions, and state changes. Pass nil or NoopLogger to
// a component to disable its event logging.
type Logger interface {
	// Log records one protocol event. Implementations must be safe for
	// concurrent use; the discovery and control layers log from their
	// own goroutines. Blocking here stalls the calling loop.
	Log(event Event)
}

// NoopLogger discards all events. It is the default when a component is
// configured without a logger, and is usable as a zero value.
type NoopLogger struct{}

// Log discards the event.
func (NoopLogger) Log(Event) {}

var _ Logger = NoopLogger{}
