package logging

// Logger is a handle routing structured events to a Service's sink.
// Handles are cheap to create and safe for concurrent use.
type Logger interface {
	TraceWith() LogEvent
	DebugWith() LogEvent
	InfoWith() LogEvent
	WarnWith() LogEvent
	ErrorWith() LogEvent
	FatalWith() LogEvent

	// With for context logger creation
	// Creates a new logger with pre-populated fields that will be included in all subsequent logs
	// Example: reqLogger := logger.With().Str("request_id", id).Logger()
	With() LogContext

	// Named returns a handle tagged with the given name.
	Named(name string) Logger
}
