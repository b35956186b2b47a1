package logging

import (
	"time"

	"github.com/rs/zerolog"
)

// LogContext provides a fluent interface for building a context logger with pre-populated fields.
// Fields added through LogContext will be included in all subsequent log messages.
type LogContext interface {
	Str(key, val string) LogContext
	Int(key string, val int) LogContext
	Int64(key string, val int64) LogContext
	Float64(key string, val float64) LogContext
	Bool(key string, val bool) LogContext
	Time(key string, val time.Time) LogContext
	Err(err error) LogContext
	Interface(key string, val interface{}) LogContext
	// Logger creates and returns the new context logger
	Logger() Logger
}

// LogEvent provides a fluent interface for structured logging with type-safe field methods.
// It wraps zerolog.Event; an event for a disabled level is a no-op.
type LogEvent interface {
	Str(key, val string) LogEvent
	Strs(key string, vals []string) LogEvent
	Int(key string, val int) LogEvent
	Int64(key string, val int64) LogEvent
	Float64(key string, val float64) LogEvent
	Bool(key string, val bool) LogEvent
	Time(key string, val time.Time) LogEvent
	Dur(key string, val time.Duration) LogEvent
	Err(err error) LogEvent
	AnErr(key string, err error) LogEvent
	Interface(key string, val interface{}) LogEvent
	Msg(msg string)
	Msgf(format string, v ...interface{})
	Send()
}

// logEvent implements LogEvent by wrapping zerolog.Event. When release is
// set, the first of Msg, Msgf or Send calls it after writing.
type logEvent struct {
	event   *zerolog.Event
	release func()
}

func newLogEvent(e *zerolog.Event) LogEvent {
	return &logEvent{event: e}
}

// newTrackedLogEvent returns an event holding one in-flight slot on s.
func newTrackedLogEvent(e *zerolog.Event, s *Service) LogEvent {
	if e == nil || s == nil {
		return &logEvent{event: nil}
	}
	return &logEvent{event: e, release: s.release}
}

func (e *logEvent) Str(key, val string) LogEvent {
	if e.event != nil {
		e.event.Str(key, val)
	}
	return e
}

func (e *logEvent) Strs(key string, vals []string) LogEvent {
	if e.event != nil {
		e.event.Strs(key, vals)
	}
	return e
}

func (e *logEvent) Int(key string, val int) LogEvent {
	if e.event != nil {
		e.event.Int(key, val)
	}
	return e
}

func (e *logEvent) Int64(key string, val int64) LogEvent {
	if e.event != nil {
		e.event.Int64(key, val)
	}
	return e
}

func (e *logEvent) Float64(key string, val float64) LogEvent {
	if e.event != nil {
		e.event.Float64(key, val)
	}
	return e
}

func (e *logEvent) Bool(key string, val bool) LogEvent {
	if e.event != nil {
		e.event.Bool(key, val)
	}
	return e
}

func (e *logEvent) Time(key string, val time.Time) LogEvent {
	if e.event != nil {
		e.event.Time(key, val)
	}
	return e
}

func (e *logEvent) Dur(key string, val time.Duration) LogEvent {
	if e.event != nil {
		e.event.Dur(key, val)
	}
	return e
}

func (e *logEvent) Err(err error) LogEvent {
	if e.event != nil {
		e.event.Err(err)
		if err != nil {
			enrichError(e.event, "error", err)
		}
	}
	return e
}

func (e *logEvent) AnErr(key string, err error) LogEvent {
	if e.event != nil {
		e.event.AnErr(key, err)
		if err != nil {
			enrichError(e.event, key, err)
		}
	}
	return e
}

func (e *logEvent) Interface(key string, val interface{}) LogEvent {
	if e.event != nil {
		e.event.Interface(key, val)
	}
	return e
}

func (e *logEvent) Msg(msg string) {
	defer e.done()
	if e.event != nil {
		e.event.Msg(msg)
	}
}

func (e *logEvent) Msgf(format string, v ...interface{}) {
	defer e.done()
	if e.event != nil {
		e.event.Msgf(format, v...)
	}
}

func (e *logEvent) Send() {
	defer e.done()
	if e.event != nil {
		e.event.Send()
	}
}

// done hands the in-flight slot back at most once. The zerolog event goes
// back to its pool on write, so it is dropped here as well.
func (e *logEvent) done() {
	e.event = nil
	if e.release != nil {
		release := e.release
		e.release = nil
		release()
	}
}

// logContext implements LogContext by wrapping zerolog.Context
type logContext struct {
	context zerolog.Context
	service *Service
}

func (c *logContext) Str(key, val string) LogContext {
	c.context = c.context.Str(key, val)
	return c
}

func (c *logContext) Int(key string, val int) LogContext {
	c.context = c.context.Int(key, val)
	return c
}

func (c *logContext) Int64(key string, val int64) LogContext {
	c.context = c.context.Int64(key, val)
	return c
}

func (c *logContext) Float64(key string, val float64) LogContext {
	c.context = c.context.Float64(key, val)
	return c
}

func (c *logContext) Bool(key string, val bool) LogContext {
	c.context = c.context.Bool(key, val)
	return c
}

func (c *logContext) Time(key string, val time.Time) LogContext {
	c.context = c.context.Time(key, val)
	return c
}

func (c *logContext) Err(err error) LogContext {
	c.context = c.context.Err(err)
	return c
}

func (c *logContext) Interface(key string, val interface{}) LogContext {
	c.context = c.context.Interface(key, val)
	return c
}

func (c *logContext) Logger() Logger {
	logger := c.context.Logger()
	return &contextLogger{
		logger: &logger,
		parent: c.service,
	}
}

// contextLogger is a child handle. It writes through its own zerolog.Logger
// but defers to the parent Service for lifecycle and in-flight tracking.
type contextLogger struct {
	logger *zerolog.Logger
	parent *Service
}

func (cl *contextLogger) TraceWith() LogEvent {
	return logEventBuilder(cl.parent, cl.logger, zerolog.TraceLevel)
}

func (cl *contextLogger) DebugWith() LogEvent {
	return logEventBuilder(cl.parent, cl.logger, zerolog.DebugLevel)
}

func (cl *contextLogger) InfoWith() LogEvent {
	return logEventBuilder(cl.parent, cl.logger, zerolog.InfoLevel)
}

func (cl *contextLogger) WarnWith() LogEvent {
	return logEventBuilder(cl.parent, cl.logger, zerolog.WarnLevel)
}

func (cl *contextLogger) ErrorWith() LogEvent {
	return logEventBuilder(cl.parent, cl.logger, zerolog.ErrorLevel)
}

func (cl *contextLogger) FatalWith() LogEvent {
	return logEventBuilder(cl.parent, cl.logger, zerolog.FatalLevel)
}

func (cl *contextLogger) With() LogContext {
	if cl.logger == nil || cl.parent == nil || !cl.parent.isInitialized.Load() {
		return &noopLogContext{}
	}
	return &logContext{
		context: cl.logger.With(),
		service: cl.parent,
	}
}

func (cl *contextLogger) Named(name string) Logger {
	return cl.With().Str(LoggerFieldName, name).Logger()
}

// noopLogContext is a no-op implementation of LogContext
type noopLogContext struct{}

func (n *noopLogContext) Str(key, val string) LogContext             { return n }
func (n *noopLogContext) Int(key string, val int) LogContext         { return n }
func (n *noopLogContext) Int64(key string, val int64) LogContext     { return n }
func (n *noopLogContext) Float64(key string, val float64) LogContext { return n }
func (n *noopLogContext) Bool(key string, val bool) LogContext       { return n }
func (n *noopLogContext) Time(key string, val time.Time) LogContext  { return n }
func (n *noopLogContext) Err(err error) LogContext                   { return n }
func (n *noopLogContext) Interface(key string, val interface{}) LogContext {
	return n
}
func (n *noopLogContext) Logger() Logger { return &noopLogger{} }

// noopLogger is a no-op implementation of Logger
type noopLogger struct{}

func (n *noopLogger) TraceWith() LogEvent      { return newLogEvent(nil) }
func (n *noopLogger) DebugWith() LogEvent      { return newLogEvent(nil) }
func (n *noopLogger) InfoWith() LogEvent       { return newLogEvent(nil) }
func (n *noopLogger) WarnWith() LogEvent       { return newLogEvent(nil) }
func (n *noopLogger) ErrorWith() LogEvent      { return newLogEvent(nil) }
func (n *noopLogger) FatalWith() LogEvent      { return newLogEvent(nil) }
func (n *noopLogger) With() LogContext         { return &noopLogContext{} }
func (n *noopLogger) Named(name string) Logger { return n }
