package logging

import "context"

// WithContext returns a new context carrying the provided logger.
func WithContext(ctx context.Context, logger Logger) context.Context {
	return context.WithValue(ctx, contextKey, logger)
}

// FromContext retrieves the logger from the context. If no logger is found a
// no-op logger is returned.
func FromContext(ctx context.Context) Logger {
	if ctx != nil {
		if logger, ok := ctx.Value(contextKey).(Logger); ok && logger != nil {
			return logger
		}
	}
	return &noopLogger{}
}

// Unexported type so that our context key never collides with another.
type contextKeyType struct{}

var contextKey = contextKeyType{}
