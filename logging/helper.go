package logging

import (
	stderrs "errors"
	"strings"

	smerrors "github.com/Station-Manager/errors"
	"github.com/Station-Manager/scaffold/annotate"
	"github.com/rs/zerolog"
)

// parseLevel parses a string log level into a zerolog.Level.
// Returns zerolog.NoLevel and an error if parsing fails.
func parseLevel(level string) (zerolog.Level, error) {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.NoLevel, err
	}
	return l, nil
}

// enrichError adds the cause chain of err to e under fields prefixed by key.
// When an annotate.Error is part of the chain its location is added as
// <key>_file and <key>_line.
func enrichError(e *zerolog.Event, key string, err error) {
	chain, ops, root, rootOp := buildErrorChain(err)
	if len(chain) > 0 {
		e.Strs(key+"_chain", chain)
		e.Str(key+"_root", root)
		e.Str(key+"_history", joinChain(chain))
		e.Strs(key+"_ops", ops)
		if rootOp != emptyString {
			e.Str(key+"_root_op", rootOp)
		}
	}

	var ae *annotate.Error
	if stderrs.As(err, &ae) && ae.File != emptyString {
		e.Str(key+"_file", ae.File)
		e.Int(key+"_line", ae.Line)
	}
}

// buildErrorChain walks an error's cause chain and returns:
//   - chain: outermost -> innermost error messages
//   - ops: operation identifiers for DetailedError links ("" if not available)
//   - root: the innermost error message
//   - rootOp: the innermost operation identifier if available
//
// DetailedError.Cause() is preferred, then stdlib errors.Unwrap. Depth is
// bounded and repeated messages stop the walk.
func buildErrorChain(err error) (chain []string, ops []string, root string, rootOp string) {
	const maxDepth = 50
	visited := 0
	seen := map[string]bool{}

	for err != nil && visited < maxDepth {
		visited++

		if dErr, ok := smerrors.AsDetailedError(err); ok && dErr != nil {
			chain = append(chain, dErr.Error())
			ops = append(ops, string(dErr.Op()))
			err = dErr.Cause()
			continue
		}

		msg := err.Error()
		if seen[msg] {
			break
		}
		seen[msg] = true
		chain = append(chain, msg)
		ops = append(ops, emptyString)
		err = stderrs.Unwrap(err)
	}

	if len(chain) > 0 {
		root = chain[len(chain)-1]
	}
	if len(ops) > 0 {
		rootOp = ops[len(ops)-1]
	}
	return
}

// joinChain returns a single string for the error chain separated by " -> ".
func joinChain(chain []string) string {
	if len(chain) == 0 {
		return emptyString
	}
	return strings.Join(chain, " -> ")
}

// logEventBuilder creates a log event for the given level on logger.
// Enabled events are counted against s until written so that Close can wait
// for them. A disabled level, a nil logger or a closed service yields a no-op
// LogEvent.
func logEventBuilder(s *Service, logger *zerolog.Logger, level zerolog.Level) LogEvent {
	if s == nil || logger == nil || !s.isInitialized.Load() {
		return newLogEvent(nil)
	}
	if level == zerolog.NoLevel || logger.GetLevel() > level {
		return newLogEvent(nil)
	}

	// Register under the read lock so the slot is counted before Close can
	// start waiting, and never after.
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isInitialized.Load() {
		return newLogEvent(nil)
	}
	s.activeOps.Add(1)
	s.wg.Add(1)

	var event *zerolog.Event
	switch level {
	case zerolog.TraceLevel:
		event = logger.Trace()
	case zerolog.DebugLevel:
		event = logger.Debug()
	case zerolog.InfoLevel:
		event = logger.Info()
	case zerolog.WarnLevel:
		event = logger.Warn()
	case zerolog.ErrorLevel:
		event = logger.Error()
	case zerolog.FatalLevel:
		event = logger.Fatal()
	case zerolog.PanicLevel:
		event = logger.Panic()
	}

	if event == nil {
		s.release()
		return newLogEvent(nil)
	}
	return newTrackedLogEvent(event, s)
}
