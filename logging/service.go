package logging

import (
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Station-Manager/errors"
	"github.com/rs/zerolog"
	"go.uber.org/atomic"
)

var _ Logger = (*Service)(nil)

// Service owns one logging sink. Create it once at process start, share it
// by reference and Close it on exit. A closed Service cannot be
// re-initialized.
type Service struct {
	// WorkingDir is the base for LoggingConfig.RelLogFileDir. Empty means the
	// process working directory.
	WorkingDir    string
	LoggingConfig *Config
	// Clock overrides time.Now for timestamps and file dating.
	Clock func() time.Time

	fileWriter *dailyFileWriter
	logger     atomic.Pointer[zerolog.Logger]

	isInitialized atomic.Bool
	initOnce      sync.Once
	initErr       error

	mu        sync.RWMutex
	wg        sync.WaitGroup
	activeOps atomic.Int64
}

// Initialize validates the configuration, creates the log directory and
// today's log file, and builds the logger. Only the first call does any
// work; later calls return its result.
func (s *Service) Initialize() error {
	const op errors.Op = "logging.Service.Initialize"
	if s == nil {
		return errors.New(op).Msg(errMsgNilService)
	}

	s.initOnce.Do(func() {
		s.initErr = s.initialize()
	})
	return s.initErr
}

func (s *Service) initialize() error {
	const op errors.Op = "logging.Service.initialize"

	if s.LoggingConfig == nil {
		cfg := DefaultConfig()
		s.LoggingConfig = &cfg
	}
	s.LoggingConfig.normalize()
	if err := validateConfig(s.LoggingConfig); err != nil {
		return errors.New(op).Err(err).Msg(errMsgConfigInvalid)
	}
	if s.Clock == nil {
		s.Clock = time.Now
	}

	level, err := parseLevel(s.LoggingConfig.Level)
	if err != nil {
		return errors.New(op).Err(err).Msg(errMsgConfigInvalid)
	}

	writers, err := s.initializeWriters()
	if err != nil {
		return err
	}

	logger := zerolog.New(zerolog.MultiLevelWriter(writers...)).
		Level(level).
		Hook(timestampHook{now: s.Clock})

	s.logger.Store(&logger)
	s.isInitialized.Store(true)
	return nil
}

func (s *Service) initializeWriters() ([]io.Writer, error) {
	const op errors.Op = "logging.Service.initializeWriters"
	var writers []io.Writer

	if s.LoggingConfig.FileLogging {
		dir := filepath.Join(s.WorkingDir, s.LoggingConfig.RelLogFileDir)
		if err := os.MkdirAll(dir, os.ModePerm); err != nil {
			return nil, errors.New(op).Err(err).Msg(errMsgLogDir)
		}

		fw, err := newDailyFileWriter(dir, s.LoggingConfig, s.Clock)
		if err != nil {
			return nil, errors.New(op).Err(err).Msg(errMsgLogFile)
		}
		s.fileWriter = fw
		writers = append(writers, s.formatted(fw))
	}
	if s.LoggingConfig.ConsoleLogging {
		writers = append(writers, s.formatted(os.Stderr))
	}

	return writers, nil
}

func (s *Service) formatted(w io.Writer) io.Writer {
	if s.LoggingConfig.Format == FormatJSON {
		return w
	}
	return newLineWriter(w)
}

// Close waits up to the configured shutdown timeout for in-flight events,
// then closes the log file. It's safe to call Close multiple times.
func (s *Service) Close() error {
	const op errors.Op = "logging.Service.Close"
	if s == nil || !s.isInitialized.CompareAndSwap(true, false) {
		return nil
	}

	// No builder holds the read lock past this point with the service open,
	// so the WaitGroup cannot grow from zero while Wait runs.
	s.mu.Lock()
	s.mu.Unlock() //nolint:staticcheck // lock used as a barrier

	done := make(chan struct{})
	go func() {
		s.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(s.LoggingConfig.shutdownTimeout()):
		if s.LoggingConfig.ShutdownTimeoutWarning && s.activeOps.Load() > 0 {
			if logger := s.logger.Load(); logger != nil {
				logger.Warn().
					Int64("active_operations", s.activeOps.Load()).
					Msg("Logger shutdown timeout exceeded")
			}
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.logger.Store(nil)
	if s.fileWriter != nil {
		if err := s.fileWriter.Close(); err != nil {
			return errors.New(op).Err(err).Msg(errMsgCloseFile)
		}
	}
	return nil
}

// release marks one tracked event as finished.
func (s *Service) release() {
	s.activeOps.Add(-1)
	s.wg.Done()
}

// LogFilePath returns the file currently receiving records, or an empty
// string when file logging is disabled.
func (s *Service) LogFilePath() string {
	if s == nil || s.fileWriter == nil {
		return emptyString
	}
	return s.fileWriter.Filename()
}

// Hook installs zerolog hooks on the service logger. Handles created by With
// or Named before the call keep their previous hooks.
func (s *Service) Hook(hooks ...zerolog.Hook) {
	if s == nil || !s.isInitialized.Load() {
		return
	}

	for {
		oldLogger := s.logger.Load()
		if oldLogger == nil {
			return
		}

		newLogger := oldLogger.Hook(hooks...)
		if s.logger.CompareAndSwap(oldLogger, &newLogger) {
			break
		}
	}
}

func (s *Service) rootEvent(level zerolog.Level) LogEvent {
	if s == nil {
		return newLogEvent(nil)
	}
	return logEventBuilder(s, s.logger.Load(), level)
}

// TraceWith returns a LogEvent for structured Trace-level logging.
func (s *Service) TraceWith() LogEvent { return s.rootEvent(zerolog.TraceLevel) }

// DebugWith returns a LogEvent for structured Debug-level logging.
func (s *Service) DebugWith() LogEvent { return s.rootEvent(zerolog.DebugLevel) }

// InfoWith returns a LogEvent for structured Info-level logging.
// Example: logger.InfoWith().Str("user_id", id).Int("count", 5).Msg("User processed")
func (s *Service) InfoWith() LogEvent { return s.rootEvent(zerolog.InfoLevel) }

// WarnWith returns a LogEvent for structured Warn-level logging.
func (s *Service) WarnWith() LogEvent { return s.rootEvent(zerolog.WarnLevel) }

// ErrorWith returns a LogEvent for structured Error-level logging.
// Example: logger.ErrorWith().Err(err).Str("operation", "divide").Msg("Error occured")
func (s *Service) ErrorWith() LogEvent { return s.rootEvent(zerolog.ErrorLevel) }

// FatalWith returns a LogEvent for structured Fatal-level logging.
// The program will exit after the log is written.
func (s *Service) FatalWith() LogEvent { return s.rootEvent(zerolog.FatalLevel) }

// With returns a LogContext for creating a child logger with pre-populated fields.
// Example: reqLogger := logger.With().Str("request_id", id).Logger()
func (s *Service) With() LogContext {
	if s == nil || !s.isInitialized.Load() {
		return &noopLogContext{}
	}
	logger := s.logger.Load()
	if logger == nil {
		return &noopLogContext{}
	}
	return &logContext{
		context: logger.With(),
		service: s,
	}
}

// Named returns a handle whose records carry name in the "logger" field.
// All handles share the service sink and level.
func (s *Service) Named(name string) Logger {
	return s.With().Str(LoggerFieldName, name).Logger()
}
