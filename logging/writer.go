package logging

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFileName returns the file name used for records written on t's date,
// e.g. "log_2026-10-18.log".
func LogFileName(prefix string, t time.Time) string {
	return prefix + t.Format(DateLayout) + logFileExt
}

// dailyFileWriter appends to one lumberjack file per calendar day and moves
// to a new file on the first write after the date changes.
type dailyFileWriter struct {
	dir    string
	prefix string
	cfg    Config
	now    func() time.Time

	mu      sync.Mutex
	day     string
	current *lumberjack.Logger
}

// newDailyFileWriter creates today's file immediately so the sink exists on
// disk once the service is initialized.
func newDailyFileWriter(dir string, cfg *Config, now func() time.Time) (*dailyFileWriter, error) {
	w := &dailyFileWriter{
		dir:    dir,
		prefix: cfg.LogFilePrefix,
		cfg:    *cfg,
		now:    now,
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.rollover(now()); err != nil {
		return nil, err
	}
	return w, nil
}

// rollover must be called with mu held.
func (w *dailyFileWriter) rollover(t time.Time) error {
	day := t.Format(DateLayout)
	if w.current != nil && day == w.day {
		return nil
	}
	if w.current != nil {
		_ = w.current.Close()
	}

	w.current = &lumberjack.Logger{
		Filename:   filepath.Join(w.dir, LogFileName(w.prefix, t)),
		MaxSize:    w.cfg.LogFileMaxSizeMB,
		MaxBackups: w.cfg.LogFileMaxBackups,
		MaxAge:     w.cfg.LogFileMaxAgeDays,
		Compress:   w.cfg.LogFileCompress,
		LocalTime:  true,
	}
	w.day = day

	// lumberjack opens lazily; an empty write opens (or creates) the file in append mode.
	_, err := w.current.Write(nil)
	return err
}

func (w *dailyFileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.current == nil {
		return 0, os.ErrClosed
	}
	if err := w.rollover(w.now()); err != nil {
		return 0, err
	}
	return w.current.Write(p)
}

// Filename returns the path of the file currently written to.
func (w *dailyFileWriter) Filename() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.current == nil {
		return emptyString
	}
	return w.current.Filename
}

// Close closes the current file. Further writes fail with os.ErrClosed.
func (w *dailyFileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.current == nil {
		return nil
	}
	err := w.current.Close()
	w.current = nil
	return err
}
