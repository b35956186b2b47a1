package logging

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogFileName(t *testing.T) {
	day1 := time.Date(2026, time.October, 18, 23, 59, 59, 0, time.Local)
	day2 := day1.Add(2 * time.Second)

	assert.Equal(t, "log_2026-10-18.log", LogFileName("log_", day1))
	assert.Equal(t, "log_2026-10-19.log", LogFileName("log_", day2))
	assert.Equal(t, "app-2026-10-18.log", LogFileName("app-", day1))
}

func TestDailyFileWriter_Rollover(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, time.October, 18, 23, 59, 0, 0, time.Local)
	clock := func() time.Time { return now }

	w, err := newDailyFileWriter(dir, validLoggingConfig(), clock)
	require.NoError(t, err)
	first := w.Filename()

	_, err = w.Write([]byte("before midnight\n"))
	require.NoError(t, err)

	now = now.Add(2 * time.Minute)
	_, err = w.Write([]byte("after midnight\n"))
	require.NoError(t, err)
	second := w.Filename()
	require.NoError(t, w.Close())

	assert.Equal(t, filepath.Join(dir, "log_2026-10-18.log"), first)
	assert.Equal(t, filepath.Join(dir, "log_2026-10-19.log"), second)

	content, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "before midnight\n", string(content))

	content, err = os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, "after midnight\n", string(content))
}

func TestDailyFileWriter_AppendsToExistingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, LogFileName("log_", testNow))
	require.NoError(t, os.WriteFile(path, []byte("earlier run\n"), 0o600))

	w, err := newDailyFileWriter(dir, validLoggingConfig(), fixedClock(testNow))
	require.NoError(t, err)
	_, err = w.Write([]byte("this run\n"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "earlier run\nthis run\n", string(content))
}

func TestDailyFileWriter_Close(t *testing.T) {
	w, err := newDailyFileWriter(t.TempDir(), validLoggingConfig(), fixedClock(testNow))
	require.NoError(t, err)

	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	_, err = w.Write([]byte("late\n"))
	assert.ErrorIs(t, err, os.ErrClosed)
	assert.Equal(t, "", w.Filename())
}

func TestService_RollsToNewFileAtMidnight(t *testing.T) {
	now := time.Date(2026, time.October, 18, 23, 59, 0, 0, time.Local)
	service := &Service{
		WorkingDir:    t.TempDir(),
		LoggingConfig: validLoggingConfig(),
		Clock:         func() time.Time { return now },
	}
	require.NoError(t, service.Initialize())

	service.InfoWith().Msg("first day")
	now = now.Add(time.Hour)
	service.InfoWith().Msg("second day")
	require.NoError(t, service.Close())

	dir := filepath.Join(service.WorkingDir, "logs")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"log_2026-10-18.log", "log_2026-10-19.log"}, names)

	content, err := os.ReadFile(filepath.Join(dir, "log_2026-10-19.log"))
	require.NoError(t, err)
	assert.Equal(t, "2026-10-19 00:59:00,000 - INFO second day\n", string(content))
}
