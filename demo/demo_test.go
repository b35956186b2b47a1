package demo

import (
	"encoding/json"
	"math"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/Station-Manager/scaffold/annotate"
	"github.com/Station-Manager/scaffold/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var annotatedPattern = regexp.MustCompile(`Error in .*, line \d+ : Custom Error 0`)

func newService(t *testing.T) *logging.Service {
	t.Helper()
	cfg := logging.DefaultConfig()
	svc := &logging.Service{WorkingDir: t.TempDir(), LoggingConfig: &cfg}
	require.NoError(t, svc.Initialize())
	return svc
}

func readLines(t *testing.T, svc *logging.Service) []string {
	t.Helper()
	path := svc.LogFilePath()
	require.NoError(t, svc.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimRight(string(content), "\n"), "\n")
}

func TestDivide_Success(t *testing.T) {
	tests := []struct {
		a, b     float64
		expected float64
	}{
		{a: 10, b: 2, expected: 5},
		{a: 1, b: 3, expected: 1.0 / 3.0},
		{a: -7, b: 2, expected: -3.5},
		{a: 0, b: 5, expected: 0},
		{a: 10, b: -0.5, expected: -20},
	}

	for _, tt := range tests {
		svc := newService(t)

		q, err := Divide(svc.Named("demo"), tt.a, tt.b)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, q)

		lines := readLines(t, svc)
		require.Len(t, lines, 1)
		assert.Contains(t, lines[0], " - INFO dividing two numbers")
	}
}

func TestDivide_ByZero(t *testing.T) {
	svc := newService(t)

	q, err := Divide(svc.Named("demo"), 10, 0)
	require.Error(t, err)
	assert.Zero(t, q)
	assert.ErrorIs(t, err, ErrDivisionByZero)

	var ae *annotate.Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, FailureLabel, ae.Msg)
	assert.Equal(t, "demo.go", filepath.Base(ae.File))
	assert.Positive(t, ae.Line)
	assert.Regexp(t, annotatedPattern, err.Error())

	lines := readLines(t, svc)
	require.Len(t, lines, 1)
	assert.Contains(t, lines[0], " - ERROR Error occured")
}

func TestDivide_NonFinite(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
	}{
		{name: "overflow", a: math.MaxFloat64, b: 0.5},
		{name: "nan dividend", a: math.NaN(), b: 1},
		{name: "infinite dividend", a: math.Inf(1), b: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Divide(logging.FromContext(t.Context()), tt.a, tt.b)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrNonFiniteQuotient)
			assert.Regexp(t, annotatedPattern, err.Error())
		})
	}
}

var textLine = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2},\d{3} - (INFO|ERROR) (.*)$`)

func TestRun_EndToEnd(t *testing.T) {
	svc := newService(t)

	start := time.Now()
	err := Run(svc.Named("__main__"))
	require.Error(t, err)
	assert.Regexp(t, annotatedPattern, err.Error())
	assert.ErrorIs(t, err, ErrDivisionByZero)

	lines := readLines(t, svc)
	assert.Less(t, time.Since(start), 250*time.Millisecond)
	require.Len(t, lines, 3)

	var levels, messages []string
	for _, line := range lines {
		m := textLine.FindStringSubmatch(line)
		require.Len(t, m, 3, line)
		levels = append(levels, m[1])
		messages = append(messages, m[2])
	}
	assert.Equal(t, []string{"INFO", "ERROR", "ERROR"}, levels)
	assert.Equal(t, []string{"Starting main program", "Error occured", err.Error()}, messages)
}

func TestRun_StructuredFields(t *testing.T) {
	cfg := logging.DefaultConfig()
	cfg.Format = logging.FormatJSON
	svc := &logging.Service{WorkingDir: t.TempDir(), LoggingConfig: &cfg}
	require.NoError(t, svc.Initialize())
	log := svc.Named("__main__")

	require.Error(t, Run(log))
	require.Error(t, Run(log))

	lines := readLines(t, svc)
	require.Len(t, lines, 6)

	entries := make([]map[string]any, 0, len(lines))
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &entry))
		assert.Equal(t, "__main__", entry["logger"])
		entries = append(entries, entry)
	}

	assert.Equal(t, "Error occured", entries[1]["message"])
	assert.EqualValues(t, 10, entries[1]["a"])
	assert.EqualValues(t, 0, entries[1]["b"])

	firstRun := entries[0]["run_id"]
	require.NotEmpty(t, firstRun)
	assert.Equal(t, firstRun, entries[1]["run_id"])
	assert.Equal(t, firstRun, entries[2]["run_id"])
	assert.NotEqual(t, firstRun, entries[3]["run_id"])
	assert.Equal(t, entries[3]["run_id"], entries[5]["run_id"])
}
