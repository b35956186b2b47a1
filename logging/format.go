package logging

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

var lineParts = []string{zerolog.TimestampFieldName, zerolog.LevelFieldName, zerolog.MessageFieldName}

// newLineWriter renders JSON records from zerolog as
// "<timestamp> - <LEVEL> <message>". Other fields are only kept by the JSON
// format.
func newLineWriter(out io.Writer) io.Writer {
	return zerolog.ConsoleWriter{
		Out:             out,
		NoColor:         true,
		PartsOrder:      lineParts,
		FormatPrepare:   keepLineParts,
		FormatTimestamp: formatTimestamp,
		FormatLevel:     formatLevel,
	}
}

func keepLineParts(evt map[string]interface{}) error {
	for field := range evt {
		if !slices.Contains(lineParts, field) {
			delete(evt, field)
		}
	}
	return nil
}

func formatTimestamp(i interface{}) string {
	if i == nil {
		return emptyString
	}
	return fmt.Sprintf("%v -", i)
}

func formatLevel(i interface{}) string {
	if l, ok := i.(string); ok && l != emptyString {
		return strings.ToUpper(l)
	}
	return "???"
}

// timestampHook stamps each record with the service clock in TimestampLayout.
// It replaces zerolog's Timestamp() so the layout does not depend on the
// package-level zerolog.TimeFieldFormat.
type timestampHook struct {
	now func() time.Time
}

func (h timestampHook) Run(e *zerolog.Event, _ zerolog.Level, _ string) {
	e.Str(zerolog.TimestampFieldName, h.now().Format(TimestampLayout))
}
