package annotate

import (
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errCause = errors.New("division by zero")

func TestNew_CapturesCallSite(t *testing.T) {
	_, _, line, _ := runtime.Caller(0)
	err := New("Custom Error 0") // must stay on the line after runtime.Caller

	assert.Equal(t, "annotate_test.go", filepath.Base(err.File))
	assert.Equal(t, line+1, err.Line)
	assert.Equal(t, "Custom Error 0", err.Msg)
	assert.Nil(t, err.Unwrap())
}

func TestWrap(t *testing.T) {
	t.Run("keeps the cause out of the message", func(t *testing.T) {
		err := Wrap(errCause, "Custom Error 0")

		assert.NotContains(t, err.Error(), errCause.Error())
		assert.ErrorIs(t, err, errCause)
	})

	t.Run("reachable through fmt wrapping", func(t *testing.T) {
		wrapped := fmt.Errorf("run: %w", Wrap(errCause, "Custom Error 0"))

		var ae *Error
		require.ErrorAs(t, wrapped, &ae)
		assert.Equal(t, "Custom Error 0", ae.Msg)
		assert.ErrorIs(t, wrapped, errCause)
	})

	t.Run("nil cause", func(t *testing.T) {
		err := Wrap(nil, "nothing underneath")
		assert.Nil(t, err.Unwrap())
		assert.NotEmpty(t, err.File)
	})
}

func TestError_String(t *testing.T) {
	pattern := regexp.MustCompile(`^Error in .*annotate_test\.go, line \d+ : Custom Error 0$`)

	err := Wrap(errCause, "Custom Error 0")
	assert.Regexp(t, pattern, err.Error())
	assert.Contains(t, err.Error(), "Error in")
	assert.Contains(t, err.Error(), err.File)
	assert.Contains(t, err.Error(), fmt.Sprintf("line %d", err.Line))
}

func TestAt(t *testing.T) {
	tests := []struct {
		name     string
		err      *Error
		expected string
		location string
	}{
		{
			name:     "explicit location",
			err:      At("/src/demo.go", 42, "boom"),
			expected: "Error in /src/demo.go, line 42 : boom",
			location: "/src/demo.go:42",
		},
		{
			name:     "unknown location",
			err:      At("", 0, "boom"),
			expected: "Error in , line 0 : boom",
			location: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
			assert.Equal(t, tt.location, tt.err.Location())
		})
	}
}

func TestNilError(t *testing.T) {
	var err *Error
	assert.Equal(t, "", err.Error())
	assert.Nil(t, err.Unwrap())
	assert.Equal(t, "", err.Location())
}
