// Package annotate provides an error type that records the source location
// at which it was constructed.
//
// The location is captured explicitly at the call site of New or Wrap, so the
// value can be created anywhere, not only while another error is in flight:
//
//	if b == 0 {
//		return 0, annotate.Wrap(ErrDivisionByZero, "Custom Error 0")
//	}
package annotate

import (
	"fmt"
	"runtime"
	"strconv"
)

// Error is an error enriched with the file and line where it was raised.
// Its string form is "Error in <file>, line <line> : <msg>".
type Error struct {
	Msg  string
	File string
	Line int

	cause error
}

// New returns an Error located at the caller of New.
func New(msg string) *Error {
	return newAt(2, msg, nil)
}

// Wrap returns an Error located at the caller of Wrap that keeps err as its
// cause. The cause is reachable through errors.Is/As but is not part of the
// message.
func Wrap(err error, msg string) *Error {
	return newAt(2, msg, err)
}

// At builds an Error with an explicit location.
func At(file string, line int, msg string) *Error {
	return &Error{Msg: msg, File: file, Line: line}
}

func newAt(skip int, msg string, cause error) *Error {
	e := &Error{Msg: msg, cause: cause}
	// An unresolvable frame leaves the location empty.
	if _, file, line, ok := runtime.Caller(skip); ok {
		e.File = file
		e.Line = line
	}
	return e
}

func (e *Error) Error() string {
	if e == nil {
		return emptyString
	}
	return fmt.Sprintf("Error in %s, line %d : %s", e.File, e.Line, e.Msg)
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.cause
}

// Location returns "file:line", or an empty string when unknown.
func (e *Error) Location() string {
	if e == nil || e.File == emptyString {
		return emptyString
	}
	return e.File + ":" + strconv.Itoa(e.Line)
}

const emptyString = ""
