// Package demo exercises the logging and annotate packages with a division
// that is expected to fail.
package demo

import (
	"errors"
	"math"

	"github.com/Station-Manager/scaffold/annotate"
	"github.com/Station-Manager/scaffold/logging"
	"github.com/google/uuid"
)

// FailureLabel is the message of every error returned by Divide. The
// underlying cause is kept as the wrapped error.
const FailureLabel = "Custom Error 0"

var (
	ErrDivisionByZero    = errors.New("division by zero")
	ErrNonFiniteQuotient = errors.New("quotient is not finite")
)

// Divide returns a / b. Any failure is logged and returned as an
// *annotate.Error located in Divide.
func Divide(log logging.Logger, a, b float64) (float64, error) {
	q, err := quotient(a, b)
	if err != nil {
		log.ErrorWith().Float64("a", a).Float64("b", b).Msg("Error occured")
		return 0, annotate.Wrap(err, FailureLabel)
	}

	log.InfoWith().Msg("dividing two numbers")
	return q, nil
}

func quotient(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrDivisionByZero
	}
	q := a / b
	if math.IsInf(q, 0) || math.IsNaN(q) {
		return 0, ErrNonFiniteQuotient
	}
	return q, nil
}

// Run divides 10 by 0 and logs the resulting annotated error. The error is
// also returned so the caller can decide whether it affects the exit status.
func Run(log logging.Logger) error {
	log = log.With().Str("run_id", uuid.NewString()).Logger()
	log.InfoWith().Msg("Starting main program")

	if _, err := Divide(log, 10, 0); err != nil {
		var ae *annotate.Error
		if !errors.As(err, &ae) {
			return err
		}
		log.ErrorWith().Msg(ae.Error())
		return ae
	}
	return nil
}
