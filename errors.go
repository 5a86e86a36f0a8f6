package spiral

import (
	"errors"
	"fmt"
)

var (
	// ErrDivisionByZero is returned when a vector is divided by a zero scalar, e.g. when the
	// velocity vanishes and the thrust direction is undefined.
	ErrDivisionByZero = errors.New("vector division by zero")
	// ErrDidNotConverge is returned when the step or duration ceiling is hit before the target radius.
	ErrDidNotConverge = errors.New("target radius not reached within the propagation limits")
	// ErrPropellantExhausted is returned when the propellant runs out and the vehicle is set to stop on depletion.
	ErrPropellantExhausted = errors.New("propellant exhausted")
	// ErrInwardTransfer is returned when the target radius is not beyond the initial radius.
	ErrInwardTransfer = errors.New("only outward transfers are supported")
	// ErrInvalidParameter is returned for any non physical input.
	ErrInvalidParameter = errors.New("invalid parameter")
)

// StepError wraps an error with the propagation step it happened at.
type StepError struct {
	Step uint64
	Time float64 // elapsed seconds
	Err  error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("step %d (t=%.0fs): %s", e.Step, e.Time, e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

func invalidf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}
