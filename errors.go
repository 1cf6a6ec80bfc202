package epp

import (
	"errors"
	"fmt"
)

// ErrNoParse is returned by Parse if the input could not be parsed.
// A *Failure matches ErrNoParse with errors.Is.
var ErrNoParse = errors.New("epp: parsing failed")

// Failure signals that a parser cannot continue on its input. Failures are
// recoverable: branches try their next alternative, chains start to
// backtrack.
type Failure struct {
	Msg string
}

// Failf creates a *Failure with a formatted message.
func Failf(format string, args ...interface{}) *Failure {
	return &Failure{Msg: fmt.Sprintf(format, args...)}
}

func (f *Failure) Error() string {
	return "epp: " + f.Msg
}

// Is lets a *Failure match ErrNoParse.
func (f *Failure) Is(target error) bool {
	return target == ErrNoParse
}

// End signals that parsing ended early, but successfully. It carries the
// final State.
type End struct {
	State State
}

func (e *End) Error() string {
	return fmt.Sprintf("epp: parsing ended at %s", e.State.LeftSpan())
}

// IsFailure returns true if err is or wraps a *Failure.
func IsFailure(err error) bool {
	var f *Failure
	return errors.As(err, &f)
}

// IsEnd returns true if err is or wraps an *End.
func IsEnd(err error) bool {
	var e *End
	return errors.As(err, &e)
}

// isSignal is true for errors steering the control flow of parsers.
func isSignal(err error) bool {
	return IsFailure(err) || IsEnd(err)
}

// asEnd extracts the *End signal from err, if any.
func asEnd(err error) (*End, bool) {
	var e *End
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
