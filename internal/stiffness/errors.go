package stiffness

import (
	"errors"
	"fmt"
)

// Error kinds returned by the analysis. Use errors.Is to test for them.
var (
	ErrInvalidGeometry    = errors.New("invalid geometry")
	ErrInvalidSupportCode = errors.New("invalid support code")
	ErrDimensionMismatch  = errors.New("dimension mismatch")
	ErrSingularSystem     = errors.New("singular system")
	ErrNumericDomain      = errors.New("numeric domain error")
)

// Error is the concrete error returned by the analysis engine
type Error struct {
	Kind error  // one of the Err* kinds above
	Msg  string // human readable detail

	// Condition is the condition estimate of the reduced stiffness matrix.
	// Only set for ErrSingularSystem.
	Condition float64
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}
