package netlist

import "github.com/pkg/errors"

// ErrorKind enumerates the nine structural link-error variants a
// failed elaboration can report.
type ErrorKind int

const (
	Recursion ErrorKind = iota
	DuplicateWireName
	UnknownModule
	UnknownWire
	IncorrectWireKind
	MismatchedWireSize
	MissingIOWires
	MultipleDrivers
	NoDriver
)

func (k ErrorKind) String() string {
	switch k {
	case Recursion:
		return "Recursion"
	case DuplicateWireName:
		return "DuplicateWireName"
	case UnknownModule:
		return "UnknownModule"
	case UnknownWire:
		return "UnknownWire"
	case IncorrectWireKind:
		return "IncorrectWireKind"
	case MismatchedWireSize:
		return "MismatchedWireSize"
	case MissingIOWires:
		return "MissingIOWires"
	case MultipleDrivers:
		return "MultipleDrivers"
	case NoDriver:
		return "NoDriver"
	default:
		return "UnknownErrorKind"
	}
}

// LinkError is a typed link-time error carrying a human-readable context
// string naming the offending module/wire/bit.
type LinkError struct {
	Kind    ErrorKind
	Context string
}

func (e *LinkError) Error() string {
	return e.Kind.String() + ": " + e.Context
}

// NewLinkError builds a *LinkError wrapped with a stack trace via
// github.com/pkg/errors, so that a causal chain several instances deep
// is still inspectable with "%+v" at the CLI layer.
func NewLinkError(kind ErrorKind, format string, args ...interface{}) error {
	return errors.WithStack(&LinkError{Kind: kind, Context: errors.Errorf(format, args...).Error()})
}

// AsLinkError unwraps err (following any github.com/pkg/errors cause
// chain) to the *LinkError it wraps, if any.
func AsLinkError(err error) (*LinkError, bool) {
	for err != nil {
		if le, ok := err.(*LinkError); ok {
			return le, true
		}
		cause, ok := err.(interface{ Cause() error })
		if !ok {
			break
		}
		err = cause.Cause()
	}
	return nil, false
}
