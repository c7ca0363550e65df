package lr

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Lailouezzz/microparser"
)

// ErrorKind classifies parser errors. ErrorKind implements the error interface,
// thus clients may check for a category of error with errors.Is:
//
//     if errors.Is(err, lr.SyntaxError) { … }
//
type ErrorKind int8

const (
	NoError ErrorKind = iota
	// AllocationFailure: the parse stack (or its growth) could not be allocated.
	AllocationFailure
	// SyntaxError: the ACTION table rejected the current (state, token) pair.
	SyntaxError
	// ProductionError: a reduce callback did not produce a value.
	ProductionError
	// InternalError: tables and engine invariants do not match, e.g. an accept
	// with an unexpected stack shape or a reduction popping more slots than present.
	InternalError
)

func (k ErrorKind) String() string {
	switch k {
	case NoError:
		return "no error"
	case AllocationFailure:
		return "allocation failure"
	case SyntaxError:
		return "syntax error"
	case ProductionError:
		return "production error"
	case InternalError:
		return "internal error"
	}
	return fmt.Sprintf("ErrorKind(%d)", int8(k))
}

func (k ErrorKind) Error() string {
	return k.String()
}

// Error is the error type returned by parse stacks and parsers. It records the
// automaton context at the time the error occured.
type Error struct {
	Kind       ErrorKind
	State      StateID               // state on top of stack, if known
	Token      *Token                // offending input token, if any
	Production ProdID                // production being reduced, for production errors
	Expected   []microparser.TokType // terminals acceptable in State, for syntax errors
	Msg        string
	Err        error // underlying cause, if any
}

// Errorf creates an error of a given kind with a formatted message.
func Errorf(kind ErrorKind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Token != nil {
		fmt.Fprintf(&b, " (token %v in state %d)", *e.Token, e.State)
	}
	if len(e.Expected) > 0 {
		fmt.Fprintf(&b, ", expected one of %v", e.Expected)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches error kinds, making errors.Is(err, lr.SyntaxError) work.
func (e *Error) Is(target error) bool {
	if k, ok := target.(ErrorKind); ok {
		return e.Kind == k
	}
	return false
}

// KindOf returns the error kind of err, or NoError if err is not a parser error.
func KindOf(err error) ErrorKind {
	if err == nil {
		return NoError
	}
	for _, k := range []ErrorKind{AllocationFailure, SyntaxError, ProductionError, InternalError} {
		if errors.Is(err, k) {
			return k
		}
	}
	return NoError
}
