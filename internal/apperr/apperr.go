// Package apperr defines the failure kinds returned by the domain services.
//
// A lookup miss is not an error in this system; services report it through a
// comma-ok result instead.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// KindUnknown is reported for errors that did not originate here.
	KindUnknown Kind = iota
	// KindInvalidInput marks malformed or out-of-range user data.
	KindInvalidInput
	// KindConflict marks a uniqueness violation.
	KindConflict
	// KindUnauthorized marks a credential mismatch.
	KindUnauthorized
	// KindStorage marks an infrastructure failure in the relational store.
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindInvalidInput:
		return "invalid_input"
	case KindConflict:
		return "conflict"
	case KindUnauthorized:
		return "unauthorized"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Error is a typed failure carrying the operation that produced it.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Msg != "":
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Msg, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Op, e.Msg)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// InvalidInput reports rejected user data.
func InvalidInput(op, msg string) error {
	return &Error{Kind: KindInvalidInput, Op: op, Msg: msg}
}

// Conflict reports a uniqueness violation.
func Conflict(op, msg string) error {
	return &Error{Kind: KindConflict, Op: op, Msg: msg}
}

// Unauthorized reports a credential mismatch.
func Unauthorized(op, msg string) error {
	return &Error{Kind: KindUnauthorized, Op: op, Msg: msg}
}

// Storage wraps a store failure.
func Storage(op string, err error) error {
	return &Error{Kind: KindStorage, Op: op, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// Message returns the user-facing part of err: the Msg of a typed failure, or
// a generic text for anything else so driver details stay out of responses.
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Kind != KindStorage && e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}
