// Package api
// Author: momentics <momentics@gmail.com>
//
// Error kinds and structured errors shared by every container operation.

package api

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a container failure.
type ErrorKind int

const (
	KindOK ErrorKind = iota
	KindCapacityExceeded
	KindUnderflow
	KindIndexOutOfRange
	KindLockTimeout
	KindGated
	KindConfigurationConflict
	KindUnsupported
	KindInvalidArgument
)

func (k ErrorKind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindCapacityExceeded:
		return "capacity exceeded"
	case KindUnderflow:
		return "underflow"
	case KindIndexOutOfRange:
		return "index out of range"
	case KindLockTimeout:
		return "lock timeout"
	case KindGated:
		return "gated"
	case KindConfigurationConflict:
		return "configuration conflict"
	case KindUnsupported:
		return "unsupported"
	case KindInvalidArgument:
		return "invalid argument"
	default:
		return "unknown"
	}
}

// Sentinel errors, one per kind. Match with errors.Is.
var (
	ErrCapacityExceeded      = &Error{Kind: KindCapacityExceeded}
	ErrUnderflow             = &Error{Kind: KindUnderflow}
	ErrIndexOutOfRange       = &Error{Kind: KindIndexOutOfRange}
	ErrLockTimeout           = &Error{Kind: KindLockTimeout}
	ErrGated                 = &Error{Kind: KindGated}
	ErrConfigurationConflict = &Error{Kind: KindConfigurationConflict}
	ErrUnsupported           = &Error{Kind: KindUnsupported}
	ErrInvalidArgument       = &Error{Kind: KindInvalidArgument}
)

// NoIndex marks an Error that does not refer to a specific element.
const NoIndex = ^uint64(0)

// Error is a structured container error.
type Error struct {
	Kind  ErrorKind
	Op    string
	Index uint64
	Err   error
}

// NewError creates an error of the given kind raised by op.
func NewError(kind ErrorKind, op string) *Error {
	return &Error{Kind: kind, Op: op, Index: NoIndex}
}

// AtIndex records the element index the failure refers to.
func (e *Error) AtIndex(i uint64) *Error {
	e.Index = i
	return e
}

// Wrap attaches an underlying cause.
func (e *Error) Wrap(err error) *Error {
	e.Err = err
	return e
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := e.Kind.String()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Index != NoIndex && e.Op != "" {
		msg = fmt.Sprintf("%s (index %d)", msg, e.Index)
	}
	if e.Err != nil {
		msg = msg + ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports kind equality so that errors.Is(err, ErrLockTimeout) holds for any
// lock timeout regardless of the operation that raised it.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf extracts the ErrorKind carried by err, KindOK for nil.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindOK
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInvalidArgument
}
