// Package api
// Author: momentics@gmail.com
//
// Tagged success/error values produced by every fallible container operation.

package api

// Result wraps any payload or error.
type Result[T any] struct {
	Value T
	Err   error
}

// Ok builds a successful result.
func Ok[T any](v T) Result[T] {
	return Result[T]{Value: v}
}

// Fail builds a failed result carrying the zero value.
func Fail[T any](err error) Result[T] {
	return Result[T]{Err: err}
}

// FailWith builds a failed result carrying an explicit sentinel value.
func FailWith[T any](v T, err error) Result[T] {
	return Result[T]{Value: v, Err: err}
}

// OK reports whether the result carries no error.
func (r Result[T]) OK() bool {
	return r.Err == nil
}

// Unwrap returns the payload and error pair.
func (r Result[T]) Unwrap() (T, error) {
	return r.Value, r.Err
}

// Must returns the payload or panics with the error.
func (r Result[T]) Must() T {
	if r.Err != nil {
		panic(r.Err)
	}
	return r.Value
}
