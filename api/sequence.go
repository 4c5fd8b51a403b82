// File: api/sequence.go
// Author: momentics <momentics@gmail.com>
//
// Contract of a concurrent, index-addressable sequence container.

package api

// Sequence is a thread-safe resizable sequence.
type Sequence[T any] interface {
	// PushBack appends an item at the tail.
	PushBack(item T) error
	// PopBack removes count items from the tail.
	PopBack(count uint64) error
	// Get copies out the element at index.
	Get(index uint64) (T, error)
	// Set copies in the element at index.
	Set(index uint64, item T) error
	// Clear drops every element, keeping reserved capacity.
	Clear() error
	// Size returns the number of live elements.
	Size() uint64
	// MaxSize returns the element ceiling.
	MaxSize() uint64
	// Remaining returns MaxSize minus Size.
	Remaining() uint64
}
