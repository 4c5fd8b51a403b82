// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Error definitions for concurrency module.

package concurrency

import (
	"errors"

	"github.com/momentics/hioload-vector/api"
)

var (
	// ErrLockTimeout is returned when a bounded acquisition expires.
	ErrLockTimeout = api.ErrLockTimeout

	// ErrWaitTimeout indicates a gate waiter gave up before being woken.
	ErrWaitTimeout = errors.New("gate wait timeout")

	// ErrNilStrategy indicates a lock manager built no strategy.
	ErrNilStrategy = errors.New("lock strategy construction failed")
)
