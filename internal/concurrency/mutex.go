// File: internal/concurrency/mutex.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Mutex is a one-slot semaphore lock supporting blocking, bounded and
// busy-wait acquisition on the same lock word. Padded to its own cache line
// so adjacent shard locks do not false-share.

package concurrency

import (
	"runtime"
	"time"

	"golang.org/x/sys/cpu"
)

// Mutex is an exclusive lock. The zero value is not usable; use NewMutex.
type Mutex struct {
	_    cpu.CacheLinePad
	sema chan struct{}
	_    cpu.CacheLinePad
}

// NewMutex allocates an unlocked mutex.
func NewMutex() *Mutex {
	return &Mutex{sema: make(chan struct{}, 1)}
}

// Lock blocks until the mutex is held.
func (m *Mutex) Lock() {
	m.sema <- struct{}{}
}

// TryLock acquires the mutex only if it is free.
func (m *Mutex) TryLock() bool {
	select {
	case m.sema <- struct{}{}:
		return true
	default:
		return false
	}
}

// LockTimeout blocks for at most d. Returns false on expiry.
func (m *Mutex) LockTimeout(d time.Duration) bool {
	if m.TryLock() {
		return true
	}
	if d <= 0 {
		return false
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case m.sema <- struct{}{}:
		return true
	case <-t.C:
		return false
	}
}

// Spin busy-waits until the mutex is held.
func (m *Mutex) Spin() {
	var spins int
	for !m.TryLock() {
		backoff(&spins)
	}
}

// SpinTimeout busy-waits for at most d.
func (m *Mutex) SpinTimeout(d time.Duration) bool {
	deadline := time.Now().Add(d)
	var spins int
	for !m.TryLock() {
		if !time.Now().Before(deadline) {
			return false
		}
		backoff(&spins)
	}
	return true
}

// Unlock releases the mutex. Unlocking a free mutex is a programming error.
func (m *Mutex) Unlock() {
	select {
	case <-m.sema:
	default:
		panic("concurrency: unlock of unlocked Mutex")
	}
}

// Locked reports whether the mutex is currently held.
func (m *Mutex) Locked() bool {
	return len(m.sema) == 1
}

const activeSpins = 16

// backoff retries on-CPU for the first rounds, then yields the processor
// between attempts.
func backoff(spins *int) {
	*spins++
	if *spins <= activeSpins {
		return
	}
	runtime.Gosched()
}
