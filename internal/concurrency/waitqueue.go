// File: internal/concurrency/waitqueue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// WaitQueue parks goroutines refused by an admission gate until the state
// they depend on changes. Waiters are woken in arrival order.

package concurrency

import (
	"sync"
	"time"

	"github.com/eapache/queue"
)

// WaitQueue is a FIFO of one-shot wake-up channels.
type WaitQueue struct {
	mu      sync.Mutex
	waiters *queue.Queue
}

// NewWaitQueue creates an empty queue.
func NewWaitQueue() *WaitQueue {
	return &WaitQueue{waiters: queue.New()}
}

// Enlist registers a waiter. The returned channel is closed by the next
// Broadcast. Callers re-check their condition after enlisting and before
// waiting so a concurrent Broadcast is never missed.
func (w *WaitQueue) Enlist() <-chan struct{} {
	ch := make(chan struct{})
	w.mu.Lock()
	w.waiters.Add(ch)
	w.mu.Unlock()
	return ch
}

// Broadcast wakes every enlisted waiter, oldest first.
func (w *WaitQueue) Broadcast() {
	w.mu.Lock()
	defer w.mu.Unlock()
	for w.waiters.Length() > 0 {
		close(w.waiters.Remove().(chan struct{}))
	}
}

// Len returns the number of enlisted waiters.
func (w *WaitQueue) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.waiters.Length()
}

// Wait blocks on ch for at most timeout; zero waits forever.
func Wait(ch <-chan struct{}, timeout time.Duration) error {
	if timeout <= 0 {
		<-ch
		return nil
	}
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-ch:
		return nil
	case <-t.C:
		return ErrWaitTimeout
	}
}
