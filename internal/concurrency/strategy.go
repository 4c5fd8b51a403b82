// File: internal/concurrency/strategy.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Locking strategies resolved once per configuration: one global lock, a
// partition of the index space into fixed-width shards, or no locks at all.

package concurrency

import (
	"sync"
	"time"

	"github.com/momentics/hioload-vector/api"
)

// Acquisition describes how locks are taken for one operation.
type Acquisition struct {
	// Spin busy-waits instead of blocking. Single-element operations only.
	Spin bool
	// Timeout bounds the whole acquisition; zero waits forever.
	Timeout time.Duration
}

// Strategy resolves and acquires the locks guarding an index range.
type Strategy interface {
	// Kind names the strategy variant.
	Kind() api.StrategyKind
	// Width is the number of indices per lock, api.Unbounded for one lock.
	Width() uint64
	// Acquire locks every shard covering indices [lo, hi] in ascending
	// shard order. On timeout nothing stays held.
	Acquire(a Acquisition, lo, hi uint64) (*Held, error)
}

// Held is the set of locks owned by one operation.
type Held struct {
	locks []*Mutex
	once  sync.Once
}

// Release unlocks in reverse acquisition order. Safe to call twice.
func (h *Held) Release() {
	if h == nil {
		return
	}
	h.once.Do(func() {
		for i := len(h.locks) - 1; i >= 0; i-- {
			h.locks[i].Unlock()
		}
		h.locks = nil
	})
}

// Count returns the number of locks held.
func (h *Held) Count() int {
	if h == nil {
		return 0
	}
	return len(h.locks)
}

// acquireOrdered takes each lock in order under a shared deadline, undoing
// everything on expiry.
func acquireOrdered(a Acquisition, locks []*Mutex) (*Held, error) {
	h := &Held{locks: make([]*Mutex, 0, len(locks))}
	var deadline time.Time
	if a.Timeout > 0 {
		deadline = time.Now().Add(a.Timeout)
	}
	for _, m := range locks {
		if !take(a, m, deadline) {
			h.Release()
			return nil, api.NewError(api.KindLockTimeout, "acquire")
		}
		h.locks = append(h.locks, m)
	}
	return h, nil
}

func take(a Acquisition, m *Mutex, deadline time.Time) bool {
	if deadline.IsZero() {
		if a.Spin {
			m.Spin()
		} else {
			m.Lock()
		}
		return true
	}
	remaining := time.Until(deadline)
	if a.Spin {
		return m.SpinTimeout(remaining)
	}
	return m.LockTimeout(remaining)
}

// Global guards the whole container with a single lock.
type Global struct {
	mu *Mutex
}

// NewGlobal builds the single-lock strategy.
func NewGlobal() *Global {
	return &Global{mu: NewMutex()}
}

func (g *Global) Kind() api.StrategyKind { return api.StrategyGlobal }
func (g *Global) Width() uint64          { return api.Unbounded }

// Acquire ignores the range; every operation takes the one lock.
func (g *Global) Acquire(a Acquisition, _, _ uint64) (*Held, error) {
	return acquireOrdered(a, []*Mutex{g.mu})
}

// Sharded partitions the index space into shards of width indices, each
// with its own lock. Shard locks are created on first use and are stable
// afterwards.
type Sharded struct {
	width  uint64
	shards sync.Map // uint64 -> *Mutex
}

// NewSharded builds a sharded strategy. A width of zero is treated as one.
func NewSharded(width uint64) *Sharded {
	if width == 0 {
		width = 1
	}
	return &Sharded{width: width}
}

func (s *Sharded) Kind() api.StrategyKind { return api.StrategySharded }
func (s *Sharded) Width() uint64          { return s.width }

// ShardOf maps an index to its shard id.
func (s *Sharded) ShardOf(index uint64) uint64 {
	return index / s.width
}

func (s *Sharded) shard(id uint64) *Mutex {
	if m, ok := s.shards.Load(id); ok {
		return m.(*Mutex)
	}
	m, _ := s.shards.LoadOrStore(id, NewMutex())
	return m.(*Mutex)
}

// Shards reports how many shard locks have been created.
func (s *Sharded) Shards() int {
	n := 0
	s.shards.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}

// Acquire locks shards lo/width through hi/width inclusive, ascending.
func (s *Sharded) Acquire(a Acquisition, lo, hi uint64) (*Held, error) {
	if hi < lo {
		lo, hi = hi, lo
	}
	first, last := s.ShardOf(lo), s.ShardOf(hi)
	locks := make([]*Mutex, 0, last-first+1)
	for id := first; ; id++ {
		locks = append(locks, s.shard(id))
		if id == last {
			break
		}
	}
	return acquireOrdered(a, locks)
}

// Dangerous takes no locks. Callers guarantee race freedom externally.
type Dangerous struct{}

func (Dangerous) Kind() api.StrategyKind { return api.StrategyDangerous }
func (Dangerous) Width() uint64          { return api.Unbounded }

func (Dangerous) Acquire(Acquisition, uint64, uint64) (*Held, error) {
	return &Held{}, nil
}
