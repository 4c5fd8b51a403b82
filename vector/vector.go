// File: vector/vector.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Vector is a contiguous, index-addressable container whose locking,
// capacity, gating and failure-reporting behavior come from a per-instance
// control.Config.

package vector

import (
	"fmt"
	"math"
	"sync/atomic"
	"unsafe"

	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"

	"github.com/momentics/hioload-vector/api"
	"github.com/momentics/hioload-vector/control"
	"github.com/momentics/hioload-vector/internal/concurrency"
	"github.com/momentics/hioload-vector/sysmem"
)

// Ensure compile-time interface compliance.
var _ api.Sequence[int] = (*Vector[int])(nil)

// initialCapacity is allocated when no reservation is requested.
const initialCapacity uint64 = 16

// sequence orders containers by creation for cross-container lock order.
var sequence atomic.Uint64

// lockState binds a configuration to the lock structures built for it.
// Replaced wholesale by Reconfigure.
type lockState struct {
	cfg   control.Config
	mgr   *concurrency.Manager
	epoch uint64
}

// Vector is a thread-safe dynamic array.
type Vector[T any] struct {
	id   uuid.UUID
	seq  uint64
	name string
	log  hclog.Logger

	state atomic.Pointer[lockState]

	size     atomic.Uint64
	maxSize  atomic.Uint64
	capacity atomic.Uint64

	// data is reallocated only while every lock of the container is held.
	// Slot i is guarded by the lock covering index i.
	data []T

	waiters *concurrency.WaitQueue
	stats   statistics
}

// New creates an unbounded vector. With ReserveMaxSize the ceiling is taken
// from free system memory instead.
func New[T any](cfg control.Config, opts ...Option) (*Vector[T], error) {
	return NewBounded[T](api.Unbounded, cfg, opts...)
}

// NewBounded creates a vector holding at most maxSize elements.
func NewBounded[T any](maxSize uint64, cfg control.Config, opts ...Option) (*Vector[T], error) {
	if maxSize == 0 {
		return nil, api.NewError(api.KindInvalidArgument, "new").Wrap(fmt.Errorf("maxSize must be positive"))
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	o := applyOptions(opts...)

	v := &Vector[T]{
		id:      uuid.New(),
		seq:     sequence.Add(1),
		name:    o.name,
		waiters: concurrency.NewWaitQueue(),
	}
	if v.name == "" {
		v.name = v.id.String()
	}
	v.log = o.logger.Named("vector").With("vector", v.name)

	var zero T
	elemSize := uint64(unsafe.Sizeof(zero))
	reserve := min(maxSize, initialCapacity)
	if cfg.ReserveMaxSize {
		if maxSize == api.Unbounded {
			maxSize = sysmem.ReserveElements(o.advisor, elemSize, cfg.Divisor())
			v.log.Debug("ram-aware reservation",
				"free_bytes", o.advisor.FreeMemory(), "elements", maxSize)
		}
		reserve = maxSize
	}
	if reserve > math.MaxInt {
		return nil, api.NewError(api.KindCapacityExceeded, "new").
			Wrap(fmt.Errorf("cannot reserve %d elements", reserve))
	}
	if cfg.UnlockedReading && reserve != maxSize {
		return nil, api.NewError(api.KindConfigurationConflict, "new").
			Wrap(fmt.Errorf("unlocked_reading needs storage reserved to maxSize"))
	}

	v.data = make([]T, reserve)
	v.capacity.Store(reserve)
	v.maxSize.Store(maxSize)
	v.state.Store(v.newLockState(cfg, 0))

	if o.registry != nil {
		if err := o.registry.Register(control.NewStatsCollector(v.name, v)); err != nil {
			return nil, fmt.Errorf("vector: register metrics: %w", err)
		}
	}
	if o.probes != nil {
		v.registerProbes(o.probes)
	}
	v.log.Debug("created", "max_size", maxSize, "capacity", reserve, "config", cfg.String())
	return v, nil
}

func (v *Vector[T]) newLockState(cfg control.Config, epoch uint64) *lockState {
	kind := cfg.Strategy()
	width := cfg.ShardWidth()
	return &lockState{
		cfg:   cfg,
		epoch: epoch,
		mgr: concurrency.NewManager(kind, width, func(concurrency.Strategy) {
			v.log.Debug("lock table built", "strategy", kind.String(), "width", width, "epoch", epoch)
		}),
	}
}

func (v *Vector[T]) registerProbes(dp *control.DebugProbes) {
	prefix := "vector." + v.name + "."
	dp.RegisterProbe(prefix+"size", func() any { return v.Size() })
	dp.RegisterProbe(prefix+"capacity", func() any { return v.Capacity() })
	dp.RegisterProbe(prefix+"max_size", func() any { return v.MaxSize() })
	dp.RegisterProbe(prefix+"strategy", func() any { return v.Strategy().String() })
}

// ID returns the unique instance identifier.
func (v *Vector[T]) ID() uuid.UUID { return v.id }

// Name returns the label used in logs and metrics.
func (v *Vector[T]) Name() string { return v.name }

// Config returns a copy of the active configuration.
func (v *Vector[T]) Config() control.Config { return v.state.Load().cfg }

// Strategy returns the active locking strategy variant.
func (v *Vector[T]) Strategy() api.StrategyKind { return v.state.Load().mgr.Kind() }

// Size returns the number of live elements. Lock-free; may be stale
// relative to a concurrent mutation.
func (v *Vector[T]) Size() uint64 { return v.size.Load() }

// MaxSize returns the element ceiling, api.Unbounded if none.
func (v *Vector[T]) MaxSize() uint64 { return v.maxSize.Load() }

// Capacity returns the number of allocated slots.
func (v *Vector[T]) Capacity() uint64 { return v.capacity.Load() }

// Remaining returns how many more elements fit under the ceiling.
func (v *Vector[T]) Remaining() uint64 {
	ceiling, size := v.maxSize.Load(), v.size.Load()
	if size >= ceiling {
		return 0
	}
	return ceiling - size
}

// acquisition derives how locks are taken from cfg. Spinning is reserved
// for single-element critical sections.
func acquisition(cfg control.Config, single bool) concurrency.Acquisition {
	a := concurrency.Acquisition{Spin: single && cfg.EnableSpinlock}
	if cfg.EnableMutexTimeout {
		a.Timeout = cfg.WaitDuration()
	}
	return a
}

// lockRange acquires the locks covering indices [lo, hi] under the current
// configuration, retrying if a reconfiguration raced with the acquisition.
func (v *Vector[T]) lockRange(op string, single bool, lo, hi uint64) (*lockState, *concurrency.Held, error) {
	for {
		st := v.state.Load()
		h, err := st.mgr.Strategy().Acquire(acquisition(st.cfg, single), lo, hi)
		if err != nil {
			v.stats.timeout(st.cfg)
			v.log.Warn("lock acquisition timed out", "op", op, "lo", lo, "hi", hi,
				"wait", st.cfg.WaitDuration())
			return nil, nil, api.NewError(api.KindLockTimeout, op).Wrap(err)
		}
		if v.state.Load() == st {
			return st, h, nil
		}
		h.Release()
	}
}

// lockAll acquires every lock of the container in ascending order. While
// held, no slot can be touched and storage may be reallocated.
func (v *Vector[T]) lockAll(op string) (*lockState, *concurrency.Held, error) {
	for {
		c := v.capacity.Load()
		st, h, err := v.lockRange(op, false, 0, c)
		if err != nil {
			return nil, nil, err
		}
		if v.capacity.Load() == c {
			return st, h, nil
		}
		h.Release()
	}
}

// growTo reallocates storage to hold at least need slots, doubling.
// Caller holds every lock.
func (v *Vector[T]) growTo(st *lockState, need uint64) error {
	cur := uint64(len(v.data))
	if need <= cur {
		return nil
	}
	next := max(cur*2, need, initialCapacity)
	if ceiling := v.maxSize.Load(); next > ceiling {
		next = ceiling
	}
	if next > math.MaxInt || next < need {
		return api.NewError(api.KindCapacityExceeded, "grow").
			Wrap(fmt.Errorf("cannot allocate %d elements", need))
	}
	data := make([]T, next)
	copy(data, v.data)
	v.data = data
	v.capacity.Store(next)
	v.stats.grow(st.cfg)
	v.log.Debug("storage grown", "from", cur, "to", next, "strategy", st.mgr.Kind().String())
	return nil
}

// raiseCeiling doubles maxSize until need fits. Only bounded Resizeable
// containers have a ceiling to raise.
func (v *Vector[T]) raiseCeiling(need uint64) {
	ceiling := v.maxSize.Load()
	for ceiling < need {
		if ceiling > api.Unbounded/2 {
			ceiling = api.Unbounded
			break
		}
		ceiling *= 2
	}
	v.maxSize.Store(ceiling)
	v.log.Debug("ceiling raised", "max_size", ceiling)
}

// changed wakes gate waiters after a size change.
func (v *Vector[T]) changed(st *lockState) {
	if st.cfg.BlockOnGate {
		v.waiters.Broadcast()
	}
}

// settle surfaces a tagged result through the reporting style selected by
// ThrowOnFailure: returned as a value, or raised as a panic carrying the
// *api.Error.
func settle[T, R any](v *Vector[T], r api.Result[R]) (R, error) {
	if r.Err == nil {
		return r.Value, nil
	}
	cfg := v.Config()
	v.stats.failure(cfg)
	if cfg.ThrowOnFailure {
		panic(r.Err)
	}
	return r.Value, r.Err
}

func settleErr[T any](v *Vector[T], err error) error {
	_, err = settle(v, api.Result[struct{}]{Err: err})
	return err
}
