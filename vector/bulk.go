// File: vector/bulk.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Multi-element operations. They block or time out but never spin. When
// two containers are involved, the one created first is locked first.

package vector

import (
	"fmt"

	"github.com/momentics/hioload-vector/api"
	"github.com/momentics/hioload-vector/internal/concurrency"
)

// Append moves every element of v to the tail of dst and returns the count
// moved, or -1 when v holds nothing. With explicitAll every lock of v is
// held for the transfer, otherwise only the filled range. If dst lacks
// room, its ceiling is raised only when resize is true; otherwise the call
// fails with KindCapacityExceeded and neither container changes.
// A dst configured for unlocked reading never grows its storage.
func (v *Vector[T]) Append(dst *Vector[T], explicitAll, resize bool) (int64, error) {
	return settle(v, v.appendTo(dst, explicitAll, resize))
}

func (v *Vector[T]) appendTo(dst *Vector[T], explicitAll, resize bool) api.Result[int64] {
	const op = "append"
	if dst == nil || dst == v {
		return api.FailWith(int64(-1), api.NewError(api.KindInvalidArgument, op).
			Wrap(fmt.Errorf("destination must be a distinct vector")))
	}
	for {
		n, d := v.size.Load(), dst.size.Load()
		if n == 0 {
			return api.FailWith(int64(-1), api.NewError(api.KindUnderflow, op).
				Wrap(fmt.Errorf("nothing to transfer")))
		}

		lockSrc := func() (*lockState, *concurrency.Held, error) {
			if explicitAll {
				return v.lockAll(op)
			}
			return v.lockRange(op, false, 0, n)
		}
		// Capacity never shrinks: a range lock chosen here never needs growth.
		lockDst := func() (*lockState, *concurrency.Held, error) {
			if d+n > dst.capacity.Load() {
				return dst.lockAll(op)
			}
			return dst.lockRange(op, false, d, d+n)
		}

		var (
			sst, dstSt *lockState
			sh, dh     *concurrency.Held
			err        error
		)
		if v.seq < dst.seq {
			if sst, sh, err = lockSrc(); err == nil {
				if dstSt, dh, err = lockDst(); err != nil {
					sh.Release()
				}
			}
		} else {
			if dstSt, dh, err = lockDst(); err == nil {
				if sst, sh, err = lockSrc(); err != nil {
					dh.Release()
				}
			}
		}
		if err != nil {
			return api.FailWith(int64(-1), err)
		}
		if v.size.Load() != n || dst.size.Load() != d {
			release(sh, dh)
			continue
		}

		if v.refused(sst.cfg, accessRead) {
			if err := v.park(sst.cfg, accessRead, op, sh, dh); err != nil {
				return api.FailWith(int64(-1), err)
			}
			continue
		}
		if dst.refused(dstSt.cfg, accessWrite) {
			if err := dst.park(dstSt.cfg, accessWrite, op, sh, dh); err != nil {
				return api.FailWith(int64(-1), err)
			}
			continue
		}

		// Unlocked readers index dst.data without a lock: its storage must not move.
		if dstSt.cfg.UnlockedReading && d+n > dst.capacity.Load() {
			release(sh, dh)
			return api.FailWith(int64(-1), api.NewError(api.KindCapacityExceeded, op).
				Wrap(fmt.Errorf("destination storage is fixed at %d for unlocked reads", dst.capacity.Load())))
		}
		if d+n > dst.maxSize.Load() || d+n < d {
			if !resize || d+n < d {
				release(sh, dh)
				return api.FailWith(int64(-1), api.NewError(api.KindCapacityExceeded, op).
					Wrap(fmt.Errorf("destination has room for %d of %d", dst.Remaining(), n)))
			}
			dst.raiseCeiling(d + n)
		}
		if err := dst.growTo(dstSt, d+n); err != nil {
			release(sh, dh)
			return api.FailWith(int64(-1), err)
		}

		copy(dst.data[d:d+n], v.data[:n])
		dst.size.Store(d + n)
		clear(v.data[:n])
		v.size.Store(0)
		release(sh, dh)

		v.stats.append(sst.cfg)
		dst.stats.write(dstSt.cfg)
		v.changed(sst)
		dst.changed(dstSt)
		return api.Ok(int64(n))
	}
}

// Clear drops every element under the full lock set. Capacity is kept.
func (v *Vector[T]) Clear() error {
	return settleErr(v, v.clearAll())
}

func (v *Vector[T]) clearAll() error {
	st, h, err := v.lockAll("clear")
	if err != nil {
		return err
	}
	clear(v.data[:v.size.Load()])
	v.size.Store(0)
	h.Release()
	v.stats.clear(st.cfg)
	v.changed(st)
	return nil
}

// Reserve grows storage to at least n slots without adding elements.
// Exceeding the ceiling requires Resizeable.
func (v *Vector[T]) Reserve(n uint64) error {
	return settleErr(v, v.reserve(n))
}

func (v *Vector[T]) reserve(n uint64) error {
	const op = "reserve"
	st, h, err := v.lockAll(op)
	if err != nil {
		return err
	}
	defer h.Release()
	if n > v.maxSize.Load() {
		if !st.cfg.Resizeable {
			return api.NewError(api.KindCapacityExceeded, op).
				Wrap(fmt.Errorf("reserve %d above ceiling %d", n, v.maxSize.Load()))
		}
		v.raiseCeiling(n)
	}
	return v.growTo(st, n)
}

// Snapshot copies every live element while all locks are held, giving a
// point-in-time consistent read. Requires SnapshotEnabled.
func (v *Vector[T]) Snapshot() ([]T, error) {
	return settle(v, v.snapshot())
}

func (v *Vector[T]) snapshot() api.Result[[]T] {
	const op = "snapshot"
	for {
		st, h, err := v.lockAll(op)
		if err != nil {
			return api.Fail[[]T](err)
		}
		if !st.cfg.SnapshotEnabled {
			h.Release()
			return api.Fail[[]T](api.NewError(api.KindUnsupported, op).
				Wrap(fmt.Errorf("snapshot_enabled is not set")))
		}
		if v.refused(st.cfg, accessRead) {
			if err := v.park(st.cfg, accessRead, op, h); err != nil {
				return api.Fail[[]T](err)
			}
			continue
		}
		out := make([]T, v.size.Load())
		copy(out, v.data)
		h.Release()
		v.stats.read(st.cfg)
		return api.Ok(out)
	}
}

// View exposes the live elements as one contiguous slice for the duration
// of fn, with every lock held. fn must not retain the slice or call back
// into the vector.
func (v *Vector[T]) View(fn func(items []T)) error {
	return settleErr(v, v.scoped("view", accessRead, fn))
}

// Modify is View for in-place element-wise writes, such as vectorized
// arithmetic. The slice length is fixed; fn cannot add or remove elements.
func (v *Vector[T]) Modify(fn func(items []T)) error {
	return settleErr(v, v.scoped("modify", accessWrite, fn))
}

func (v *Vector[T]) scoped(op string, class access, fn func(items []T)) error {
	if fn == nil {
		return api.NewError(api.KindInvalidArgument, op)
	}
	for {
		st, h, err := v.lockAll(op)
		if err != nil {
			return err
		}
		if v.refused(st.cfg, class) {
			if err := v.park(st.cfg, class, op, h); err != nil {
				return err
			}
			continue
		}
		size := v.size.Load()
		fn(v.data[:size:size])
		h.Release()
		if class == accessRead {
			v.stats.read(st.cfg)
		} else {
			v.stats.write(st.cfg)
		}
		return nil
	}
}
