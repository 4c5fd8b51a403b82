// File: vector/ops.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Single-element operations. Each resolves its locks, checks admission,
// mutates under the held locks and releases on every exit path.
//
// Size moves from s only while the lock covering index s is held, so a
// push (locks s) and a pop (locks s-count..s) always serialize.

package vector

import (
	"fmt"

	"github.com/momentics/hioload-vector/api"
)

// PushBack appends item at the tail.
func (v *Vector[T]) PushBack(item T) error {
	_, err := settle(v, v.pushBack(item))
	return err
}

func (v *Vector[T]) pushBack(item T) api.Result[uint64] {
	const op = "push_back"
	for {
		s := v.size.Load()
		st, h, err := v.lockRange(op, true, s, s)
		if err != nil {
			return api.Fail[uint64](err)
		}
		if v.size.Load() != s {
			h.Release()
			continue
		}
		if v.refused(st.cfg, accessWrite) {
			if err := v.park(st.cfg, accessWrite, op, h); err != nil {
				return api.Fail[uint64](err)
			}
			continue
		}
		if s >= v.maxSize.Load() && !st.cfg.Resizeable {
			h.Release()
			return api.Fail[uint64](api.NewError(api.KindCapacityExceeded, op).AtIndex(s))
		}
		if s >= v.maxSize.Load() || s >= uint64(len(v.data)) {
			// Growth reallocates storage: retry holding every lock.
			h.Release()
			return v.pushGrow(item)
		}
		v.data[s] = item
		v.size.Store(s + 1)
		h.Release()
		v.stats.push(st.cfg)
		v.changed(st)
		return api.Ok(s)
	}
}

func (v *Vector[T]) pushGrow(item T) api.Result[uint64] {
	const op = "push_back"
	for {
		st, h, err := v.lockAll(op)
		if err != nil {
			return api.Fail[uint64](err)
		}
		if v.refused(st.cfg, accessWrite) {
			if err := v.park(st.cfg, accessWrite, op, h); err != nil {
				return api.Fail[uint64](err)
			}
			continue
		}
		s := v.size.Load()
		if s >= v.maxSize.Load() {
			if !st.cfg.Resizeable || v.maxSize.Load() == api.Unbounded {
				h.Release()
				return api.Fail[uint64](api.NewError(api.KindCapacityExceeded, op).AtIndex(s))
			}
			v.raiseCeiling(s + 1)
		}
		if err := v.growTo(st, s+1); err != nil {
			h.Release()
			return api.Fail[uint64](err)
		}
		v.data[s] = item
		v.size.Store(s + 1)
		h.Release()
		v.stats.push(st.cfg)
		v.changed(st)
		return api.Ok(s)
	}
}

// PopBack removes the last count elements. Slots past the new size keep no
// references but are otherwise unspecified.
func (v *Vector[T]) PopBack(count uint64) error {
	return settleErr(v, v.popBack(count))
}

func (v *Vector[T]) popBack(count uint64) error {
	const op = "pop_back"
	if count == 0 {
		return api.NewError(api.KindInvalidArgument, op).Wrap(fmt.Errorf("count must be positive"))
	}
	for {
		s := v.size.Load()
		if count > s {
			return api.NewError(api.KindUnderflow, op).Wrap(fmt.Errorf("pop %d of %d", count, s))
		}
		lo := s - count
		st, h, err := v.lockRange(op, count == 1, lo, s)
		if err != nil {
			return err
		}
		if v.size.Load() != s {
			h.Release()
			continue
		}
		clear(v.data[lo:s])
		v.size.Store(lo)
		h.Release()
		v.stats.pop(st.cfg)
		v.changed(st)
		return nil
	}
}

// Get copies out the element at index. Indices past capacity are rejected
// before any lock is taken, so invalid input never creates shard locks.
func (v *Vector[T]) Get(index uint64) (T, error) {
	return settle(v, v.get(index))
}

func (v *Vector[T]) get(index uint64) api.Result[T] {
	const op = "get"
	for {
		st := v.state.Load()
		if st.cfg.UnlockedReading {
			return v.getUnlocked(st, index)
		}
		if index >= v.capacity.Load() {
			return api.Fail[T](api.NewError(api.KindIndexOutOfRange, op).AtIndex(index))
		}
		st, h, err := v.lockRange(op, true, index, index)
		if err != nil {
			return api.Fail[T](err)
		}
		if v.refused(st.cfg, accessRead) {
			if err := v.park(st.cfg, accessRead, op, h); err != nil {
				return api.Fail[T](err)
			}
			continue
		}
		if index >= v.size.Load() {
			h.Release()
			return api.Fail[T](api.NewError(api.KindIndexOutOfRange, op).AtIndex(index))
		}
		item := v.data[index]
		h.Release()
		v.stats.read(st.cfg)
		return api.Ok(item)
	}
}

// getUnlocked reads without taking the shard lock. Storage is fixed in this
// mode, so only a concurrent Set of the same slot can race with it.
func (v *Vector[T]) getUnlocked(st *lockState, index uint64) api.Result[T] {
	const op = "get"
	if v.refused(st.cfg, accessRead) {
		v.stats.gate(st.cfg)
		return api.Fail[T](api.NewError(api.KindGated, op))
	}
	if index >= v.size.Load() {
		return api.Fail[T](api.NewError(api.KindIndexOutOfRange, op).AtIndex(index))
	}
	v.stats.read(st.cfg)
	return api.Ok(v.data[index])
}

// Set copies item into the slot at index.
func (v *Vector[T]) Set(index uint64, item T) error {
	return settleErr(v, v.update("set", index, func(slot *T) { *slot = item }))
}

// Update runs fn with a pointer to the slot at index while the slot's lock
// is held. The pointer must not be retained after fn returns, and fn must
// not call back into the vector.
func (v *Vector[T]) Update(index uint64, fn func(slot *T)) error {
	if fn == nil {
		return settleErr(v, api.NewError(api.KindInvalidArgument, "update"))
	}
	return settleErr(v, v.update("update", index, fn))
}

func (v *Vector[T]) update(op string, index uint64, fn func(slot *T)) error {
	for {
		if index >= v.capacity.Load() {
			return api.NewError(api.KindIndexOutOfRange, op).AtIndex(index)
		}
		st, h, err := v.lockRange(op, true, index, index)
		if err != nil {
			return err
		}
		if v.refused(st.cfg, accessWrite) {
			if err := v.park(st.cfg, accessWrite, op, h); err != nil {
				return err
			}
			continue
		}
		if index >= v.size.Load() {
			h.Release()
			return api.NewError(api.KindIndexOutOfRange, op).AtIndex(index)
		}
		fn(&v.data[index])
		h.Release()
		v.stats.write(st.cfg)
		return nil
	}
}
